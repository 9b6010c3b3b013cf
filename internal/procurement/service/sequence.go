package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NumberSequencer issues document numbers of the form {prefix}-{year}-{seq}
// (PR-2026-0001). Redis INCR keeps the sequence atomic under concurrent
// creation; the counter is seeded from the stored maximum the first time a
// prefix/year pair is seen. Without redis it falls back to a max-scan,
// where the unique index on the number column still catches the rare race.
type NumberSequencer struct {
	rdb *redis.Client
	db  *gorm.DB
}

func NewNumberSequencer(rdb *redis.Client, db *gorm.DB) *NumberSequencer {
	return &NumberSequencer{rdb: rdb, db: db}
}

// Next returns the next free number for prefix, reading existing numbers
// from table.column.
func (s *NumberSequencer) Next(ctx context.Context, prefix, table, column string) (string, error) {
	year := time.Now().Format("2006")

	if s.rdb != nil {
		if number, err := s.nextFromRedis(ctx, prefix, year, table, column); err == nil {
			return number, nil
		}
		// redis unavailable, fall through to the max-scan
	}

	seq, err := s.maxIssued(ctx, prefix, year, table, column)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, year, seq+1), nil
}

func (s *NumberSequencer) nextFromRedis(ctx context.Context, prefix, year, table, column string) (string, error) {
	key := fmt.Sprintf("procurement:seq:%s:%s", prefix, year)

	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return "", err
	}
	if exists == 0 {
		seq, err := s.maxIssued(ctx, prefix, year, table, column)
		if err != nil {
			return "", err
		}
		// SetNX so two cold starts can't rewind the counter
		if err := s.rdb.SetNX(ctx, key, seq, 0).Err(); err != nil {
			return "", err
		}
	}

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, year, n), nil
}

func (s *NumberSequencer) maxIssued(ctx context.Context, prefix, year, table, column string) (int, error) {
	like := fmt.Sprintf("%s-%s-", prefix, year)

	var maxNumber string
	err := s.db.WithContext(ctx).
		Table(table).
		Select("COALESCE(MAX("+column+"), '')").
		Where(column+" LIKE ?", like+"%").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}

	var seq int
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, prefix+"-"+year+"-%04d", &seq)
	}
	return seq, nil
}

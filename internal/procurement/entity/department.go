package entity

import "time"

// Department is a requesting organizational unit. Requisitions belong to
// exactly one department.
type Department struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Code        string    `json:"code" gorm:"size:20;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ManagerID   *string   `json:"manager_id" gorm:"size:32"` // external identity, weak ref
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Department) TableName() string {
	return "departments"
}

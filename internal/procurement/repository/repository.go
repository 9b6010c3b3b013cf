package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// DuplicateKeyError reports a natural-key collision (SQLSTATE 23505).
type DuplicateKeyError struct {
	Constraint string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s", e.Constraint)
}

// ForeignKeyError reports a missing or dangling required reference
// (SQLSTATE 23503).
type ForeignKeyError struct {
	Constraint string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("referential integrity violation: %s", e.Constraint)
}

// CheckError reports a violated column check constraint (SQLSTATE 23514),
// e.g. quantity > 0.
type CheckError struct {
	Constraint string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check constraint violation: %s", e.Constraint)
}

// translate maps driver errors onto the repository error taxonomy so
// callers never match on SQLSTATE strings.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &DuplicateKeyError{Constraint: pgErr.ConstraintName}
		case "23503":
			return &ForeignKeyError{Constraint: pgErr.ConstraintName}
		case "23514":
			return &CheckError{Constraint: pgErr.ConstraintName}
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateKeyError{}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ForeignKeyError{}
	}
	return err
}

// Repositories is the procurement repository set.
type Repositories struct {
	Department  *DepartmentRepository
	Category    *CategoryRepository
	Item        *ItemRepository
	Supplier    *SupplierRepository
	Requisition *RequisitionRepository
	RFQ         *RFQRepository
	Quotation   *QuotationRepository
	PO          *PORepository
	Activity    *ActivityLogRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Department:  NewDepartmentRepository(db),
		Category:    NewCategoryRepository(db),
		Item:        NewItemRepository(db),
		Supplier:    NewSupplierRepository(db),
		Requisition: NewRequisitionRepository(db),
		RFQ:         NewRFQRepository(db),
		Quotation:   NewQuotationRepository(db),
		PO:          NewPORepository(db),
		Activity:    NewActivityLogRepository(db),
	}
}

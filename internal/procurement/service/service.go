package service

import (
	"github.com/bayscom/procurement/internal/procurement/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the procurement service set.
type Services struct {
	Department  *DepartmentService
	Catalog     *CatalogService
	Supplier    *SupplierService
	Requisition *RequisitionService
	RFQ         *RFQService
	PO          *POService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client) *Services {
	seq := NewNumberSequencer(rdb, db)
	return &Services{
		Department:  NewDepartmentService(repos.Department),
		Catalog:     NewCatalogService(repos.Category, repos.Item),
		Supplier:    NewSupplierService(repos.Supplier),
		Requisition: NewRequisitionService(repos.Requisition, repos.Department, repos.Activity, seq),
		RFQ:         NewRFQService(repos.RFQ, repos.Quotation, repos.Requisition, repos.Supplier, repos.Activity, seq),
		PO:          NewPOService(repos.PO, repos.RFQ, repos.Supplier, repos.Item, repos.Activity, seq),
	}
}

const dateLayout = "2006-01-02"

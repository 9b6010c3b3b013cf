package entity

import "time"

// Supplier is a vendor master record. Quotations and purchase orders are
// owned by their supplier; a bid analysis only points at one weakly.
type Supplier struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	Name          string    `json:"name" gorm:"size:200;not null"`
	ContactPerson string    `json:"contact_person" gorm:"size:100"`
	Email         string    `json:"email" gorm:"size:254"`
	Phone         string    `json:"phone" gorm:"size:20"`
	Address       string    `json:"address" gorm:"type:text"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`

	Quotations []SupplierQuotation `json:"quotations,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	Orders     []PurchaseOrder     `json:"orders,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

package entity

import "time"

// InvoiceCounter holds the last invoice number issued to an admin.
// It only ever moves forward, so numbers freed by deletes are not reissued.
type InvoiceCounter struct {
	AdminID   int64     `gorm:"primaryKey;autoIncrement:false" json:"admin_id"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the InvoiceCounter model
func (InvoiceCounter) TableName() string {
	return "invoice_counters"
}

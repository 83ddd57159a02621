package entity

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LineItem is a snapshot of a catalog service at billing time
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LineItems is the ordered list stored in bills.service_taken
type LineItems []LineItem

// DecodeLineItems parses a stored service_taken value. Anything that is not a
// JSON array of line items decodes to an empty list.
func DecodeLineItems(raw []byte) LineItems {
	if len(raw) == 0 {
		return LineItems{}
	}
	var items LineItems
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return LineItems{}
	}
	return items
}

// JSON encodes the list for storage
func (l LineItems) JSON() datatypes.JSON {
	if l == nil {
		l = LineItems{}
	}
	b, _ := json.Marshal(l)
	return datatypes.JSON(b)
}

// Total sums the item prices
func (l LineItems) Total() decimal.Decimal {
	return lo.Reduce(l, func(acc decimal.Decimal, item LineItem, _ int) decimal.Decimal {
		return acc.Add(item.Price)
	}, decimal.Zero)
}

// Names returns the item names in order
func (l LineItems) Names() []string {
	return lo.Map(l, func(item LineItem, _ int) string { return item.Name })
}

// Bill is an itemized invoice issued by an admin to a customer.
// Date follows the storage-time convention (business wall clock labelled UTC).
type Bill struct {
	BillID        int64               `gorm:"column:bill_id;primaryKey;autoIncrement" json:"bill_id"`
	InvoiceID     int64               `gorm:"column:invoiceid;not null;uniqueIndex:idx_bills_admin_invoice,priority:2" json:"invoiceid"`
	AdminID       int64               `gorm:"not null;index;uniqueIndex:idx_bills_admin_invoice,priority:1" json:"admin_id"`
	CustomerName  string              `gorm:"size:255;not null" json:"customer_name"`
	Contact       string              `gorm:"size:50;not null;index" json:"contact"`
	ServiceTaken  datatypes.JSON      `gorm:"column:service_taken" json:"-"`
	OtherCharges  decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"other_charges"`
	Discount      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	TaxRate       decimal.NullDecimal `gorm:"type:decimal(6,2)" json:"tax_rate"`
	PaymentMethod enum.PaymentMethod  `gorm:"size:20;not null" json:"payment_method"`
	Date          time.Time           `gorm:"not null;index" json:"-"`
	TotalBill     decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"total_bill"`
	Received      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"received"`
	Balance       decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0;index" json:"balance"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Items decodes service_taken
func (b *Bill) Items() LineItems {
	return DecodeLineItems(b.ServiceTaken)
}

// MarshalJSON renders service_taken as a list and date in storage layout
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		ServiceTaken LineItems `json:"service_taken"`
		Date         string    `json:"date"`
	}{
		Alias:        Alias(b),
		ServiceTaken: b.Items(),
		Date:         b.Date.UTC().Format("2006-01-02 15:04:05"),
	})
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// CustomerRef is a distinct (name, contact) pair seen on bills
type CustomerRef struct {
	CustomerName string `json:"customer_name"`
	Contact      string `json:"contact"`
}

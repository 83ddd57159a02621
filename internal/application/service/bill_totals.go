package service

import (
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BillTotals is the arithmetic behind a bill
type BillTotals struct {
	ServiceTotal decimal.Decimal
	Subtotal     decimal.Decimal
	TotalWithTax decimal.Decimal
}

// ComputeBillTotals derives subtotal and taxed total from line items.
// A negative subtotal is a validation error; a zero subtotal yields a zero
// total regardless of tax. The taxed total is rounded to cents.
func ComputeBillTotals(items entity.LineItems, otherCharges, discount decimal.Decimal, taxRate decimal.NullDecimal) (*BillTotals, error) {
	serviceTotal := items.Total()
	subtotal := serviceTotal.Add(otherCharges).Sub(discount)
	if subtotal.IsNegative() {
		return nil, apperror.NewFieldError("discount", "Discount cannot exceed the sum of services and other charges")
	}

	total := decimal.Zero
	if subtotal.IsPositive() {
		rate := decimal.Zero
		if taxRate.Valid {
			rate = taxRate.Decimal
		}
		total = subtotal.Mul(decimal.NewFromInt(1).Add(rate.Div(hundred))).Round(2)
	}

	return &BillTotals{
		ServiceTotal: serviceTotal,
		Subtotal:     subtotal,
		TotalWithTax: total,
	}, nil
}

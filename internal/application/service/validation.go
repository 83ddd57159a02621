package service

import (
	"strings"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// fieldErrors accumulates validation failures for a single request
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperror.FieldError{Field: field, Message: message})
}

func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, field+" is required")
	}
}

func (f *fieldErrors) requiredID(field string, id int64) {
	if id <= 0 {
		f.add(field, field+" is required")
	}
}

// nonNegative requires a present amount that is zero or more
func (f *fieldErrors) nonNegative(field string, v *decimal.Decimal) {
	switch {
	case v == nil:
		f.add(field, field+" is required")
	case v.IsNegative():
		f.add(field, field+" must be a non-negative number")
	}
}

func (f *fieldErrors) lineItems(field string, items entity.LineItems) {
	if len(items) == 0 {
		f.add(field, field+" must contain at least one service")
		return
	}
	for _, item := range items {
		if item.Price.IsNegative() {
			f.add(field, "service price must be a non-negative number")
			return
		}
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError(f)
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

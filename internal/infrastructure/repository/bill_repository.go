package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return translate(conn(ctx, r.db).Create(bill).Error)
}

func (r *billRepository) GetByID(ctx context.Context, billID int64) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).First(&bill, "bill_id = ?", billID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) GetForAdmin(ctx context.Context, billID, adminID int64) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		First(&bill, "bill_id = ?", billID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// Update writes every editable column of bill, matched by bill_id and admin_id
func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Bill{}).
		Where("bill_id = ? AND admin_id = ?", bill.BillID, bill.AdminID).
		Updates(map[string]interface{}{
			"customer_name":  bill.CustomerName,
			"contact":        bill.Contact,
			"service_taken":  bill.ServiceTaken,
			"other_charges":  bill.OtherCharges,
			"discount":       bill.Discount,
			"tax_rate":       bill.TaxRate,
			"payment_method": bill.PaymentMethod,
			"date":           bill.Date,
			"total_bill":     bill.TotalBill,
			"received":       bill.Received,
			"balance":        bill.Balance,
		})
	return result.RowsAffected, translate(result.Error)
}

func (r *billRepository) UpdatePayment(ctx context.Context, billID, adminID int64, received, balance decimal.Decimal) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Bill{}).
		Where("bill_id = ? AND admin_id = ?", billID, adminID).
		Updates(map[string]interface{}{
			"received": received,
			"balance":  balance,
		})
	return result.RowsAffected, result.Error
}

func (r *billRepository) Delete(ctx context.Context, billID, adminID int64) (int64, error) {
	result := conn(ctx, r.db).
		Where("bill_id = ? AND admin_id = ?", billID, adminID).
		Delete(&entity.Bill{})
	return result.RowsAffected, result.Error
}

func (r *billRepository) RenameCustomer(ctx context.Context, adminID int64, oldContact, newContact, customerName string) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Bill{}).
		Where("admin_id = ? AND contact = ?", adminID, oldContact).
		Updates(map[string]interface{}{
			"customer_name": customerName,
			"contact":       newContact,
		})
	return result.RowsAffected, result.Error
}

func (r *billRepository) MaxInvoiceID(ctx context.Context, adminID int64) (int64, error) {
	var maxID int64
	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Scopes(AdminScope(adminID)).
		Select("COALESCE(MAX(invoiceid), 0)").
		Scan(&maxID).Error
	return maxID, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := conn(ctx, r.db).Model(&entity.Bill{}).
		Scopes(AdminScope(params.AdminID), WindowScope("date", params.Window))
	if params.Contact != "" {
		query = query.Where("contact = ?", params.Contact)
	}

	order := "date DESC, bill_id DESC"
	if params.Ascending {
		order = "date ASC, bill_id ASC"
	}

	if params.Pagination == nil {
		err := query.Order(order).Find(&bills).Error
		return bills, int64(len(bills)), err
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(order).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ListPending(ctx context.Context, adminID int64) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		Where("balance > 0").
		Order("date DESC, bill_id DESC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) ListCustomers(ctx context.Context, adminID int64) ([]entity.CustomerRef, error) {
	var customers []entity.CustomerRef
	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Scopes(AdminScope(adminID)).
		Distinct("customer_name", "contact").
		Order("customer_name ASC").
		Scan(&customers).Error
	return customers, err
}

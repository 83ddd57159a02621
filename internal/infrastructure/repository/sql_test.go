package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds statements against the postgres dialect without a server.
// Every statement the callbacks build is appended to the returned slice.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=billbook dbname=billbook sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var statements []string
	capture := func(tx *gorm.DB) {
		statements = append(statements, tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...))
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", capture))
	return db, &statements
}

func TestInvoiceSequencerLocksCounterRow(t *testing.T) {
	db, statements := dryRunDB(t)
	seq := NewInvoiceSequencer(db, NewBillRepository(db))

	next, err := seq.Next(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	require.Len(t, *statements, 2)
	lock, update := (*statements)[0], (*statements)[1]

	assert.Contains(t, lock, `FROM "invoice_counters"`)
	assert.Contains(t, lock, "admin_id = 7")
	assert.Contains(t, lock, "FOR UPDATE")

	assert.Contains(t, update, `UPDATE "invoice_counters"`)
	assert.Contains(t, update, `"last_value"=1`)
	assert.Contains(t, update, "admin_id = 7")
}

func TestLedgerQueriesUseHalfOpenWindows(t *testing.T) {
	db, _ := dryRunDB(t)
	w := storagetime.Window{
		Start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
	}

	t.Run("bill totals", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return billTotalsQuery(tx, 3, &w).Find(&[]sumRow{})
		})
		assert.Contains(t, sql, "SUM(total_bill)")
		assert.Contains(t, sql, `FROM "bills"`)
		assert.Contains(t, sql, "admin_id = 3")
		assert.Contains(t, sql, "date >= '2024-01-15 00:00:00'")
		assert.Contains(t, sql, "date < '2024-01-16 00:00:00'")
	})

	t.Run("all-time bill totals", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return billTotalsQuery(tx, 3, nil).Find(&[]sumRow{})
		})
		assert.Contains(t, sql, "admin_id = 3")
		assert.NotContains(t, sql, "date >=")
	})

	t.Run("expenses", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return expensesQuery(tx, 3, w).Find(&[]sumRow{})
		})
		assert.Contains(t, sql, "SUM(amount)")
		assert.Contains(t, sql, `FROM "expenses"`)
		assert.Contains(t, sql, "created_at >= '2024-01-15 00:00:00'")
		assert.Contains(t, sql, "created_at < '2024-01-16 00:00:00'")
	})
}

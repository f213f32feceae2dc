package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestTenantScopeFiltersByContextTenant(t *testing.T) {
	tenantID := uuid.New()
	ctx := WithTenant(context.Background(), tenantID)

	var headers []entity.BillHeader
	tx := dryRunDB(t).Scopes(TenantScope(ctx)).Find(&headers)
	require.NoError(t, tx.Error)

	assert.Contains(t, tx.Statement.SQL.String(), "tenant_id = ?")
	assert.Contains(t, tx.Statement.Vars, tenantID)
}

func TestTenantScopeFailsSafeWithoutTenant(t *testing.T) {
	var headers []entity.BillHeader
	tx := dryRunDB(t).Scopes(TenantScope(context.Background())).Find(&headers)
	require.NoError(t, tx.Error)

	assert.Contains(t, tx.Statement.SQL.String(), "1 = 0")
}

func TestPostedScopeHidesPendingBills(t *testing.T) {
	var headers []entity.BillHeader
	tx := dryRunDB(t).Scopes(PostedScope).Find(&headers)
	require.NoError(t, tx.Error)

	assert.Contains(t, tx.Statement.SQL.String(), "status = ?")
	assert.Contains(t, tx.Statement.Vars, enum.BillStatusPosted)
}

// Point reads combine both scopes, the same chain the bill repository uses,
// so a staged settlement interrupted before its status flip stays invisible.
func TestBillReadChainScopes(t *testing.T) {
	ctx := WithTenant(context.Background(), uuid.New())

	var header entity.BillHeader
	tx := dryRunDB(t).Scopes(TenantScope(ctx), PostedScope).
		Where("bill_no = ?", "SAL1-1").Find(&header)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "tenant_id = ?")
	assert.Contains(t, sql, "status = ?")
	assert.Contains(t, sql, "bill_no = ?")
}

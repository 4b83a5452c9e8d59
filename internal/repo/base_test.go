package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/costlab-backend/pkg/db/dbtest"
)

type ctxKey struct{}

func TestNewBaseStoresConnection(t *testing.T) {
	db := dbtest.Open(t)
	base := NewBase(db)

	assert.Same(t, db, base.Conn())
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := dbtest.Open(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	withCtx := base.DB(ctx)

	require.NotNil(t, withCtx)
	require.NotNil(t, withCtx.Statement)
	assert.Equal(t, ctx, withCtx.Statement.Context)

	//nolint:staticcheck // nil context returns the raw connection
	withoutCtx := base.DB(nil)
	assert.Same(t, db, withoutCtx)
}

func TestBaseWithTx(t *testing.T) {
	db := dbtest.Open(t)
	base := NewBase(db)

	tx := db.Begin()
	t.Cleanup(func() { tx.Rollback() })

	assert.Same(t, tx, base.WithTx(tx).Conn())
	assert.Same(t, db, base.WithTx(nil).Conn())
}

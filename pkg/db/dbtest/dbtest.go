// Package dbtest opens isolated in-memory sqlite databases with the full
// schema, for repository and service tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/costlab-backend/pkg/db"
)

// New returns a migrated client backed by a private in-memory database.
func New(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())

	conn, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	client := db.FromGorm(conn)
	if err := client.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return client
}

// Open is New for callers that only need the gorm handle.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	return New(t).DB()
}

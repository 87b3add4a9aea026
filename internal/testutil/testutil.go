// Package testutil provides in-memory stores for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret-key-for-signing-tokens"

// Config returns a configuration backed by a fresh in-memory SQLite database.
func Config() *config.Config {
	return &config.Config{
		DBDriver:  "sqlite",
		DBPath:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		JWTSecret: JWTSecret,
		JWTExpiry: config.DefaultJWTExpiry,
		Port:      "0",
	}
}

// NewDB opens cfg's store and migrates the shared models plus extra.
func NewDB(t *testing.T, cfg *config.Config, extra ...interface{}) *gorm.DB {
	t.Helper()

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.MigrateShared(db))
	require.NoError(t, database.MigrateModels(db, extra))
	return db
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("AUTH_RATE_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Zero(t, cfg.AuthRateLimit, "login is not rate limited unless configured")
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/nw.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("AUTH_RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/nw.db", cfg.DSN())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\ndb_name: nw_test\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "nw_test", cfg.DBName)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing secret", Config{DBDriver: "sqlite"}, "JWT_SECRET"},
		{"postgres without password", Config{DBDriver: "postgres", JWTSecret: "k"}, "DB_PASSWORD"},
		{"unknown driver", Config{DBDriver: "oracle", JWTSecret: "k"}, "unsupported"},
		{"mysql ok", Config{DBDriver: "mysql", JWTSecret: "k", DBPassword: "p"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDSN_MySQL(t *testing.T) {
	cfg := Config{DBDriver: "mysql", DBUser: "root", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "nw"}
	assert.Equal(t, "root:pw@tcp(db:3306)/nw?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())
}

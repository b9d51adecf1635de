package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PoolSettingsFromEnv(t *testing.T) {
	t.Setenv("DATABASE_MAX_IDLE_CONN", "7")
	t.Setenv("DATABASE_MAX_OPEN_CONN", "40")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "300")
	t.Setenv("DATABASE_CONN_MAX_IDLE_TIME", "60")

	cfg := Load()
	assert.Equal(t, 7, cfg.DBMaxIdleConn)
	assert.Equal(t, 40, cfg.DBMaxOpenConn)
	assert.Equal(t, 300, cfg.DBConnMaxLifetime)
	assert.Equal(t, 60, cfg.DBConnMaxIdleTime)

	dbCfg := DatabaseConfig(cfg)
	assert.Equal(t, 300, dbCfg.ConnMaxLifetime)
	assert.Equal(t, 60, dbCfg.ConnMaxIdleTime)
}

func TestLoad_AuthCookieSecure(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	assert.True(t, Load().AuthCookieSecure)

	t.Setenv("ENVIRONMENT", "development")
	assert.False(t, Load().AuthCookieSecure)

	t.Setenv("AUTH_COOKIE_SECURE", "on")
	assert.True(t, Load().AuthCookieSecure)
}

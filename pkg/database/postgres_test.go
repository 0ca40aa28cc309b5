package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/school-portal/pkg/config"
)

func TestDSNQuotesValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "portal",
		Password: `p@ss word'1`,
		Name:     "activity",
		SSLMode:  "require",
	})

	assert.Contains(t, dsn, "host='db.internal'")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, `password='p@ss word\'1'`)
	assert.Contains(t, dsn, "sslmode=require")
	assert.Contains(t, dsn, "connect_timeout=5")
}

func TestDSNDefaultsSSLMode(t *testing.T) {
	assert.Contains(t, DSN(config.DatabaseConfig{Host: "localhost", Port: 5432}), "sslmode=disable")
}

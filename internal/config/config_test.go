package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:          "8080",
		Env:           "development",
		SessionSecret: "a-development-secret",
		PostsPerPage:  10,
	}
}

func TestValidate_Development(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_PageSizeRequired(t *testing.T) {
	cfg := validConfig()
	cfg.PostsPerPage = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionRejectsDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.SessionSecret = "change-me-before-production"
	cfg.DBPassword = "s0methingLongAndRandom!"
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionRequiresLongSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.SessionSecret = "short"
	cfg.DBPassword = "s0methingLongAndRandom!"
	assert.Error(t, cfg.Validate())

	cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ProductionRejectsDefaultDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "prod"
	cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
	cfg.DBPassword = "blogicum"
	assert.Error(t, cfg.Validate())
}

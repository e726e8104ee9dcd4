package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("IDENTITY_SECRET", "identity")
	t.Setenv("ADMIN_SESSION_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("DEFAULT_PAGE_SIZE", "")

	Load()

	assert.Equal(t, "nakliyeci", AppEnv.DBName)
	assert.Equal(t, "identity", AppEnv.IdentitySecret)
	assert.Equal(t, time.Hour, AppEnv.AdminSessionTTL)
	assert.Equal(t, []string{"*"}, AppEnv.CORSOrigins)
	assert.Equal(t, 12, AppEnv.DefaultPageSize)
	require.NoError(t, AppEnv.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_SESSION_TTL", "15")
	t.Setenv("QUERY_TIMEOUT", "abc")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAX_PAGE_SIZE", "50")

	Load()

	assert.Equal(t, 15*time.Minute, AppEnv.AdminSessionTTL)
	assert.Equal(t, 5*time.Second, AppEnv.QueryTimeout, "invalid value keeps the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AppEnv.CORSOrigins)
	assert.Equal(t, 50, AppEnv.MaxPageSize)
}

func TestValidateRequiresSecrets(t *testing.T) {
	err := Config{DefaultPageSize: 12, MaxPageSize: 100}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "IDENTITY_SECRET is required")
}

func TestIdentitySecretDoesNotFallBack(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("IDENTITY_SECRET", "")

	Load()

	assert.Empty(t, AppEnv.IdentitySecret)
	require.Error(t, AppEnv.Validate())
}

func TestValidateRejectsSharedSecret(t *testing.T) {
	err := Config{
		MongoURI:        "mongodb://localhost:27017",
		JWTSecret:       "same",
		IdentitySecret:  "same",
		DefaultPageSize: 12,
		MaxPageSize:     100,
	}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

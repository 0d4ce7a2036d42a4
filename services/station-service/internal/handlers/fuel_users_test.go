package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/fuelstation/libs/auth"
)

func TestPasswordHashing(t *testing.T) {
	password := "pass123"
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if err := verifyPassword(hash, password); err != nil {
		t.Fatalf("verifyPassword should succeed: %v", err)
	}
	if err := verifyPassword(hash, "wrong-pass"); err == nil {
		t.Fatal("verifyPassword should fail for wrong password")
	}
}

func userBody(email, password string) map[string]any {
	return map[string]any{
		"firstName": "Kamal",
		"lastName":  "Silva",
		"type":      "admin",
		"phone":     "+94711111111",
		"email":     email,
		"password":  password,
		"address":   "45 Kandy Road",
	}
}

func TestFuelUserNeverExposesPassword(t *testing.T) {
	env := newTestEnv(t)
	created := env.create("/api/fuel-users", userBody("kamal@station.lk", "secret1"))
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "passwordHash")

	stored, err := env.stores.FuelUsers.Get(t.Context(), created["id"].(string))
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	require.NoError(t, verifyPassword(stored.PasswordHash, "secret1"))

	rec := env.do(http.MethodGet, "/api/fuel-users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, u := range list(t, rec) {
		assert.NotContains(t, u, "passwordHash")
	}

	rec = env.do(http.MethodPost, "/api/fuel-users", userBody("KAMAL@station.lk", "secret2"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPost, "/api/fuel-users", userBody("short@station.lk", "123"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"password"}, errorFields(t, rec))
}

func TestLogin(t *testing.T) {
	issuedAt := time.Now().Truncate(time.Second)
	env := newTestEnv(t, func(c *Config) { c.Now = func() time.Time { return issuedAt } })
	created := env.create("/api/fuel-users", userBody("kamal@station.lk", "secret1"))

	rec := env.do(http.MethodPost, "/api/fuel-users/login", map[string]any{"email": "Kamal@Station.lk", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created["id"], body.User.ID)

	claims, err := auth.ParseAndVerifyHS256(body.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, created["id"], claims.UserID)
	assert.Equal(t, "admin", claims.Type)
	assert.Equal(t, issuedAt.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())

	for _, creds := range []map[string]any{
		{"email": "kamal@station.lk", "password": "wrong"},
		{"email": "nobody@station.lk", "password": "secret1"},
	} {
		rec := env.do(http.MethodPost, "/api/fuel-users/login", creds)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authentication failed", object(t, rec)["message"])
	}
}

func TestPasswordChangeOnUpdate(t *testing.T) {
	env := newTestEnv(t)
	created := env.create("/api/fuel-users", userBody("kamal@station.lk", "secret1"))

	rec := env.do(http.MethodPut, "/api/fuel-users/"+created["id"].(string), map[string]any{"password": "newsecret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ok := env.do(http.MethodPost, "/api/fuel-users/login", map[string]any{"email": "kamal@station.lk", "password": "newsecret"})
	assert.Equal(t, http.StatusOK, ok.Code)
	old := env.do(http.MethodPost, "/api/fuel-users/login", map[string]any{"email": "kamal@station.lk", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, old.Code)
}

package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/fuelstation/libs/auth"
)

func TestReports(t *testing.T) {
	env := newTestEnv(t)
	env.create("/api/products", productBody())

	rec := env.do(http.MethodGet, "/api/products/report", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="product_report.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = env.do(http.MethodGet, "/api/fuel-users/report?format=xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Equal(t, `attachment; filename="user_report.xlsx"`, rec.Header().Get("Content-Disposition"))

	rec = env.do(http.MethodGet, "/api/sales/report?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEveryResourceHasAReport(t *testing.T) {
	env := newTestEnv(t)
	for base, file := range map[string]string{
		"appointment":      "appointments_report",
		"attendance":       "attendance_report",
		"employee":         "employee_report",
		"fuel-users":       "user_report",
		"products":         "product_report",
		"salaries":         "salary_report",
		"sales":            "sales_report",
		"utility-expenses": "utility_expenses_report",
		"service-types":    "service_types_report",
	} {
		rec := env.do(http.MethodGet, "/api/"+base+"/report", nil)
		require.Equal(t, http.StatusOK, rec.Code, base)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), file+".pdf", base)
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t, func(c *Config) {
		c.Auth.Required = true
		c.Now = time.Now
	})
	token := func(userType string) string {
		tok, err := auth.SignHS256(auth.NewClaims("u-1", userType, time.Now(), time.Hour), "test-secret")
		require.NoError(t, err)
		return "Bearer " + tok
	}

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/employee", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/employee", nil, "Authorization", token("user")).Code)

	assert.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/appointment", bookingBody("Slot 1")).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/appointment/slots?date=2024-06-01&time=09:00", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/appointment", nil).Code)

	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/fuel-users", nil, "Authorization", token("user")).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/fuel-users", nil, "Authorization", token("admin")).Code)

	rec := env.do(http.MethodPost, "/api/fuel-users/login", map[string]any{"email": "a@b.co", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication failed", object(t, rec)["message"])
}

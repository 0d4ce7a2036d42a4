package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/fuelstation/libs/events"
)

func productBody() map[string]any {
	return map[string]any{
		"name":            "Petrol 92",
		"category":        "fuel",
		"quantity":        5000,
		"pricePerUnit":    365.5,
		"lastRestockDate": "2024-05-30",
	}
}

func TestSaleRequiresExistingProductAndJoinsIt(t *testing.T) {
	env := newTestEnv(t)
	sale := map[string]any{
		"productId":      "missing",
		"volume":         20,
		"totalSalePrice": 7310,
		"paymentMethod":  "card",
		"date":           "2024-06-01",
	}
	rec := env.do(http.MethodPost, "/api/sales", sale)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"productId"}, errorFields(t, rec))

	product := env.create("/api/products", productBody())
	sale["productId"] = product["id"]
	created := env.create("/api/sales", sale)
	joined, ok := created["product"].(map[string]any)
	require.True(t, ok, "expected product object, got %v", created["product"])
	assert.Equal(t, "Petrol 92", joined["name"])

	rec = env.do(http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sales := list(t, rec)
	require.Len(t, sales, 1)
	assert.Equal(t, product["id"], sales[0]["product"].(map[string]any)["id"])

	// Stock is left untouched by sales.
	rec = env.do(http.MethodGet, "/api/products/"+product["id"].(string), nil)
	assert.Equal(t, 5000.0, object(t, rec)["quantity"])

	require.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/api/products/"+product["id"].(string), nil).Code)
	rec = env.do(http.MethodGet, "/api/sales/"+created["id"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := object(t, rec)
	assert.Contains(t, got, "product")
	assert.Nil(t, got["product"])

	assert.Equal(t, []string{events.SaleRecorded}, env.events.types())
}

func TestSaleVolumeMustBeInteger(t *testing.T) {
	env := newTestEnv(t)
	product := env.create("/api/products", productBody())
	rec := env.do(http.MethodPost, "/api/sales", map[string]any{
		"productId": product["id"], "volume": 2.5, "totalSalePrice": 10, "paymentMethod": "cash", "date": "2024-06-01",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"volume"}, errorFields(t, rec))
}

func TestSalaryTotalPayIsDerived(t *testing.T) {
	env := newTestEnv(t)
	created := env.create("/api/salaries", map[string]any{
		"name":     "Sunil",
		"basePay":  45000,
		"bonus":    5000,
		"totalPay": 1,
		"workDays": 22,
		"date":     "2024-06-30",
		"phone":    "+94772222222",
	})
	assert.Equal(t, 50000.0, created["totalPay"])
	assert.NotContains(t, created, "createdAt")

	id := created["id"].(string)
	rec := env.do(http.MethodPut, "/api/salaries/"+id, map[string]any{"bonus": 7500})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 52500.0, object(t, rec)["totalPay"])

	rec = env.do(http.MethodPut, "/api/salaries/"+id, map[string]any{"workDays": 20})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 52500.0, object(t, rec)["totalPay"])

	rec = env.do(http.MethodPut, "/api/salaries/missing", map[string]any{"basePay": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAttendanceRequiresEmployee(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{
		"employeeId":    "ghost",
		"arrivalTime":   "08:00",
		"departureTime": "2024-06-01T17:00:00Z",
		"shiftType":     "in_time",
	}
	rec := env.do(http.MethodPost, "/api/attendance", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"employeeId"}, errorFields(t, rec))

	employee := env.create("/api/employee", map[string]any{
		"name": "Ruwan", "email": "ruwan@station.lk", "phone": "+94773333333",
		"address": "7 Temple Lane", "nicNumber": "951234567V",
	})
	body["employeeId"] = employee["id"]
	created := env.create("/api/attendance", body)
	assert.Equal(t, "in_time", created["shiftType"])

	rec = env.do(http.MethodPut, "/api/attendance/"+created["id"].(string), map[string]any{"shiftType": "double"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"shiftType"}, errorFields(t, rec))
}

func TestUtilityExpenseDescriptionLimit(t *testing.T) {
	env := newTestEnv(t)
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	rec := env.do(http.MethodPost, "/api/utility-expenses", map[string]any{
		"type": "Electricity", "amount": 12000, "date": "2024-06-01", "description": string(long),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"description"}, errorFields(t, rec))

	created := env.create("/api/utility-expenses", map[string]any{"type": "Water", "amount": 800, "date": "2024-06-01"})
	assert.NotContains(t, created, "description")
}

func TestSaleUpdateRejectsNullPaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	product := env.create("/api/products", productBody())
	created := env.create("/api/sales", map[string]any{
		"productId": product["id"], "volume": 2, "totalSalePrice": 10, "paymentMethod": "cash", "date": "2024-06-01",
	})
	path := "/api/sales/" + created["id"].(string)

	rec := env.do(http.MethodPut, path, map[string]any{"paymentMethod": nil})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"paymentMethod"}, errorFields(t, rec))

	rec = env.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cash", object(t, rec)["paymentMethod"])
}

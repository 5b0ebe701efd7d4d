package sales

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, storeID string, super bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     fmt.Sprintf("%s-user-%v", storeID, super),
		PasswordHash: "x",
		Role:         models.RoleFranchisee,
		StoreID:      storeID,
		IsActive:     true,
		IsSuperuser:  super,
	}
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

// JWT katmanının Locals'a yazdıklarını test ortamında doğrudan yazar.
func newTestApp(user *models.User) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, user.ID)
		c.Locals(auth.CtxUserRoleKey, user.Role)
		c.Locals(auth.CtxStoreIDKey, user.StoreID)
		c.Locals(auth.CtxIsSuperuserKey, user.IsSuperuser)
		return c.Next()
	})
	api.Post("/sales", CreateSaleHandler())
	api.Get("/sales", ListSalesHandler())
	api.Get("/sales/summary/today", TodaySummaryHandler())
	api.Put("/sales/:id", UpdateSaleHandler())
	api.Delete("/sales/:id", DeleteSaleHandler())
	return app
}

func TestCreateSale(t *testing.T) {
	database.OpenTest(t)
	user := createUser(t, "kadikoy", false)
	app := newTestApp(user)

	req := httptest.NewRequest("POST", "/api/sales",
		bytes.NewBufferString(`{"date":"2024-03-05","amount":1500,"category":"salon"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sale models.Sale
	require.NoError(t, database.DB.First(&sale).Error)
	assert.Equal(t, "kadikoy", sale.StoreID)
	assert.Equal(t, user.ID, sale.RecordedByID)
	assert.True(t, sale.Amount.Equal(decimal.RequireFromString("1500")))
	assert.Equal(t, "Günlük satış", sale.Description, "açıklama boşsa varsayılan kullanılır")
}

func TestCreateSaleRejectsInvalidAmount(t *testing.T) {
	database.OpenTest(t)
	user := createUser(t, "kadikoy", false)
	app := newTestApp(user)

	for _, payload := range []string{
		`{"date":"2024-03-05","amount":0}`,
		`{"date":"2024-03-05","amount":-250}`,
		`{"date":"2024-03-05","amount":"abc"}`,
		`{"date":"2024-03-05"}`,
	} {
		req := httptest.NewRequest("POST", "/api/sales", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "payload: %s", payload)
	}

	var count int64
	require.NoError(t, database.DB.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count, "reddedilen istekler kayıt bırakmaz")
}

func TestCreateSaleStoreCannotBeSpoofed(t *testing.T) {
	database.OpenTest(t)
	user := createUser(t, "kadikoy", false)
	app := newTestApp(user)

	req := httptest.NewRequest("POST", "/api/sales",
		bytes.NewBufferString(`{"date":"2024-03-05","amount":100,"store_id":"besiktas"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sale models.Sale
	require.NoError(t, database.DB.First(&sale).Error)
	assert.Equal(t, "kadikoy", sale.StoreID, "store_id her zaman kaydı açan kullanıcıdan gelir")
}

func TestCreateSaleDuplicateDay(t *testing.T) {
	database.OpenTest(t)
	user := createUser(t, "kadikoy", false)
	app := newTestApp(user)

	first := httptest.NewRequest("POST", "/api/sales",
		bytes.NewBufferString(`{"date":"2024-03-05 09:00","amount":100}`))
	first.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(first, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// aynı güne farklı saatle ikinci kayıt da reddedilir
	second := httptest.NewRequest("POST", "/api/sales",
		bytes.NewBufferString(`{"date":"2024-03-05 18:00","amount":200}`))
	second.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(second, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// başka mağazada aynı gün serbest
	other := createUser(t, "besiktas", false)
	otherApp := newTestApp(other)
	third := httptest.NewRequest("POST", "/api/sales",
		bytes.NewBufferString(`{"date":"2024-03-05","amount":300}`))
	third.Header.Set("Content-Type", "application/json")
	resp, err = otherApp.Test(third, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Sale{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListSalesIsStoreScoped(t *testing.T) {
	db := database.OpenTest(t)
	user := createUser(t, "kadikoy", false)
	other := createUser(t, "besiktas", false)

	day := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Sale{
		Date: day, Amount: decimal.RequireFromString("1000"),
		StoreID: "kadikoy", RecordedByID: user.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Sale{
		Date: day, Amount: decimal.RequireFromString("400"),
		StoreID: "besiktas", RecordedByID: other.ID,
	}).Error)

	app := newTestApp(user)
	req := httptest.NewRequest("GET", "/api/sales?year=2024&month=3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Items []SaleResponse  `json:"items"`
		Total decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "kadikoy", body.Items[0].StoreID)
	assert.True(t, body.Total.Equal(decimal.RequireFromString("1000")))
}

func TestUpdateSaleCrossStoreReturnsNotFound(t *testing.T) {
	db := database.OpenTest(t)
	user := createUser(t, "kadikoy", false)
	other := createUser(t, "besiktas", false)

	sale := &models.Sale{
		Date:   time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("400"), StoreID: "besiktas", RecordedByID: other.ID,
	}
	require.NoError(t, db.Create(sale).Error)

	app := newTestApp(user)
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/sales/%d", sale.ID),
		bytes.NewBufferString(`{"amount":999}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	// varlık sızdırılmaz: 403 değil 404
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/sales/%d", sale.ID), nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateSaleDateConflict(t *testing.T) {
	db := database.OpenTest(t)
	user := createUser(t, "kadikoy", false)

	first := &models.Sale{
		Date:   time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("100"), StoreID: "kadikoy", RecordedByID: user.ID,
	}
	second := &models.Sale{
		Date:   time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("200"), StoreID: "kadikoy", RecordedByID: user.ID,
	}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	app := newTestApp(user)

	// dolu güne taşıma reddedilir
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/sales/%d", second.ID),
		bytes.NewBufferString(`{"date":"2024-03-05"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// kendi gününde saat değişikliği serbest
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/sales/%d", second.ID),
		bytes.NewBufferString(`{"date":"2024-03-06 18:30"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

package auth

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"muhasebe-backend/internal/config"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = &config.Config{
	JWTSecret: "test-secret-test-secret-test-secret!",
}

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/register", RegisterHandler(testCfg))
	app.Post("/api/auth/login", LoginHandler(testCfg))
	app.Post("/api/auth/refresh", RefreshHandler(testCfg))
	app.Post("/api/auth/logout", LogoutHandler(testCfg))
	return app
}

func post(t *testing.T, app *fiber.App, path, payload string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := map[string]json.RawMessage{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestRegisterAndLogin(t *testing.T) {
	database.OpenTest(t)
	app := newAuthApp()

	status, _ := post(t, app, "/api/auth/register",
		`{"username":"ali","password":"gizli123","password_confirm":"gizli123","role":"franchisee"}`)
	require.Equal(t, fiber.StatusCreated, status)

	// aynı kullanıcı adı ikinci kez kayıt olamaz
	status, _ = post(t, app, "/api/auth/register",
		`{"username":"ali","password":"gizli123","password_confirm":"gizli123"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := post(t, app, "/api/auth/login",
		`{"username":"ali","password":"gizli123"}`)
	require.Equal(t, fiber.StatusOK, status)

	var tokens TokenPair
	require.NoError(t, json.Unmarshal(body["tokens"], &tokens))
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)

	var user models.User
	require.NoError(t, database.DB.First(&user, "username = ?", "ali").Error)
	assert.Equal(t, models.RoleFranchisee, user.Role)
	assert.NotNil(t, user.LastLoginAt, "girişte last_login_at güncellenir")
	assert.NotEqual(t, "gizli123", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	database.OpenTest(t)
	app := newAuthApp()

	for _, payload := range []string{
		`{"username":"ali"}`,                                                          // şifre yok
		`{"username":"ali","password":"123","password_confirm":"123"}`,                // kısa şifre
		`{"username":"ali","password":"gizli123","password_confirm":"farkli123"}`,     // eşleşmiyor
		`{"username":"ali","password":"gizli123","password_confirm":"gizli123","role":"patron"}`, // geçersiz rol
	} {
		status, _ := post(t, app, "/api/auth/register", payload)
		assert.Equal(t, fiber.StatusBadRequest, status, "payload: %s", payload)
	}

	var count int64
	require.NoError(t, database.DB.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginRejectsWrongPasswordAndInactive(t *testing.T) {
	database.OpenTest(t)
	app := newAuthApp()

	status, _ := post(t, app, "/api/auth/register",
		`{"username":"ali","password":"gizli123","password_confirm":"gizli123"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = post(t, app, "/api/auth/login", `{"username":"ali","password":"yanlis"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = post(t, app, "/api/auth/login", `{"username":"yok","password":"gizli123"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	require.NoError(t, database.DB.Model(&models.User{}).
		Where("username = ?", "ali").Update("is_active", false).Error)
	status, _ = post(t, app, "/api/auth/login", `{"username":"ali","password":"gizli123"}`)
	assert.Equal(t, fiber.StatusBadRequest, status, "pasif hesap giriş yapamaz")
}

func TestRefreshAndLogout(t *testing.T) {
	database.OpenTest(t)
	app := newAuthApp()

	status, _ := post(t, app, "/api/auth/register",
		`{"username":"ali","password":"gizli123","password_confirm":"gizli123"}`)
	require.Equal(t, fiber.StatusCreated, status)
	status, body := post(t, app, "/api/auth/login", `{"username":"ali","password":"gizli123"}`)
	require.Equal(t, fiber.StatusOK, status)

	var tokens TokenPair
	require.NoError(t, json.Unmarshal(body["tokens"], &tokens))

	refreshPayload, _ := json.Marshal(fiber.Map{"refresh": tokens.Refresh})

	status, body = post(t, app, "/api/auth/refresh", string(refreshPayload))
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["access"])

	status, _ = post(t, app, "/api/auth/logout", string(refreshPayload))
	require.Equal(t, fiber.StatusOK, status)

	// iptal edilen refresh token bir daha kullanılamaz
	status, _ = post(t, app, "/api/auth/refresh", string(refreshPayload))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var record models.RefreshToken
	require.NoError(t, database.DB.First(&record).Error)
	assert.True(t, record.Revoked)
}

package accounts

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"

	"muhasebe-backend/internal/auth"
	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, username, storeID string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		StoreID:      storeID,
		IsActive:     true,
	}
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

func newTestApp(user *models.User) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, user.ID)
		c.Locals(auth.CtxUserRoleKey, user.Role)
		c.Locals(auth.CtxStoreIDKey, user.StoreID)
		c.Locals(auth.CtxIsSuperuserKey, user.IsSuperuser)
		return c.Next()
	})
	api.Get("/users", ListUsersHandler())
	api.Post("/users", CreateUserHandler())
	api.Get("/users/:id", GetUserHandler())
	api.Put("/users/:id", UpdateUserHandler())
	api.Delete("/users/:id", DeleteUserHandler())
	return app
}

func doReq(t *testing.T, app *fiber.App, method, path, payload string) int {
	t.Helper()
	var req = httptest.NewRequest(method, path, bytes.NewBufferString(payload))
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateUserInheritsStore(t *testing.T) {
	database.OpenTest(t)
	founder := createUser(t, "patron", "kadikoy", models.RoleFounder)
	app := newTestApp(founder)

	status := doReq(t, app, "POST", "/api/users",
		`{"username":"garson","password":"gizli123","password_confirm":"gizli123","store_id":"besiktas"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var created models.User
	require.NoError(t, database.DB.First(&created, "username = ?", "garson").Error)
	assert.Equal(t, "kadikoy", created.StoreID, "gövdedeki store_id yok sayılır")
	assert.Equal(t, models.RoleStaff, created.Role, "rol verilmezse staff atanır")
	assert.True(t, created.IsActive)
}

func TestGetUserCrossStoreReturnsNotFound(t *testing.T) {
	database.OpenTest(t)
	founder := createUser(t, "patron", "kadikoy", models.RoleFounder)
	other := createUser(t, "rakip", "besiktas", models.RoleFounder)
	app := newTestApp(founder)

	status := doReq(t, app, "GET", fmt.Sprintf("/api/users/%d", other.ID), "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status = doReq(t, app, "GET", fmt.Sprintf("/api/users/%d", founder.ID), "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUpdateUserRoleRequiresFounder(t *testing.T) {
	database.OpenTest(t)
	staffer := createUser(t, "garson", "kadikoy", models.RoleStaff)
	target := createUser(t, "komi", "kadikoy", models.RoleStaff)

	app := newTestApp(staffer)
	status := doReq(t, app, "PUT", fmt.Sprintf("/api/users/%d", target.ID),
		`{"role":"founder"}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	founder := createUser(t, "patron", "kadikoy", models.RoleFounder)
	app = newTestApp(founder)
	status = doReq(t, app, "PUT", fmt.Sprintf("/api/users/%d", target.ID),
		`{"role":"franchisee"}`)
	require.Equal(t, fiber.StatusOK, status)

	var updated models.User
	require.NoError(t, database.DB.First(&updated, target.ID).Error)
	assert.Equal(t, models.RoleFranchisee, updated.Role)

	// mağaza değişikliği founder'a bile kapalı, yalnızca superuser yapabilir
	status = doReq(t, app, "PUT", fmt.Sprintf("/api/users/%d", target.ID),
		`{"store_id":"besiktas"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestDeleteUserSoftDisables(t *testing.T) {
	database.OpenTest(t)
	founder := createUser(t, "patron", "kadikoy", models.RoleFounder)
	target := createUser(t, "garson", "kadikoy", models.RoleStaff)
	app := newTestApp(founder)

	status := doReq(t, app, "DELETE", fmt.Sprintf("/api/users/%d", target.ID), "")
	require.Equal(t, fiber.StatusOK, status)

	// kayıt silinmez, pasife alınır
	var disabled models.User
	require.NoError(t, database.DB.First(&disabled, target.ID).Error)
	assert.False(t, disabled.IsActive)
}

func TestDeleteOwnAccountBlocked(t *testing.T) {
	database.OpenTest(t)
	founder := createUser(t, "patron", "kadikoy", models.RoleFounder)
	app := newTestApp(founder)

	status := doReq(t, app, "DELETE", fmt.Sprintf("/api/users/%d", founder.ID), "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	var self models.User
	require.NoError(t, database.DB.First(&self, founder.ID).Error)
	assert.True(t, self.IsActive, "kendi hesabı pasife alınamaz")
}

package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waroengpos/app/controllers"
	"waroengpos/app/services"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/middleware"
	"waroengpos/pkg/rbac"
	"waroengpos/pkg/router"
	"waroengpos/pkg/testkit"
)

func authRouter() *router.Router {
	c := controllers.NewAuthController()

	r := router.New()
	api := r.Group("/api")
	api.Post("/login", "auth.login", ctx.Wrap(c.Login))

	protected := api.Group("", middleware.Auth)
	protected.Get("/me", "auth.me", ctx.Wrap(c.Me))
	protected.Get("/admin-only", "admin.ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, rbac.Require(rbac.RoleAdmin))
	return r
}

func login(t *testing.T, r *router.Router, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	setupDB(t)
	r := authRouter()

	_, err := services.NewAuthService().RegisterUser("Kasir Satu", "kasir@waroengpos.local", "kasir-secret-123", rbac.RoleCashier)
	require.NoError(t, err)

	rec := login(t, r, "kasir@waroengpos.local", "kasir-secret-123")
	env := testkit.AssertStatus(t, rec, http.StatusOK)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeInto(t, env.Data, &data)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "Kasir Satu", data.User.Name)
	assert.Equal(t, rbac.RoleCashier, data.User.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupDB(t)
	r := authRouter()

	_, err := services.NewAuthService().RegisterUser("Kasir Satu", "kasir@waroengpos.local", "kasir-secret-123", rbac.RoleCashier)
	require.NoError(t, err)

	// Wrong password and unknown email produce the same answer.
	rec := login(t, r, "kasir@waroengpos.local", "wrong-password-1")
	envA := testkit.AssertStatus(t, rec, http.StatusBadRequest)

	rec = login(t, r, "ghost@waroengpos.local", "kasir-secret-123")
	envB := testkit.AssertStatus(t, rec, http.StatusBadRequest)

	assert.Equal(t, envA.Message, envB.Message)
}

func TestLoginValidation(t *testing.T) {
	setupDB(t)
	r := authRouter()

	rec := login(t, r, "not-an-email", "short")
	env := testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestAuthMiddlewareAndRBAC(t *testing.T) {
	setupDB(t)
	r := authRouter()

	_, err := services.NewAuthService().RegisterUser("Kasir Satu", "kasir@waroengpos.local", "kasir-secret-123", rbac.RoleCashier)
	require.NoError(t, err)

	rec := login(t, r, "kasir@waroengpos.local", "kasir-secret-123")
	env := testkit.AssertStatus(t, rec, http.StatusOK)
	var data struct {
		Token string `json:"token"`
	}
	decodeInto(t, env.Data, &data)

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token.
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+data.Token)
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	testkit.AssertStatus(t, rec, http.StatusOK)

	// Cashiers cannot reach admin-only routes.
	req = httptest.NewRequest(http.MethodGet, "/api/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+data.Token)
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restx/entity"
	"restx/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func router(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": utils.CurrentRole(c), "actor": utils.CurrentActor(c)})
	})
	r.GET("/p/:ownerId/:tableId", handlers...)
	r.GET("/p", handlers...)
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(utils.Claims{Role: role, OwnerID: uuid.New(), AccountID: uuid.New()}, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func serve(r *gin.Engine, path string, prep func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if prep != nil {
		prep(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := router(AuthMiddleware(secret, "token", entity.RoleStaff, entity.RoleOwner))
	staff := token(t, entity.RoleStaff)

	tests := []struct {
		name string
		prep func(*http.Request)
		want int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"wrong role", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, entity.RoleCustomer)) }, http.StatusForbidden},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+staff) }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: staff}) }, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(r, "/p", tt.prep).Code)
		})
	}
}

func TestAuthMiddlewareRejectsOtherSecret(t *testing.T) {
	r := router(AuthMiddleware(secret, "token"))
	tok, err := utils.GenerateToken(utils.Claims{Role: entity.RoleOwner}, "another-secret", time.Hour)
	require.NoError(t, err)

	w := serve(r, "/p", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	r := router(OptionalAuth(secret, "token"))

	w := serve(r, "/p", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"","actor":""}`, w.Body.String())

	w = serve(r, "/p", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, entity.RoleCustomer)) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"customer"`)
}

func TestWSAuthReadsQueryToken(t *testing.T) {
	r := router(WSAuthMiddleware(secret, "token", entity.RoleStaff))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/p", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, "/p?token="+token(t, entity.RoleStaff), nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "/p?token="+token(t, entity.RoleOwner), nil).Code)
}

func TestRestaurantContext(t *testing.T) {
	r := gin.New()
	r.GET("/p/:ownerId/:tableId", RestaurantContext(), func(c *gin.Context) {
		rc := utils.CurrentRestaurant(c)
		c.JSON(http.StatusOK, gin.H{"owner": rc.OwnerID, "table": rc.TableID})
	})
	owner := uuid.New()

	w := serve(r, "/p/"+owner.String()+"/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"owner":"`+owner.String()+`","table":7}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(r, "/p/not-a-uuid/7", nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "/p/"+owner.String()+"/0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "/p/"+owner.String()+"/x", nil).Code)
}

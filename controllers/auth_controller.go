package controllers

import (
	"restx/entity"
	"restx/pkg/resp"
	"restx/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth   *services.AuthService
	Cookie CookieConfig
}

func NewAuthController(auth *services.AuthService, cookie CookieConfig) *AuthController {
	return &AuthController{Auth: auth, Cookie: cookie}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, claims, err := a.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	a.Cookie.set(c, token)

	redirect := "/staff/requests"
	if claims.Role == entity.RoleOwner {
		redirect = "/owner/dashboard"
	}
	resp.OK(c, "Logged in.", gin.H{
		"token":    token,
		"role":     claims.Role,
		"ownerId":  claims.OwnerID,
		"staffId":  claims.StaffID,
		"name":     claims.Name,
		"redirect": redirect,
	})
}

// POST /auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	a.Cookie.clear(c)
	resp.OK(c, "Logged out.", nil)
}

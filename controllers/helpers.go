package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restx/pkg/resp"
	"restx/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieConfig is how the identity token is stored in the browser.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (cc CookieConfig) set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, token, int(cc.TTL.Seconds()), "/", "", cc.Secure, true)
}

func (cc CookieConfig) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, "", -1, "/", "", cc.Secure, true)
}

// fail maps service errors onto status codes; anything unknown is a 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		resp.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClaimsKey            = "claims"
	RestaurantContextKey = "restaurantContext"
)

// RestaurantContext is the owner/table pair a customer reached through a QR code.
type RestaurantContext struct {
	OwnerID uuid.UUID
	TableID uint
}

func CurrentClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if cl, ok := v.(*Claims); ok {
			return cl
		}
	}
	return nil
}

func CurrentRole(c *gin.Context) string {
	if cl := CurrentClaims(c); cl != nil {
		return cl.Role
	}
	return ""
}

func CurrentOwnerID(c *gin.Context) (uuid.UUID, bool) {
	cl := CurrentClaims(c)
	if cl == nil || cl.OwnerID == uuid.Nil {
		return uuid.Nil, false
	}
	return cl.OwnerID, true
}

// CurrentActor names the staff member, or the owner account, for audit columns.
func CurrentActor(c *gin.Context) string {
	cl := CurrentClaims(c)
	switch {
	case cl == nil:
		return ""
	case cl.StaffID != uuid.Nil:
		return cl.StaffID.String()
	case cl.AccountID != uuid.Nil:
		return cl.AccountID.String()
	}
	return cl.CustomerID.String()
}

// CurrentCustomerID returns uuid.Nil unless a customer token is present.
func CurrentCustomerID(c *gin.Context) uuid.UUID {
	cl := CurrentClaims(c)
	if cl == nil {
		return uuid.Nil
	}
	return cl.CustomerID
}

func CurrentRestaurant(c *gin.Context) RestaurantContext {
	if v, ok := c.Get(RestaurantContextKey); ok {
		if rc, ok := v.(RestaurantContext); ok {
			return rc
		}
	}
	return RestaurantContext{}
}

package middlewares

import (
	"strconv"

	"restx/pkg/resp"
	"restx/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RestaurantContext reads :ownerId and :tableId from the route.
func RestaurantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := uuid.Parse(c.Param("ownerId"))
		if err != nil {
			resp.BadRequest(c, "invalid owner id")
			c.Abort()
			return
		}
		var tableID uint64
		if s := c.Param("tableId"); s != "" {
			if tableID, err = strconv.ParseUint(s, 10, 64); err != nil || tableID == 0 {
				resp.BadRequest(c, "invalid table id")
				c.Abort()
				return
			}
		}
		c.Set(utils.RestaurantContextKey, utils.RestaurantContext{OwnerID: ownerID, TableID: uint(tableID)})
		c.Next()
	}
}

package controllers

import (
	"restx/pkg/resp"
	"restx/services"
	"restx/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

// GET /home/:ownerId/:tableId
func (mc *MenuController) Home(c *gin.Context) {
	rc := utils.CurrentRestaurant(c)
	out, err := mc.Menu.Home(c.Request.Context(), rc.OwnerID, rc.TableID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// GET /menu/:ownerId/:tableId
func (mc *MenuController) Customer(c *gin.Context) {
	rc := utils.CurrentRestaurant(c)
	out, err := mc.Menu.Menu(c.Request.Context(), rc.OwnerID, true)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// GET /staff/menu
func (mc *MenuController) Staff(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := mc.Menu.Menu(c.Request.Context(), ownerID, false)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

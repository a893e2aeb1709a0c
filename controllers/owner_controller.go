package controllers

import (
	"restx/pkg/resp"
	"restx/services"
	"restx/utils"

	"github.com/gin-gonic/gin"
)

type OwnerController struct {
	Owners    *services.OwnerService
	Dashboard *services.DashboardService
}

func NewOwnerController(owners *services.OwnerService, dashboard *services.DashboardService) *OwnerController {
	return &OwnerController{Owners: owners, Dashboard: dashboard}
}

// GET /owner/dashboard
func (oc *OwnerController) DashboardView(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := oc.Dashboard.Load(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// GET /owner/profile
func (oc *OwnerController) Profile(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := oc.Owners.Profile(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// PATCH /owner/profile
func (oc *OwnerController) UpdateProfile(c *gin.Context) {
	var in services.OwnerProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	claims := utils.CurrentClaims(c)
	out, err := oc.Owners.UpdateProfile(c.Request.Context(), claims.OwnerID, claims.AccountID, utils.CurrentActor(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Profile updated.", out)
}

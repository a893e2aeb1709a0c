package controllers

import (
	"restx/pkg/resp"
	"restx/services"
	"restx/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffController struct {
	Staff *services.StaffService
}

func NewStaffController(staff *services.StaffService) *StaffController {
	return &StaffController{Staff: staff}
}

// GET /staff/profile
//
// Owners browsing the staff pages have no staff row; they get their claims.
func (sc *StaffController) Profile(c *gin.Context) {
	claims := utils.CurrentClaims(c)
	if claims.StaffID == uuid.Nil {
		resp.OK(c, "", gin.H{"name": claims.Name, "role": claims.Role, "ownerId": claims.OwnerID})
		return
	}
	out, err := sc.Staff.Get(c.Request.Context(), claims.OwnerID, claims.StaffID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// ===== Owner: /owner/staff =====

func (sc *StaffController) List(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := sc.Staff.List(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (sc *StaffController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := sc.Staff.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (sc *StaffController) Create(c *gin.Context) {
	var in services.StaffInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := sc.Staff.Create(c.Request.Context(), ownerID, utils.CurrentActor(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, "Staff created.", out)
}

func (sc *StaffController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in services.StaffInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := sc.Staff.Update(c.Request.Context(), ownerID, utils.CurrentActor(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Staff updated.", out)
}

func (sc *StaffController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	if err := sc.Staff.Delete(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Staff deleted.", gin.H{"id": id})
}

package controllers

import (
	"net/http"
	"strconv"

	"restx/pkg/resp"
	"restx/services"
	"restx/utils"
	"restx/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UpdateTableStatusRequest struct {
	StatusID uint `json:"statusId" binding:"required"`
}

type TableController struct {
	Tables *services.TableService
	Hub    ws.Broadcaster
	Log    logrus.FieldLogger
}

func NewTableController(tables *services.TableService, hub ws.Broadcaster, log logrus.FieldLogger) *TableController {
	return &TableController{Tables: tables, Hub: hub, Log: log}
}

// GET /staff/tables
func (tc *TableController) Board(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	tables, err := tc.Tables.Board(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	statuses, err := tc.Tables.Statuses(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"tables": tables, "statuses": statuses})
}

// PATCH /staff/tables/:id/status
func (tc *TableController) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	view, err := tc.Tables.UpdateTableStatus(c.Request.Context(), ownerID, utils.CurrentActor(c), id, req.StatusID)
	if err != nil {
		fail(c, err)
		return
	}
	if err := tc.Hub.Broadcast(c.Request.Context(), ownerID, ws.EventTableStatusUpdate, view); err != nil {
		tc.Log.WithError(err).WithField("owner_id", ownerID).Error("broadcast table status")
	}
	resp.OK(c, "Table status updated.", view)
}

// ===== Owner: /owner/tables =====

func (tc *TableController) List(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := tc.Tables.List(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (tc *TableController) Create(c *gin.Context) {
	var in services.TableInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := tc.Tables.Create(c.Request.Context(), ownerID, utils.CurrentActor(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, "Table created.", out)
}

func (tc *TableController) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.TableInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := tc.Tables.Update(c.Request.Context(), ownerID, utils.CurrentActor(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Table updated.", out)
}

func (tc *TableController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	if err := tc.Tables.Delete(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Table deleted.", gin.H{"id": id})
}

// GET /owner/tables/:id/qrcode?size=256
func (tc *TableController) QRCode(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	ownerID, _ := utils.CurrentOwnerID(c)
	png, err := tc.Tables.QRCode(c.Request.Context(), ownerID, id, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

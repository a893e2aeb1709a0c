package controllers

import (
	"net/http"

	"restx/pkg/resp"
	"restx/services"
	"restx/utils"
	"restx/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UpdateDetailStatusRequest struct {
	OrderDetailID uuid.UUID `json:"orderDetailId" binding:"required"`
	IsActive      *bool     `json:"isActive" binding:"required"`
}

type SetOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Preparing Served Completed Cancelled"`
}

type OrderController struct {
	Orders   *services.OrderService
	Details  *services.OrderDetailService
	Payments *services.PaymentService
	Hub      ws.Broadcaster
	Log      logrus.FieldLogger
}

func NewOrderController(
	orders *services.OrderService,
	details *services.OrderDetailService,
	payments *services.PaymentService,
	hub ws.Broadcaster,
	log logrus.FieldLogger,
) *OrderController {
	return &OrderController{Orders: orders, Details: details, Payments: payments, Hub: hub, Log: log}
}

// GET /orders/history/:ownerId/:tableId
func (oc *OrderController) History(c *gin.Context) {
	rc := utils.CurrentRestaurant(c)
	customerID := utils.CurrentCustomerID(c)
	if claims := utils.CurrentClaims(c); claims == nil || claims.OwnerID != rc.OwnerID {
		customerID = uuid.Nil
	}
	out, err := oc.Orders.History(c.Request.Context(), rc.OwnerID, customerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// GET /staff/requests
func (oc *OrderController) Requests(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := oc.Orders.CustomerRequests(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// GET /staff/orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := oc.Orders.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// POST /staff/order-details/status
//
// Answers success=false for lines that are missing or of another restaurant.
func (oc *OrderController) UpdateDetailStatus(c *gin.Context) {
	var req UpdateDetailStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)

	ok := oc.Details.UpdateStatus(c.Request.Context(), ownerID, utils.CurrentActor(c), req.OrderDetailID, *req.IsActive)
	if !ok {
		resp.Fail(c, http.StatusOK, "Order line was not updated.")
		return
	}
	broadcastOrderList(c.Request.Context(), oc.Orders, oc.Hub, oc.Log, ownerID)
	resp.OK(c, "Order line updated.", nil)
}

// PATCH /staff/orders/:id/status
func (oc *OrderController) SetStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req SetOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	oc.transition(c, id, req.Status)
}

// PATCH /staff/orders/:id/close
func (oc *OrderController) Close(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	if err := oc.Orders.Close(c.Request.Context(), ownerID, id, utils.CurrentActor(c)); err != nil {
		fail(c, err)
		return
	}
	broadcastOrderList(c.Request.Context(), oc.Orders, oc.Hub, oc.Log, ownerID)
	resp.OK(c, "Order closed.", gin.H{"id": id})
}

func (oc *OrderController) transition(c *gin.Context, id uuid.UUID, status string) {
	ownerID, _ := utils.CurrentOwnerID(c)
	if err := oc.Orders.SetStatus(c.Request.Context(), ownerID, id, utils.CurrentActor(c), status); err != nil {
		fail(c, err)
		return
	}
	broadcastOrderList(c.Request.Context(), oc.Orders, oc.Hub, oc.Log, ownerID)
	resp.OK(c, "Order is now "+status+".", gin.H{"id": id, "status": status})
}

// POST /staff/orders/:id/payments
func (oc *OrderController) RecordPayment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in services.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := oc.Payments.Record(c.Request.Context(), ownerID, utils.CurrentActor(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	broadcastOrderList(c.Request.Context(), oc.Orders, oc.Hub, oc.Log, ownerID)
	resp.Created(c, "Payment recorded.", out)
}

// GET /staff/payment-methods
func (oc *OrderController) PaymentMethods(c *gin.Context) {
	out, err := oc.Payments.Methods(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

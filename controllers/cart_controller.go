package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"restx/pkg/resp"
	"restx/services"
	"restx/utils"
	"restx/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CartController struct {
	Cart   *services.CartService
	Orders *services.OrderService
	Hub    ws.Broadcaster
	Log    logrus.FieldLogger
}

func NewCartController(cart *services.CartService, orders *services.OrderService, hub ws.Broadcaster, log logrus.FieldLogger) *CartController {
	return &CartController{Cart: cart, Orders: orders, Hub: hub, Log: log}
}

// GET /cart/:ownerId/:tableId?cart=<encoded>
func (cc *CartController) View(c *gin.Context) {
	rc := utils.CurrentRestaurant(c)
	encoded := c.Query("cart")
	if encoded == "" {
		resp.OK(c, "", services.Cart{OwnerID: rc.OwnerID, TableID: rc.TableID, DishList: []services.CartLine{}})
		return
	}
	cart, err := cc.Cart.View(c.Request.Context(), rc.OwnerID, rc.TableID, encoded)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"cart": cart, "total": cart.Total()})
}

// POST /cart/:ownerId/:tableId/checkout
//
// The body is the cart as JSON; owner and table come from the route.
func (cc *CartController) Checkout(c *gin.Context) {
	rc := utils.CurrentRestaurant(c)
	var cart services.Cart
	if err := c.ShouldBindJSON(&cart); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart.OwnerID = rc.OwnerID
	cart.TableID = rc.TableID

	// a customer token of another restaurant is treated as no identity
	customerID := utils.CurrentCustomerID(c)
	if claims := utils.CurrentClaims(c); claims != nil && claims.OwnerID != rc.OwnerID {
		customerID = uuid.Nil
	}

	res := cc.Orders.CreateOrder(c.Request.Context(), customerID, cart)
	if !res.IsSuccess() {
		cc.checkoutFailed(c, rc, res)
		return
	}

	cc.broadcastOrders(c.Request.Context(), rc.OwnerID)

	orderID := res.Data
	cart.OrderID = &orderID
	cart.Message = res.SuccessMessage
	encoded, err := services.EncodeCart(cart)
	if err != nil {
		cc.Log.WithError(err).Warn("encode cart failed")
	}
	resp.Created(c, res.SuccessMessage, gin.H{
		"orderId":  orderID,
		"cart":     encoded,
		"redirect": fmt.Sprintf("/orders/history/%s/%d", rc.OwnerID, rc.TableID),
	})
}

func (cc *CartController) checkoutFailed(c *gin.Context, rc utils.RestaurantContext, res services.Result[uuid.UUID]) {
	switch {
	case errors.Is(res.Err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, resp.Envelope{
			Success: false,
			Message: res.ErrorMessage,
			Data:    gin.H{"redirect": fmt.Sprintf("/customer/login/%s/%d", rc.OwnerID, rc.TableID)},
		})
	case errors.Is(res.Err, services.ErrInvalidInput):
		resp.BadRequest(c, res.ErrorMessage)
	case errors.Is(res.Err, services.ErrNotFound):
		resp.NotFound(c, res.ErrorMessage)
	case errors.Is(res.Err, services.ErrForbidden):
		resp.Forbidden(c, res.ErrorMessage)
	default:
		resp.Fail(c, http.StatusInternalServerError, res.ErrorMessage)
	}
}

func (cc *CartController) broadcastOrders(ctx context.Context, ownerID uuid.UUID) {
	broadcastOrderList(ctx, cc.Orders, cc.Hub, cc.Log, ownerID)
}

// broadcastOrderList pushes the owner's refreshed request list. Failures are
// logged; the mutation that triggered it already succeeded.
func broadcastOrderList(ctx context.Context, orders *services.OrderService, hub ws.Broadcaster, log logrus.FieldLogger, ownerID uuid.UUID) {
	list, err := orders.CustomerRequests(ctx, ownerID)
	if err != nil {
		log.WithError(err).WithField("owner_id", ownerID).Error("load order list for broadcast")
		return
	}
	if err := hub.Broadcast(ctx, ownerID, ws.EventOrderList, list); err != nil {
		log.WithError(err).WithField("owner_id", ownerID).Error("broadcast order list")
	}
}

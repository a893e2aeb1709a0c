package controllers

import (
	"fmt"

	"restx/pkg/resp"
	"restx/services"
	"restx/utils"

	"github.com/gin-gonic/gin"
)

type CustomerLoginRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
	Name  string `json:"name" binding:"max=100"`
}

type CustomerController struct {
	Customers *services.CustomerService
	Auth      *services.AuthService
	Cookie    CookieConfig
}

func NewCustomerController(customers *services.CustomerService, auth *services.AuthService, cookie CookieConfig) *CustomerController {
	return &CustomerController{Customers: customers, Auth: auth, Cookie: cookie}
}

// POST /customer/login/:ownerId/:tableId
func (cc *CustomerController) Login(c *gin.Context) {
	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rc := utils.CurrentRestaurant(c)

	customer, err := cc.Customers.LoginOrCreate(c.Request.Context(), rc.OwnerID, req.Phone, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	token, _, err := cc.Auth.CustomerToken(customer)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	cc.Cookie.set(c, token)
	resp.OK(c, "Welcome, "+customer.Name+".", gin.H{
		"token":    token,
		"customer": customer,
		"redirect": fmt.Sprintf("/menu/%s/%d", rc.OwnerID, rc.TableID),
	})
}

// POST /customer/logout
func (cc *CustomerController) Logout(c *gin.Context) {
	cc.Cookie.clear(c)
	resp.OK(c, "Logged out.", nil)
}

// GET /customer/check-phone/:ownerId?phone=
func (cc *CustomerController) CheckPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		resp.BadRequest(c, "phone is required")
		return
	}
	out, err := cc.Customers.FindByPhone(c.Request.Context(), utils.CurrentRestaurant(c).OwnerID, phone)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

// ===== Owner: /owner/customers =====

func (cc *CustomerController) List(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := cc.Customers.List(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (cc *CustomerController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := cc.Customers.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (cc *CustomerController) Create(c *gin.Context) {
	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := cc.Customers.Create(c.Request.Context(), ownerID, utils.CurrentActor(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, "Customer created.", out)
}

func (cc *CustomerController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in services.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := cc.Customers.Update(c.Request.Context(), ownerID, utils.CurrentActor(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Customer updated.", out)
}

func (cc *CustomerController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	if err := cc.Customers.Delete(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Customer deleted.", gin.H{"id": id})
}


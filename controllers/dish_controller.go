package controllers

import (
	"restx/pkg/resp"
	"restx/services"
	"restx/utils"

	"github.com/gin-gonic/gin"
)

type DishAvailabilityRequest struct {
	DishID   uint  `json:"dishId" binding:"required"`
	IsActive *bool `json:"isActive" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type DishController struct {
	Dishes     *services.DishService
	Categories *services.CategoryService
}

func NewDishController(dishes *services.DishService, categories *services.CategoryService) *DishController {
	return &DishController{Dishes: dishes, Categories: categories}
}

// POST /staff/dishes/availability
func (dc *DishController) SetAvailability(c *gin.Context) {
	var req DishAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	if err := dc.Dishes.SetAvailability(c.Request.Context(), ownerID, utils.CurrentActor(c), req.DishID, *req.IsActive); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Dish availability updated.", gin.H{"dishId": req.DishID, "isActive": *req.IsActive})
}

// ===== Owner: /owner/dishes =====

func (dc *DishController) List(c *gin.Context) {
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := dc.Dishes.List(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (dc *DishController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := dc.Dishes.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (dc *DishController) Create(c *gin.Context) {
	var in services.DishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := dc.Dishes.Create(c.Request.Context(), ownerID, utils.CurrentActor(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, "Dish created.", out)
}

func (dc *DishController) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.DishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	out, err := dc.Dishes.Update(c.Request.Context(), ownerID, utils.CurrentActor(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Dish updated.", out)
}

func (dc *DishController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	ownerID, _ := utils.CurrentOwnerID(c)
	if err := dc.Dishes.Delete(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "Dish deleted.", gin.H{"id": id})
}

// ===== Categories =====

func (dc *DishController) ListCategories(c *gin.Context) {
	out, err := dc.Categories.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, "", out)
}

func (dc *DishController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := dc.Categories.Create(c.Request.Context(), utils.CurrentActor(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, "Category created.", out)
}

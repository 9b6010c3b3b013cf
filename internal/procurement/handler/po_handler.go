package handler

import (
	"github.com/bayscom/procurement/internal/procurement/service"
	"github.com/gin-gonic/gin"
)

type POHandler struct {
	svc *service.POService
}

func NewPOHandler(svc *service.POService) *POHandler {
	return &POHandler{svc: svc}
}

func (h *POHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/purchase-orders")
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.PUT("/:id/status", h.Transition)
		orders.GET("/:id/activity", h.Activity)
		orders.DELETE("/:id", h.Delete)

		orders.GET("/:id/items", h.ListItems)
		orders.POST("/:id/items", h.AddItem)
		orders.PUT("/:id/items/:itemId", h.UpdateItem)
		orders.DELETE("/:id/items/:itemId", h.DeleteItem)
	}
}

func (h *POHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":          c.Query("search"),
		"status":          c.Query("status"),
		"supplier_id":     c.Query("supplier_id"),
		"order_date_from": c.Query("order_date_from"),
		"order_date_to":   c.Query("order_date_to"),
	}

	orders, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, orders, page, pageSize, total)
}

func (h *POHandler) Get(c *gin.Context) {
	po, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, po)
}

func (h *POHandler) Create(c *gin.Context) {
	var req service.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	po, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, po)
}

func (h *POHandler) Update(c *gin.Context) {
	var req service.UpdatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	po, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, po)
}

func (h *POHandler) Transition(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	po, err := h.svc.Transition(c.Request.Context(), c.Param("id"), req.Status, GetUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, po)
}

func (h *POHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

func (h *POHandler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, items)
}

func (h *POHandler) AddItem(c *gin.Context) {
	var req service.POItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, item)
}

func (h *POHandler) UpdateItem(c *gin.Context) {
	var req service.POItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, item)
}

func (h *POHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

func (h *POHandler) Activity(c *gin.Context) {
	page, pageSize := GetPagination(c)

	logs, total, err := h.svc.Activity(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, logs, page, pageSize, total)
}

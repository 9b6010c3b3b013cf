package handler

import (
	"github.com/bayscom/procurement/internal/procurement/service"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves item categories and catalog items.
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	categories := r.Group("/item-categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	items := r.Group("/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search": c.Query("search"),
	}

	categories, total, err := h.svc.ListCategories(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, categories, page, pageSize, total)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.svc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, category)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	category, err := h.svc.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, category)
}

// DeleteCategory removes the category and every item under it.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

func (h *CatalogHandler) ListItems(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":          c.Query("search"),
		"category_id":     c.Query("category_id"),
		"unit_of_measure": c.Query("unit_of_measure"),
		"is_active":       c.Query("is_active"),
	}

	items, total, err := h.svc.ListItems(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, items, page, pageSize, total)
}

func (h *CatalogHandler) GetItem(c *gin.Context) {
	item, err := h.svc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, item)
}

func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.CreateItem(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, item)
}

func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, item)
}

func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

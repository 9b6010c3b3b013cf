package handler

import (
	"github.com/bayscom/procurement/internal/procurement/service"
	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	svc *service.DepartmentService
}

func NewDepartmentHandler(svc *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{svc: svc}
}

func (h *DepartmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	departments := r.Group("/departments")
	{
		departments.GET("", h.List)
		departments.POST("", h.Create)
		departments.GET("/:id", h.Get)
		departments.PUT("/:id", h.Update)
		departments.POST("/:id/deactivate", h.Deactivate)
		departments.DELETE("/:id", h.Delete)
	}
}

func (h *DepartmentHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":    c.Query("search"),
		"is_active": c.Query("is_active"),
	}

	departments, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, departments, page, pageSize, total)
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	department, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, department)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req service.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	department, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, department)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	var req service.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	department, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, department)
}

func (h *DepartmentHandler) Deactivate(c *gin.Context) {
	department, err := h.svc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, department)
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

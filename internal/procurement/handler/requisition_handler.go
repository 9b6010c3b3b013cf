package handler

import (
	"github.com/bayscom/procurement/internal/procurement/service"
	"github.com/gin-gonic/gin"
)

type RequisitionHandler struct {
	svc *service.RequisitionService
}

func NewRequisitionHandler(svc *service.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{svc: svc}
}

// statusRequest carries the target state of a workflow transition.
type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *RequisitionHandler) RegisterRoutes(r *gin.RouterGroup) {
	requisitions := r.Group("/purchase-requisitions")
	{
		requisitions.GET("", h.List)
		requisitions.POST("", h.Create)
		requisitions.GET("/:id", h.Get)
		requisitions.PUT("/:id", h.Update)
		requisitions.PUT("/:id/status", h.Transition)
		requisitions.GET("/:id/activity", h.Activity)
		requisitions.DELETE("/:id", h.Delete)
	}
}

func (h *RequisitionHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":            c.Query("search"),
		"status":            c.Query("status"),
		"department_id":     c.Query("department_id"),
		"request_date_from": c.Query("request_date_from"),
		"request_date_to":   c.Query("request_date_to"),
	}

	requisitions, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, requisitions, page, pageSize, total)
}

func (h *RequisitionHandler) Get(c *gin.Context) {
	requisition, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, requisition)
}

func (h *RequisitionHandler) Create(c *gin.Context) {
	var req service.CreateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	requisition, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, requisition)
}

func (h *RequisitionHandler) Update(c *gin.Context) {
	var req service.UpdateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	requisition, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, requisition)
}

func (h *RequisitionHandler) Transition(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	requisition, err := h.svc.Transition(c.Request.Context(), c.Param("id"), req.Status, GetUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, requisition)
}

func (h *RequisitionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

func (h *RequisitionHandler) Activity(c *gin.Context) {
	page, pageSize := GetPagination(c)

	logs, total, err := h.svc.Activity(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, logs, page, pageSize, total)
}

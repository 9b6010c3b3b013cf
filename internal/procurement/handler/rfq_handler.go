package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/bayscom/procurement/internal/procurement/service"
	"github.com/gin-gonic/gin"
)

// RFQHandler serves RFQs plus their quotations, bid analysis and the
// comparison views derived from them. It also owns the RFQ-to-order
// conversion endpoint, which lands in the order service.
type RFQHandler struct {
	svc *service.RFQService
	po  *service.POService
}

func NewRFQHandler(svc *service.RFQService, po *service.POService) *RFQHandler {
	return &RFQHandler{svc: svc, po: po}
}

func (h *RFQHandler) RegisterRoutes(r *gin.RouterGroup) {
	rfqs := r.Group("/rfqs")
	{
		rfqs.GET("", h.List)
		rfqs.POST("", h.Create)
		rfqs.GET("/:id", h.Get)
		rfqs.PUT("/:id", h.Update)
		rfqs.PUT("/:id/status", h.Transition)
		rfqs.GET("/:id/activity", h.Activity)
		rfqs.DELETE("/:id", h.Delete)

		rfqs.GET("/:id/quotations", h.ListQuotations)
		rfqs.POST("/:id/quotations", h.AddQuotation)

		rfqs.GET("/:id/analysis", h.GetAnalysis)
		rfqs.POST("/:id/analysis", h.CreateAnalysis)
		rfqs.PUT("/:id/analysis", h.UpdateAnalysis)

		rfqs.GET("/:id/comparison", h.Comparison)
		rfqs.GET("/:id/comparison/export", h.ExportComparison)

		rfqs.POST("/:id/purchase-orders", h.ConvertToPO)
	}

	quotations := r.Group("/supplier-quotations")
	{
		quotations.GET("/:id", h.GetQuotation)
		quotations.PUT("/:id", h.UpdateQuotation)
		quotations.PUT("/:id/status", h.TransitionQuotation)
		quotations.DELETE("/:id", h.DeleteQuotation)
	}
}

func (h *RFQHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":                  c.Query("search"),
		"status":                  c.Query("status"),
		"purchase_requisition_id": c.Query("purchase_requisition_id"),
	}

	rfqs, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, rfqs, page, pageSize, total)
}

func (h *RFQHandler) Get(c *gin.Context) {
	rfq, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, rfq)
}

func (h *RFQHandler) Create(c *gin.Context) {
	var req service.CreateRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	rfq, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, rfq)
}

func (h *RFQHandler) Update(c *gin.Context) {
	var req service.UpdateRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	rfq, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, rfq)
}

func (h *RFQHandler) Transition(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	rfq, err := h.svc.Transition(c.Request.Context(), c.Param("id"), req.Status, GetUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, rfq)
}

func (h *RFQHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

func (h *RFQHandler) ListQuotations(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"rfq_id":      c.Param("id"),
		"status":      c.Query("status"),
		"supplier_id": c.Query("supplier_id"),
	}

	quotations, total, err := h.svc.ListQuotations(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, quotations, page, pageSize, total)
}

func (h *RFQHandler) GetQuotation(c *gin.Context) {
	quotation, err := h.svc.GetQuotation(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, quotation)
}

func (h *RFQHandler) AddQuotation(c *gin.Context) {
	var req service.AddQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	quotation, err := h.svc.AddQuotation(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, quotation)
}

func (h *RFQHandler) UpdateQuotation(c *gin.Context) {
	var req service.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	quotation, err := h.svc.UpdateQuotation(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, quotation)
}

func (h *RFQHandler) TransitionQuotation(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	quotation, err := h.svc.TransitionQuotation(c.Request.Context(), c.Param("id"), req.Status, GetUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, quotation)
}

func (h *RFQHandler) DeleteQuotation(c *gin.Context) {
	if err := h.svc.DeleteQuotation(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}

	Success(c, nil)
}

func (h *RFQHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.svc.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, analysis)
}

func (h *RFQHandler) CreateAnalysis(c *gin.Context) {
	var req service.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	analysis, err := h.svc.CreateAnalysis(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, analysis)
}

func (h *RFQHandler) UpdateAnalysis(c *gin.Context) {
	var req service.UpdateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	analysis, err := h.svc.UpdateAnalysis(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, analysis)
}

func (h *RFQHandler) Comparison(c *gin.Context) {
	rfq, rows, err := h.svc.Comparison(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, gin.H{
		"rfq_id":     rfq.ID,
		"rfq_number": rfq.RFQNumber,
		"status":     rfq.Status,
		"rows":       rows,
	})
}

func (h *RFQHandler) ExportComparison(c *gin.Context) {
	f, filename, err := h.svc.ExportComparison(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		InternalError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ConvertToPO creates a purchase order from the RFQ's bid analysis,
// using the analysis' selected supplier.
func (h *RFQHandler) ConvertToPO(c *gin.Context) {
	var req service.ConvertRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	po, err := h.po.CreateFromRFQ(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, po)
}

func (h *RFQHandler) Activity(c *gin.Context) {
	page, pageSize := GetPagination(c)

	logs, total, err := h.svc.Activity(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		Fail(c, err)
		return
	}

	ListOK(c, logs, page, pageSize, total)
}

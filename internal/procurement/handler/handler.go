package handler

import (
	"errors"
	"strconv"

	"github.com/bayscom/procurement/internal/procurement/repository"
	"github.com/bayscom/procurement/internal/procurement/service"
	"github.com/gin-gonic/gin"
)

// Handlers is the procurement handler set.
type Handlers struct {
	Department  *DepartmentHandler
	Catalog     *CatalogHandler
	Supplier    *SupplierHandler
	Requisition *RequisitionHandler
	RFQ         *RFQHandler
	PO          *POHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Department:  NewDepartmentHandler(svc.Department),
		Catalog:     NewCatalogHandler(svc.Catalog),
		Supplier:    NewSupplierHandler(svc.Supplier),
		Requisition: NewRequisitionHandler(svc.Requisition),
		RFQ:         NewRFQHandler(svc.RFQ, svc.PO),
		PO:          NewPOHandler(svc.PO),
	}
}

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func Unprocessable(c *gin.Context, message string) {
	Error(c, 42200, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail maps the service/repository error taxonomy onto the response
// envelope: duplicates and bad transitions conflict, broken references
// are unprocessable, validation is a bad request.
func Fail(c *gin.Context, err error) {
	var dup *repository.DuplicateKeyError
	var fk *repository.ForeignKeyError
	var check *repository.CheckError
	var validation *service.ValidationError
	var reference *service.ReferenceError
	var transition *service.TransitionError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "record not found")
	case errors.As(err, &dup):
		Conflict(c, err.Error())
	case errors.As(err, &transition):
		Error(c, 40901, err.Error())
	case errors.As(err, &fk):
		Unprocessable(c, err.Error())
	case errors.As(err, &reference):
		Unprocessable(c, err.Error())
	case errors.As(err, &check):
		BadRequest(c, err.Error())
	case errors.As(err, &validation):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func ListOK(c *gin.Context, items interface{}, page, pageSize int, total int64) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}

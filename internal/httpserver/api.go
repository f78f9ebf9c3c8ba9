package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/arekzadka7/mini-crm/internal/domain"
	customersvc "github.com/arekzadka7/mini-crm/internal/service/customer"
	"github.com/gin-gonic/gin"
)

type customerResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type customerListResponse struct {
	Count   int                `json:"count"`
	Results []customerResponse `json:"results"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}

type apiHandlers struct {
	svc    CustomerService
	logger *log.Logger
}

func (h *apiHandlers) list(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Printf("api list customers: %v", err)
		writeError(c, http.StatusInternalServerError, "could not load customers")
		return
	}
	results := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		results = append(results, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, customerListResponse{Count: len(results), Results: results})
}

func (h *apiHandlers) create(c *gin.Context) {
	var in customersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cust, err := h.svc.Create(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, toCustomerResponse(*cust))
	case errors.Is(err, customersvc.ErrMissingFields):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConstraintViolation):
		writeError(c, http.StatusConflict, "a customer with that email already exists")
	default:
		h.logger.Printf("api create customer: %v", err)
		writeError(c, http.StatusInternalServerError, "could not create customer")
	}
}

func (h *apiHandlers) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusNotFound, "customer not found")
		return
	}
	cust, found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Printf("api get customer id=%d: %v", id, err)
		writeError(c, http.StatusInternalServerError, "could not load customer")
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "customer not found")
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(cust))
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{StatusCode: status, Message: msg})
}

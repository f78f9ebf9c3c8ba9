package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/arekzadka7/mini-crm/internal/domain"
	customersvc "github.com/arekzadka7/mini-crm/internal/service/customer"
	"github.com/gin-gonic/gin"
)

const (
	flashAdded     = "Customer added."
	flashMissing   = "Name and email are required."
	flashDuplicate = "A customer with that email already exists."
	flashFailed    = "Error adding customer."
)

type pageHandlers struct {
	svc    CustomerService
	logger *log.Logger
}

func (h *pageHandlers) index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/customers")
}

func (h *pageHandlers) list(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	customers, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		h.logger.Printf("list customers q=%q: %v", q, err)
		h.renderError(c, http.StatusInternalServerError, "Could not load customers.")
		return
	}
	c.HTML(http.StatusOK, "customers.html", gin.H{
		"Title":     "Customers",
		"Customers": customers,
		"Query":     q,
		"Flashes":   h.flashes(c),
	})
}

func (h *pageHandlers) addForm(c *gin.Context) {
	c.HTML(http.StatusOK, "customer_add.html", gin.H{
		"Title":   "Add customer",
		"Flashes": h.flashes(c),
	})
}

func (h *pageHandlers) add(c *gin.Context) {
	in := customersvc.CreateInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
	}

	_, err := h.svc.Create(c.Request.Context(), in)
	switch {
	case err == nil:
		h.flashAndRedirect(c, flashAdded, "/customers")
	case errors.Is(err, customersvc.ErrMissingFields):
		h.flashAndRedirect(c, flashMissing, "/customers/add")
	case errors.Is(err, domain.ErrConstraintViolation):
		h.flashAndRedirect(c, flashDuplicate, "/customers/add")
	default:
		h.logger.Printf("create customer email=%q: %v", strings.TrimSpace(in.Email), err)
		h.flashAndRedirect(c, flashFailed, "/customers/add")
	}
}

func (h *pageHandlers) detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.renderError(c, http.StatusNotFound, "Customer not found.")
		return
	}
	cust, found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Printf("get customer id=%d: %v", id, err)
		h.renderError(c, http.StatusInternalServerError, "Could not load customer.")
		return
	}
	if !found {
		h.renderError(c, http.StatusNotFound, "Customer not found.")
		return
	}
	c.HTML(http.StatusOK, "customer_detail.html", gin.H{
		"Title":    cust.Name,
		"Customer": cust,
		"Flashes":  h.flashes(c),
	})
}

func (h *pageHandlers) flashes(c *gin.Context) []string {
	msgs, err := popFlashes(c)
	if err != nil {
		h.logger.Printf("read flashes: %v", err)
	}
	return msgs
}

func (h *pageHandlers) flashAndRedirect(c *gin.Context, msg, location string) {
	if err := addFlash(c, msg); err != nil {
		h.logger.Printf("save flash: %v", err)
	}
	c.Redirect(http.StatusFound, location)
}

func (h *pageHandlers) renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Message": msg,
	})
}

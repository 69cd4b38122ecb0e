package handler

import (
	"net/http"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/integration"
	"tillpos/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	svc       service.RegisterService
	inventory integration.Inventory
}

func NewSalesHandler(svc service.RegisterService, inventory integration.Inventory) *SalesHandler {
	return &SalesHandler{svc: svc, inventory: inventory}
}

// StartSale opens a new sale on the register. Any sale still in flight is
// abandoned; the till has exactly one active sale.
func (h *SalesHandler) StartSale(c *gin.Context) {
	resp, err := h.svc.StartSale(c.Request.Context())
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EnterItem scans one item into the active sale and returns the item
// description plus the running totals.
func (h *SalesHandler) EnterItem(c *gin.Context) {
	var req dto.EnterItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnterItem(c.Request.Context(), req.ItemID)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EndSale declares the scanning phase over and returns the total to charge.
func (h *SalesHandler) EndSale(c *gin.Context) {
	resp, err := h.svc.EndSale(c.Request.Context())
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestDiscount applies whatever discounts the customer qualifies for.
func (h *SalesHandler) RequestDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RequestDiscount(c.Request.Context(), req.CustomerID)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pay settles the active sale and returns change plus the rendered receipt.
func (h *SalesHandler) Pay(c *gin.Context) {
	var req dto.PaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pay(c.Request.Context(), req)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetItem is a price-check lookup that does not touch the active sale.
func (h *SalesHandler) GetItem(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, apierror.New("missing item id"))
		return
	}
	item, err := h.inventory.Lookup(id)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

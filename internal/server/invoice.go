package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/studiolegale/lexora/internal/invoice/domain"
)

// @Summary      List Invoices
// @Description  List every invoice with recomputed totals and status
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  []invoicedomain.View
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Invoice
// @Description  Issue an invoice, drawing the next number and optionally billing expenses
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.CreateRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Preview Invoice Number
// @Description  Show the number the next invoice would get, without drawing it
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /invoices/numbering/preview [get]
func (s *Server) PreviewInvoiceNumber(c *gin.Context) {
	number, err := s.invoiceSvc.PreviewNumber(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"number": number}})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID with recomputed totals and status
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Patch invoice dates and notes; lines and payments have their own endpoints
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path  string                      true  "Invoice ID"
// @Param        request body  invoicedomain.UpdateRequest true  "Update Invoice Request"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices/{id} [patch]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.invoiceSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Description  Remove an invoice without payments; billed expenses are released
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Add Invoice Line
// @Description  Append a line to the invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path  string                    true  "Invoice ID"
// @Param        request body  invoicedomain.LineRequest true  "Line Request"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices/{id}/lines [post]
func (s *Server) AddInvoiceLine(c *gin.Context) {
	var req invoicedomain.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.AddLine(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Remove Invoice Line
// @Description  Remove a line; a line billed from an expense releases it
// @Tags         invoices
// @Produce      json
// @Param        id      path  string  true  "Invoice ID"
// @Param        lineId  path  string  true  "Line ID"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices/{id}/lines/{lineId} [delete]
func (s *Server) RemoveInvoiceLine(c *gin.Context) {
	resp, err := s.invoiceSvc.RemoveLine(c.Request.Context(),
		strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("lineId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Add Invoice Payment
// @Description  Record an incassation; amounts above the open residual are clamped
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path  string                       true  "Invoice ID"
// @Param        request body  invoicedomain.PaymentRequest true  "Payment Request"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices/{id}/payments [post]
func (s *Server) AddInvoicePayment(c *gin.Context) {
	var req invoicedomain.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.AddPayment(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Remove Invoice Payment
// @Description  Remove a recorded payment
// @Tags         invoices
// @Produce      json
// @Param        id         path  string  true  "Invoice ID"
// @Param        paymentId  path  string  true  "Payment ID"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices/{id}/payments/{paymentId} [delete]
func (s *Server) RemoveInvoicePayment(c *gin.Context) {
	resp, err := s.invoiceSvc.RemovePayment(c.Request.Context(),
		strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("paymentId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Attach Expense
// @Description  Bill an unbilled expense of the same client onto the invoice
// @Tags         invoices
// @Produce      json
// @Param        id         path  string  true  "Invoice ID"
// @Param        expenseId  path  string  true  "Expense ID"
// @Success      200  {object}  invoicedomain.View
// @Router       /invoices/{id}/expenses/{expenseId} [post]
func (s *Server) AttachInvoiceExpense(c *gin.Context) {
	resp, err := s.invoiceSvc.AttachExpense(c.Request.Context(),
		strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("expenseId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Render Invoice
// @Description  Render the invoice as a printable HTML document
// @Tags         invoices
// @Produce      html
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {string}  string
// @Router       /invoices/{id}/render [get]
func (s *Server) RenderInvoice(c *gin.Context) {
	html, err := s.invoiceSvc.Render(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

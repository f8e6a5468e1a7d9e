package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	expensedomain "github.com/studiolegale/lexora/internal/expense/domain"
)

// @Summary      List Expenses
// @Description  List every recorded expense
// @Tags         expenses
// @Produce      json
// @Success      200  {object}  []expensedomain.Expense
// @Router       /expenses [get]
func (s *Server) ListExpenses(c *gin.Context) {
	resp, err := s.expenseSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Expense
// @Description  Record a cost advanced for a client
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body expensedomain.CreateRequest true "Create Expense Request"
// @Success      200  {object}  expensedomain.Expense
// @Router       /expenses [post]
func (s *Server) CreateExpense(c *gin.Context) {
	var req expensedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.expenseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Expense
// @Description  Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id   path      string  true  "Expense ID"
// @Success      200  {object}  expensedomain.Expense
// @Router       /expenses/{id} [get]
func (s *Server) GetExpenseByID(c *gin.Context) {
	resp, err := s.expenseSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Expense
// @Description  Patch expense fields
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id      path  string                      true  "Expense ID"
// @Param        request body  expensedomain.UpdateRequest true  "Update Expense Request"
// @Success      200  {object}  expensedomain.Expense
// @Router       /expenses/{id} [patch]
func (s *Server) UpdateExpense(c *gin.Context) {
	var req expensedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.expenseSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Expense
// @Description  Remove an expense that is not on an invoice
// @Tags         expenses
// @Produce      json
// @Param        id   path      string  true  "Expense ID"
// @Success      200  {object}  map[string]string
// @Router       /expenses/{id} [delete]
func (s *Server) DeleteExpense(c *gin.Context) {
	if err := s.expenseSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

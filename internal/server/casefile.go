package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	casedomain "github.com/studiolegale/lexora/internal/casefile/domain"
)

// @Summary      List Cases
// @Description  List every case file
// @Tags         cases
// @Produce      json
// @Success      200  {object}  []casedomain.CaseFile
// @Router       /cases [get]
func (s *Server) ListCases(c *gin.Context) {
	resp, err := s.caseSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Case
// @Description  Open a case file, numbered automatically unless a manual number is supplied
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        request body casedomain.CreateRequest true "Create Case Request"
// @Success      200  {object}  casedomain.CaseFile
// @Router       /cases [post]
func (s *Server) CreateCase(c *gin.Context) {
	var req casedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.caseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Preview Case Number
// @Description  Show the number the next automatic draw would assign for the kind
// @Tags         cases
// @Produce      json
// @Param        kind  query     string  false  "Case kind (civile or penale)"
// @Success      200  {object}  map[string]string
// @Router       /cases/numbering/preview [get]
func (s *Server) PreviewCaseNumber(c *gin.Context) {
	number, err := s.caseSvc.PreviewNumber(c.Request.Context(), c.Query("kind"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"number": number}})
}

// @Summary      Get Case
// @Description  Get case file by ID
// @Tags         cases
// @Produce      json
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  casedomain.CaseFile
// @Router       /cases/{id} [get]
func (s *Server) GetCaseByID(c *gin.Context) {
	resp, err := s.caseSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Case
// @Description  Patch case fields; the number and client are immutable
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        id      path  string                   true  "Case ID"
// @Param        request body  casedomain.UpdateRequest true  "Update Case Request"
// @Success      200  {object}  casedomain.CaseFile
// @Router       /cases/{id} [patch]
func (s *Server) UpdateCase(c *gin.Context) {
	var req casedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.caseSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Case
// @Description  Remove a case no invoice refers to
// @Tags         cases
// @Produce      json
// @Param        id   path      string  true  "Case ID"
// @Success      200  {object}  map[string]string
// @Router       /cases/{id} [delete]
func (s *Server) DeleteCase(c *gin.Context) {
	if err := s.caseSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

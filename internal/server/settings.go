package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
)

// @Summary      Get Settings
// @Description  Get office identity, tax percentages and numbering families
// @Tags         settings
// @Produce      json
// @Success      200  {object}  studiodomain.Settings
// @Router       /settings [get]
func (s *Server) GetSettings(c *gin.Context) {
	resp, err := s.studioSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Settings
// @Description  Patch office settings; tax changes apply to every invoice on its next read
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body studiodomain.UpdateRequest true "Update Settings Request"
// @Success      200  {object}  studiodomain.Settings
// @Router       /settings [patch]
func (s *Server) UpdateSettings(c *gin.Context) {
	var req studiodomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studioSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Numbering
// @Description  Reconfigure one sequence family (prefix, separator, pad, next number)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        kind    path  string                              true  "Numbering kind (invoice, civile, penale)"
// @Param        request body  studiodomain.NumberingUpdateRequest true  "Numbering Update Request"
// @Success      200  {object}  studiodomain.Settings
// @Router       /settings/numbering/{kind} [patch]
func (s *Server) UpdateNumbering(c *gin.Context) {
	var req studiodomain.NumberingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studioSvc.UpdateNumbering(c.Request.Context(), strings.TrimSpace(c.Param("kind")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

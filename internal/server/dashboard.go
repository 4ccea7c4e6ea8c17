package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) DashboardOverview(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	overview, err := s.dashboardsvc.Overview(c.Request.Context(), businessID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

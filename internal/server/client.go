package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
)

func (s *Server) ListClients(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var filter clientdomain.ListClientsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clients, pageInfo, err := s.clientsvc.List(c.Request.Context(), businessID, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients":   clients,
		"page_info": pageInfo,
	})
}

func (s *Server) CreateClient(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req clientdomain.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.clientsvc.Create(c.Request.Context(), businessID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) GetClient(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	found, err := s.clientsvc.Get(c.Request.Context(), businessID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) UpdateClient(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req clientdomain.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.clientsvc.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteClient(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.clientsvc.Delete(c.Request.Context(), businessID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

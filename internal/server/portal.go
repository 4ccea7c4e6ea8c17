package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type GrantPortalAccessRequest struct {
	ClientID snowflake.ID `json:"client_id,string"`
	Email    string       `json:"email"`
}

func (s *Server) ListPortalGrants(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	grants, err := s.portalsvc.ListGrants(c.Request.Context(), businessID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grants": grants})
}

func (s *Server) GrantPortalAccess(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req GrantPortalAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	grant, err := s.portalsvc.Grant(c.Request.Context(), businessID, req.ClientID, req.Email)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, grant)
}

func (s *Server) RevokePortalAccess(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	grantID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.portalsvc.Revoke(c.Request.Context(), businessID, grantID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

func (s *Server) PortalListInvoices(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	invoices, err := s.portalsvc.ListInvoices(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (s *Server) PortalMarkPaid(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	invoiceID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Method and comment are optional; an empty body is fine.
	var req struct {
		Method  string `json:"payment_method"`
		Comment string `json:"client_comment"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	payment, err := s.portalsvc.MarkPaid(c.Request.Context(), email, invoiceID, req.Method, req.Comment)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (s *Server) PortalListPayments(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	invoiceID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	payments, err := s.portalsvc.ListPayments(c.Request.Context(), email, invoiceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

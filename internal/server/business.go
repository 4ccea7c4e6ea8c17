package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
)

type OnboardBusinessRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	DefaultCurrency     string `json:"default_currency"`
	DefaultPaymentTerms string `json:"default_payment_terms"`
	InvoicePrefix       string `json:"invoice_prefix"`
}

type SwitchBusinessRequest struct {
	BusinessID snowflake.ID `json:"business_id,string"`
}

func (s *Server) ListBusinesses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	sess := s.businessSessions.Get(userID)
	if err := sess.Resolve(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"businesses": sess.Businesses(),
		"current":    sess.Current(),
	})
}

func (s *Server) OnboardBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req OnboardBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	business, err := s.businesssvc.Onboard(c.Request.Context(), userID, businessdomain.OnboardRequest{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		DefaultCurrency:     req.DefaultCurrency,
		DefaultPaymentTerms: req.DefaultPaymentTerms,
		InvoicePrefix:       req.InvoicePrefix,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Pick up the new business and select it.
	sess := s.businessSessions.Get(userID)
	if err := sess.Resolve(c.Request.Context()); err == nil {
		sess.Switch(business.ID)
	}

	c.JSON(http.StatusCreated, business)
}

func (s *Server) CurrentBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	sess := s.businessSessions.Get(userID)
	current := sess.Current()
	if current == nil {
		if err := sess.Resolve(c.Request.Context()); err != nil {
			AbortWithError(c, err)
			return
		}
		current = sess.Current()
	}
	if current == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": current,
		"loading":  sess.Loading(),
	})
}

func (s *Server) SwitchBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req SwitchBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess := s.businessSessions.Get(userID)
	if len(sess.Businesses()) == 0 {
		if err := sess.Resolve(c.Request.Context()); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	// An unknown id leaves the selection alone rather than failing the
	// request.
	switched := sess.Switch(req.BusinessID)
	c.JSON(http.StatusOK, gin.H{
		"switched": switched,
		"current":  sess.Current(),
	})
}

func (s *Server) UpdateCurrentBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req businessdomain.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess := s.businessSessions.Get(userID)
	if err := sess.Update(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	current := sess.Current()
	if current == nil {
		// No selection: the update was a no-op.
		c.JSON(http.StatusOK, gin.H{"business": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"business": current})
}

func (s *Server) GetBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	member, err := s.businesssvc.IsMember(c.Request.Context(), id, userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !member {
		AbortWithError(c, ErrForbidden)
		return
	}

	business, err := s.businesssvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

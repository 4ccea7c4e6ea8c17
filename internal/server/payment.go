package server

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	paymentdomain "github.com/smallbiznis/invoys/internal/payment/domain"
)

func (s *Server) RecordPayment(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	invoiceID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req paymentdomain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.InvoiceID = invoiceID

	payment, err := s.paymentsvc.Record(c.Request.Context(), businessID, req)
	if err != nil {
		// The payment may have persisted even though the invoice could not
		// be marked paid; report both facts.
		if errors.Is(err, paymentdomain.ErrStatusWriteFailed) && payment != nil {
			c.JSON(http.StatusOK, gin.H{
				"payment": payment,
				"warning": "payment recorded but marking the invoice paid failed",
			})
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (s *Server) ListInvoicePayments(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	invoiceID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	payments, err := s.paymentsvc.ListByInvoice(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

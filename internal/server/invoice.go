package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
)

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) ListInvoices(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var filter invoicedomain.ListInvoicesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoices, pageInfo, err := s.invoicesvc.List(c.Request.Context(), businessID, filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":  invoices,
		"page_info": pageInfo,
	})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.invoicesvc.Create(c.Request.Context(), businessID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) GetInvoice(c *gin.Context) {
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

	found, err := s.invoicesvc.Get(c.Request.Context(), businessID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
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

	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.invoicesvc.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
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

	if err := s.invoicesvc.Delete(c.Request.Context(), businessID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
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

	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.invoicesvc.UpdateStatus(c.Request.Context(), businessID, id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
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

	invoice, err := s.invoicesvc.Get(c.Request.Context(), businessID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	business, err := s.businesssvc.GetByID(c.Request.Context(), businessID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	billTo, err := s.clientsvc.Get(c.Request.Context(), businessID, invoice.ClientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfRenderer.RenderInvoice(c.Request.Context(), *business, *billTo, *invoice)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoice.InvoiceNumber))
	if _, err := io.Copy(c.Writer, doc); err != nil {
		s.log.Warn("streaming invoice pdf failed")
	}
}

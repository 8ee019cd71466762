package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallbiznis/lingora/internal/order/domain"
	seqdomain "github.com/smallbiznis/lingora/internal/sequence/domain"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
)

// PeekSequence previews the next number of a scope without allocating it.
// kind=order expects scope_id to be the book id; kind=invoice expects the
// provider source; kind=subcontract ignores scope_id.
func (s *Server) PeekSequence(c *gin.Context) {
	kind := strings.TrimSpace(c.Query("kind"))
	scopeID := strings.TrimSpace(c.Query("scope_id"))

	switch kind {
	case seqdomain.KindOrder:
		bookID, err := parseOptionalID(&scopeID)
		if err != nil || bookID == nil {
			AbortWithError(c, newValidationError("scope_id", "invalid_scope_id", "invalid identifier"))
			return
		}
		number, err := s.orderSvc.PeekNumber(c.Request.Context(), *bookID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"number": number}})
	case seqdomain.KindInvoice:
		source := scopeID
		if source == "" {
			source = orderdomain.ProviderInternal
		}
		if source != orderdomain.ProviderInternal && source != orderdomain.ProviderExternal {
			AbortWithError(c, orderdomain.ErrInvalidProvider)
			return
		}
		number, err := s.sequenceSvc.Peek(c.Request.Context(), seqdomain.KindInvoice, seqdomain.InvoiceScope(source), s.invoiceTemplate(c))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"number": number}})
	case seqdomain.KindSubcontract:
		number, err := s.subcontractSvc.PeekNumber(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"number": number}})
	default:
		AbortWithError(c, seqdomain.ErrUnknownKind)
	}
}

func (s *Server) invoiceTemplate(c *gin.Context) string {
	value, err := s.settingsSvc.Get(c.Request.Context(), settingsdomain.KeyInvoiceNumberFormat)
	if err == nil && strings.TrimSpace(value) != "" {
		return value
	}
	return s.pricingHolder.Current().InvoiceNumberFormat
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
)

func (s *Server) ListVatRules(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := s.vatSvc.ListByService(c.Request.Context(), serviceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type upsertVatRuleRequest struct {
	Segment     vatdomain.Segment `json:"client_segment"`
	CountryCode *string           `json:"country_code"`
	ValueType   string            `json:"value_type"`
	RateValue   *float64          `json:"rate_value"`
	CodeValue   *string           `json:"code_value"`
}

func (s *Server) UpsertVatRule(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req upsertVatRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vatSvc.Upsert(c.Request.Context(), vatdomain.UpsertRequest{
		ServiceID:   serviceID,
		Segment:     req.Segment,
		CountryCode: req.CountryCode,
		ValueType:   req.ValueType,
		RateValue:   req.RateValue,
		CodeValue:   req.CodeValue,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteVatRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.vatSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type classifyRequest struct {
	ClientID string `json:"client_id"`
}

func (s *Server) ClassifyClient(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	clientID, err := parseOptionalID(&req.ClientID)
	if err != nil || clientID == nil {
		AbortWithError(c, newValidationError("client_id", "invalid_client_id", "invalid identifier"))
		return
	}

	segment, err := s.vatSvc.Classify(c.Request.Context(), *clientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"segment": segment}})
}

type previewVatRequest struct {
	ClientID  string `json:"client_id"`
	ServiceID string `json:"service_id"`
}

func (s *Server) PreviewVat(c *gin.Context) {
	var req previewVatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	clientID, err := parseOptionalID(&req.ClientID)
	if err != nil || clientID == nil {
		AbortWithError(c, newValidationError("client_id", "invalid_client_id", "invalid identifier"))
		return
	}
	serviceID, err := parseOptionalID(&req.ServiceID)
	if err != nil || serviceID == nil {
		AbortWithError(c, newValidationError("service_id", "invalid_service_id", "invalid identifier"))
		return
	}

	outcome, err := s.vatSvc.Effective(c.Request.Context(), *clientID, *serviceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if code, ok := outcome.Code(); ok {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"code": code, "rate": 0}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"rate": outcome.Rate()}})
}

func (s *Server) ListVatCodes(c *gin.Context) {
	resp, err := s.vatSvc.CodeDefinitions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

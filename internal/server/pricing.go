package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
	pricingdomain "github.com/smallbiznis/lingora/internal/pricing/domain"
)

type resolveRateRequest struct {
	ClientID   *string                   `json:"client_id"`
	UnitID     string                    `json:"unit_id"`
	Candidates []pricingdomain.Candidate `json:"candidates"`
	Currency   string                    `json:"currency"`
}

func (s *Server) ResolveRate(c *gin.Context) {
	var req resolveRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	unitID, err := parseOptionalID(&req.UnitID)
	if err != nil || unitID == nil {
		AbortWithError(c, newValidationError("unit_id", "invalid_unit_id", "invalid identifier"))
		return
	}
	clientID, err := parseOptionalID(req.ClientID)
	if err != nil {
		AbortWithError(c, newValidationError("client_id", "invalid_client_id", "invalid identifier"))
		return
	}

	resp, err := s.pricingSvc.Resolve(c.Request.Context(), pricingdomain.ResolveRequest{
		ClientID:   clientID,
		UnitID:     *unitID,
		Candidates: req.Candidates,
		Currency:   strings.TrimSpace(req.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type simpleRateRequest struct {
	UnitID   string  `json:"unit_id"`
	Rate     float64 `json:"rate"`
	Currency string  `json:"currency"`
}

func (s *Server) SetSimpleRate(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req simpleRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	unitID, err := parseOptionalID(&req.UnitID)
	if err != nil || unitID == nil {
		AbortWithError(c, newValidationError("unit_id", "invalid_unit_id", "invalid identifier"))
		return
	}

	resp, err := s.pricingSvc.SetSimpleRate(c.Request.Context(), pricingdomain.SimpleRateInput{
		ClientID: clientID,
		UnitID:   *unitID,
		Rate:     req.Rate,
		Currency: req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSimpleRates(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := s.pricingSvc.ListSimpleRates(c.Request.Context(), clientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSimpleRate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.pricingSvc.DeleteSimpleRate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type clientRateRequest struct {
	UnitID   string               `json:"unit_id"`
	Slots    []pricingdomain.Slot `json:"slots"`
	Rate     float64              `json:"rate"`
	Currency string               `json:"currency"`
}

func (s *Server) CreateClientRate(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req clientRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	unitID, err := parseOptionalID(&req.UnitID)
	if err != nil || unitID == nil {
		AbortWithError(c, newValidationError("unit_id", "invalid_unit_id", "invalid identifier"))
		return
	}

	resp, err := s.pricingSvc.CreateClientRate(c.Request.Context(), pricingdomain.ClientRateInput{
		ClientID: clientID,
		UnitID:   *unitID,
		Slots:    req.Slots,
		Rate:     req.Rate,
		Currency: req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListClientRates(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := s.pricingSvc.ListClientRates(c.Request.Context(), clientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteClientRate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.pricingSvc.DeleteClientRate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type globalRateRequest struct {
	UnitID   string               `json:"unit_id"`
	Slots    []pricingdomain.Slot `json:"slots"`
	Rate     float64              `json:"rate"`
	Currency string               `json:"currency"`
}

func (s *Server) CreateGlobalRate(c *gin.Context) {
	var req globalRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	unitID, err := parseOptionalID(&req.UnitID)
	if err != nil || unitID == nil {
		AbortWithError(c, newValidationError("unit_id", "invalid_unit_id", "invalid identifier"))
		return
	}

	resp, err := s.pricingSvc.CreateGlobalRate(c.Request.Context(), pricingdomain.GlobalRateInput{
		UnitID:   *unitID,
		Slots:    req.Slots,
		Rate:     req.Rate,
		Currency: req.Currency,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListGlobalRates(c *gin.Context) {
	resp, err := s.pricingSvc.ListGlobalRates(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteGlobalRate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.pricingSvc.DeleteGlobalRate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type contractorRateRequest struct {
	UnitID       string  `json:"unit_id"`
	LanguagePair *string `json:"language_pair"`
	Rate         float64 `json:"rate"`
}

func (s *Server) UpsertContractorRate(c *gin.Context) {
	contractorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req contractorRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	unitID, err := parseOptionalID(&req.UnitID)
	if err != nil || unitID == nil {
		AbortWithError(c, newValidationError("unit_id", "invalid_unit_id", "invalid identifier"))
		return
	}

	rate := contractordomain.ContractorUnitRate{
		ID:           s.genID.Generate(),
		ContractorID: contractorID,
		UnitID:       *unitID,
		LanguagePair: req.LanguagePair,
		Rate:         req.Rate,
	}
	if err := s.contractorRepo.UpsertRate(c.Request.Context(), s.db, &rate); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rate})
}

func (s *Server) ListContractorRates(c *gin.Context) {
	contractorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := s.contractorRepo.ListRates(c.Request.Context(), s.db, contractorID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) LookupContractorRate(c *gin.Context) {
	contractorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	unitRaw := c.Query("unit_id")
	unitID, err := parseOptionalID(&unitRaw)
	if err != nil || unitID == nil {
		AbortWithError(c, newValidationError("unit_id", "invalid_unit_id", "invalid identifier"))
		return
	}
	var pair *string
	if v := strings.TrimSpace(c.Query("language_pair")); v != "" {
		pair = &v
	}

	rate, err := s.pricingSvc.LookupContractorRate(c.Request.Context(), contractorID, *unitID, pair)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if rate == nil {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"rate": rate}})
}

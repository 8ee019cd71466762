package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
)

type clientRequest struct {
	Name               string  `json:"name"`
	ShortName          string  `json:"short_name"`
	Street             *string `json:"street"`
	PostalCode         *string `json:"postal_code"`
	City               *string `json:"city"`
	CountryCode        *string `json:"country_code"`
	TaxID              *string `json:"tax_id"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	ContactPerson      *string `json:"contact_person"`
	Notes              *string `json:"notes"`
	Kind               string  `json:"client_kind"`
	VatEU              int     `json:"vat_eu"`
	DefaultPaymentDays *int    `json:"default_payment_days"`
}

func (s *Server) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		AbortWithError(c, newValidationError("name", "invalid_name", "name is required"))
		return
	}

	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		kind = clientdomain.KindCompany
	}
	shortName := strings.TrimSpace(req.ShortName)
	if shortName == "" {
		shortName = strings.TrimSpace(req.Name)
	}
	paymentDays := 14
	if req.DefaultPaymentDays != nil && *req.DefaultPaymentDays > 0 {
		paymentDays = *req.DefaultPaymentDays
	}

	client := clientdomain.Client{
		ID:                 s.genID.Generate(),
		Name:               strings.TrimSpace(req.Name),
		ShortName:          shortName,
		Street:             req.Street,
		PostalCode:         req.PostalCode,
		City:               req.City,
		CountryCode:        req.CountryCode,
		TaxID:              req.TaxID,
		Email:              req.Email,
		Phone:              req.Phone,
		ContactPerson:      req.ContactPerson,
		Notes:              req.Notes,
		Kind:               kind,
		VatEU:              req.VatEU,
		DefaultPaymentDays: paymentDays,
	}
	if err := s.clientRepo.Insert(c.Request.Context(), s.db, &client); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": client})
}

func (s *Server) ListClients(c *gin.Context) {
	resp, err := s.clientRepo.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetClientByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := s.clientRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	client, err := s.clientRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		client.Name = name
	}
	if shortName := strings.TrimSpace(req.ShortName); shortName != "" {
		client.ShortName = shortName
	}
	if kind := strings.TrimSpace(req.Kind); kind != "" {
		client.Kind = kind
	}
	client.Street = req.Street
	client.PostalCode = req.PostalCode
	client.City = req.City
	client.CountryCode = req.CountryCode
	client.TaxID = req.TaxID
	client.Email = req.Email
	client.Phone = req.Phone
	client.ContactPerson = req.ContactPerson
	client.Notes = req.Notes
	client.VatEU = req.VatEU
	if req.DefaultPaymentDays != nil && *req.DefaultPaymentDays > 0 {
		client.DefaultPaymentDays = *req.DefaultPaymentDays
	}

	if err := s.clientRepo.Update(c.Request.Context(), s.db, client); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": client})
}

func (s *Server) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.clientRepo.Delete(c.Request.Context(), s.db, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	unitdomain "github.com/smallbiznis/lingora/internal/unit/domain"
)

func (s *Server) ListUnits(c *gin.Context) {
	resp, err := s.unitRepo.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type unitRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateUnit(c *gin.Context) {
	var req unitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		AbortWithError(c, newValidationError("name", "invalid_name", "name is required"))
		return
	}

	unit := unitdomain.Unit{
		ID:   s.genID.Generate(),
		Name: strings.TrimSpace(req.Name),
	}
	if err := s.unitRepo.Insert(c.Request.Context(), s.db, &unit); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": unit})
}

func (s *Server) DeleteUnit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.unitRepo.Delete(c.Request.Context(), s.db, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListServices(c *gin.Context) {
	resp, err := s.catalogRepo.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type serviceRequest struct {
	Name    string   `json:"name"`
	VatRate *float64 `json:"vat_rate"`
}

func (s *Server) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		AbortWithError(c, newValidationError("name", "invalid_name", "name is required"))
		return
	}

	service := catalogdomain.Service{
		ID:      s.genID.Generate(),
		Name:    strings.TrimSpace(req.Name),
		VatRate: 23,
	}
	if req.VatRate != nil {
		service.VatRate = *req.VatRate
	}
	if err := s.catalogRepo.Insert(c.Request.Context(), s.db, &service); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": service})
}

func (s *Server) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	service, err := s.catalogRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		service.Name = name
	}
	if req.VatRate != nil {
		service.VatRate = *req.VatRate
	}

	if err := s.catalogRepo.Update(c.Request.Context(), s.db, service); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": service})
}

func (s *Server) DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.catalogRepo.Delete(c.Request.Context(), s.db, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

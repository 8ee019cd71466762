package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
)

type contractorRequest struct {
	Name          string  `json:"name"`
	ShortName     string  `json:"short_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
}

func (s *Server) CreateContractor(c *gin.Context) {
	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		AbortWithError(c, newValidationError("name", "invalid_name", "name is required"))
		return
	}

	shortName := strings.TrimSpace(req.ShortName)
	if shortName == "" {
		shortName = strings.TrimSpace(req.Name)
	}
	contractor := contractordomain.Contractor{
		ID:            s.genID.Generate(),
		Name:          strings.TrimSpace(req.Name),
		ShortName:     shortName,
		Email:         req.Email,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
		Notes:         req.Notes,
	}
	if err := s.contractorRepo.Insert(c.Request.Context(), s.db, &contractor); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contractor})
}

func (s *Server) ListContractors(c *gin.Context) {
	resp, err := s.contractorRepo.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetContractorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := s.contractorRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateContractor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contractor, err := s.contractorRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		contractor.Name = name
	}
	if shortName := strings.TrimSpace(req.ShortName); shortName != "" {
		contractor.ShortName = shortName
	}
	contractor.Email = req.Email
	contractor.Phone = req.Phone
	contractor.ContactPerson = req.ContactPerson
	contractor.Notes = req.Notes

	if err := s.contractorRepo.Update(c.Request.Context(), s.db, contractor); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": contractor})
}

func (s *Server) DeleteContractor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.contractorRepo.Delete(c.Request.Context(), s.db, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/checkin-backend-go/internal/service"
	"github.com/jengzang/checkin-backend-go/pkg/response"
)

// CompanyHandler handles HTTP requests for company locations
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// GetLocations handles GET /api/company/locations
func (h *CompanyHandler) GetLocations(c *gin.Context) {
	response.Success(c, h.companyService.Locations())
}

// GetNearby handles GET /api/company/locations/nearby?latitude=&longitude=
func (h *CompanyHandler) GetNearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid latitude parameter")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid longitude parameter")
		return
	}

	response.Success(c, h.companyService.Nearby(lat, lng))
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
)

type prismSplitRequest struct {
	DestinationID string  `json:"destinationId"`
	Percentage    float64 `json:"percentage"`
	Description   string  `json:"description"`
}

type prismRequest struct {
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description string              `json:"description"`
	Active      *bool               `json:"active"`
	Splits      []prismSplitRequest `json:"splits"`
}

// normalizeSplits converts 0-100 percentage input to the fractional form
// the engine validates. Values already in [0,1] pass through untouched.
func normalizeSplits(splits []prismSplitRequest) []prismdomain.SplitInput {
	inputs := make([]prismdomain.SplitInput, 0, len(splits))
	for _, split := range splits {
		percentage := split.Percentage
		if percentage > 1 {
			percentage = percentage / 100
			if percentage > 1 {
				percentage = 1
			}
		}
		inputs = append(inputs, prismdomain.SplitInput{
			DestinationID: split.DestinationID,
			Percentage:    percentage,
			Description:   split.Description,
		})
	}
	return inputs
}

func (s *Server) ListPrisms(c *gin.Context) {
	prisms, err := s.prismSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prisms": capRows(prisms, s.pageSize(c))})
}

func (s *Server) CreatePrism(c *gin.Context) {
	var req prismRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	prism, err := s.prismSvc.Create(c.Request.Context(), prismdomain.CreatePrismRequest{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Splits:      normalizeSplits(req.Splits),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prism)
}

func (s *Server) GetPrism(c *gin.Context) {
	prism, err := s.prismSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prism)
}

func (s *Server) ReplacePrism(c *gin.Context) {
	var req prismRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	prism, err := s.prismSvc.Replace(c.Request.Context(), prismdomain.ReplacePrismRequest{
		PrismID:     c.Param("id"),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Active:      req.Active,
		Splits:      normalizeSplits(req.Splits),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prism)
}

func (s *Server) DeletePrism(c *gin.Context) {
	if err := s.prismSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	destinationdomain "github.com/prismpay/prism/internal/destination/domain"
)

type addDestinationRequest struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

func (s *Server) ListContactDestinations(c *gin.Context) {
	destinations, err := s.destinationSvc.ListForContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentDestinations": capRows(destinations, s.pageSize(c))})
}

func (s *Server) AddContactDestination(c *gin.Context) {
	var req addDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	destination, err := s.destinationSvc.Add(c.Request.Context(), destinationdomain.AddDestinationRequest{
		ContactID: c.Param("id"),
		Value:     req.Value,
		Type:      req.Type,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, destination)
}

func (s *Server) RemoveContactDestination(c *gin.Context) {
	destinationID := strings.TrimSpace(c.Query("destinationId"))
	if destinationID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.destinationSvc.Remove(c.Request.Context(), destinationdomain.RemoveDestinationRequest{
		ContactID:     c.Param("id"),
		DestinationID: destinationID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListDestinations(c *gin.Context) {
	destinations, err := s.destinationSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentDestinations": capRows(destinations, s.pageSize(c))})
}

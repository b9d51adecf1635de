package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
)

type contactRequest struct {
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	ScreenName string         `json:"screenName"`
	Email      string         `json:"email"`
	Pubkey     string         `json:"pubkey"`
	Metadata   map[string]any `json:"metadata"`
}

func (s *Server) ListContacts(c *gin.Context) {
	contacts, err := s.contactSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": capRows(contacts, s.pageSize(c))})
}

func (s *Server) CreateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	contact, err := s.contactSvc.Create(c.Request.Context(), contactdomain.CreateContactRequest{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		ScreenName: strings.TrimSpace(req.ScreenName),
		Email:      strings.TrimSpace(req.Email),
		Pubkey:     strings.TrimSpace(req.Pubkey),
		Metadata:   req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (s *Server) GetContact(c *gin.Context) {
	contact, err := s.contactSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) UpdateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	contact, err := s.contactSvc.Update(c.Request.Context(), contactdomain.UpdateContactRequest{
		ID:         c.Param("id"),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		ScreenName: strings.TrimSpace(req.ScreenName),
		Email:      strings.TrimSpace(req.Email),
		Pubkey:     strings.TrimSpace(req.Pubkey),
		Metadata:   req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ContactPrismCount(c *gin.Context) {
	count, err := s.overviewSvc.PrismCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) ContactSharedPrisms(c *gin.Context) {
	result, err := s.overviewSvc.SharedPrisms(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) PrismMemberCount(c *gin.Context) {
	count, err := s.overviewSvc.MemberCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) PrismPrimaryAccount(c *gin.Context) {
	contact, err := s.overviewSvc.PrimaryAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if contact == nil {
		c.JSON(http.StatusOK, gin.H{"contact": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

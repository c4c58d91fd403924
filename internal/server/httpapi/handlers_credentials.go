package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkadlec/passvault/internal/server/services"
)

type createCredentialRequest struct {
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
	Note     string `json:"note"`
}

// updateCredentialRequest uses pointer fields so absent keys can be told
// apart from empty strings; only present fields are touched.
type updateCredentialRequest struct {
	Site     *string `json:"site"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type credentialSummaryResponse struct {
	ID       int64  `json:"id"`
	Site     string `json:"site"`
	Username string `json:"username"`
}

// credentialID parses the :id path parameter. A malformed id behaves like
// an absent record rather than a syntax error.
func credentialID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusNotFound, "not found", "the requested record does not exist")
		return 0, false
	}
	return id, true
}

func (s *Server) listCredentials(c *gin.Context) {
	summaries, err := s.credentials.List(c.Request.Context(), authedUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]credentialSummaryResponse, 0, len(summaries))
	for _, cs := range summaries {
		out = append(out, credentialSummaryResponse{
			ID:       cs.ID,
			Site:     cs.Site,
			Username: cs.SiteUsername,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) createCredential(c *gin.Context) {
	var req createCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid input", "request body must be valid JSON")
		return
	}

	cred, err := s.credentials.Create(c.Request.Context(), authedUserID(c), req.Site, req.Username, req.Password, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "password saved",
		"id":      cred.ID,
	})
}

func (s *Server) revealCredential(c *gin.Context) {
	id, ok := credentialID(c)
	if !ok {
		return
	}

	revealed, err := s.credentials.Reveal(c.Request.Context(), authedUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"id":       revealed.ID,
		"site":     revealed.Site,
		"username": revealed.SiteUsername,
		"password": revealed.Secret,
	})
}

func (s *Server) updateCredential(c *gin.Context) {
	id, ok := credentialID(c)
	if !ok {
		return
	}

	var req updateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid input", "request body must be valid JSON")
		return
	}

	upd := services.CredentialUpdate{
		Site:         req.Site,
		SiteUsername: req.Username,
		Secret:       req.Password,
	}

	if err := s.credentials.Update(c.Request.Context(), authedUserID(c), id, upd); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "password updated",
	})
}

func (s *Server) deleteCredential(c *gin.Context) {
	id, ok := credentialID(c)
	if !ok {
		return
	}

	if err := s.credentials.Delete(c.Request.Context(), authedUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "password deleted",
	})
}

package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/service"
	"github.com/resumebuilder/server/internal/token"
)

// AuthHandler serves registration, login, token verification and profile.
type AuthHandler struct {
	auth   service.AuthService
	tokens *token.Manager
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(auth service.AuthService, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens}
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResp struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Register creates an account and returns a fresh session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	a, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	signed, _, err := h.tokens.Issue(a.ID, a.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   signed,
		"user":    identityResp{ID: a.ID.String(), Email: a.Email},
	})
}

// Login authenticates and returns a fresh session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	a, err := h.auth.LoginWithIP(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	signed, _, err := h.tokens.Issue(a.ID, a.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   signed,
		"user":    identityResp{ID: a.ID.String(), Email: a.Email},
	})
}

// Verify reports the identity behind a valid bearer token.
func (h *AuthHandler) Verify(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid",
		"user":    identityResp{ID: claims.UserID.String(), Email: claims.Email},
	})
}

// GetProfile returns the caller's profile merged with their email.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims, _ := claimsFrom(c)
	view, err := h.auth.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfile merges the supplied profile fields over the stored ones.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims, _ := claimsFrom(c)
	var upd model.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	view, err := h.auth.UpdateProfile(c.Request.Context(), claims.UserID, upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

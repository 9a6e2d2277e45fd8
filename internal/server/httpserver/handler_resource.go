package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/resumebuilder/server/internal/errs"
	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/service"
)

// ResourceHandler serves the shared CRUD surface of one owned record kind.
// The same handler backs projects, education, experiences and resumes.
type ResourceHandler[T model.Payload] struct {
	svc  *service.Resources[T]
	kind string // singular, used in delete confirmations
}

// NewResourceHandler constructs a handler for one record kind.
func NewResourceHandler[T model.Payload](svc *service.Resources[T], kind string) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc, kind: kind}
}

// List returns the caller's records, newest first.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	claims, _ := claimsFrom(c)
	recs, err := h.svc.List(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Create persists a new record owned by the caller.
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	claims, _ := claimsFrom(c)
	var data T
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), claims.UserID, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Update applies a partial patch to an owned record.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	claims, _ := claimsFrom(c)
	id, ok := recordID(c)
	if !ok {
		return
	}
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	rec, err := h.svc.Update(c.Request.Context(), id, claims.UserID, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Delete removes an owned record.
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	claims, _ := claimsFrom(c)
	id, ok := recordID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.kind + " deleted"})
}

// recordID parses the :id path parameter. A non-UUID id cannot name any
// record, so it reads as not found.
func recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil || id == uuid.Nil {
		writeError(c, errs.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

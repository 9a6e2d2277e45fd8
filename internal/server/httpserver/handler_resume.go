package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/render"
	"github.com/resumebuilder/server/internal/service"
)

// ResumeHandler extends the shared CRUD surface with assembly and export.
type ResumeHandler struct {
	*ResourceHandler[model.Resume]
	assembly *service.Assembly
	auth     service.AuthService
}

// NewResumeHandler constructs the resume handler.
func NewResumeHandler(rh *ResourceHandler[model.Resume], assembly *service.Assembly, auth service.AuthService) *ResumeHandler {
	return &ResumeHandler{ResourceHandler: rh, assembly: assembly, auth: auth}
}

type assembleReq struct {
	Title         string   `json:"title"`
	JobPosting    string   `json:"jobPosting"`
	Skills        string   `json:"skills"`
	ProjectIDs    []string `json:"projectIds"`
	EducationIDs  []string `json:"educationIds"`
	ExperienceIDs []string `json:"experienceIds"`
}

// Assemble snapshots the selected building blocks into a new saved resume.
func (h *ResumeHandler) Assemble(c *gin.Context) {
	claims, _ := claimsFrom(c)
	var req assembleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	sel := service.Selection{Title: req.Title, JobPosting: req.JobPosting, Skills: req.Skills}
	var ok bool
	if sel.ProjectIDs, ok = parseIDs(c, req.ProjectIDs); !ok {
		return
	}
	if sel.EducationIDs, ok = parseIDs(c, req.EducationIDs); !ok {
		return
	}
	if sel.ExperienceIDs, ok = parseIDs(c, req.ExperienceIDs); !ok {
		return
	}
	rec, err := h.assembly.Assemble(c.Request.Context(), claims.UserID, sel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Get returns a single saved resume.
func (h *ResumeHandler) Get(c *gin.Context) {
	claims, _ := claimsFrom(c)
	id, ok := recordID(c)
	if !ok {
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Export renders a saved resume as html (default), markdown or text.
func (h *ResumeHandler) Export(c *gin.Context) {
	claims, _ := claimsFrom(c)
	id, ok := recordID(c)
	if !ok {
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	profile, err := h.auth.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	switch c.DefaultQuery("format", "html") {
	case "html":
		doc, err := render.HTML(rec.Data, profile)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(render.Markdown(rec.Data, profile)))
	case "text":
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(render.Text(rec.Data, profile)))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
	}
}

// parseIDs converts a list of id strings, rejecting the request on a bad one.
func parseIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.FromString(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: " + s})
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/token"
)

// Handlers bundles the route handlers wired by NewRouter.
type Handlers struct {
	Auth        *AuthHandler
	Projects    *ResourceHandler[model.Project]
	Education   *ResourceHandler[model.Education]
	Experiences *ResourceHandler[model.Experience]
	Resumes     *ResumeHandler
}

// NewRouter wires routes and middleware.
func NewRouter(log *zap.Logger, tokens *token.Manager, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(Recover(log))
	r.Use(RequestLogger(log))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Resume Builder API is running"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/verify", RequireAuth(tokens), h.Auth.Verify)
	}

	secured := api.Group("", RequireAuth(tokens))
	{
		secured.GET("/profile", h.Auth.GetProfile)
		secured.PUT("/profile", h.Auth.UpdateProfile)

		mountResource(secured.Group("/projects"), h.Projects)
		mountResource(secured.Group("/education"), h.Education)
		mountResource(secured.Group("/experiences"), h.Experiences)

		resumes := secured.Group("/resumes")
		mountResource(resumes, h.Resumes.ResourceHandler)
		resumes.POST("/assemble", h.Resumes.Assemble)
		resumes.GET("/:id", h.Resumes.Get)
		resumes.GET("/:id/export", h.Resumes.Export)
	}

	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API route not found: " + path})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return r
}

// mountResource attaches the shared CRUD routes for one record kind.
func mountResource[T model.Payload](g *gin.RouterGroup, h *ResourceHandler[T]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

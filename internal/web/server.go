// Package web is the HTTP surface of the portfolio: full pages and HTMX
// fragments for browsers, plus a small JSON API for the chat and contact
// controllers.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AdityaD28/portfolio/internal/admin"
	"github.com/AdityaD28/portfolio/internal/content"
	"github.com/AdityaD28/portfolio/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// EventRecorder counts interactions for the admin dashboard.
type EventRecorder interface {
	RecordEvent(ctx context.Context, kind, outcome string) error
}

type Deps struct {
	Portfolio *content.Portfolio
	Sessions  *session.Store
	Events    EventRecorder // optional
	Admin     *admin.Admin  // optional
	StaticDir string
	ImagesDir string
	Logger    zerolog.Logger
}

type server struct {
	portfolio *content.Portfolio
	sessions  *session.Store
	events    EventRecorder
}

var funcs = template.FuncMap{
	"levelText": content.LevelText,
	"join":      strings.Join,
	"lower":     strings.ToLower,
	"clock":     func(t time.Time) string { return t.Format("3:04 PM") },
}

// Templates parses the embedded page and fragment templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

func NewRouter(d Deps) *gin.Engine {
	if d.StaticDir == "" {
		d.StaticDir = "./static"
	}
	if d.ImagesDir == "" {
		d.ImagesDir = "./images"
	}

	r := gin.New()
	r.Use(requestLogger(d.Logger), recovery(d.Logger))
	r.SetHTMLTemplate(Templates())

	if d.Admin != nil {
		r.Use(d.Admin.TrackingMiddleware())
		d.Admin.Register(r)
	}

	r.Static("/images", d.ImagesDir)
	r.Static("/static", d.StaticDir)

	s := &server{portfolio: d.Portfolio, sessions: d.Sessions, events: d.Events}

	r.GET("/", s.index)
	r.GET("/resume", func(c *gin.Context) {
		c.Redirect(http.StatusFound, s.portfolio.Assets.Resume)
	})
	r.POST("/theme", s.toggleTheme)

	r.GET("/projects", s.projects)
	r.GET("/projects/:id", s.projectDetail)
	r.POST("/modal/close", s.closeModal)
	r.GET("/skills", s.skills)
	r.GET("/certifications", s.certifications)

	r.POST("/chat/open", s.chatOpen)
	r.POST("/chat/close", s.chatClose)
	r.POST("/chat/send", s.chatSend)
	r.POST("/chat/reply", s.chatReply)
	r.POST("/api/session", s.createSession)
	r.GET("/api/chat", s.apiChatTranscript)
	r.POST("/api/chat", s.apiChatSend)

	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.contactSubmit)
	r.PUT("/contact/field", s.contactField)
	r.POST("/api/contact", s.apiContactSubmit)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(l zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func recovery(l zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// record counts an interaction without failing the request.
func (s *server) record(ctx context.Context, kind, outcome string) {
	if s.events == nil {
		return
	}
	if err := s.events.RecordEvent(ctx, kind, outcome); err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("error recording event")
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorResponse{
		Error:   http.StatusText(code),
		Code:    code,
		Message: message,
	})
}

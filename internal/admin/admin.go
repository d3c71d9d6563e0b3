// Package admin serves the operator dashboard and the privacy-conscious
// visitor tracking that feeds it.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/AdityaD28/portfolio/internal/store"
)

const (
	cookieName = "admin_token"

	defaultUsername = "admin"
	defaultPassword = "admin123"
)

// Stats is what the dashboard needs from the analytics store.
type Stats interface {
	RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error
	Stats(ctx context.Context) (*store.Stats, error)
	RecentVisitors(ctx context.Context, limit int) ([]store.Visitor, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

type Config struct {
	Username  string
	Password  string
	Retention time.Duration
	Dev       bool
}

type Admin struct {
	stats     Stats
	username  string
	password  string
	retention time.Duration
	token     string
	salt      string

	// track runs visitor inserts; a goroutine unless replaced in tests
	track func(func())
}

func New(stats Stats, cfg Config) (*Admin, error) {
	token, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	a := &Admin{
		stats:     stats,
		username:  cfg.Username,
		password:  cfg.Password,
		retention: cfg.Retention,
		token:     token,
		salt:      salt,
		track:     func(f func()) { go f() },
	}
	if a.username == "" {
		a.username = defaultUsername
		log.Warn().Msg("using default admin username, set ADMIN_USERNAME")
	}
	if a.password == "" {
		a.password = defaultPassword
		log.Warn().Msg("using default admin password, set ADMIN_PASSWORD")
	}

	log.Info().Msg("admin access available at /admin/login")
	if cfg.Dev {
		log.Debug().Str("token", a.token).Msg("admin token (dev only)")
	}
	return a, nil
}

func randomHex() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashIP is stable per address for the lifetime of the process.
func (a *Admin) HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(h[:])[:16]
}

func (a *Admin) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

var untracked = []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/metrics", "/healthz"}

// TrackingMiddleware records page views with a hashed address. Requests
// carrying DNT: 1 are never recorded.
func (a *Admin) TrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untracked {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed, ua := a.HashIP(c.ClientIP()), c.GetHeader("User-Agent")
		a.track(func() {
			if err := a.stats.RecordVisit(context.Background(), hashed, ua, path); err != nil {
				log.Error().Err(err).Msg("error recording visitor")
			}
		})
		c.Next()
	}
}

// Cleanup drops analytics older than the retention window.
func (a *Admin) Cleanup(ctx context.Context) {
	if _, err := a.stats.Cleanup(ctx, a.retention); err != nil {
		log.Error().Err(err).Msg("error cleaning up old visitor data")
	}
}

func (a *Admin) checkCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *Admin) Register(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": int(a.retention.Hours() / 24),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(cookieName, a.token, 3600*24, "/admin", "", false, true)
			log.Info().Str("from", a.HashIP(c.ClientIP())).Msg("admin login successful")
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Warn().Str("from", a.HashIP(c.ClientIP())).Msg("failed admin login attempt")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(cookieName, "", -1, "/admin", "", false, true)
		log.Info().Str("from", a.HashIP(c.ClientIP())).Msg("admin logout")
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.AuthMiddleware())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.stats.Stats(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("error loading admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.stats.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.stats.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Error().Err(err).Msg("error loading visitors")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	g.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.stats.Cleanup(c.Request.Context(), a.retention)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.stats.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Info().Str("from", a.HashIP(c.ClientIP())).Msg("admin stats exported")
		c.JSON(http.StatusOK, stats)
	})
}

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaD28/portfolio/internal/session"
)

const (
	sessionCookie = "portfolio_session"
	sessionHeader = "X-Session-ID"
)

func (s *server) newSession(c *gin.Context) *session.Session {
	sess := s.sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	return sess
}

// lookup finds the caller's session from the cookie or, for API clients,
// the X-Session-ID header.
func (s *server) lookup(c *gin.Context) (*session.Session, bool) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id, _ = c.Cookie(sessionCookie)
	}
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

// htmlSession returns the caller's session, starting a fresh one when it
// has expired so fragments keep working after a long idle tab.
func (s *server) htmlSession(c *gin.Context) *session.Session {
	if sess, ok := s.lookup(c); ok {
		return sess
	}
	return s.newSession(c)
}

// apiSession aborts with 404 when the session is unknown.
func (s *server) apiSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := s.lookup(c)
	if !ok {
		writeError(c, http.StatusNotFound, "unknown session")
		return nil, false
	}
	return sess, true
}

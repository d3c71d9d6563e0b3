package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaD28/portfolio/internal/contact"
	"github.com/AdityaD28/portfolio/internal/session"
)

const noticeSubmitting = "Your message is already being sent."

func (s *server) contactForm(c *gin.Context) {
	sess := s.htmlSession(c)
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
		"form":  sess.Contact.State(),
		"p":     s.portfolio,
	})
}

// submit stores the posted fields and delivers them. A submission already
// in flight keeps its fields.
func (s *server) submit(c *gin.Context, sess *session.Session, sub contact.Submission) (contact.State, error) {
	st, err := sess.Contact.SubmitWith(c.Request.Context(), sub)
	if err == nil {
		s.record(c.Request.Context(), "contact", string(st.Status))
	}
	return st, err
}

func (s *server) contactSubmit(c *gin.Context) {
	sess := s.htmlSession(c)
	name := c.PostForm("name")
	if name == "" {
		// older markup posts fullName
		name = c.PostForm("fullName")
	}
	st, err := s.submit(c, sess, contact.Submission{
		Name:    name,
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	})
	if errors.Is(err, contact.ErrSubmitting) {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": noticeSubmitting, "form": st})
		return
	}
	if st.Status == contact.StatusSuccess {
		c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": st.Notice})
		return
	}
	c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": st.Notice, "form": st})
}

func (s *server) contactField(c *gin.Context) {
	sess := s.htmlSession(c)
	field := c.PostForm("field")

	switch c.PostForm("focus") {
	case "true":
		sess.Contact.Focus(field)
	case "false":
		sess.Contact.Blur()
	}
	if value, ok := c.GetPostForm("value"); ok {
		if err := sess.Contact.UpdateField(field, value); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
	}
	c.Status(http.StatusNoContent)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *server) apiContactSubmit(c *gin.Context) {
	sess, ok := s.apiSession(c)
	if !ok {
		return
	}
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	st, err := s.submit(c, sess, contact.Submission{Name: req.Name, Email: req.Email, Message: req.Message})
	switch {
	case errors.Is(err, contact.ErrSubmitting):
		c.JSON(http.StatusConflict, st)
	case st.Status == contact.StatusSuccess:
		c.JSON(http.StatusOK, st)
	case st.ErrorField != "":
		c.JSON(http.StatusUnprocessableEntity, st)
	default:
		c.JSON(http.StatusBadGateway, st)
	}
}

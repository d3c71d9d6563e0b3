package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaD28/portfolio/internal/chat"
	"github.com/AdityaD28/portfolio/internal/content"
	"github.com/AdityaD28/portfolio/internal/session"
)

// index starts a new visitor session on every full page load. A reload
// ends the session it replaces.
func (s *server) index(c *gin.Context) {
	if old, ok := s.lookup(c); ok {
		s.sessions.Delete(old.ID)
	}
	sess := s.newSession(c)
	p := s.portfolio

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":          p.Owner.Name,
		"p":              p,
		"bodyClass":      sess.Page.BodyClass(),
		"theme":          sess.Page.Theme(),
		"experience":     p.TimelineByType("experience"),
		"education":      p.TimelineByType("education"),
		"projects":       p.ProjectsByCategory(content.CategoryAll),
		"featured":       p.FeaturedProjects(),
		"skills":         skillRows(p, content.CategoryAll),
		"category":       content.CategoryAll,
		"certifications": p.CertificationsByCategory(content.CategoryAll),
		"suggestions":    chat.SuggestedQuestions(p),
		"form":           sess.Contact.State(),
	})
}

func (s *server) createSession(c *gin.Context) {
	sess := s.newSession(c)
	c.JSON(http.StatusCreated, gin.H{"session": sess.ID})
}

func (s *server) toggleTheme(c *gin.Context) {
	sess := s.htmlSession(c)
	theme := sess.Page.ToggleTheme()
	c.HTML(http.StatusOK, "theme.html", gin.H{
		"theme":     theme,
		"bodyClass": sess.Page.BodyClass(),
	})
}

func (s *server) projects(c *gin.Context) {
	category := c.DefaultQuery("category", content.CategoryAll)
	c.HTML(http.StatusOK, "project-list.html", gin.H{
		"projects": s.portfolio.ProjectsByCategory(category),
		"category": category,
	})
}

func (s *server) projectDetail(c *gin.Context) {
	project, ok := s.portfolio.Project(c.Param("id"))
	if !ok {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{
			"error": "That project could not be found.",
		})
		return
	}
	sess := s.htmlSession(c)
	sess.OpenModal()
	c.HTML(http.StatusOK, "project-modal.html", gin.H{
		"project":   project,
		"bodyClass": sess.Page.BodyClass(),
	})
}

func (s *server) closeModal(c *gin.Context) {
	sess := s.htmlSession(c)
	sess.CloseModal()
	c.HTML(http.StatusOK, "modal-closed.html", gin.H{
		"bodyClass": sess.Page.BodyClass(),
	})
}

type skillRow struct {
	content.Skill
	LevelText string
	Related   []content.Skill
}

func skillRows(p *content.Portfolio, category string) []skillRow {
	skills := p.SkillsByCategory(category)
	rows := make([]skillRow, 0, len(skills))
	for _, sk := range skills {
		rows = append(rows, skillRow{
			Skill:     sk,
			LevelText: content.LevelText(sk.Level),
			Related:   p.RelatedSkills(sk),
		})
	}
	return rows
}

func (s *server) skills(c *gin.Context) {
	category := c.DefaultQuery("category", content.CategoryAll)
	c.HTML(http.StatusOK, "skill-list.html", gin.H{
		"skills":   skillRows(s.portfolio, category),
		"category": category,
		"average":  s.portfolio.CategoryAverage(category),
	})
}

func (s *server) certifications(c *gin.Context) {
	category := c.DefaultQuery("category", content.CategoryAll)
	c.HTML(http.StatusOK, "cert-list.html", gin.H{
		"certifications": s.portfolio.CertificationsByCategory(category),
		"category":       category,
	})
}

func pageData(sess *session.Session, h gin.H) gin.H {
	h["bodyClass"] = sess.Page.BodyClass()
	return h
}

package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaD28/portfolio/internal/chat"
	"github.com/AdityaD28/portfolio/internal/session"
)

const (
	noticeEmpty   = "Please type a question first."
	noticePending = "Please wait for the current reply."
)

func (s *server) chatPanel(sess *session.Session, notice string) gin.H {
	return pageData(sess, gin.H{
		"open":        sess.Chat.IsOpen(),
		"pending":     sess.Chat.Pending(),
		"messages":    sess.Chat.Transcript(),
		"suggestions": chat.SuggestedQuestions(s.portfolio),
		"notice":      notice,
	})
}

func (s *server) chatOpen(c *gin.Context) {
	sess := s.htmlSession(c)
	sess.Chat.Open()
	c.HTML(http.StatusOK, "chat-panel.html", s.chatPanel(sess, ""))
}

func (s *server) chatClose(c *gin.Context) {
	sess := s.htmlSession(c)
	sess.Chat.Close()
	c.HTML(http.StatusOK, "chat-launcher.html", pageData(sess, gin.H{}))
}

// chatSend shows the visitor's message and the typing indicator at once.
// The rendered indicator requests /chat/reply to fetch the answer.
func (s *server) chatSend(c *gin.Context) {
	sess := s.htmlSession(c)
	_, err := sess.Chat.Post(c.PostForm("message"))

	notice := ""
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		notice = noticeEmpty
	case errors.Is(err, chat.ErrReplyPending):
		notice = noticePending
	}
	c.HTML(http.StatusOK, "chat-messages.html", s.chatPanel(sess, notice))
}

func (s *server) chatReply(c *gin.Context) {
	sess := s.htmlSession(c)
	_, err := sess.Chat.Reply(c.Request.Context())

	data := s.chatPanel(sess, "")
	switch {
	case err == nil:
		s.record(c.Request.Context(), "chat", "replied")
	case errors.Is(err, chat.ErrReplyPending):
		// another request is resolving; poll instead of resolving twice
		data["poll"] = true
	}
	c.HTML(http.StatusOK, "chat-messages.html", data)
}

type chatTranscript struct {
	Session  string         `json:"session"`
	Open     bool           `json:"open"`
	Pending  bool           `json:"pending"`
	Messages []chat.Message `json:"messages"`
}

func transcript(sess *session.Session) chatTranscript {
	return chatTranscript{
		Session:  sess.ID,
		Open:     sess.Chat.IsOpen(),
		Pending:  sess.Chat.Pending(),
		Messages: sess.Chat.Transcript(),
	}
}

func (s *server) apiChatTranscript(c *gin.Context) {
	sess, ok := s.apiSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, transcript(sess))
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *server) apiChatSend(c *gin.Context) {
	sess, ok := s.apiSession(c)
	if !ok {
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := sess.Chat.Send(c.Request.Context(), req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(c, http.StatusBadRequest, noticeEmpty)
		return
	case errors.Is(err, chat.ErrReplyPending):
		writeError(c, http.StatusConflict, noticePending)
		return
	case err != nil:
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	s.record(c.Request.Context(), "chat", "replied")

	c.JSON(http.StatusOK, gin.H{
		"reply":      reply,
		"transcript": transcript(sess),
	})
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AdityaD28/portfolio/internal/content"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrReplyPending = errors.New("a reply is already pending")
	ErrNoPending    = errors.New("no message is awaiting a reply")
)

// Locker hands out a scoped page lock. The widget holds one while it is open.
type Locker interface {
	Acquire(name string) (release func())
}

// Option configures a Widget in NewWidget.
type Option func(*Widget)

// WithReplyDelay holds each reply back by d so the typing indicator is
// visible. The delay is cut short if the request context ends.
func WithReplyDelay(d time.Duration) Option {
	return func(w *Widget) { w.delay = d }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

// WithLocker makes Open and Close acquire and release a page scroll lock.
func WithLocker(l Locker) Option {
	return func(w *Widget) { w.locker = l }
}

// Widget is the chat controller for one visitor session. The transcript is
// append-only and at most one reply is resolved at a time.
type Widget struct {
	resolver Resolver
	greeting string
	fallback string
	delay    time.Duration
	now      func() time.Time
	locker   Locker

	mu         sync.Mutex
	open       bool
	greeted    bool
	pending    bool
	resolving  bool
	nextID     uint64
	transcript []Message
	release    func()
}

func NewWidget(r Resolver, p *content.Portfolio, opts ...Option) *Widget {
	w := &Widget{
		resolver: r,
		greeting: Greeting(p),
		fallback: Fallback(p),
		now:      time.Now,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func Greeting(p *content.Portfolio) string {
	return fmt.Sprintf("Hi! I'm %s's AI assistant. I can answer questions about his skills, projects, experience, and more. What would you like to know?",
		p.Owner.FirstName)
}

// Fallback is the reply used when the resolver fails.
func Fallback(p *content.Portfolio) string {
	return fmt.Sprintf("I'm having trouble right now, please reach out directly at %s", p.Contact.Email)
}

// SuggestedQuestions are offered under an empty input box.
func SuggestedQuestions(p *content.Portfolio) []string {
	qs := []string{
		"What are his key front-end skills?",
		"What are his skills?",
	}
	if len(p.Knowledge.Projects) > 0 {
		qs = append(qs, fmt.Sprintf("Tell me about the %s project", p.Knowledge.Projects[0].Name))
	}
	if len(p.Knowledge.Experience) > 0 {
		last := p.Knowledge.Experience[len(p.Knowledge.Experience)-1]
		qs = append(qs, fmt.Sprintf("What was his role at %s?", last.Company))
	}
	return append(qs, "What is he passionate about?", "How can I contact him?")
}

// Open shows the widget. The first open seeds the greeting.
func (w *Widget) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.greeted {
		w.appendLocked(SenderAssistant, w.greeting)
		w.greeted = true
	}
	if w.open {
		return
	}
	w.open = true
	if w.locker != nil {
		w.release = w.locker.Acquire("chat")
	}
}

// Close hides the widget and releases its page lock. The transcript stays.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = false
	if w.release != nil {
		w.release()
		w.release = nil
	}
}

func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *Widget) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Transcript returns a copy of the messages in arrival order.
func (w *Widget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Message(nil), w.transcript...)
}

// Send posts the visitor's message and resolves its reply. It returns the
// assistant message. Resolver failures are answered with the fallback reply
// rather than an error.
func (w *Widget) Send(ctx context.Context, text string) (Message, error) {
	if _, err := w.Post(text); err != nil {
		return Message{}, err
	}
	return w.Reply(ctx)
}

// Post appends the visitor's message and marks a reply pending, so the
// message and the typing indicator can be shown before Reply runs.
func (w *Widget) Post(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending {
		return Message{}, ErrReplyPending
	}
	m := w.appendLocked(SenderUser, text)
	w.pending = true
	return m, nil
}

// Reply resolves the pending message and appends the answer. Only one
// Reply runs at a time; a second caller gets ErrReplyPending.
func (w *Widget) Reply(ctx context.Context) (Message, error) {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return Message{}, ErrNoPending
	}
	if w.resolving {
		w.mu.Unlock()
		return Message{}, ErrReplyPending
	}
	last := len(w.transcript) - 1
	text := w.transcript[last].Text
	history := append([]Message(nil), w.transcript[:last]...)
	w.resolving = true
	w.mu.Unlock()

	start := time.Now()
	reply, err := w.resolver.Resolve(ctx, Request{Text: text, History: history})
	outcome := "ok"
	if err != nil {
		log.Warn().Err(err).Str("resolver", w.resolver.Name()).Msg("chat reply failed, using fallback")
		reply = Reply{Text: w.fallback}
		outcome = "fallback"
	}
	repliesTotal.WithLabelValues(w.resolver.Name(), outcome).Inc()
	replyDuration.WithLabelValues(w.resolver.Name()).Observe(time.Since(start).Seconds())

	if w.delay > 0 {
		t := time.NewTimer(w.delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	msg := w.appendLocked(SenderAssistant, reply.Text)
	w.pending, w.resolving = false, false
	return msg, nil
}

func (w *Widget) appendLocked(s Sender, text string) Message {
	w.nextID++
	m := Message{ID: w.nextID, Text: text, Sender: s, Timestamp: w.now()}
	w.transcript = append(w.transcript, m)
	return m
}

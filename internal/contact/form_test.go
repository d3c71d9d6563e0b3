package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackEmail = "owner@example.com"

type stubSender struct {
	mu    sync.Mutex
	err   error
	calls []Submission
	gate  chan struct{}
}

func (s *stubSender) Name() string { return "stub" }

func (s *stubSender) Send(ctx context.Context, sub Submission) error {
	s.mu.Lock()
	s.calls = append(s.calls, sub)
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return s.err
}

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func fill(t *testing.T, f *Form, name, email, message string) {
	t.Helper()
	require.NoError(t, f.UpdateField(FieldName, name))
	require.NoError(t, f.UpdateField(FieldEmail, email))
	require.NoError(t, f.UpdateField(FieldMessage, message))
}

func TestSubmitSuccessClearsFields(t *testing.T) {
	sender := &stubSender{}
	f := NewForm(sender, fallbackEmail, time.Second)
	fill(t, f, "Jane", "jane@x.com", "Hi")

	st, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, SuccessMessage, st.Notice)
	assert.Empty(t, st.Name)
	assert.Empty(t, st.Email)
	assert.Empty(t, st.Message)
	require.Equal(t, 1, sender.count())
	assert.Equal(t, Submission{Name: "Jane", Email: "jane@x.com", Message: "Hi"}, sender.calls[0])
}

func TestSubmitInvalidEmailSkipsSender(t *testing.T) {
	sender := &stubSender{}
	f := NewForm(sender, fallbackEmail, time.Second)
	fill(t, f, "Jane", "not-an-email", "Hi")

	st, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, FieldEmail, st.ErrorField)
	assert.Equal(t, "Please enter a valid email address", st.Notice)
	assert.Equal(t, 0, sender.count())
	assert.Equal(t, "not-an-email", st.Email, "fields are kept for correction")
}

func TestSubmitBlankFieldsSkipSender(t *testing.T) {
	sender := &stubSender{}
	f := NewForm(sender, fallbackEmail, time.Second)
	fill(t, f, "  ", "jane@x.com", "Hi")

	st, _ := f.Submit(context.Background())
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, FieldName, st.ErrorField)
	assert.Equal(t, 0, sender.count())
}

func TestSubmitDeliveryFailureKeepsFields(t *testing.T) {
	sender := &stubSender{err: errors.New("connection refused")}
	f := NewForm(sender, fallbackEmail, time.Second)
	fill(t, f, "Jane", "jane@x.com", "Hi")

	st, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusError, st.Status)
	assert.Contains(t, st.Notice, fallbackEmail)
	assert.Equal(t, "Jane", st.Name)
	assert.Equal(t, "Hi", st.Message)
}

func TestSubmitNotConfiguredPointsToFallback(t *testing.T) {
	f := NewForm(NewEmailJSSender(EmailJSConfig{}), fallbackEmail, time.Second)
	fill(t, f, "Jane", "jane@x.com", "Hi")

	st, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusError, st.Status)
	assert.Contains(t, st.Notice, fallbackEmail)
}

func TestSubmitRejectsOverlap(t *testing.T) {
	sender := &stubSender{gate: make(chan struct{})}
	f := NewForm(sender, fallbackEmail, 0)
	fill(t, f, "Jane", "jane@x.com", "Hi")

	done := make(chan State)
	go func() {
		st, _ := f.Submit(context.Background())
		done <- st
	}()

	require.Eventually(t, func() bool { return f.State().Submitting() }, time.Second, time.Millisecond)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)

	close(sender.gate)
	st := <-done
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, 1, sender.count())
}

func TestSubmitWithLeavesInFlightFieldsAlone(t *testing.T) {
	sender := &stubSender{gate: make(chan struct{}), err: errors.New("relay down")}
	f := NewForm(sender, fallbackEmail, 0)

	done := make(chan State)
	go func() {
		st, _ := f.SubmitWith(context.Background(), Submission{Name: "Jane", Email: "jane@x.com", Message: "Hi"})
		done <- st
	}()
	require.Eventually(t, func() bool { return f.State().Submitting() }, time.Second, time.Millisecond)

	_, err := f.SubmitWith(context.Background(), Submission{Name: "Mallory", Email: "m@x.com", Message: "Other"})
	assert.ErrorIs(t, err, ErrSubmitting)

	close(sender.gate)
	st := <-done
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, "Jane", st.Name)
	assert.Equal(t, "Hi", st.Message)
	assert.Equal(t, 1, sender.count())
}

func TestUpdateFieldUnknown(t *testing.T) {
	f := NewForm(&stubSender{}, fallbackEmail, 0)
	assert.ErrorIs(t, f.UpdateField("phone", "123"), ErrUnknownField)
}

func TestFocusTracking(t *testing.T) {
	f := NewForm(&stubSender{}, fallbackEmail, 0)
	f.Focus(FieldEmail)
	assert.Equal(t, FieldEmail, f.State().Focused)
	f.Blur()
	assert.Empty(t, f.State().Focused)
	assert.Equal(t, StatusIdle, f.State().Status)
}

func TestValidate(t *testing.T) {
	ok := Submission{Name: "a", Email: "a@b.co", Message: "m"}
	assert.NoError(t, Validate(ok))

	bad := []string{"a@b", "@b.co", "a b@c.de", "a@@b.co", "plain"}
	for _, e := range bad {
		s := ok
		s.Email = e
		err := Validate(s)
		assert.ErrorIs(t, err, ErrInvalid, e)
	}
}

func TestSMTPSenderComposesMessage(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{User: "bot@site.dev", Pass: "secret", To: "owner@site.dev"})
	var gotAddr string
	var gotMsg []byte
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotMsg = addr, msg
		assert.Equal(t, "bot@site.dev", from)
		assert.Equal(t, []string{"owner@site.dev"}, to)
		return nil
	}

	err := s.Send(context.Background(), Submission{Name: "Jane\r\nBcc: x@y.z", Email: "jane@x.com", Message: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.gmail.com:587", gotAddr)

	headers := strings.SplitN(string(gotMsg), "\r\n\r\n", 2)[0]
	assert.Contains(t, headers, "Reply-To: jane@x.com")
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestSMTPSenderRequiresCredentials(t *testing.T) {
	err := NewSMTPSender(SMTPConfig{}).Send(context.Background(), Submission{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

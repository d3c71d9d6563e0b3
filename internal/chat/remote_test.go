package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdityaD28/portfolio/internal/content"
)

const okBody = `{"candidates":[{"content":{"role":"model","parts":[{"text":"He knows Go."}]},"finishReason":"STOP"}]}`

func newRemote(t *testing.T, url string) *RemoteResolver {
	t.Helper()
	r, err := NewRemoteResolver(content.Default(), RemoteConfig{
		APIKey:    "test-key",
		BaseURL:   url,
		Timeout:   200 * time.Millisecond,
		RetryWait: time.Millisecond,
	})
	require.NoError(t, err)
	return r
}

func TestRemoteRequiresAPIKey(t *testing.T) {
	_, err := NewRemoteResolver(content.Default(), RemoteConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRemoteSendsSeededRequest(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/"+DefaultModel+":generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	p := content.Default()
	history := []Message{
		{ID: 1, Sender: SenderAssistant, Text: Greeting(p)},
		{ID: 2, Sender: SenderUser, Text: "hi"},
		{ID: 3, Sender: SenderAssistant, Text: "hello"},
	}
	reply, err := newRemote(t, srv.URL).Resolve(context.Background(), Request{Text: "What does he know?", History: history})
	require.NoError(t, err)
	assert.Equal(t, "He knows Go.", reply.Text)

	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, p.Contact.Email)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, Refusal(p))

	roles := make([]string, 0, len(got.Contents))
	for _, c := range got.Contents {
		roles = append(roles, c.Role)
	}
	assert.Equal(t, []string{"user", "model", "user", "model", "user"}, roles)
	assert.Equal(t, "What does he know?", got.Contents[len(got.Contents)-1].Parts[0].Text)

	assert.Len(t, got.SafetySettings, 4)
	for _, s := range got.SafetySettings {
		assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", s.Threshold)
	}
	assert.Equal(t, 512, got.GenerationConfig.MaxOutputTokens)
}

func TestRemoteRetriesTransientFailureOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	reply, err := newRemote(t, srv.URL).Resolve(context.Background(), Request{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "He knows Go.", reply.Text)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRemoteGivesUpAfterOneRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newRemote(t, srv.URL).Resolve(context.Background(), Request{Text: "hi"})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRemoteDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newRemote(t, srv.URL).Resolve(context.Background(), Request{Text: "hi"})
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRemoteTimeoutFallsBackInWidget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	p := content.Default()
	w := NewWidget(newRemote(t, srv.URL), p)
	m, err := w.Send(context.Background(), "are you there?")
	require.NoError(t, err)
	assert.Equal(t, Fallback(p), m.Text)
	assert.False(t, w.Pending())
}

func TestRemoteEmptyCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer srv.Close()

	_, err := newRemote(t, srv.URL).Resolve(context.Background(), Request{Text: "hi"})
	assert.ErrorIs(t, err, ErrEmptyReply)
}

package contact

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailJSSenderPostsTemplateParams(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	s := NewEmailJSSender(EmailJSConfig{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", BaseURL: srv.URL})
	err := s.Send(context.Background(), Submission{Name: "Jane", Email: "jane@x.com", Message: "Hi"})
	require.NoError(t, err)

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Empty(t, got.AccessToken)
	assert.Equal(t, map[string]string{
		"from_name":  "Jane",
		"name":       "Jane",
		"from_email": "jane@x.com",
		"email":      "jane@x.com",
		"message":    "Hi",
	}, got.TemplateParams)
}

func TestEmailJSSenderReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The Public Key is invalid"))
	}))
	defer srv.Close()

	s := NewEmailJSSender(EmailJSConfig{ServiceID: "svc", TemplateID: "tpl", PublicKey: "bad", BaseURL: srv.URL})
	err := s.Send(context.Background(), Submission{Name: "Jane", Email: "jane@x.com", Message: "Hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestEmailJSSenderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewForm(NewEmailJSSender(EmailJSConfig{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", BaseURL: url}), fallbackEmail, 0)
	fill(t, f, "Jane", "jane@x.com", "Hi")

	st, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusError, st.Status)
	assert.Contains(t, st.Notice, fallbackEmail)
}

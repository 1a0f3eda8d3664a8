package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok","store":"memory"}`))
		default:
			http.Error(w, "boom", http.StatusServiceUnavailable)
		}
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", 0)
	require.NoError(t, err)
	assert.Equal(t, ts.URL, c.BaseURL)

	var out struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "health", &out))
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "memory", out.Store)

	err = c.GetJSON(context.Background(), "/down", nil)
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusServiceUnavailable, herr.StatusCode)
	assert.Equal(t, "boom", herr.Body)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, u := range []string{"", "localhost:3000", "not a url"} {
		_, err := New(u, 0)
		assert.Error(t, err, u)
	}
}

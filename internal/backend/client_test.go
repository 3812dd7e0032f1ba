package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", logger.New(logger.LevelOff, nil), opts...)
	require.NoError(t, err)
	return c
}

func TestPostFormSendsFormEncodedBody(t *testing.T) {
	var (
		gotPath   string
		gotCT     string
		gotAccept string
		gotReqID  string
		gotForm   url.Values
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotReqID = r.Header.Get(RequestIDHeader)
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"recipe_id":"42"}`))
	})

	ctx := domain.WithRequestID(context.Background(), "req-1")
	body, err := c.PostForm(ctx, "/user-recipes", url.Values{"recipe_ids[]": {"1", "2"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"recipe_id":"42"}`, string(body))
	assert.Equal(t, "/user-recipes", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotCT)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "req-1", gotReqID)
	assert.Equal(t, []string{"1", "2"}, gotForm["recipe_ids[]"])
}

func TestPostFormNon2xxIsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.PostForm(context.Background(), "/inventory", url.Values{})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "boom", se.Body)
	assert.Contains(t, err.Error(), "/inventory")
}

func TestPostFormTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, WithHTTPTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.PostForm(context.Background(), "/verify_recipe", url.Values{"data": {"1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestPostFormWithoutRequestID(t *testing.T) {
	var hdr []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hdr = r.Header.Values(RequestIDHeader)
	})
	_, err := c.PostForm(context.Background(), "/user-recipes", url.Values{})
	require.NoError(t, err)
	assert.Empty(t, hdr)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	for _, raw := range []string{"localhost:5000", "ftp://x", "://"} {
		_, err := NewClient(raw, log)
		assert.Error(t, err, raw)
	}
	c, err := NewClient("http://localhost:5000/", log)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

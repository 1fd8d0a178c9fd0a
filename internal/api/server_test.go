package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/pipeline"
)

const testCaptions = `WEBVTT

00:00:05.000 --> 00:00:07.000
Teacher: welcome back everyone
`

const testChat = "00:00:02\tBob:\thello\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	p := pipeline.New(model.DefaultConfig(), nil, zerolog.Nop())
	return NewServer(0, p, zerolog.Nop())
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".txt")
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProcess_ReturnsTimeline(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"transcript": testCaptions,
		"chat":       testChat,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var tl model.Timeline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tl))
	require.Len(t, tl.Entries, 2)
	assert.Equal(t, model.KindChat, tl.Entries[0].Kind)
	assert.Equal(t, model.KindCaption, tl.Entries[1].Kind)
	assert.False(t, tl.Categorized)
	assert.False(t, tl.Scored)
}

func TestProcess_WithOptionalArtifacts(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"transcript": testCaptions,
		"chat":       testChat,
		"ngrams":     "1,welcome,unigram,greeting\n",
		"roster":     "Bob\nTeacher\n",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var tl model.Timeline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tl))
	assert.True(t, tl.Categorized)
	assert.Equal(t, []string{"Bob", "Teacher"}, tl.Roster)

	categories := map[string]string{}
	for _, e := range tl.Entries {
		categories[e.Text] = e.Category
	}
	assert.Equal(t, "greeting", categories["welcome back everyone"])
	assert.Equal(t, "uncategorized", categories["hello"])
}

func TestProcess_MissingRequiredFile(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"transcript": testCaptions,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "chat file is required")
}

// runnerFunc lets tests stub the pipeline.
type runnerFunc func(ctx context.Context, in pipeline.Inputs) (*model.Timeline, error)

func (f runnerFunc) Run(ctx context.Context, in pipeline.Inputs) (*model.Timeline, error) {
	return f(ctx, in)
}

func TestProcess_PipelineFailure(t *testing.T) {
	failing := runnerFunc(func(context.Context, pipeline.Inputs) (*model.Timeline, error) {
		return nil, context.DeadlineExceeded
	})
	s := NewServer(0, failing, zerolog.Nop())

	body, contentType := multipartBody(t, map[string]string{
		"transcript": testCaptions,
		"chat":       testChat,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpc-health/rosterflow/ingest"
)

func uploadRequest(t *testing.T, filename, content string, sendAPI bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("csv_file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	if sendAPI {
		require.NoError(t, writer.WriteField("send_api", "true"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/process", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newTestRouter() http.Handler {
	pipeline := ingest.NewPipeline(zerolog.Nop())
	return NewRosterRouter(pipeline, nil, zerolog.Nop()).SetupRoutes()
}

func TestHandleIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "XPC Medical Data Processor")
}

func TestHandleProcess_ParseOnly(t *testing.T) {
	content := "Name,Age,Gender,Sex\nJohn Doe,34,male,M\n"
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, uploadRequest(t, "roster.csv", content, false))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    []struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "John", resp.Data[0].FirstName)
	assert.Equal(t, "Doe", resp.Data[0].LastName)
}

func TestHandleProcess_NoFile(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/process", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file provided")
}

func TestHandleProcess_EmptyRoster(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, uploadRequest(t, "roster.csv", "", false))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "roster is empty")
}

func TestHandleProcess_SendWithoutConfig(t *testing.T) {
	content := "Name,Age\nJohn Doe,34\n"
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, uploadRequest(t, "roster.csv", content, true))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "XPC API is not configured")
}

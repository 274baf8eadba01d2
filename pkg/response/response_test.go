package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]int{"count": 3}, "ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Message)
	assert.Equal(t, map[string]interface{}{"count": float64(3)}, body.Data)
}

func TestCreatedAndError(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, "x", "created")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	Error(w, http.StatusNotFound, "Surah not found", "no rows")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, 404, body.Status)
	assert.Equal(t, "no rows", body.Errors)
	assert.Nil(t, body.Data)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Quran"}`))
	require.NoError(t, Decode(r, &dst))
	assert.Equal(t, "Quran", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Quran","extra":1}`))
	assert.Error(t, Decode(r, &dst))
}

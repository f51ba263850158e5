package feed

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRequestHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://api.example.com/Live/?get=live", http.NoBody)
	addRequestHeaders(req, "Lectures/1.0")

	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "Lectures/1.0", req.Header.Get("User-Agent"))
	assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
	assert.Empty(t, req.Header.Get("Connection"), "connection reuse is up to the http client")
	assert.Contains(t, acceptLanguages, req.Header.Get("Accept-Language"))
}

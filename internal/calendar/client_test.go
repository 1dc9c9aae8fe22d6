package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_FetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/musicas", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"2024-03-10":[{"id":1,"titulo":"A","audio":"/uploads/a.mp3","letra":null,"capa":null,"posicao":1},null,{"id":2,"titulo":"C","audio":null,"letra":null,"capa":null,"posicao":3}]}`))
	}))
	defer server.Close()

	catalog, err := NewHTTPFetcher(server.URL, server.Client()).FetchCatalog(context.Background())
	require.NoError(t, err)

	entries := catalog["2024-03-10"]
	require.Len(t, entries, 3)
	assert.Equal(t, "A", *entries[0].Title)
	assert.Nil(t, entries[0].Lyrics)
	assert.Nil(t, entries[1])
	assert.Equal(t, 3, entries[2].Slot)
}

func TestHTTPFetcher_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to get songs"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.URL, server.Client()).FetchCatalog(context.Background())
	assert.Error(t, err)

	_, err = NewHTTPFetcher("", nil).FetchCatalog(context.Background())
	assert.Error(t, err)
}

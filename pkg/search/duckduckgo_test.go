package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckDuckGo_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Akismet WordPress plugin", req.URL.Query().Get("q"))
		assert.Equal(t, "json", req.URL.Query().Get("format"))

		_, _ = rw.Write([]byte(`{
			"Heading": "Akismet",
			"AbstractText": "Akismet is a spam filtering service.",
			"AbstractURL": "https://en.wikipedia.org/wiki/Akismet",
			"RelatedTopics": [
				{"Text": "Automattic", "FirstURL": "https://duckduckgo.com/Automattic"},
				{"Topics": [
					{"Text": "WordPress", "FirstURL": "https://duckduckgo.com/WordPress"},
					{"Text": "Spam", "FirstURL": "https://duckduckgo.com/Spam"}
				]}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	searcher := NewDuckDuckGo()
	searcher.baseURL = server.URL

	refs, err := searcher.Search(context.Background(), "Akismet WordPress plugin", 3)
	require.NoError(t, err)

	require.Len(t, refs, 3)
	assert.Equal(t, Reference{Title: "Akismet", URL: "https://en.wikipedia.org/wiki/Akismet", Snippet: "Akismet is a spam filtering service."}, refs[0])
	assert.Equal(t, "https://duckduckgo.com/Automattic", refs[1].URL)
	assert.Equal(t, "https://duckduckgo.com/WordPress", refs[2].URL)
}

func TestDuckDuckGo_Search_empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = rw.Write([]byte(`{"RelatedTopics": []}`))
	}))
	t.Cleanup(server.Close)

	searcher := NewDuckDuckGo()
	searcher.baseURL = server.URL

	refs, err := searcher.Search(context.Background(), "nothing", 5)
	require.NoError(t, err)

	assert.Empty(t, refs)
}

func TestDuckDuckGo_Search_serverError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	searcher := NewDuckDuckGo()
	searcher.baseURL = server.URL

	_, err := searcher.Search(context.Background(), "anything", 5)
	require.Error(t, err)
}

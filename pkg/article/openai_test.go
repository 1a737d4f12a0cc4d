package article

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wppick/wppick/pkg/wporg"
)

func TestOpenAIGenerator_Generate(t *testing.T) {
	content := "TITLE: Akismetでスパム対策を自動化する\n\n" + strings.Repeat("本文です。", 100) + "Akismet Anti-spam の紹介でした。"

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v1/chat/completions", req.URL.Path)
		assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))

		var payload chatRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))

		assert.Equal(t, "gpt-4o-mini", payload.Model)
		require.Len(t, payload.Messages, 2)
		assert.Contains(t, payload.Messages[1].Content, "Akismet Anti-spam")

		response := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}

		require.NoError(t, json.NewEncoder(rw).Encode(response))
	}))
	t.Cleanup(server.Close)

	generator := NewOpenAIGenerator("test-key", "gpt-4o-mini")
	generator.baseURL = server.URL

	plugin := wporg.Plugin{Name: "Akismet Anti-spam", Slug: "akismet", ActiveInstalls: 5000000, Rating: 92}

	draft, err := generator.Generate(context.Background(), Request{Topic: "スパム対策", Plugin: plugin})
	require.NoError(t, err)

	assert.Equal(t, "Akismetでスパム対策を自動化する", draft.Title)
	require.NoError(t, Validate(draft, plugin))
}

func TestOpenAIGenerator_Generate_brokenContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		response := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "タイトル行がありません"}},
			},
		}

		_ = json.NewEncoder(rw).Encode(response)
	}))
	t.Cleanup(server.Close)

	generator := NewOpenAIGenerator("test-key", "gpt-4o-mini")
	generator.baseURL = server.URL

	_, err := generator.Generate(context.Background(), Request{Plugin: wporg.Plugin{Name: "X"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TITLE contract")
}

func TestSplitDraft(t *testing.T) {
	testCases := []struct {
		desc      string
		raw       string
		wantTitle string
		wantErr   bool
	}{
		{
			desc:      "standard output",
			raw:       "TITLE: 記事タイトル\n\n本文",
			wantTitle: "記事タイトル",
		},
		{
			desc:    "missing prefix",
			raw:     "記事タイトル\n\n本文",
			wantErr: true,
		},
		{
			desc:    "empty title",
			raw:     "TITLE:\n\n本文",
			wantErr: true,
		},
	}

	for _, test := range testCases {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			title, content, err := splitDraft(test.raw)

			if test.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.wantTitle, title)
			assert.Equal(t, "本文", content)
		})
	}
}

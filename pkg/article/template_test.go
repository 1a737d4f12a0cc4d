package article

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wppick/wppick/pkg/search"
	"github.com/wppick/wppick/pkg/wporg"
)

func TestTemplateGenerator_Generate(t *testing.T) {
	plugin := wporg.Plugin{
		Name:             "Wordfence Security",
		Slug:             "wordfence",
		Rating:           80,
		ActiveInstalls:   50000,
		Tested:           "6.8.1",
		LastUpdated:      "2026-08-20 8:00am GMT",
		ShortDescription: "Wordfence protects your site.",
		Tags:             map[string]string{"security": "Security"},
	}

	refs := []search.Reference{
		{Title: "Wordfence docs", URL: "https://www.wordfence.com/help/"},
	}

	draft, err := TemplateGenerator{}.Generate(context.Background(), Request{
		Topic:      "WordPress セキュリティ",
		Plugin:     plugin,
		References: refs,
	})
	require.NoError(t, err)

	assert.Contains(t, draft.Title, "Wordfence Security")
	assert.Contains(t, draft.Content, "Wordfence Security")
	assert.Contains(t, draft.Content, "https://wordpress.org/plugins/wordfence/")
	assert.Contains(t, draft.Content, "https://www.wordfence.com/help/")
	assert.Contains(t, draft.Content, "50000")
	assert.Equal(t, []string{"Security"}, draft.Tags)

	// the rendered draft must already satisfy the formatting rules.
	require.NoError(t, Validate(draft, plugin))
}

func TestTemplateGenerator_Generate_minimalPlugin(t *testing.T) {
	plugin := wporg.Plugin{
		Name:           "Tiny Helper",
		Slug:           "tiny-helper",
		Rating:         70,
		ActiveInstalls: 600,
		LastUpdated:    "2026-08-01",
	}

	draft, err := TemplateGenerator{}.Generate(context.Background(), Request{Plugin: plugin})
	require.NoError(t, err)

	require.NoError(t, Validate(draft, plugin))
	assert.Empty(t, draft.Tags)
}

package article

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wppick/wppick/pkg/wporg"
)

func validDraft(plugin wporg.Plugin) Draft {
	return Draft{
		Title:   plugin.Name + "の使い方",
		Content: strings.Repeat("本文です。", 100) + plugin.Name + "を紹介します。",
	}
}

func TestValidate(t *testing.T) {
	plugin := wporg.Plugin{Name: "Akismet Anti-spam", Slug: "akismet"}

	testCases := []struct {
		desc    string
		mutate  func(d *Draft)
		wantErr string
	}{
		{
			desc: "valid draft",
		},
		{
			desc:    "missing title",
			mutate:  func(d *Draft) { d.Title = "  " },
			wantErr: "missing title",
		},
		{
			desc:    "title too long",
			mutate:  func(d *Draft) { d.Title = strings.Repeat("あ", 101) },
			wantErr: "title longer",
		},
		{
			desc:    "content too short",
			mutate:  func(d *Draft) { d.Content = "短い。" + plugin.Name },
			wantErr: "content shorter",
		},
		{
			desc:    "content does not mention the plugin",
			mutate:  func(d *Draft) { d.Content = strings.Repeat("本文です。", 200) },
			wantErr: "does not mention",
		},
		{
			desc:    "unresolved placeholder",
			mutate:  func(d *Draft) { d.Content += " {{ .Plugin.Name }}" },
			wantErr: "unresolved template placeholder",
		},
	}

	for _, test := range testCases {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			draft := validDraft(plugin)
			if test.mutate != nil {
				test.mutate(&draft)
			}

			err := Validate(draft, plugin)

			if test.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantErr)
		})
	}
}

package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wppick/wppick/pkg/wporg"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func freshPlugin() wporg.Plugin {
	return wporg.Plugin{
		Name:             "Example Plugin",
		Slug:             "example-plugin",
		Rating:           80,
		ActiveInstalls:   50000,
		Tested:           "6.8.1",
		LastUpdated:      testNow.AddDate(0, 0, -10).Format("2006-01-02"),
		ShortDescription: "Does example things.",
	}
}

func TestCriteria_Match(t *testing.T) {
	testCases := []struct {
		desc     string
		mutate   func(p *wporg.Plugin)
		criteria func(c *Criteria)
		want     bool
	}{
		{
			desc: "fresh popular plugin passes",
			want: true,
		},
		{
			desc:   "installs below threshold",
			mutate: func(p *wporg.Plugin) { p.ActiveInstalls = 499 },
		},
		{
			desc:   "installs at threshold passes",
			mutate: func(p *wporg.Plugin) { p.ActiveInstalls = 500 },
			want:   true,
		},
		{
			desc:   "rating below threshold",
			mutate: func(p *wporg.Plugin) { p.Rating = 59 },
		},
		{
			desc:   "absent rating never passes a positive threshold",
			mutate: func(p *wporg.Plugin) { p.Rating = 0 },
		},
		{
			desc:   "missing last_updated rejects",
			mutate: func(p *wporg.Plugin) { p.LastUpdated = "" },
		},
		{
			desc:   "unparseable last_updated rejects instead of crashing",
			mutate: func(p *wporg.Plugin) { p.LastUpdated = "last tuesday" },
		},
		{
			desc:   "updated too long ago",
			mutate: func(p *wporg.Plugin) { p.LastUpdated = testNow.AddDate(0, 0, -731).Format("2006-01-02") },
		},
		{
			desc:   "closed listing marker in the description",
			mutate: func(p *wporg.Plugin) { p.ShortDescription = "This Plugin Has Been Closed as of August 1, 2026." },
		},
		{
			desc: "closed listing marker in the detail sections",
			mutate: func(p *wporg.Plugin) {
				p.Sections = map[string]string{"description": "This plugin has been closed and is no longer available."}
			},
		},
		{
			desc:     "tested not required ignores an empty tested value",
			mutate:   func(p *wporg.Plugin) { p.Tested = "" },
			criteria: func(c *Criteria) { c.RequireTested = false },
			want:     true,
		},
		{
			desc:     "tested required rejects an empty tested value",
			mutate:   func(p *wporg.Plugin) { p.Tested = "" },
			criteria: func(c *Criteria) { c.RequireTested = true },
		},
		{
			desc:     "tested required accepts the current version",
			mutate:   func(p *wporg.Plugin) { p.Tested = "6.8" },
			criteria: func(c *Criteria) { c.RequireTested = true },
			want:     true,
		},
		{
			desc:     "tested required accepts a newer version",
			mutate:   func(p *wporg.Plugin) { p.Tested = "6.9.2" },
			criteria: func(c *Criteria) { c.RequireTested = true },
			want:     true,
		},
		{
			desc:     "tested required rejects an older version",
			mutate:   func(p *wporg.Plugin) { p.Tested = "6.7.1" },
			criteria: func(c *Criteria) { c.RequireTested = true },
		},
		{
			desc:     "tested required rejects garbage versions",
			mutate:   func(p *wporg.Plugin) { p.Tested = "trunk" },
			criteria: func(c *Criteria) { c.RequireTested = true },
		},
	}

	for _, test := range testCases {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			plugin := freshPlugin()
			if test.mutate != nil {
				test.mutate(&plugin)
			}

			criteria := DefaultCriteria()
			if test.criteria != nil {
				test.criteria(&criteria)
			}

			assert.Equal(t, test.want, criteria.Match(plugin, testNow))
		})
	}
}

// Raising min_installs must never accept a record that was rejected before.
func TestCriteria_Match_installsMonotonic(t *testing.T) {
	plugins := []wporg.Plugin{}
	for _, installs := range []int{0, 100, 499, 500, 501, 5000, 5000000} {
		p := freshPlugin()
		p.ActiveInstalls = installs
		plugins = append(plugins, p)
	}

	low := DefaultCriteria()
	high := DefaultCriteria()
	high.MinInstalls = 10000

	for _, p := range plugins {
		if high.Match(p, testNow) {
			assert.True(t, low.Match(p, testNow), "installs=%d accepted by the stricter criteria but not the looser one", p.ActiveInstalls)
		}
	}
}

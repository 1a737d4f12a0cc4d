package wporg

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

const pluginPageBaseURL = "https://wordpress.org/plugins"

// Plugin is a registry plugin record. Search pages fill the summary fields
// only; plugin_information responses add the detail fields.
type Plugin struct {
	Name                   string            `json:"name,omitempty" mapstructure:"name"`
	Slug                   string            `json:"slug,omitempty" mapstructure:"slug"`
	Version                string            `json:"version,omitempty" mapstructure:"version"`
	Requires               string            `json:"requires,omitempty" mapstructure:"requires"`
	Tested                 string            `json:"tested,omitempty" mapstructure:"tested"`
	Rating                 int               `json:"rating,omitempty" mapstructure:"rating"`
	NumRatings             int               `json:"numRatings,omitempty" mapstructure:"num_ratings"`
	Ratings                map[string]int    `json:"ratings,omitempty" mapstructure:"ratings"`
	ActiveInstalls         int               `json:"activeInstalls,omitempty" mapstructure:"active_installs"`
	LastUpdated            string            `json:"lastUpdated,omitempty" mapstructure:"last_updated"`
	ShortDescription       string            `json:"shortDescription,omitempty" mapstructure:"short_description"`
	Sections               map[string]string `json:"sections,omitempty" mapstructure:"sections"`
	Tags                   map[string]string `json:"tags,omitempty" mapstructure:"tags"`
	SupportThreads         int               `json:"supportThreads,omitempty" mapstructure:"support_threads"`
	SupportThreadsResolved int               `json:"supportThreadsResolved,omitempty" mapstructure:"support_threads_resolved"`
	Homepage               string            `json:"homepage,omitempty" mapstructure:"homepage"`
	DownloadLink           string            `json:"downloadLink,omitempty" mapstructure:"download_link"`
}

// PageURL is the canonical plugin page on the registry site.
func (p Plugin) PageURL() string {
	return pluginPageBaseURL + "/" + p.Slug + "/"
}

// registry timestamps come in several layouts depending on the endpoint.
var updatedLayouts = []string{
	"2006-01-02 3:04pm MST",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// UpdatedAt parses the record's last_updated value.
func (p Plugin) UpdatedAt() (time.Time, bool) {
	for _, layout := range updatedLayouts {
		if t, err := time.Parse(layout, p.LastUpdated); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func pluginFromMap(entry map[string]interface{}) (Plugin, error) {
	var p Plugin

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		// the PHP encoding emits numbers as strings.
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return Plugin{}, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(entry); err != nil {
		return Plugin{}, fmt.Errorf("failed to decode plugin record: %w", err)
	}

	return p, nil
}

// Merge overlays a detail record on a summary record of the same plugin.
// Detail fields win where present, summary fields fill the gaps.
func Merge(detail, summary Plugin) Plugin {
	merged := detail

	if merged.Name == "" {
		merged.Name = summary.Name
	}

	if merged.Slug == "" {
		merged.Slug = summary.Slug
	}

	if merged.Version == "" {
		merged.Version = summary.Version
	}

	if merged.Requires == "" {
		merged.Requires = summary.Requires
	}

	if merged.Tested == "" {
		merged.Tested = summary.Tested
	}

	if merged.Rating == 0 {
		merged.Rating = summary.Rating
	}

	if merged.NumRatings == 0 {
		merged.NumRatings = summary.NumRatings
	}

	if merged.Ratings == nil {
		merged.Ratings = summary.Ratings
	}

	if merged.ActiveInstalls == 0 {
		merged.ActiveInstalls = summary.ActiveInstalls
	}

	if merged.LastUpdated == "" {
		merged.LastUpdated = summary.LastUpdated
	}

	if merged.ShortDescription == "" {
		merged.ShortDescription = summary.ShortDescription
	}

	if merged.Sections == nil {
		merged.Sections = summary.Sections
	}

	if merged.Tags == nil {
		merged.Tags = summary.Tags
	}

	if merged.SupportThreads == 0 {
		merged.SupportThreads = summary.SupportThreads
	}

	if merged.SupportThreadsResolved == 0 {
		merged.SupportThreadsResolved = summary.SupportThreadsResolved
	}

	if merged.Homepage == "" {
		merged.Homepage = summary.Homepage
	}

	if merged.DownloadLink == "" {
		merged.DownloadLink = summary.DownloadLink
	}

	return merged
}

package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wppick/wppick/pkg/search"
	"github.com/wppick/wppick/pkg/wporg"
)

const (
	maxTitleLength   = 100
	minContentLength = 400
)

// Request carries everything a generator needs to draft an article.
type Request struct {
	Topic      string
	Plugin     wporg.Plugin
	References []search.Reference
}

// Draft is a generated article before publication.
type Draft struct {
	Title   string
	Content string
	Tags    []string
}

// Generator drafts an article for a plugin.
type Generator interface {
	Generate(ctx context.Context, req Request) (Draft, error)
}

// Validate checks a draft against the site formatting rules.
func Validate(draft Draft, plugin wporg.Plugin) error {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return errors.New("missing title")
	}

	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("title longer than %d characters", maxTitleLength)
	}

	if utf8.RuneCountInString(draft.Content) < minContentLength {
		return fmt.Errorf("content shorter than %d characters", minContentLength)
	}

	if plugin.Name != "" && !strings.Contains(draft.Content, plugin.Name) {
		return errors.New("content does not mention the plugin")
	}

	if strings.Contains(draft.Title, "{{") || strings.Contains(draft.Content, "{{") {
		return errors.New("unresolved template placeholder")
	}

	return nil
}

func tagsOf(plugin wporg.Plugin) []string {
	var tags []string

	for _, label := range plugin.Tags {
		tags = append(tags, label)
	}

	return tags
}

package wordpress

import (
	"html"
	"strings"

	"github.com/wppick/wppick/pkg/picker"
)

// titleSeparators split a post title from its trailing editorial segment
// ("All in One SEO – 設定方法" keeps "All in One SEO").
var titleSeparators = []string{" – ", " — ", " - ", " | ", "：", ": "}

// Exclusions derives the discovery exclusion set from recent posts:
// lowercased titles (plus their leading segment before a separator) as
// names, post slugs as slugs.
func Exclusions(posts []Post) picker.Exclusions {
	exclusions := picker.NewExclusions()

	for _, post := range posts {
		// rendered titles are HTML-escaped.
		title := html.UnescapeString(post.Title.Rendered)

		exclusions.AddName(title)

		for _, sep := range titleSeparators {
			if head, _, ok := strings.Cut(title, sep); ok {
				exclusions.AddName(head)
				break
			}
		}

		exclusions.AddSlug(post.Slug)
	}

	return exclusions
}

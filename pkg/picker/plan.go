package picker

import "strings"

// topicSuffix is the platform word the trend pipeline tends to append to
// topics; stripping it widens the search.
const topicSuffix = "プラグイン"

// fallbackQueries are generic terms tried after the topic itself, Japanese
// first to match the site's audience.
var fallbackQueries = []string{
	"セキュリティ",
	"バックアップ",
	"キャッシュ 高速化",
	"お問い合わせフォーム",
	"画像 最適化",
	"security",
	"backup",
	"cache",
	"contact form",
	"seo",
}

// buildQueryPlan expands a topic into the ordered list of search terms: the
// topic, the topic without the platform suffix word, then the fixed fallback
// catalog. Duplicates are dropped, first occurrence wins.
func buildQueryPlan(topic string) []string {
	var plan []string

	seen := make(map[string]struct{})

	add := func(query string) {
		query = strings.TrimSpace(query)
		if query == "" {
			return
		}

		if _, ok := seen[query]; ok {
			return
		}

		seen[query] = struct{}{}
		plan = append(plan, query)
	}

	add(topic)
	add(strings.TrimSuffix(strings.TrimSpace(topic), topicSuffix))

	for _, query := range fallbackQueries {
		add(query)
	}

	return plan
}

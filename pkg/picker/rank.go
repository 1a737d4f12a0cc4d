package picker

import (
	"sort"

	"github.com/wppick/wppick/pkg/wporg"
)

// Rank orders records by active installs descending, most recently updated
// first among ties. Records whose last_updated does not parse sort as the
// oldest possible value. The sort is stable.
func Rank(plugins []wporg.Plugin) []wporg.Plugin {
	ranked := make([]wporg.Plugin, len(plugins))
	copy(ranked, plugins)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ActiveInstalls != ranked[j].ActiveInstalls {
			return ranked[i].ActiveInstalls > ranked[j].ActiveInstalls
		}

		// zero time when unparseable.
		iUpdated, _ := ranked[i].UpdatedAt()
		jUpdated, _ := ranked[j].UpdatedAt()

		return iUpdated.After(jUpdated)
	})

	return ranked
}

package standing

import (
	"sort"
	"strings"
)

// DefaultQualifyingThirds is the number of third-placed teams that advance in the
// 48-team format.
const DefaultQualifyingThirds = 8

const thirdPlaceRank = 3

// SelectBestThirds ranks the third-placed row of every finished group with at
// least three teams and returns the best n. Exact ties keep table order.
func SelectBestThirds(tables []Table, n int) []TeamStats {
	pool := make([]TeamStats, 0, len(tables))
	for _, item := range tables {
		if !item.Finished {
			continue
		}
		row, ok := item.Position(thirdPlaceRank)
		if !ok {
			continue
		}
		pool = append(pool, row)
	}

	Sort(pool)
	if n < 0 {
		n = 0
	}
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

// QualifiedGroups lists the source groups of the qualifiers as sorted letters, e.g. "ABCDEFGH".
func QualifiedGroups(qualifiers []TeamStats) string {
	groups := make([]string, 0, len(qualifiers))
	for _, item := range qualifiers {
		groups = append(groups, item.Group)
	}
	sort.Strings(groups)
	return strings.Join(groups, "")
}

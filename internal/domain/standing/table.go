package standing

import "github.com/riskibarqy/worldcup-tracker/internal/domain/match"

// Table is the ranking of one group together with its completion state.
type Table struct {
	Group    string
	Finished bool
	Rows     []TeamStats
}

// Position returns the row at a 1-based rank.
func (t Table) Position(rank int) (TeamStats, bool) {
	if rank < 1 || rank > len(t.Rows) {
		return TeamStats{}, false
	}
	return t.Rows[rank-1], true
}

// BuildTables ranks every group that appears in the Group Stage, in the order the
// groups are first encountered. A group is finished only when each of its
// Group Stage matches is finished.
func BuildTables(matches []match.Match) []Table {
	order := make([]string, 0, 12)
	finished := make(map[string]bool, 12)

	for _, item := range matches {
		if item.Stage != match.StageGroup || item.Group == "" {
			continue
		}
		done, seen := finished[item.Group]
		if !seen {
			order = append(order, item.Group)
			done = true
		}
		finished[item.Group] = done && item.IsFinished()
	}

	out := make([]Table, 0, len(order))
	for _, group := range order {
		out = append(out, Table{
			Group:    group,
			Finished: finished[group],
			Rows:     Calculate(matches, group),
		})
	}
	return out
}

// AllFinished reports whether the whole group stage is complete. No groups means
// there is nothing to qualify from, which is not complete.
func AllFinished(tables []Table) bool {
	if len(tables) == 0 {
		return false
	}
	for _, item := range tables {
		if !item.Finished {
			return false
		}
	}
	return true
}

func TableByGroup(tables []Table) map[string]Table {
	out := make(map[string]Table, len(tables))
	for _, item := range tables {
		out[item.Group] = item
	}
	return out
}

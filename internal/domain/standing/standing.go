package standing

import (
	"sort"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// TeamStats is one derived table row. It is recomputed from scratch on every run.
type TeamStats struct {
	TeamID         string
	Group          string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

func (s *TeamStats) record(goalsFor, goalsAgainst int) {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst

	switch {
	case goalsFor > goalsAgainst:
		s.Won++
		s.Points += pointsWin
	case goalsFor == goalsAgainst:
		s.Drawn++
		s.Points += pointsDraw
	default:
		s.Lost++
	}
}

// Compare orders two rows by points, goal difference and goals for, all descending.
// It returns a negative number when a ranks ahead of b and zero when the rows tie.
func Compare(a, b TeamStats) int {
	if a.Points != b.Points {
		return b.Points - a.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return b.GoalDifference - a.GoalDifference
	}
	return b.GoalsFor - a.GoalsFor
}

// Sort ranks rows in place. Rows that tie on every criterion keep their input order.
func Sort(rows []TeamStats) {
	sort.SliceStable(rows, func(i, j int) bool {
		return Compare(rows[i], rows[j]) < 0
	})
}

// Calculate returns the ranked table of a group. Every concrete team seen in the
// group's fixtures gets a row even before it has played. Matches with a
// placeholder on either side contribute nothing.
func Calculate(matches []match.Match, group string) []TeamStats {
	rows := make([]TeamStats, 0, 4)
	index := make(map[string]int, 4)

	ensure := func(ref match.TeamRef) (int, bool) {
		if !ref.IsConcrete() {
			return 0, false
		}
		if i, ok := index[ref.TeamID]; ok {
			return i, true
		}
		index[ref.TeamID] = len(rows)
		rows = append(rows, TeamStats{TeamID: ref.TeamID, Group: group})
		return len(rows) - 1, true
	}

	for _, item := range matches {
		if item.Stage != match.StageGroup || item.Group != group {
			continue
		}
		home, homeOK := ensure(item.Home)
		away, awayOK := ensure(item.Away)
		if !homeOK || !awayOK || !item.IsFinished() {
			continue
		}
		rows[home].record(*item.HomeScore, *item.AwayScore)
		rows[away].record(*item.AwayScore, *item.HomeScore)
	}

	Sort(rows)
	return rows
}

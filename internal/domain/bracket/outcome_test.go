package bracket

import (
	"testing"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
)

func knockout(id string, stage match.Stage, home, away string) match.Match {
	return match.Match{
		ID:     id,
		Stage:  stage,
		Home:   match.ParseTeamRef(home),
		Away:   match.ParseTeamRef(away),
		Status: match.StatusScheduled,
	}
}

func finish(m match.Match, home, away int, penalties ...int) match.Match {
	m.Status = match.StatusFinished
	m.HomeScore = match.Int(home)
	m.AwayScore = match.Int(away)
	if len(penalties) == 2 {
		m.HomePenalty = match.Int(penalties[0])
		m.AwayPenalty = match.Int(penalties[1])
	}
	return m
}

func byID(matches []match.Match) map[string]match.Match {
	out := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		out[item.ID] = item
	}
	return out
}

func TestDecide(t *testing.T) {
	t.Parallel()

	base := knockout("m80", match.StageRoundOf32, "BRA", "ARG")
	cases := []struct {
		name   string
		item   match.Match
		winner string
		ok     bool
	}{
		{name: "home win", item: finish(base, 2, 1), winner: "BRA", ok: true},
		{name: "away win", item: finish(base, 0, 3), winner: "ARG", ok: true},
		{name: "home shootout", item: finish(base, 2, 2, 5, 4), winner: "BRA", ok: true},
		{name: "away shootout", item: finish(base, 0, 0, 2, 4), winner: "ARG", ok: true},
		{name: "level without shootout", item: finish(base, 1, 1)},
		{name: "level shootout", item: finish(base, 1, 1, 3, 3)},
		{name: "not played", item: base},
	}

	for _, tc := range cases {
		winner, loser, ok := Decide(tc.item)
		if ok != tc.ok {
			t.Fatalf("%s: unexpected decision: got=%t want=%t", tc.name, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if winner.TeamID != tc.winner {
			t.Fatalf("%s: unexpected winner: got=%s want=%s", tc.name, winner.TeamID, tc.winner)
		}
		if loser.TeamID == winner.TeamID {
			t.Fatalf("%s: loser equals winner", tc.name)
		}
	}
}

func TestResolveOutcomes_ShootoutWinnerAndLoser(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finish(knockout("m80", match.StageRoundOf32, "BRA", "ARG"), 2, 2, 5, 4),
		knockout("m90", match.StageRoundOf16, "W80", "W81"),
		knockout("m104", match.StageThirdPlace, "L80", "L102"),
	}

	res := ResolveOutcomes(matches)
	if res.Resolved != 2 {
		t.Fatalf("unexpected resolved count: got=%d want=%d", res.Resolved, 2)
	}

	got := byID(res.Matches)
	if got["m90"].Home.TeamID != "BRA" || got["m90"].Away.String() != "W81" {
		t.Fatalf("unexpected m90: got=%s vs %s", got["m90"].Home, got["m90"].Away)
	}
	if got["m104"].Home.TeamID != "ARG" {
		t.Fatalf("unexpected m104 home: got=%s want=ARG", got["m104"].Home)
	}
	if matches[1].Home.Kind != match.KindOutcome {
		t.Fatalf("input snapshot was modified")
	}
}

func TestResolveOutcomes_PropagatesThroughRounds(t *testing.T) {
	t.Parallel()

	// Round of 16 slots are filled before the quarter-final is examined, so
	// m97 feeds m101 in the same pass.
	matches := []match.Match{
		finish(knockout("m97", match.StageQuarterFinals, "W89", "W90"), 1, 0),
		knockout("m101", match.StageSemiFinals, "W97", "W98"),
		finish(knockout("m89", match.StageRoundOf16, "FRA", "ESP"), 0, 1),
		finish(knockout("m90", match.StageRoundOf16, "ENG", "GER"), 2, 0),
	}

	res := ResolveOutcomes(matches)
	got := byID(res.Matches)
	if got["m97"].Home.TeamID != "ESP" || got["m97"].Away.TeamID != "ENG" {
		t.Fatalf("unexpected m97: got=%s vs %s want=ESP vs ENG", got["m97"].Home, got["m97"].Away)
	}
	if got["m101"].Home.TeamID != "ESP" {
		t.Fatalf("unexpected m101 home: got=%s want=ESP", got["m101"].Home)
	}
	if res.Resolved != 3 {
		t.Fatalf("unexpected resolved count: got=%d want=%d", res.Resolved, 3)
	}
}

func TestResolveOutcomes_NoWinnerDiagnostic(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finish(knockout("m80", match.StageRoundOf32, "BRA", "ARG"), 1, 1),
		knockout("m90", match.StageRoundOf16, "W80", "W81"),
	}

	res := ResolveOutcomes(matches)
	if res.Resolved != 0 {
		t.Fatalf("unexpected resolved count: got=%d want=%d", res.Resolved, 0)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Reason != ReasonNoWinner {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics)
	}
	if res.Diagnostics[0].Severity != SeverityIntegrity {
		t.Fatalf("unexpected severity: got=%s want=%s", res.Diagnostics[0].Severity, SeverityIntegrity)
	}
}

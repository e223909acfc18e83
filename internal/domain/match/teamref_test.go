package match

import "testing"

func TestParseTeamRef(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw    string
		kind   RefKind
		rank   int
		groups string
		source string
		out    OutcomeKind
		team   string
	}{
		{raw: "MEX", kind: KindConcrete, team: "MEX"},
		{raw: "1A", kind: KindGroupRank, rank: 1, groups: "A"},
		{raw: "2L", kind: KindGroupRank, rank: 2, groups: "L"},
		{raw: "3BCDEFGH", kind: KindGroupRank, rank: 3, groups: "BCDEFGH"},
		{raw: "W80", kind: KindOutcome, source: "m80", out: Winner},
		{raw: "L101", kind: KindOutcome, source: "m101", out: Loser},
		{raw: "TBD_A", kind: KindPending},
		{raw: "", kind: KindPending},
		{raw: "WAL", kind: KindConcrete, team: "WAL"},
	}

	for _, tc := range cases {
		got := ParseTeamRef(tc.raw)
		if got.Kind != tc.kind {
			t.Fatalf("unexpected kind for %q: got=%s want=%s", tc.raw, got.Kind, tc.kind)
		}
		if got.Rank != tc.rank || got.Groups != tc.groups {
			t.Fatalf("unexpected group rank for %q: got=%d%s want=%d%s", tc.raw, got.Rank, got.Groups, tc.rank, tc.groups)
		}
		if got.SourceMatchID != tc.source || got.Outcome != tc.out {
			t.Fatalf("unexpected outcome for %q: got=%s/%d want=%s/%d", tc.raw, got.SourceMatchID, got.Outcome, tc.source, tc.out)
		}
		if got.TeamID != tc.team {
			t.Fatalf("unexpected team for %q: got=%s want=%s", tc.raw, got.TeamID, tc.team)
		}
		if got.String() != tc.raw {
			t.Fatalf("unexpected round trip: got=%q want=%q", got.String(), tc.raw)
		}
	}
}

func TestTeamRef_Predicates(t *testing.T) {
	t.Parallel()

	third := ParseTeamRef("3CEFHI")
	if !third.IsThirdPlace() {
		t.Fatalf("expected %s to be a third-place slot", third)
	}
	if !third.AllowsGroup("E") || third.AllowsGroup("D") || third.AllowsGroup("") {
		t.Fatalf("unexpected allowed groups for %s", third)
	}
	if ParseTeamRef("1A").IsThirdPlace() {
		t.Fatalf("1A must not be a third-place slot")
	}

	winner := ParseTeamRef("W80")
	if !winner.RefersTo("m80") || !winner.RefersTo("80") || winner.RefersTo("m8") {
		t.Fatalf("unexpected source matching for %s", winner)
	}
	if ParseTeamRef("MEX").RefersTo("m80") {
		t.Fatalf("concrete refs never refer to a match")
	}

	if !Concrete("MEX").IsConcrete() || Concrete("").IsConcrete() {
		t.Fatalf("unexpected concrete detection")
	}
	if !ParseTeamRef("W80").Equal(WinnerOf("m80")) || ParseTeamRef("W80").Equal(LoserOf("m80")) {
		t.Fatalf("unexpected ref equality")
	}
}

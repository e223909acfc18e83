package standing

import "testing"

func thirdRow(group, team string, points, gd, gf int) TeamStats {
	return TeamStats{TeamID: team, Group: group, Points: points, GoalDifference: gd, GoalsFor: gf}
}

func tableWithThird(group string, finished bool, third TeamStats) Table {
	return Table{
		Group:    group,
		Finished: finished,
		Rows: []TeamStats{
			{TeamID: group + "1", Group: group, Points: 9},
			{TeamID: group + "2", Group: group, Points: 6},
			third,
			{TeamID: group + "4", Group: group},
		},
	}
}

func TestSelectBestThirds(t *testing.T) {
	t.Parallel()

	tables := []Table{
		tableWithThird("A", true, thirdRow("A", "RSA", 3, -1, 2)),
		tableWithThird("B", true, thirdRow("B", "SUI", 4, 0, 3)),
		tableWithThird("C", true, thirdRow("C", "SCO", 4, 1, 2)),
		tableWithThird("D", false, thirdRow("D", "PAR", 7, 5, 8)),
		tableWithThird("E", true, thirdRow("E", "CIV", 4, 1, 4)),
		{Group: "F", Finished: true, Rows: []TeamStats{{TeamID: "NED", Group: "F"}, {TeamID: "JPN", Group: "F"}}},
	}

	got := SelectBestThirds(tables, 3)
	want := []string{"CIV", "SCO", "SUI"}
	if len(got) != len(want) {
		t.Fatalf("unexpected qualifier count: got=%d want=%d", len(got), len(want))
	}
	for i, row := range got {
		if row.TeamID != want[i] {
			t.Fatalf("unexpected qualifier %d: got=%s want=%s", i+1, row.TeamID, want[i])
		}
	}
	if groups := QualifiedGroups(got); groups != "BCE" {
		t.Fatalf("unexpected qualified groups: got=%s want=%s", groups, "BCE")
	}
}

func TestSelectBestThirds_ExactTieKeepsTableOrder(t *testing.T) {
	t.Parallel()

	tables := []Table{
		tableWithThird("G", true, thirdRow("G", "EGY", 4, 0, 3)),
		tableWithThird("H", true, thirdRow("H", "URU", 4, 0, 3)),
	}

	got := SelectBestThirds(tables, 1)
	if len(got) != 1 || got[0].TeamID != "EGY" {
		t.Fatalf("unexpected qualifier: got=%v want=EGY", got)
	}
	if got := SelectBestThirds(tables, 0); len(got) != 0 {
		t.Fatalf("unexpected qualifiers for n=0: got=%d", len(got))
	}
}

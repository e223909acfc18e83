package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/standing"
)

func writeStandings(out io.Writer, tables []standing.Table, thirds []standing.TeamStats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	for _, table := range tables {
		state := "in progress"
		if table.Finished {
			state = "final"
		}
		fmt.Fprintf(w, "Group %s (%s)\n", table.Group, state)
		fmt.Fprintln(w, "#\tTeam\tP\tW\tD\tL\tGF\tGA\tGD\tPts")
		for i, row := range table.Rows {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\n",
				i+1, row.TeamID, row.Played, row.Won, row.Drawn, row.Lost,
				row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.Points,
			)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Best third-placed teams (%s)\n", standing.QualifiedGroups(thirds))
	for i, row := range thirds {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d pts\t%+d\t%d GF\n", i+1, row.Group, row.TeamID, row.Points, row.GoalDifference, row.GoalsFor)
	}

	return w.Flush()
}

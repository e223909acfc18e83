package bracket

import (
	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/standing"
)

type Options struct {
	QualifyingThirds int
}

func DefaultOptions() Options {
	return Options{QualifyingThirds: standing.DefaultQualifyingThirds}
}

// Resolve runs the full bracket pass over a snapshot: status repair, standings,
// best thirds, group-rank slots and finally outcome slots. The input is not modified.
func Resolve(matches []match.Match, opts Options) Result {
	if opts.QualifyingThirds <= 0 {
		opts.QualifyingThirds = standing.DefaultQualifyingThirds
	}

	normalized, repairs := match.NormalizeStatuses(matches)
	tables := standing.BuildTables(normalized)
	qualifiers := standing.SelectBestThirds(tables, opts.QualifyingThirds)

	ranks := ResolveGroupRanks(normalized, tables, qualifiers)
	outcomes := ResolveOutcomes(ranks.Matches)

	diagnostics := make([]Diagnostic, 0, len(ranks.Diagnostics)+len(outcomes.Diagnostics))
	diagnostics = append(diagnostics, ranks.Diagnostics...)
	diagnostics = append(diagnostics, outcomes.Diagnostics...)

	return Result{
		Matches:       outcomes.Matches,
		Tables:        tables,
		Qualifiers:    qualifiers,
		Resolved:      ranks.Resolved + outcomes.Resolved,
		StatusRepairs: repairs,
		Diagnostics:   diagnostics,
	}
}

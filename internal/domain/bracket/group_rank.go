package bracket

import (
	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/standing"
)

// ResolveGroupRanks fills 1X/2X slots from finished groups and third-place slots
// from the qualifier list. Third-place slots are only attempted once every group
// is finished. Slots are visited in match order, home before away, and each
// qualifier is handed out at most once. Group Stage matches are never touched.
func ResolveGroupRanks(matches []match.Match, tables []standing.Table, qualifiers []standing.TeamStats) Result {
	out := match.CloneAll(matches)
	res := Result{Tables: tables, Qualifiers: qualifiers}

	byGroup := standing.TableByGroup(tables)
	groupStageDone := standing.AllFinished(tables)
	used := make(map[string]struct{}, len(qualifiers))

	resolve := func(item match.Match, side Side, ref match.TeamRef) (match.TeamRef, bool) {
		diag := func(reason Reason, severity Severity) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				MatchID:  item.ID,
				Side:     side,
				Ref:      ref.String(),
				Reason:   reason,
				Severity: severity,
			})
		}

		if ref.IsThirdPlace() {
			if !groupStageDone {
				diag(ReasonGroupStageIncomplete, SeverityNotReady)
				return ref, false
			}
			for _, candidate := range qualifiers {
				if _, taken := used[candidate.TeamID]; taken || !ref.AllowsGroup(candidate.Group) {
					continue
				}
				used[candidate.TeamID] = struct{}{}
				return match.Concrete(candidate.TeamID), true
			}
			diag(ReasonNoEligibleQualifier, SeverityIntegrity)
			return ref, false
		}

		if len(ref.Groups) != 1 {
			diag(ReasonMalformedPlaceholder, SeverityIntegrity)
			return ref, false
		}
		table, ok := byGroup[ref.Groups]
		if !ok {
			diag(ReasonUnknownGroup, SeverityIntegrity)
			return ref, false
		}
		if !table.Finished {
			diag(ReasonGroupIncomplete, SeverityNotReady)
			return ref, false
		}
		row, ok := table.Position(ref.Rank)
		if !ok {
			diag(ReasonRankUnavailable, SeverityIntegrity)
			return ref, false
		}
		return match.Concrete(row.TeamID), true
	}

	for i := range out {
		if !out[i].Stage.IsKnockout() {
			continue
		}
		if out[i].Home.Kind == match.KindGroupRank {
			if ref, ok := resolve(out[i], SideHome, out[i].Home); ok {
				out[i].Home = ref
				res.Resolved++
			}
		}
		if out[i].Away.Kind == match.KindGroupRank {
			if ref, ok := resolve(out[i], SideAway, out[i].Away); ok {
				out[i].Away = ref
				res.Resolved++
			}
		}
	}

	res.Matches = out
	return res
}

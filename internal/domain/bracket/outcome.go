package bracket

import "github.com/riskibarqy/worldcup-tracker/internal/domain/match"

// Decide returns the winner and loser of a finished match. A level score is
// decided by penalties; without them there is no winner.
func Decide(m match.Match) (match.TeamRef, match.TeamRef, bool) {
	if !m.IsFinished() {
		return match.TeamRef{}, match.TeamRef{}, false
	}

	home, away := *m.HomeScore, *m.AwayScore
	if home == away {
		if !m.HasPenalties() || *m.HomePenalty == *m.AwayPenalty {
			return match.TeamRef{}, match.TeamRef{}, false
		}
		home, away = *m.HomePenalty, *m.AwayPenalty
	}

	if home > away {
		return m.Home, m.Away, true
	}
	return m.Away, m.Home, true
}

// ResolveOutcomes propagates winners and losers of finished knockout matches
// round by round, so a slot filled from a Round of 32 result can feed the
// Round of 16 result in the same pass. Third place and Final feed nothing.
func ResolveOutcomes(matches []match.Match) Result {
	out := match.CloneAll(matches)
	res := Result{}

	for _, stage := range match.KnockoutSourceStages() {
		for i := range out {
			source := out[i]
			if source.Stage != stage || !source.IsFinished() {
				continue
			}
			if !source.Home.IsConcrete() || !source.Away.IsConcrete() {
				continue
			}
			if !referenced(out, source.ID) {
				continue
			}

			winner, loser, ok := Decide(source)
			if !ok {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					MatchID:  source.ID,
					Ref:      match.WinnerOf(source.ID).String(),
					Reason:   ReasonNoWinner,
					Severity: SeverityIntegrity,
				})
				continue
			}

			res.Resolved += substitute(out, source.ID, match.Winner, winner)
			res.Resolved += substitute(out, source.ID, match.Loser, loser)
		}
	}

	res.Matches = out
	return res
}

func referenced(matches []match.Match, sourceID string) bool {
	for _, item := range matches {
		if item.Home.RefersTo(sourceID) || item.Away.RefersTo(sourceID) {
			return true
		}
	}
	return false
}

func substitute(matches []match.Match, sourceID string, kind match.OutcomeKind, team match.TeamRef) int {
	n := 0
	for i := range matches {
		if matches[i].Home.RefersTo(sourceID) && matches[i].Home.Outcome == kind {
			matches[i].Home = team
			n++
		}
		if matches[i].Away.RefersTo(sourceID) && matches[i].Away.Outcome == kind {
			matches[i].Away = team
			n++
		}
	}
	return n
}

package bracket

import (
	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/standing"
)

type Reason string

const (
	// ReasonGroupIncomplete means the group feeding a 1X/2X slot is still being played.
	ReasonGroupIncomplete Reason = "group_incomplete"
	// ReasonGroupStageIncomplete means third-place slots wait for every group to finish.
	ReasonGroupStageIncomplete Reason = "group_stage_incomplete"
	ReasonNoEligibleQualifier  Reason = "no_eligible_qualifier"
	ReasonUnknownGroup         Reason = "unknown_group"
	ReasonRankUnavailable      Reason = "rank_unavailable"
	ReasonMalformedPlaceholder Reason = "malformed_placeholder"
	ReasonNoWinner             Reason = "no_winner"
)

type Severity string

const (
	// SeverityNotReady marks a slot that a future run can still fill.
	SeverityNotReady Severity = "not_ready"
	// SeverityIntegrity marks a slot that cannot be filled although its inputs are complete.
	SeverityIntegrity Severity = "integrity"
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Diagnostic describes one placeholder left unresolved by a pass.
type Diagnostic struct {
	MatchID  string
	Side     Side
	Ref      string
	Reason   Reason
	Severity Severity
}

// Result is the output snapshot of a resolver pass.
type Result struct {
	Matches       []match.Match
	Tables        []standing.Table
	Qualifiers    []standing.TeamStats
	Resolved      int
	StatusRepairs int
	Diagnostics   []Diagnostic
}

func (r Result) Changed() bool {
	return r.Resolved > 0 || r.StatusRepairs > 0
}

// NotReady reports whether any slot is waiting for results that are not in yet.
func (r Result) NotReady() bool {
	for _, item := range r.Diagnostics {
		if item.Severity == SeverityNotReady {
			return true
		}
	}
	return false
}

func (r Result) IntegrityWarnings() []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, item := range r.Diagnostics {
		if item.Severity == SeverityIntegrity {
			out = append(out, item)
		}
	}
	return out
}

package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

type Stage string

const (
	StageGroup         Stage = "Group Stage"
	StageRoundOf32     Stage = "Round of 32"
	StageRoundOf16     Stage = "Round of 16"
	StageQuarterFinals Stage = "Quarter-finals"
	StageSemiFinals    Stage = "Semi-finals"
	StageThirdPlace    Stage = "Third place"
	StageFinal         Stage = "Final"
)

var AllStages = []Stage{
	StageGroup,
	StageRoundOf32,
	StageRoundOf16,
	StageQuarterFinals,
	StageSemiFinals,
	StageThirdPlace,
	StageFinal,
}

func (s Stage) IsKnockout() bool {
	return s != StageGroup
}

func (s Stage) Valid() bool {
	for _, item := range AllStages {
		if item == s {
			return true
		}
	}
	return false
}

// KnockoutSourceStages lists the rounds whose results feed later rounds, in play order.
// Third place and Final are terminal.
func KnockoutSourceStages() []Stage {
	return []Stage{StageRoundOf32, StageRoundOf16, StageQuarterFinals, StageSemiFinals}
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
)

func NormalizeStatus(value string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusLive:
		return StatusLive
	case StatusFinished:
		return StatusFinished
	default:
		return StatusScheduled
	}
}

var ErrInvariantViolation = errors.New("match invariant violation")

// Match represents one record of the match store.
type Match struct {
	ID              string
	KickoffAt       time.Time
	Group           string
	Stage           Stage
	Home            TeamRef
	Away            TeamRef
	VenueID         string
	Status          Status
	HomeScore       *int
	AwayScore       *int
	HomePenalty     *int
	AwayPenalty     *int
	ProviderMatchID int64
}

func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) HasPenalties() bool {
	return m.HomePenalty != nil && m.AwayPenalty != nil
}

// IsFinished reports whether the match can be used as a result source.
func (m Match) IsFinished() bool {
	return m.Status == StatusFinished && m.HasScore()
}

func (m Match) IsLevel() bool {
	return m.HasScore() && *m.HomeScore == *m.AwayScore
}

// Clone returns a copy that shares no score pointers with m.
func (m Match) Clone() Match {
	out := m
	out.HomeScore = cloneInt(m.HomeScore)
	out.AwayScore = cloneInt(m.AwayScore)
	out.HomePenalty = cloneInt(m.HomePenalty)
	out.AwayPenalty = cloneInt(m.AwayPenalty)
	return out
}

func CloneAll(matches []Match) []Match {
	out := make([]Match, len(matches))
	for i, item := range matches {
		out[i] = item.Clone()
	}
	return out
}

// Validate checks the score/status invariants of a single record.
func Validate(m Match) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.Wrap(ErrInvariantViolation, "match id is required")
	}
	if m.Status == StatusFinished && !m.HasScore() {
		return errors.Wrapf(ErrInvariantViolation, "match=%s is finished without both scores", m.ID)
	}
	if m.HomePenalty != nil || m.AwayPenalty != nil {
		if !m.HasPenalties() {
			return errors.Wrapf(ErrInvariantViolation, "match=%s carries a single penalty score", m.ID)
		}
		if !m.Stage.IsKnockout() {
			return errors.Wrapf(ErrInvariantViolation, "match=%s has penalties in the group stage", m.ID)
		}
		if !m.IsLevel() {
			return errors.Wrapf(ErrInvariantViolation, "match=%s has penalties without a level score", m.ID)
		}
	}
	return nil
}

// NormalizeStatuses promotes matches that carry both scores to finished and
// returns the repaired snapshot together with the number of repaired records.
func NormalizeStatuses(matches []Match) ([]Match, int) {
	out := CloneAll(matches)
	repaired := 0
	for i := range out {
		if out[i].Status != StatusFinished && out[i].HasScore() {
			out[i].Status = StatusFinished
			repaired++
		}
	}
	return out, repaired
}

// Describe renders a short human readable summary used in logs.
func Describe(m Match) string {
	score := "-"
	if m.HasScore() {
		score = fmt.Sprintf("%d-%d", *m.HomeScore, *m.AwayScore)
	}
	if m.HasPenalties() {
		score += fmt.Sprintf(" (%d-%d pens)", *m.HomePenalty, *m.AwayPenalty)
	}
	return fmt.Sprintf("%s: %s %s %s", m.ID, m.Home, score, m.Away)
}

func Int(value int) *int {
	return &value
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

package scorefeed

import "time"

// PenaltyShootoutEvent is the event type that carries the running shootout score.
const PenaltyShootoutEvent = "PenaltyShootout"

type Side struct {
	ID    int64
	Name  string
	Score *int
}

// Match is a provider fixture as reported for one day.
type Match struct {
	ID         int64
	LeagueID   int64
	Home       Side
	Away       Side
	KickoffAt  time.Time
	Started    bool
	Finished   bool
	Cancelled  bool
	ScoreText  string
	ReasonText string
}

type PenaltyScore struct {
	Home int
	Away int
}

type Event struct {
	Type         string
	Minute       int
	PenaltyScore *PenaltyScore
}

type Details struct {
	MatchID int64
	Events  []Event
}

// FinalShootoutScore returns the last running shootout score in the event stream.
func (d Details) FinalShootoutScore() (PenaltyScore, bool) {
	for i := len(d.Events) - 1; i >= 0; i-- {
		item := d.Events[i]
		if item.Type == PenaltyShootoutEvent && item.PenaltyScore != nil {
			return *item.PenaltyScore, true
		}
	}
	return PenaltyScore{}, false
}

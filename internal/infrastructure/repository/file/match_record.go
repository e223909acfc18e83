package file

import (
	"strings"
	"time"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
)

// matchRecord is the on-disk shape of one match. Field names are shared with the
// site that renders the schedule, so they must not change.
type matchRecord struct {
	ID               string `json:"id" validate:"required"`
	Date             string `json:"date" validate:"required"`
	Group            string `json:"group,omitempty"`
	Stage            string `json:"stage" validate:"required,stage"`
	HomeTeamID       string `json:"homeTeamId"`
	AwayTeamID       string `json:"awayTeamId"`
	VenueID          string `json:"venueId"`
	Status           string `json:"status" validate:"required,oneof=scheduled live finished"`
	HomeScore        *int   `json:"homeScore"`
	AwayScore        *int   `json:"awayScore"`
	HomePenaltyScore *int   `json:"homePenaltyScore"`
	AwayPenaltyScore *int   `json:"awayPenaltyScore"`
	FotmobMatchID    *int64 `json:"fotmobMatchId,omitempty" validate:"omitempty,gt=0"`
}

var kickoffLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseKickoff(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	for _, layout := range kickoffLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func (r matchRecord) toDomain() (match.Match, bool) {
	kickoff, ok := parseKickoff(r.Date)
	if !ok {
		return match.Match{}, false
	}
	out := match.Match{
		ID:          strings.TrimSpace(r.ID),
		KickoffAt:   kickoff,
		Group:       strings.TrimSpace(r.Group),
		Stage:       match.Stage(r.Stage),
		Home:        match.ParseTeamRef(r.HomeTeamID),
		Away:        match.ParseTeamRef(r.AwayTeamID),
		VenueID:     r.VenueID,
		Status:      match.NormalizeStatus(r.Status),
		HomeScore:   r.HomeScore,
		AwayScore:   r.AwayScore,
		HomePenalty: r.HomePenaltyScore,
		AwayPenalty: r.AwayPenaltyScore,
	}
	if r.FotmobMatchID != nil {
		out.ProviderMatchID = *r.FotmobMatchID
	}
	return out.Clone(), true
}

func fromDomain(m match.Match) matchRecord {
	out := matchRecord{
		ID:               m.ID,
		Date:             m.KickoffAt.Format(time.RFC3339),
		Group:            m.Group,
		Stage:            string(m.Stage),
		HomeTeamID:       m.Home.String(),
		AwayTeamID:       m.Away.String(),
		VenueID:          m.VenueID,
		Status:           string(m.Status),
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		HomePenaltyScore: m.HomePenalty,
		AwayPenaltyScore: m.AwayPenalty,
	}
	if m.ProviderMatchID > 0 {
		id := m.ProviderMatchID
		out.FotmobMatchID = &id
	}
	return out
}

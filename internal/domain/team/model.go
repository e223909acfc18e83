package team

import (
	"fmt"
	"strings"
)

// ProviderTeam links a local team id to the score provider's team.
type ProviderTeam struct {
	LocalID    string
	ProviderID int64
	Name       string
}

// Mapping is the provider mapping document: the provider league and the
// team id translation table keyed by local team id. A zero LeagueID defers to
// the configured league.
type Mapping struct {
	LeagueID   int64
	LeagueName string
	Teams      map[string]ProviderTeam
}

func (m Mapping) Validate() error {
	if m.LeagueID < 0 {
		return fmt.Errorf("mapping league id must not be negative")
	}
	if len(m.Teams) == 0 {
		return fmt.Errorf("mapping has no teams")
	}

	seen := make(map[int64]string, len(m.Teams))
	for localID, item := range m.Teams {
		if strings.TrimSpace(localID) == "" {
			return fmt.Errorf("mapping contains an empty local team id")
		}
		if item.ProviderID <= 0 {
			return fmt.Errorf("mapping team=%s has no provider id", localID)
		}
		if other, ok := seen[item.ProviderID]; ok {
			return fmt.Errorf("provider team id=%d mapped twice (%s, %s)", item.ProviderID, other, localID)
		}
		seen[item.ProviderID] = localID
	}

	return nil
}

// ReverseIndex builds the provider id -> local id lookup.
func (m Mapping) ReverseIndex() map[int64]string {
	out := make(map[int64]string, len(m.Teams))
	for localID, item := range m.Teams {
		out[item.ProviderID] = localID
	}
	return out
}

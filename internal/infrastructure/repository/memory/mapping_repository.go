package memory

import (
	"context"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/team"
)

type MappingRepository struct {
	mapping team.Mapping
}

var _ team.MappingRepository = (*MappingRepository)(nil)

func NewMappingRepository(mapping team.Mapping) *MappingRepository {
	return &MappingRepository{mapping: mapping}
}

func (r *MappingRepository) Load(_ context.Context) (team.Mapping, error) {
	out := team.Mapping{
		LeagueID:   r.mapping.LeagueID,
		LeagueName: r.mapping.LeagueName,
		Teams:      make(map[string]team.ProviderTeam, len(r.mapping.Teams)),
	}
	for key, value := range r.mapping.Teams {
		out.Teams[key] = value
	}
	return out, nil
}

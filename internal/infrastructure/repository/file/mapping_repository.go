package file

import (
	"context"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/team"
)

type mappingDocument struct {
	LeagueID      int64                        `json:"leagueId" validate:"gte=0"`
	LeagueName    string                       `json:"leagueName"`
	TeamIDMapping map[string]mappingTeamRecord `json:"teamIdMapping" validate:"required,min=1,dive,keys,required,endkeys"`
}

type mappingTeamRecord struct {
	FotmobID int64  `json:"fotmobId" validate:"required,gt=0"`
	Name     string `json:"name"`
}

// MappingRepository reads the provider team mapping file.
type MappingRepository struct {
	path     string
	validate *validator.Validate
}

var _ team.MappingRepository = (*MappingRepository)(nil)

func NewMappingRepository(path string) *MappingRepository {
	return &MappingRepository{path: path, validate: validator.New()}
}

func (r *MappingRepository) Load(ctx context.Context) (team.Mapping, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return team.Mapping{}, errors.Wrapf(team.ErrMappingUnavailable, "read %s: %v", r.path, err)
	}

	var doc mappingDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return team.Mapping{}, errors.Wrapf(team.ErrMappingUnavailable, "decode %s: %v", r.path, err)
	}
	if err := r.validate.StructCtx(ctx, doc); err != nil {
		return team.Mapping{}, errors.Wrapf(team.ErrMappingUnavailable, "validate %s: %v", r.path, err)
	}
	for localID, item := range doc.TeamIDMapping {
		if err := r.validate.StructCtx(ctx, item); err != nil {
			return team.Mapping{}, errors.Wrapf(team.ErrMappingUnavailable, "team=%s: %v", localID, err)
		}
	}

	out := team.Mapping{
		LeagueID:   doc.LeagueID,
		LeagueName: strings.TrimSpace(doc.LeagueName),
		Teams:      make(map[string]team.ProviderTeam, len(doc.TeamIDMapping)),
	}
	for localID, item := range doc.TeamIDMapping {
		id := strings.TrimSpace(localID)
		out.Teams[id] = team.ProviderTeam{
			LocalID:    id,
			ProviderID: item.FotmobID,
			Name:       strings.TrimSpace(item.Name),
		}
	}
	if err := out.Validate(); err != nil {
		return team.Mapping{}, errors.Wrapf(team.ErrMappingUnavailable, "%s: %v", r.path, err)
	}

	return out, nil
}

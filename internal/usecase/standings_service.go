package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/standing"
)

type StandingsService struct {
	matchRepo        match.Repository
	qualifyingThirds int
}

func NewStandingsService(matchRepo match.Repository, qualifyingThirds int) *StandingsService {
	if qualifyingThirds <= 0 {
		qualifyingThirds = standing.DefaultQualifyingThirds
	}
	return &StandingsService{
		matchRepo:        matchRepo,
		qualifyingThirds: qualifyingThirds,
	}
}

// Tables returns the group tables and the current best third-placed teams.
// Thirds are only selected from finished groups.
func (s *StandingsService) Tables(ctx context.Context) ([]standing.Table, []standing.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Tables")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load match store: %w", ErrSetup, err)
	}

	normalized, _ := match.NormalizeStatuses(matches)
	tables := standing.BuildTables(normalized)
	return tables, standing.SelectBestThirds(tables, s.qualifyingThirds), nil
}

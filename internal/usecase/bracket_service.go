package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/bracket"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/standing"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
)

type BracketInput struct {
	// DryRun resolves the bracket and reports the result without writing the store.
	DryRun bool
}

type BracketResult struct {
	Matches         int
	Resolved        int
	StatusRepairs   int
	QualifiedGroups string
	Diagnostics     []bracket.Diagnostic
	NotReady        bool
	Written         bool
}

type BracketConfig struct {
	QualifyingThirds int
}

type BracketService struct {
	matchRepo match.Repository
	cfg       BracketConfig
	logger    *logging.Logger
}

func NewBracketService(matchRepo match.Repository, cfg BracketConfig, logger *logging.Logger) *BracketService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.QualifyingThirds <= 0 {
		cfg.QualifyingThirds = standing.DefaultQualifyingThirds
	}

	return &BracketService{
		matchRepo: matchRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run resolves every placeholder whose inputs are complete and persists the
// snapshot when anything changed.
func (s *BracketService) Run(ctx context.Context, input BracketInput) (BracketResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.Run")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return BracketResult{}, fmt.Errorf("%w: load match store: %w", ErrSetup, err)
	}
	s.logger.InfoContext(ctx, "match store loaded", "matches", len(matches))

	res := bracket.Resolve(matches, bracket.Options{QualifyingThirds: s.cfg.QualifyingThirds})
	out := BracketResult{
		Matches:         len(res.Matches),
		Resolved:        res.Resolved,
		StatusRepairs:   res.StatusRepairs,
		QualifiedGroups: standing.QualifiedGroups(res.Qualifiers),
		Diagnostics:     res.Diagnostics,
		NotReady:        res.NotReady(),
	}

	if res.StatusRepairs > 0 {
		s.logger.WarnContext(ctx, "scored matches promoted to finished", "count", res.StatusRepairs)
	}
	if len(res.Qualifiers) > 0 {
		s.logger.InfoContext(ctx, "best third-placed teams selected",
			"count", len(res.Qualifiers),
			"groups", out.QualifiedGroups,
		)
	}
	for _, item := range res.Diagnostics {
		args := []any{
			"match_id", item.MatchID,
			"side", string(item.Side),
			"ref", item.Ref,
			"reason", string(item.Reason),
		}
		if item.Severity == bracket.SeverityIntegrity {
			s.logger.WarnContext(ctx, "placeholder cannot be resolved", args...)
			continue
		}
		s.logger.InfoContext(ctx, "placeholder not ready", args...)
	}

	if !res.Changed() {
		s.logger.InfoContext(ctx, "bracket already up to date", "not_ready", out.NotReady)
		return out, nil
	}
	if input.DryRun {
		s.logger.InfoContext(ctx, "[dry run] would write bracket updates",
			"resolved", res.Resolved,
			"status_repairs", res.StatusRepairs,
		)
		return out, nil
	}

	if err := s.matchRepo.ReplaceAll(ctx, res.Matches); err != nil {
		return out, fmt.Errorf("write resolved bracket: %w", err)
	}
	out.Written = true
	s.logger.InfoContext(ctx, "bracket updated",
		"resolved", res.Resolved,
		"status_repairs", res.StatusRepairs,
		"not_ready", out.NotReady,
	)

	return out, nil
}

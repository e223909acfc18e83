package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/scorefeed"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/team"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
)

const syncDateLayout = "20060102"

type SyncInput struct {
	// Date is an explicit provider date in YYYYMMDD form. Empty means today and
	// yesterday inside the tournament window.
	Date   string
	DryRun bool
}

type SyncAction string

const (
	SyncActionUpdated SyncAction = "updated"
	SyncActionSkipped SyncAction = "skipped"
	SyncActionError   SyncAction = "error"
)

const (
	syncReasonNotFinished        = "not_finished"
	syncReasonCancelled          = "cancelled"
	syncReasonUnmappedTeam       = "unmapped_team"
	syncReasonNoLocalMatch       = "no_local_match"
	syncReasonAmbiguous          = "ambiguous_local_match"
	syncReasonTeamMismatch       = "pinned_team_mismatch"
	syncReasonMissingScore       = "missing_score"
	syncReasonDetailsUnavailable = "details_unavailable"
	syncReasonAlreadySynced      = "already_synced"
	syncReasonFetchFailed        = "fetch_failed"
)

// SyncOutcome records what happened to one provider match (or one date when
// the whole fetch failed).
type SyncOutcome struct {
	Date            string
	ProviderMatchID int64
	MatchID         string
	Action          SyncAction
	Reason          string
	Description     string
}

type SyncResult struct {
	Dates            []string
	Updated          int
	Skipped          int
	Errors           int
	Matches          []string
	Outcomes         []SyncOutcome
	BracketTriggered bool
	BracketErr       error
}

func (r *SyncResult) record(outcome SyncOutcome) {
	switch outcome.Action {
	case SyncActionUpdated:
		r.Updated++
		r.Matches = append(r.Matches, outcome.Description)
	case SyncActionSkipped:
		r.Skipped++
	default:
		r.Errors++
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

// BracketTrigger runs the bracket resolver after scores were written.
type BracketTrigger interface {
	Run(ctx context.Context, input BracketInput) (BracketResult, error)
}

type ScoreSyncConfig struct {
	// LeagueID is used when the mapping document does not name a league.
	LeagueID        int64
	TournamentStart time.Time
	TournamentEnd   time.Time
	Location        *time.Location
}

type ScoreSyncService struct {
	provider    scorefeed.Provider
	matchRepo   match.Repository
	mappingRepo team.MappingRepository
	bracket     BracketTrigger
	cfg         ScoreSyncConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewScoreSyncService(
	provider scorefeed.Provider,
	matchRepo match.Repository,
	mappingRepo team.MappingRepository,
	bracket BracketTrigger,
	cfg ScoreSyncConfig,
	logger *logging.Logger,
) *ScoreSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &ScoreSyncService{
		provider:    provider,
		matchRepo:   matchRepo,
		mappingRepo: mappingRepo,
		bracket:     bracket,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// syncRun carries the per-run lookup state.
type syncRun struct {
	leagueID int64
	reverse  map[int64]string
	matches  []match.Match
	dryRun   bool
}

func (s *ScoreSyncService) Run(ctx context.Context, input SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreSyncService.Run")
	defer span.End()

	dates, err := s.syncDates(input.Date)
	if err != nil {
		return SyncResult{}, err
	}
	if input.DryRun {
		s.logger.WarnContext(ctx, "running in dry run mode, no changes will be saved")
	}

	mapping, err := s.mappingRepo.Load(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("%w: load provider mapping: %w", ErrSetup, err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("%w: load match store: %w", ErrSetup, err)
	}

	run := &syncRun{
		leagueID: s.cfg.LeagueID,
		reverse:  mapping.ReverseIndex(),
		matches:  match.CloneAll(matches),
		dryRun:   input.DryRun,
	}
	if mapping.LeagueID > 0 {
		run.leagueID = mapping.LeagueID
	}
	s.logger.InfoContext(ctx, "sync inputs loaded",
		"team_mappings", len(run.reverse),
		"matches", len(run.matches),
		"league_id", run.leagueID,
	)

	result := SyncResult{Dates: make([]string, 0, len(dates))}
	if len(dates) == 0 {
		s.logger.WarnContext(ctx, "current date is outside the tournament window, pass --date YYYYMMDD to sync a specific day",
			"start", s.cfg.TournamentStart.Format(time.DateOnly),
			"end", s.cfg.TournamentEnd.Format(time.DateOnly),
		)
		return result, nil
	}

	for _, day := range dates {
		key := day.Format(syncDateLayout)
		result.Dates = append(result.Dates, key)
		s.syncDate(ctx, run, day, &result)
	}

	if result.Updated > 0 && !input.DryRun {
		if err := s.matchRepo.ReplaceAll(ctx, run.matches); err != nil {
			return result, fmt.Errorf("write synced scores: %w", err)
		}
		s.logger.InfoContext(ctx, "synced scores saved", "updated", result.Updated)

		if s.bracket != nil {
			result.BracketTriggered = true
			if _, err := s.bracket.Run(ctx, BracketInput{}); err != nil {
				result.BracketErr = err
				s.logger.ErrorContext(ctx, "bracket update after sync failed, run update-bracket manually", "error", err)
			}
		}
	}

	s.logSummary(ctx, result)
	return result, nil
}

func (s *ScoreSyncService) syncDate(ctx context.Context, run *syncRun, day time.Time, result *SyncResult) {
	key := day.Format(syncDateLayout)
	s.logger.InfoContext(ctx, "syncing date", "date", key)

	items, err := s.provider.FetchMatchesByDate(ctx, day)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch provider matches failed", "date", key, "error", err)
		result.record(SyncOutcome{Date: key, Action: SyncActionError, Reason: syncReasonFetchFailed})
		return
	}

	leagueMatches := make([]scorefeed.Match, 0, len(items))
	for _, item := range items {
		if item.LeagueID == run.leagueID {
			leagueMatches = append(leagueMatches, item)
		}
	}
	if len(leagueMatches) == 0 {
		s.logger.InfoContext(ctx, "no tournament matches found for date", "date", key, "league_id", run.leagueID)
		return
	}
	s.logger.InfoContext(ctx, "tournament matches found", "date", key, "count", len(leagueMatches))

	for _, item := range leagueMatches {
		outcome := s.reconcile(ctx, run, item)
		outcome.Date = key
		outcome.ProviderMatchID = item.ID
		result.record(outcome)
	}
}

func (s *ScoreSyncService) reconcile(ctx context.Context, run *syncRun, item scorefeed.Match) SyncOutcome {
	if item.Cancelled {
		s.logger.InfoContext(ctx, "provider match cancelled", "provider_match_id", item.ID)
		return SyncOutcome{Action: SyncActionSkipped, Reason: syncReasonCancelled}
	}
	if !item.Finished {
		s.logger.InfoContext(ctx, "provider match not finished yet",
			"provider_match_id", item.ID,
			"home", item.Home.Name,
			"away", item.Away.Name,
		)
		return SyncOutcome{Action: SyncActionSkipped, Reason: syncReasonNotFinished}
	}

	homeID, homeOK := run.reverse[item.Home.ID]
	awayID, awayOK := run.reverse[item.Away.ID]
	if !homeOK || !awayOK {
		s.logger.WarnContext(ctx, "unknown provider team id",
			"provider_match_id", item.ID,
			"home_id", item.Home.ID,
			"home", item.Home.Name,
			"away_id", item.Away.ID,
			"away", item.Away.Name,
		)
		return SyncOutcome{Action: SyncActionSkipped, Reason: syncReasonUnmappedTeam}
	}

	idx, swapped, reason := s.locate(run.matches, item, homeID, awayID)
	if reason != "" {
		s.logger.WarnContext(ctx, "no unique local match for provider match",
			"provider_match_id", item.ID,
			"home", homeID,
			"away", awayID,
			"reason", reason,
		)
		return SyncOutcome{Action: SyncActionError, Reason: reason}
	}
	local := run.matches[idx]

	if item.Home.Score == nil || item.Away.Score == nil {
		s.logger.WarnContext(ctx, "finished provider match has no score", "provider_match_id", item.ID, "match_id", local.ID)
		return SyncOutcome{MatchID: local.ID, Action: SyncActionError, Reason: syncReasonMissingScore}
	}
	homeScore, awayScore := *item.Home.Score, *item.Away.Score
	if swapped {
		homeScore, awayScore = awayScore, homeScore
	}

	var homePenalty, awayPenalty *int
	if local.Stage.IsKnockout() && homeScore == awayScore {
		s.logger.InfoContext(ctx, "fetching penalty details", "match_id", local.ID, "provider_match_id", item.ID)
		details, err := s.provider.FetchMatchDetails(ctx, item.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "fetch match details failed", "match_id", local.ID, "provider_match_id", item.ID, "error", err)
			return SyncOutcome{MatchID: local.ID, Action: SyncActionError, Reason: syncReasonDetailsUnavailable}
		}

		if shootout, ok := details.FinalShootoutScore(); ok {
			home, away := shootout.Home, shootout.Away
			if swapped {
				home, away = away, home
			}
			homePenalty, awayPenalty = match.Int(home), match.Int(away)
			s.logger.InfoContext(ctx, "penalty shootout found", "match_id", local.ID, "home", home, "away", away)
		} else if signalsShootout(item.ScoreText) {
			s.logger.WarnContext(ctx, "provider reports extra time or penalties but no shootout score",
				"match_id", local.ID,
				"score_text", item.ScoreText,
			)
		} else {
			s.logger.WarnContext(ctx, "level knockout result without penalty or extra time info", "match_id", local.ID)
		}

		if homePenalty == nil && local.HasPenalties() &&
			equalScore(local.HomeScore, match.Int(homeScore)) && equalScore(local.AwayScore, match.Int(awayScore)) {
			// Keep a shootout recorded earlier for the same result.
			homePenalty, awayPenalty = match.Int(*local.HomePenalty), match.Int(*local.AwayPenalty)
		}
	}

	if alreadySynced(local, homeScore, awayScore, homePenalty, awayPenalty) {
		s.logger.InfoContext(ctx, "match already synced", "match_id", local.ID)
		return SyncOutcome{MatchID: local.ID, Action: SyncActionSkipped, Reason: syncReasonAlreadySynced}
	}

	updated := local.Clone()
	updated.Status = match.StatusFinished
	updated.HomeScore = match.Int(homeScore)
	updated.AwayScore = match.Int(awayScore)
	updated.HomePenalty = homePenalty
	updated.AwayPenalty = awayPenalty
	updated.ProviderMatchID = item.ID
	run.matches[idx] = updated

	desc := match.Describe(updated)
	if run.dryRun {
		s.logger.InfoContext(ctx, "[dry run] would update "+desc)
	} else {
		s.logger.InfoContext(ctx, "updated "+desc)
	}
	return SyncOutcome{MatchID: local.ID, Action: SyncActionUpdated, Description: desc}
}

// locate finds the single local match for a provider match. A pinned provider id
// wins; otherwise the kickoff day and the team pair (in either orientation) must
// identify exactly one unpinned record.
func (s *ScoreSyncService) locate(matches []match.Match, item scorefeed.Match, homeID, awayID string) (int, bool, string) {
	pinned := make([]int, 0, 1)
	for i, m := range matches {
		if m.ProviderMatchID == item.ID {
			pinned = append(pinned, i)
		}
	}
	switch len(pinned) {
	case 0:
	case 1:
		m := matches[pinned[0]]
		straight, swapped := pairOrientation(m, homeID, awayID)
		if !straight && !swapped {
			return 0, false, syncReasonTeamMismatch
		}
		return pinned[0], swapped, ""
	default:
		return 0, false, syncReasonAmbiguous
	}

	day := s.calendarDay(item.KickoffAt)
	found := -1
	foundSwapped := false
	for i, m := range matches {
		if m.ProviderMatchID != 0 || s.calendarDay(m.KickoffAt) != day {
			continue
		}
		straight, swapped := pairOrientation(m, homeID, awayID)
		if !straight && !swapped {
			continue
		}
		if found >= 0 {
			return 0, false, syncReasonAmbiguous
		}
		found, foundSwapped = i, swapped
	}
	if found < 0 {
		return 0, false, syncReasonNoLocalMatch
	}
	return found, foundSwapped, ""
}

func (s *ScoreSyncService) calendarDay(t time.Time) string {
	return t.In(s.cfg.Location).Format(syncDateLayout)
}

func pairOrientation(m match.Match, homeID, awayID string) (bool, bool) {
	if !m.Home.IsConcrete() || !m.Away.IsConcrete() {
		return false, false
	}
	straight := m.Home.TeamID == homeID && m.Away.TeamID == awayID
	swapped := m.Home.TeamID == awayID && m.Away.TeamID == homeID
	return straight, swapped
}

func signalsShootout(scoreText string) bool {
	return strings.Contains(scoreText, "Pen") || strings.Contains(scoreText, "AET")
}

func alreadySynced(local match.Match, homeScore, awayScore int, homePenalty, awayPenalty *int) bool {
	if local.Status != match.StatusFinished {
		return false
	}
	return equalScore(local.HomeScore, match.Int(homeScore)) &&
		equalScore(local.AwayScore, match.Int(awayScore)) &&
		equalScore(local.HomePenalty, homePenalty) &&
		equalScore(local.AwayPenalty, awayPenalty)
}

func equalScore(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// syncDates returns the provider days to fetch, validated against the tournament window
// when no explicit date was given.
func (s *ScoreSyncService) syncDates(raw string) ([]time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		day, err := time.ParseInLocation(syncDateLayout, raw, s.cfg.Location)
		if err != nil || day.Format(syncDateLayout) != raw {
			return nil, fmt.Errorf("%w: date must be YYYYMMDD, got %q", ErrInvalidInput, raw)
		}
		return []time.Time{day}, nil
	}

	now := s.now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
	candidates := []time.Time{today, today.AddDate(0, 0, -1)}

	out := make([]time.Time, 0, len(candidates))
	for _, day := range candidates {
		if s.inTournamentWindow(day) {
			out = append(out, day)
		}
	}
	return out, nil
}

func (s *ScoreSyncService) inTournamentWindow(day time.Time) bool {
	key := s.calendarDay(day)
	if !s.cfg.TournamentStart.IsZero() && key < s.calendarDay(s.cfg.TournamentStart) {
		return false
	}
	if !s.cfg.TournamentEnd.IsZero() && key > s.calendarDay(s.cfg.TournamentEnd) {
		return false
	}
	return true
}

func (s *ScoreSyncService) logSummary(ctx context.Context, result SyncResult) {
	s.logger.InfoContext(ctx, "sync summary",
		"dates", strings.Join(result.Dates, ","),
		"updated", result.Updated,
		"skipped", result.Skipped,
		"errors", result.Errors,
		"bracket_triggered", result.BracketTriggered,
	)
	for _, desc := range result.Matches {
		s.logger.InfoContext(ctx, "updated match", "match", desc)
	}
}

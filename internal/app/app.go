package app

import (
	"github.com/riskibarqy/worldcup-tracker/external/fotmob"
	"github.com/riskibarqy/worldcup-tracker/internal/config"
	"github.com/riskibarqy/worldcup-tracker/internal/infrastructure/repository/file"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/resilience"
	"github.com/riskibarqy/worldcup-tracker/internal/usecase"
)

// Services holds the use cases behind the CLI commands.
type Services struct {
	Sync      *usecase.ScoreSyncService
	Bracket   *usecase.BracketService
	Standings *usecase.StandingsService
}

func NewServices(cfg config.Config, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	// Bracket updates and score syncs keep separate backups of the same store.
	bracketStore := file.NewMatchRepository(file.MatchRepositoryConfig{
		Path:       cfg.MatchesFile,
		BackupPath: cfg.MatchesBackupFile,
		Logger:     logger,
	})
	syncStore := file.NewMatchRepository(file.MatchRepositoryConfig{
		Path:       cfg.MatchesFile,
		BackupPath: cfg.MatchesSyncBackupFile,
		Logger:     logger,
	})
	mappingRepo := file.NewMappingRepository(cfg.MappingFile)

	circuit := resilience.DefaultCircuitBreakerConfig()
	circuit.Enabled = cfg.FotMobCircuitEnabled
	circuit.FailureThreshold = cfg.FotMobCircuitFailureCount

	provider := fotmob.NewClient(fotmob.ClientConfig{
		BaseURL:            cfg.FotMobBaseURL,
		Timeout:            cfg.FotMobTimeout,
		MaxRetries:         cfg.FotMobMaxRetries,
		RateLimitDelay:     cfg.FotMobRateLimitDelay,
		RetryBackoff:       cfg.FotMobRetryBackoff,
		RateLimitedBackoff: cfg.FotMobRateLimitedBackoff,
		UserAgent:          cfg.FotMobUserAgent,
		Logger:             logger,
		CircuitBreaker:     circuit,
	})

	bracketSvc := usecase.NewBracketService(
		bracketStore,
		usecase.BracketConfig{QualifyingThirds: cfg.ThirdPlaceQualifiers},
		logger,
	)
	syncSvc := usecase.NewScoreSyncService(
		provider,
		syncStore,
		mappingRepo,
		bracketSvc,
		usecase.ScoreSyncConfig{
			LeagueID:        cfg.FotMobLeagueID,
			TournamentStart: cfg.TournamentStart,
			TournamentEnd:   cfg.TournamentEnd,
			Location:        cfg.TournamentTimezone,
		},
		logger,
	)

	return &Services{
		Sync:      syncSvc,
		Bracket:   bracketSvc,
		Standings: usecase.NewStandingsService(bracketStore, cfg.ThirdPlaceQualifiers),
	}
}

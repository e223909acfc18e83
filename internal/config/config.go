package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
)

const dateLayout = "2006-01-02"

// Config stores runtime configuration for the sync tool.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level
	LogFormat      logging.Format

	DataDir               string
	MatchesFile           string
	MatchesBackupFile     string
	MatchesSyncBackupFile string
	MappingFile           string

	FotMobBaseURL             string
	FotMobLeagueID            int64
	FotMobTimeout             time.Duration
	FotMobMaxRetries          int
	FotMobRateLimitDelay      time.Duration
	FotMobRetryBackoff        time.Duration
	FotMobRateLimitedBackoff  time.Duration
	FotMobUserAgent           string
	FotMobCircuitEnabled      bool
	FotMobCircuitFailureCount int

	TournamentStart      time.Time
	TournamentEnd        time.Time
	TournamentTimezone   *time.Location
	ThirdPlaceQualifiers int

	UptraceEnabled bool
	UptraceDSN     string
}

// LoadDotEnv loads the first .env file found among paths. A missing file is not an error.
func LoadDotEnv(paths ...string) (string, bool) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "data"))
	if dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR cannot be empty")
	}

	fotmobLeagueID, err := getEnvAsInt64("FOTMOB_LEAGUE_ID", 77)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_LEAGUE_ID: %w", err)
	}
	if fotmobLeagueID <= 0 {
		return Config{}, fmt.Errorf("FOTMOB_LEAGUE_ID must be > 0")
	}
	fotmobTimeout, err := time.ParseDuration(getEnv("FOTMOB_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_TIMEOUT: %w", err)
	}
	if fotmobTimeout <= 0 {
		return Config{}, fmt.Errorf("FOTMOB_TIMEOUT must be > 0")
	}
	fotmobMaxRetries, err := getEnvAsInt("FOTMOB_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_MAX_RETRIES: %w", err)
	}
	if fotmobMaxRetries < 0 {
		return Config{}, fmt.Errorf("FOTMOB_MAX_RETRIES must be >= 0")
	}
	fotmobRateLimitDelay, err := time.ParseDuration(getEnv("FOTMOB_RATE_LIMIT_DELAY", "200ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_RATE_LIMIT_DELAY: %w", err)
	}
	if fotmobRateLimitDelay < 0 {
		return Config{}, fmt.Errorf("FOTMOB_RATE_LIMIT_DELAY must be >= 0")
	}
	fotmobRetryBackoff, err := time.ParseDuration(getEnv("FOTMOB_RETRY_BACKOFF", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_RETRY_BACKOFF: %w", err)
	}
	if fotmobRetryBackoff <= 0 {
		return Config{}, fmt.Errorf("FOTMOB_RETRY_BACKOFF must be > 0")
	}
	fotmobRateLimitedBackoff, err := time.ParseDuration(getEnv("FOTMOB_RATE_LIMITED_BACKOFF", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_RATE_LIMITED_BACKOFF: %w", err)
	}
	if fotmobRateLimitedBackoff <= 0 {
		return Config{}, fmt.Errorf("FOTMOB_RATE_LIMITED_BACKOFF must be > 0")
	}
	fotmobCircuitEnabled, err := strconv.ParseBool(getEnv("FOTMOB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_CIRCUIT_ENABLED: %w", err)
	}
	fotmobCircuitFailureCount, err := getEnvAsInt("FOTMOB_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if fotmobCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FOTMOB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	tz, err := time.LoadLocation(getEnv("TOURNAMENT_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TOURNAMENT_TIMEZONE: %w", err)
	}
	start, err := time.ParseInLocation(dateLayout, getEnv("TOURNAMENT_START", "2026-06-11"), tz)
	if err != nil {
		return Config{}, fmt.Errorf("parse TOURNAMENT_START: %w", err)
	}
	end, err := time.ParseInLocation(dateLayout, getEnv("TOURNAMENT_END", "2026-07-19"), tz)
	if err != nil {
		return Config{}, fmt.Errorf("parse TOURNAMENT_END: %w", err)
	}
	if end.Before(start) {
		return Config{}, fmt.Errorf("TOURNAMENT_END must not be before TOURNAMENT_START")
	}
	thirdPlaceQualifiers, err := getEnvAsInt("THIRD_PLACE_QUALIFIERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse THIRD_PLACE_QUALIFIERS: %w", err)
	}
	if thirdPlaceQualifiers < 1 {
		return Config{}, fmt.Errorf("THIRD_PLACE_QUALIFIERS must be >= 1")
	}

	cfg := Config{
		AppEnv:                    appEnv,
		ServiceName:               getEnv("APP_SERVICE_NAME", "wcsync"),
		ServiceVersion:            getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                  logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                 logging.ParseFormat(getEnv("LOG_FORMAT", string(logging.FormatConsole))),
		DataDir:                   dataDir,
		MatchesFile:               dataPath(dataDir, "MATCHES_FILE", "matches.json"),
		MatchesBackupFile:         dataPath(dataDir, "MATCHES_BACKUP_FILE", "matches.backup.json"),
		MatchesSyncBackupFile:     dataPath(dataDir, "MATCHES_SYNC_BACKUP_FILE", "matches.sync-backup.json"),
		MappingFile:               dataPath(dataDir, "FOTMOB_MAPPING_FILE", "fotmob-mapping.json"),
		FotMobBaseURL:             strings.TrimSpace(getEnv("FOTMOB_BASE_URL", "https://www.fotmob.com/api")),
		FotMobLeagueID:            fotmobLeagueID,
		FotMobTimeout:             fotmobTimeout,
		FotMobMaxRetries:          fotmobMaxRetries,
		FotMobRateLimitDelay:      fotmobRateLimitDelay,
		FotMobRetryBackoff:        fotmobRetryBackoff,
		FotMobRateLimitedBackoff:  fotmobRateLimitedBackoff,
		FotMobUserAgent:           getEnv("FOTMOB_USER_AGENT", "Mozilla/5.0 (compatible; WorldCupSync/1.0)"),
		FotMobCircuitEnabled:      fotmobCircuitEnabled,
		FotMobCircuitFailureCount: fotmobCircuitFailureCount,
		TournamentStart:           start,
		TournamentEnd:             end,
		TournamentTimezone:        tz,
		ThirdPlaceQualifiers:      thirdPlaceQualifiers,
		UptraceEnabled:            uptraceEnabled,
		UptraceDSN:                uptraceDSN,
	}
	if cfg.MatchesFile == cfg.MatchesBackupFile || cfg.MatchesFile == cfg.MatchesSyncBackupFile {
		return Config{}, fmt.Errorf("backup files must differ from MATCHES_FILE")
	}

	return cfg, nil
}

// dataPath resolves a file setting. Bare file names live under the data directory.
func dataPath(dataDir, key, fallback string) string {
	value := strings.TrimSpace(getEnv(key, fallback))
	if filepath.IsAbs(value) || strings.ContainsRune(value, filepath.Separator) {
		return filepath.Clean(value)
	}
	return filepath.Join(dataDir, value)
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

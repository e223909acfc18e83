package file

import (
	"context"
	"fmt"
	"os"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
)

const storeFileMode os.FileMode = 0o644

type MatchRepositoryConfig struct {
	Path       string
	BackupPath string
	Logger     *logging.Logger
}

// MatchRepository is the JSON file match store.
type MatchRepository struct {
	path       string
	backupPath string
	validate   *validator.Validate
	logger     *logging.Logger
}

var _ match.Repository = (*MatchRepository)(nil)

func NewMatchRepository(cfg MatchRepositoryConfig) *MatchRepository {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchRepository{
		path:       cfg.Path,
		backupPath: cfg.BackupPath,
		validate:   newValidator(),
		logger:     logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		return match.Stage(fl.Field().String()).Valid()
	})
	return v
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrapf(match.ErrStoreUnavailable, "read %s: %v", r.path, err)
	}

	var records []matchRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrapf(match.ErrStoreUnavailable, "decode %s: %v", r.path, err)
	}

	out := make([]match.Match, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		if err := r.validate.StructCtx(ctx, record); err != nil {
			return nil, errors.Wrapf(match.ErrStoreUnavailable, "record #%d id=%q: %v", i, record.ID, err)
		}
		item, ok := record.toDomain()
		if !ok {
			return nil, errors.Wrapf(match.ErrStoreUnavailable, "record id=%s has unparseable date %q", record.ID, record.Date)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, errors.Wrapf(match.ErrStoreUnavailable, "duplicate match id=%s", item.ID)
		}
		seen[item.ID] = struct{}{}

		if err := match.Validate(item); err != nil {
			r.logger.WarnContext(ctx, "match record violates invariant", "match_id", item.ID, "error", err)
		}
		out = append(out, item)
	}

	return out, nil
}

// ReplaceAll copies the current store to the backup path and then atomically
// replaces the store with matches.
func (r *MatchRepository) ReplaceAll(ctx context.Context, matches []match.Match) error {
	records := make([]matchRecord, 0, len(matches))
	for _, item := range matches {
		records = append(records, fromDomain(item))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}

	if err := r.backup(ctx); err != nil {
		return err
	}
	if err := writeFileAtomic(r.path, buf.B, storeFileMode); err != nil {
		return fmt.Errorf("write matches: %w", err)
	}

	r.logger.InfoContext(ctx, "match store written", "path", r.path, "matches", len(records))
	return nil
}

func (r *MatchRepository) backup(ctx context.Context) error {
	if r.backupPath == "" {
		return nil
	}
	previous, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read current store for backup: %w", err)
	}
	if err := writeFileAtomic(r.backupPath, previous, storeFileMode); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	r.logger.InfoContext(ctx, "backup created", "path", r.backupPath)
	return nil
}

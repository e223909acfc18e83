package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
)

// MatchRepository keeps the match store in memory. Each ReplaceAll keeps the
// previous snapshot as its backup.
type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
	backups [][]match.Match
	writes  int
}

var _ match.Repository = (*MatchRepository)(nil)

func NewMatchRepository(matches []match.Match) *MatchRepository {
	return &MatchRepository{matches: match.CloneAll(matches)}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return match.CloneAll(r.matches), nil
}

func (r *MatchRepository) ReplaceAll(_ context.Context, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backups = append(r.backups, r.matches)
	r.matches = match.CloneAll(matches)
	r.writes++
	return nil
}

func (r *MatchRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

// LastBackup returns the snapshot replaced by the latest write.
func (r *MatchRepository) LastBackup() ([]match.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.backups) == 0 {
		return nil, false
	}
	return match.CloneAll(r.backups[len(r.backups)-1]), true
}

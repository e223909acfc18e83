package match

import (
	"context"

	"github.com/cockroachdb/errors"
)

var ErrStoreUnavailable = errors.New("match store unavailable")

// Repository is the flat match-record store. ReplaceAll keeps a backup of the
// previous contents and swaps the whole store in one step.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ReplaceAll(ctx context.Context, matches []Match) error
}

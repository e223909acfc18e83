package team

import (
	"context"

	"github.com/cockroachdb/errors"
)

var ErrMappingUnavailable = errors.New("provider mapping unavailable")

// MappingRepository loads the provider mapping document.
type MappingRepository interface {
	Load(ctx context.Context) (Mapping, error)
}

package scorefeed

import (
	"context"
	"time"
)

// Provider is the external source of authoritative match results.
type Provider interface {
	FetchMatchesByDate(ctx context.Context, day time.Time) ([]Match, error)
	FetchMatchDetails(ctx context.Context, matchID int64) (Details, error)
}

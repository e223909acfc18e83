package usecase

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/bracket"
	"github.com/riskibarqy/worldcup-tracker/internal/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/worldcup-tracker/internal/mocks/domain/match"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func groupMatch(id, group, home, away string, homeScore, awayScore int) match.Match {
	return match.Match{
		ID:        id,
		KickoffAt: kickoff(11, 19),
		Group:     group,
		Stage:     match.StageGroup,
		Home:      match.Concrete(home),
		Away:      match.Concrete(away),
		Status:    match.StatusFinished,
		HomeScore: match.Int(homeScore),
		AwayScore: match.Int(awayScore),
	}
}

// finishedGroupA ends MEX 9, KOR 4, RSA 3, DEN 1.
func finishedGroupA() []match.Match {
	return []match.Match{
		groupMatch("m1", "A", "MEX", "RSA", 2, 0),
		groupMatch("m2", "A", "KOR", "DEN", 1, 1),
		groupMatch("m3", "A", "MEX", "KOR", 1, 0),
		groupMatch("m4", "A", "DEN", "RSA", 0, 2),
		groupMatch("m5", "A", "DEN", "MEX", 0, 3),
		groupMatch("m6", "A", "RSA", "KOR", 1, 2),
	}
}

func bracketSnapshot() []match.Match {
	matches := finishedGroupA()
	return append(matches,
		match.Match{
			ID:        "m73",
			KickoffAt: kickoff(28, 19),
			Stage:     match.StageRoundOf32,
			Home:      match.ParseTeamRef("1A"),
			Away:      match.ParseTeamRef("2A"),
			Status:    match.StatusScheduled,
		},
		match.Match{
			ID:        "m89",
			KickoffAt: kickoff(30, 19),
			Stage:     match.StageRoundOf16,
			Home:      match.ParseTeamRef("W73"),
			Away:      match.ParseTeamRef("W74"),
			Status:    match.StatusScheduled,
		},
	)
}

func TestBracketService_Run_ResolvesAndWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(bracketSnapshot())
	svc := NewBracketService(repo, BracketConfig{}, logging.NewNop())

	result, err := svc.Run(ctx, BracketInput{})
	require.NoError(t, err)
	require.True(t, result.Written)
	require.Equal(t, 2, result.Resolved)
	require.Equal(t, 1, repo.Writes())

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	m73 := findMatch(t, stored, "m73")
	if m73.Home.TeamID != "MEX" || m73.Away.TeamID != "KOR" {
		t.Fatalf("unexpected m73 teams: got=%s-%s want=MEX-KOR", m73.Home, m73.Away)
	}
	m89 := findMatch(t, stored, "m89")
	require.Equal(t, match.KindOutcome, m89.Home.Kind)
}

func TestBracketService_Run_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(bracketSnapshot())
	svc := NewBracketService(repo, BracketConfig{}, logging.NewNop())

	_, err := svc.Run(ctx, BracketInput{})
	require.NoError(t, err)
	first, err := repo.List(ctx)
	require.NoError(t, err)

	second, err := svc.Run(ctx, BracketInput{})
	require.NoError(t, err)
	require.False(t, second.Written)
	require.Equal(t, 0, second.Resolved)
	require.Equal(t, 1, repo.Writes())

	after, err := repo.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(first, after, cmp.AllowUnexported(match.TeamRef{})); diff != "" {
		t.Fatalf("second run changed the store (-first +second):\n%s", diff)
	}
}

func TestBracketService_Run_PropagatesWinnerAfterResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(bracketSnapshot())
	svc := NewBracketService(repo, BracketConfig{}, logging.NewNop())

	_, err := svc.Run(ctx, BracketInput{})
	require.NoError(t, err)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	for i := range stored {
		if stored[i].ID == "m73" {
			stored[i].Status = match.StatusFinished
			stored[i].HomeScore = match.Int(1)
			stored[i].AwayScore = match.Int(1)
			stored[i].HomePenalty = match.Int(4)
			stored[i].AwayPenalty = match.Int(5)
		}
	}
	require.NoError(t, repo.ReplaceAll(ctx, stored))

	result, err := svc.Run(ctx, BracketInput{})
	require.NoError(t, err)
	require.Equal(t, 1, result.Resolved)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	m89 := findMatch(t, after, "m89")
	require.Equal(t, "KOR", m89.Home.TeamID)
	require.Equal(t, "W74", m89.Away.String())
}

func TestBracketService_Run_DryRunKeepsStore(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(bracketSnapshot())
	svc := NewBracketService(repo, BracketConfig{}, logging.NewNop())

	result, err := svc.Run(context.Background(), BracketInput{DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 2, result.Resolved)
	require.False(t, result.Written)
	require.Equal(t, 0, repo.Writes())
}

func TestBracketService_Run_ReportsThirdPlaceNotReady(t *testing.T) {
	t.Parallel()

	matches := bracketSnapshot()
	matches = append(matches,
		match.Match{
			ID:        "m7",
			KickoffAt: kickoff(12, 19),
			Group:     "B",
			Stage:     match.StageGroup,
			Home:      match.Concrete("CAN"),
			Away:      match.Concrete("SUI"),
			Status:    match.StatusScheduled,
		},
		match.Match{
			ID:        "m75",
			KickoffAt: kickoff(28, 22),
			Stage:     match.StageRoundOf32,
			Home:      match.ParseTeamRef("1B"),
			Away:      match.ParseTeamRef("3AB"),
			Status:    match.StatusScheduled,
		},
	)

	repo := memory.NewMatchRepository(matches)
	svc := NewBracketService(repo, BracketConfig{}, logging.NewNop())

	result, err := svc.Run(context.Background(), BracketInput{})
	require.NoError(t, err)
	require.True(t, result.NotReady)

	reasons := make(map[bracket.Reason]bool)
	for _, item := range result.Diagnostics {
		if item.MatchID == "m75" {
			reasons[item.Reason] = true
		}
	}
	require.True(t, reasons[bracket.ReasonGroupIncomplete])
	require.True(t, reasons[bracket.ReasonGroupStageIncomplete])
}

func TestBracketService_Run_StoreFailureIsSetupError(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	repo.
		On("List", mock.Anything).
		Return(nil, match.ErrStoreUnavailable).
		Once()

	svc := NewBracketService(repo, BracketConfig{}, logging.NewNop())
	_, err := svc.Run(context.Background(), BracketInput{})
	require.ErrorIs(t, err, ErrSetup)
	require.ErrorIs(t, err, match.ErrStoreUnavailable)
}

func TestStandingsService_Tables(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(bracketSnapshot())
	svc := NewStandingsService(repo, 0)

	tables, thirds, err := svc.Tables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.True(t, tables[0].Finished)

	want := []string{"MEX", "KOR", "RSA", "DEN"}
	for i, row := range tables[0].Rows {
		if row.TeamID != want[i] {
			t.Fatalf("unexpected team at position %d: got=%s want=%s", i+1, row.TeamID, want[i])
		}
	}
	require.Len(t, thirds, 1)
	require.Equal(t, "RSA", thirds[0].TeamID)
}

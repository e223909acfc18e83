package match

import (
	"strconv"
	"strings"
)

type RefKind int

const (
	KindConcrete RefKind = iota
	KindGroupRank
	KindOutcome
	KindPending
)

func (k RefKind) String() string {
	switch k {
	case KindConcrete:
		return "concrete"
	case KindGroupRank:
		return "group_rank"
	case KindOutcome:
		return "outcome"
	default:
		return "pending"
	}
}

type OutcomeKind int

const (
	Winner OutcomeKind = iota + 1
	Loser
)

const (
	pendingPrefix  = "TBD"
	matchIDPrefix  = "m"
	thirdPlaceRank = 3
)

// TeamRef is the team slot of a match: either a known team or a placeholder
// waiting for an earlier result.
//
// GroupRank refs carry the rank and the groups the team may come from ("1A" has
// a single group, "3BCDEFGH" lists every allowed source group). Outcome refs point
// at the match whose winner or loser fills the slot. Pending refs are qualifier
// slots decided outside this system ("TBD_A").
type TeamRef struct {
	Kind          RefKind
	TeamID        string
	Rank          int
	Groups        string
	Outcome       OutcomeKind
	SourceMatchID string
	token         string
}

func Concrete(teamID string) TeamRef {
	return TeamRef{Kind: KindConcrete, TeamID: teamID}
}

func GroupRank(rank int, groups string) TeamRef {
	return TeamRef{Kind: KindGroupRank, Rank: rank, Groups: groups}
}

func WinnerOf(matchID string) TeamRef {
	return TeamRef{Kind: KindOutcome, Outcome: Winner, SourceMatchID: matchID}
}

func LoserOf(matchID string) TeamRef {
	return TeamRef{Kind: KindOutcome, Outcome: Loser, SourceMatchID: matchID}
}

// ParseTeamRef decodes a team reference token as authored in the match store.
func ParseTeamRef(raw string) TeamRef {
	token := strings.TrimSpace(raw)
	if token == "" || strings.HasPrefix(token, pendingPrefix) {
		return TeamRef{Kind: KindPending, token: token}
	}

	if rank, groups, ok := parseGroupRank(token); ok {
		return GroupRank(rank, groups)
	}

	if token[0] == 'W' || token[0] == 'L' {
		if n, ok := parseMatchNumber(token[1:]); ok {
			if token[0] == 'W' {
				return WinnerOf(matchIDPrefix + n)
			}
			return LoserOf(matchIDPrefix + n)
		}
	}

	return Concrete(token)
}

func parseGroupRank(token string) (int, string, bool) {
	if len(token) < 2 || token[0] < '1' || token[0] > '9' {
		return 0, "", false
	}
	groups := token[1:]
	for _, r := range groups {
		if r < 'A' || r > 'Z' {
			return 0, "", false
		}
	}
	return int(token[0] - '0'), groups, true
}

func parseMatchNumber(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if _, err := strconv.Atoi(raw); err != nil {
		return "", false
	}
	return raw, true
}

func (r TeamRef) IsConcrete() bool {
	return r.Kind == KindConcrete && r.TeamID != ""
}

func (r TeamRef) IsThirdPlace() bool {
	return r.Kind == KindGroupRank && r.Rank == thirdPlaceRank
}

// AllowsGroup reports whether a team from group may fill this group-rank slot.
func (r TeamRef) AllowsGroup(group string) bool {
	if r.Kind != KindGroupRank || group == "" {
		return false
	}
	return strings.Contains(r.Groups, group)
}

func (r TeamRef) Equal(other TeamRef) bool {
	return r.String() == other.String() && r.Kind == other.Kind
}

// String renders the wire token of the reference.
func (r TeamRef) String() string {
	switch r.Kind {
	case KindConcrete:
		return r.TeamID
	case KindGroupRank:
		return strconv.Itoa(r.Rank) + r.Groups
	case KindOutcome:
		prefix := "W"
		if r.Outcome == Loser {
			prefix = "L"
		}
		return prefix + strings.TrimPrefix(r.SourceMatchID, matchIDPrefix)
	default:
		return r.token
	}
}

// RefersTo reports whether an outcome reference points at the match with the given id.
// Ids are compared by their number so "W80" matches both "m80" and "80".
func (r TeamRef) RefersTo(matchID string) bool {
	if r.Kind != KindOutcome {
		return false
	}
	return strings.TrimPrefix(r.SourceMatchID, matchIDPrefix) == strings.TrimPrefix(matchID, matchIDPrefix)
}

package fotmob

import (
	"bytes"
	"strings"

	sonic "github.com/bytedance/sonic"
)

type matchesEnvelope struct {
	Leagues []leagueItem `json:"leagues"`
	Date    string       `json:"date"`
}

type leagueItem struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       int64      `json:"id"`
	LeagueID int64      `json:"leagueId"`
	Time     string     `json:"time"`
	Home     teamItem   `json:"home"`
	Away     teamItem   `json:"away"`
	Status   statusItem `json:"status"`
	TimeTS   int64      `json:"timeTS"`
}

type teamItem struct {
	ID       int64  `json:"id"`
	Score    *int   `json:"score"`
	Name     string `json:"name"`
	LongName string `json:"longName"`
}

type statusItem struct {
	UTCTime   string      `json:"utcTime"`
	Finished  bool        `json:"finished"`
	Started   bool        `json:"started"`
	Cancelled bool        `json:"cancelled"`
	ScoreStr  string      `json:"scoreStr"`
	Reason    *reasonItem `json:"reason"`
}

type reasonItem struct {
	Short    string `json:"short"`
	ShortKey string `json:"shortKey"`
	Long     string `json:"long"`
	LongKey  string `json:"longKey"`
}

func (s statusItem) reasonText() string {
	if s.Reason == nil {
		return ""
	}
	if long := strings.TrimSpace(s.Reason.Long); long != "" {
		return long
	}
	return strings.TrimSpace(s.Reason.Short)
}

type matchDetailsEnvelope struct {
	Content *struct {
		MatchFacts *struct {
			Events *struct {
				Events []eventItem `json:"events"`
			} `json:"events"`
		} `json:"matchFacts"`
	} `json:"content"`
}

func (e matchDetailsEnvelope) events() []eventItem {
	if e.Content == nil || e.Content.MatchFacts == nil || e.Content.MatchFacts.Events == nil {
		return nil
	}
	return e.Content.MatchFacts.Events.Events
}

type eventItem struct {
	Type         string            `json:"type"`
	Time         eventTime         `json:"time"`
	PenaltyScore *penaltyScoreItem `json:"penaltyScore"`
}

type penaltyScoreItem struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// eventTime accepts both a bare minute and the {minutes, addedTime} object form.
type eventTime struct {
	Minutes   int
	AddedTime int
}

func (t *eventTime) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '{' {
		var wrapped struct {
			Minutes   int `json:"minutes"`
			AddedTime int `json:"addedTime"`
		}
		if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		t.Minutes = wrapped.Minutes
		t.AddedTime = wrapped.AddedTime
		return nil
	}

	var minutes int
	if err := sonic.Unmarshal(trimmed, &minutes); err != nil {
		return err
	}
	t.Minutes = minutes
	return nil
}

package dto

// MatchSummary is one match of the history payload.
type MatchSummary struct {
	MatchId          string  `json:"matchId"`
	ChampionName     string  `json:"championName"`
	OpponentChampion *string `json:"opponentChampionName,omitempty"`
	Win              bool    `json:"win"`
	Kills            int     `json:"kills"`
	Deaths           int     `json:"deaths"`
	Assists          int     `json:"assists"`
	GameDuration     int     `json:"gameDurationSeconds"`
	GameCreation     int64   `json:"gameCreationEpochMs"`
}

// MatchHistory is a page of the match history payload.
type MatchHistory struct {
	Matches []MatchSummary `json:"matches"`
	HasMore bool           `json:"hasMore"`
}

// TopChampion is one champion line of the top played payload,
// enriched with the Data Dragon display data.
type TopChampion struct {
	ChampionName string  `json:"championName"`
	Icon         string  `json:"icon,omitempty"`
	Games        int     `json:"games"`
	Wins         int     `json:"wins"`
	WinRate      float32 `json:"winRate"`
	Kills        int     `json:"kills"`
	Deaths       int     `json:"deaths"`
	Assists      int     `json:"assists"`
}

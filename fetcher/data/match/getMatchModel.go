package matchfetcher

import "fmt"

// Return type from the match-v5 endpoint.
// Only the fields the engine reads are declared, anything else upstream
// adds or drops never reaches the rest of the code.
type MatchData struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

// MatchMetadata contains the match id.
type MatchMetadata struct {
	MatchId string `json:"matchId"`
}

// MatchInfo is the match detail subset of interest.
type MatchInfo struct {
	GameCreation RiotTime           `json:"gameCreation"`
	GameDuration int                `json:"gameDuration"`
	QueueId      int                `json:"queueId"`
	Participants []MatchParticipant `json:"participants"`
}

// MatchParticipant is a single participant of a match.
type MatchParticipant struct {
	Puuid        string `json:"puuid"`
	ChampionId   int    `json:"championId"`
	ChampionName string `json:"championName"`
	TeamId       int    `json:"teamId"`
	TeamPosition string `json:"teamPosition"`
	Win          bool   `json:"win"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
}

// MatchRecord is a normalized ranked match from one player's perspective.
type MatchRecord struct {
	MatchId              string
	ChampionId           int
	ChampionName         string
	OpponentChampionName *string
	Win                  bool
	Kills                int
	Deaths               int
	Assists              int
	GameDurationSeconds  int
	GameCreationEpochMs  int64
}

// RecordFor maps the raw match detail into the record of the given player.
// The opponent champion is the enemy participant on the same team position,
// left nil when the position is empty or no counterpart exists.
func (md *MatchData) RecordFor(puuid string) (*MatchRecord, error) {
	var self *MatchParticipant
	for i := range md.Info.Participants {
		if md.Info.Participants[i].Puuid == puuid {
			self = &md.Info.Participants[i]
			break
		}
	}

	if self == nil {
		return nil, fmt.Errorf("player %s is not a participant of match %s", puuid, md.Metadata.MatchId)
	}

	record := &MatchRecord{
		MatchId:             md.Metadata.MatchId,
		ChampionId:          self.ChampionId,
		ChampionName:        self.ChampionName,
		Win:                 self.Win,
		Kills:               self.Kills,
		Deaths:              self.Deaths,
		Assists:             self.Assists,
		GameDurationSeconds: md.Info.GameDuration,
		GameCreationEpochMs: md.Info.GameCreation.EpochMs(),
	}

	if self.TeamPosition != "" {
		for i := range md.Info.Participants {
			opponent := &md.Info.Participants[i]
			if opponent.TeamId != self.TeamId && opponent.TeamPosition == self.TeamPosition {
				name := opponent.ChampionName
				record.OpponentChampionName = &name
				break
			}
		}
	}

	return record, nil
}

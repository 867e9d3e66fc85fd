package memory

import (
	"time"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
)

const (
	MatchIDIndVsAusT20 = "ind-vs-aus-t20-2026-03-14"
	MatchIDEngVsNzODI  = "eng-vs-nz-odi-2026-03-20"
)

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:       MatchIDIndVsAusT20,
			Name:     "India vs Australia, 2nd T20I",
			Venue:    "Wankhede Stadium, Mumbai",
			Format:   "t20",
			TeamHome: "India",
			TeamAway: "Australia",
			StartsAt: time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC),
			Status:   "scheduled",
		},
		{
			ID:       MatchIDEngVsNzODI,
			Name:     "England vs New Zealand, 1st ODI",
			Venue:    "Lord's, London",
			Format:   "odi",
			TeamHome: "England",
			TeamAway: "New Zealand",
			StartsAt: time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
			Status:   "scheduled",
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ind-bat-01", Name: "Rohit Sharma", Country: "IN", Role: player.RoleBatter, BattingStyle: "right-hand bat"},
		{ID: "ind-bat-02", Name: "Virat Kohli", Country: "IN", Role: player.RoleBatter, BattingStyle: "right-hand bat"},
		{ID: "ind-bat-03", Name: "Shubman Gill", Country: "IN", Role: player.RoleBatter, BattingStyle: "right-hand bat"},
		{ID: "ind-wk-01", Name: "Rishabh Pant", Country: "IN", Role: player.RoleWicketKeeper, BattingStyle: "left-hand bat"},
		{ID: "ind-ar-01", Name: "Hardik Pandya", Country: "IN", Role: player.RoleAllRounder, BattingStyle: "right-hand bat", BowlingStyle: "right-arm medium-fast"},
		{ID: "ind-ar-02", Name: "Ravindra Jadeja", Country: "IN", Role: player.RoleAllRounder, BattingStyle: "left-hand bat", BowlingStyle: "slow left-arm orthodox"},
		{ID: "ind-bwl-01", Name: "Jasprit Bumrah", Country: "IN", Role: player.RoleBowler, BowlingStyle: "right-arm fast"},
		{ID: "ind-bwl-02", Name: "Kuldeep Yadav", Country: "IN", Role: player.RoleBowler, BowlingStyle: "left-arm wrist-spin"},
		{ID: "aus-bat-01", Name: "Travis Head", Country: "AU", Role: player.RoleBatter, BattingStyle: "left-hand bat"},
		{ID: "aus-bat-02", Name: "Steve Smith", Country: "AU", Role: player.RoleBatter, BattingStyle: "right-hand bat"},
		{ID: "aus-wk-01", Name: "Alex Carey", Country: "AU", Role: player.RoleWicketKeeper, BattingStyle: "left-hand bat"},
		{ID: "aus-ar-01", Name: "Cameron Green", Country: "AU", Role: player.RoleAllRounder, BattingStyle: "right-hand bat", BowlingStyle: "right-arm fast-medium"},
		{ID: "aus-bwl-01", Name: "Mitchell Starc", Country: "AU", Role: player.RoleBowler, BowlingStyle: "left-arm fast"},
		{ID: "aus-bwl-02", Name: "Adam Zampa", Country: "AU", Role: player.RoleBowler, BowlingStyle: "right-arm leg-spin"},
		{ID: "eng-bat-01", Name: "Joe Root", Country: "GB", Role: player.RoleBatter, BattingStyle: "right-hand bat"},
		{ID: "eng-wk-01", Name: "Jos Buttler", Country: "GB", Role: player.RoleWicketKeeper, BattingStyle: "right-hand bat"},
		{ID: "eng-ar-01", Name: "Ben Stokes", Country: "GB", Role: player.RoleAllRounder, BattingStyle: "left-hand bat", BowlingStyle: "right-arm fast-medium"},
		{ID: "eng-bwl-01", Name: "Jofra Archer", Country: "GB", Role: player.RoleBowler, BowlingStyle: "right-arm fast"},
		{ID: "nz-bat-01", Name: "Kane Williamson", Country: "NZ", Role: player.RoleBatter, BattingStyle: "right-hand bat"},
		{ID: "nz-wk-01", Name: "Tom Latham", Country: "NZ", Role: player.RoleWicketKeeper, BattingStyle: "left-hand bat"},
		{ID: "nz-ar-01", Name: "Rachin Ravindra", Country: "NZ", Role: player.RoleAllRounder, BattingStyle: "left-hand bat", BowlingStyle: "slow left-arm orthodox"},
		{ID: "nz-bwl-01", Name: "Trent Boult", Country: "NZ", Role: player.RoleBowler, BowlingStyle: "left-arm fast-medium"},
	}
}

func SeedContests() []contest.Contest {
	return []contest.Contest{
		{
			ID:         "mega-ind-aus-t20",
			MatchID:    MatchIDIndVsAusT20,
			Name:       "Mega Contest: IND vs AUS T20I",
			EntryFee:   49,
			PrizePool:  100000,
			MaxEntries: 10000,
			CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         "head2head-eng-nz-odi",
			MatchID:    MatchIDEngVsNzODI,
			Name:       "Head to Head: ENG vs NZ ODI",
			EntryFee:   99,
			PrizePool:  180,
			MaxEntries: 2,
			CreatedAt:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

package memory

import (
	"context"

	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/domain/team"
)

// Demo fixtures for running the API without a database.
const (
	TeamIDDemo       = "team-demo"
	SeasonIDDemoYear = "season-demo-2026"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDDemo, Name: "Thursday FC"},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: SeasonIDDemoYear, TeamID: TeamIDDemo, Year: 2026, Name: "2026", IsActive: true},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player-demo-01", TeamID: TeamIDDemo, Name: "Alex Turner", Nickname: "Turbo", Position: "FWD", Number: 9},
		{ID: "player-demo-02", TeamID: TeamIDDemo, Name: "Ben Okafor", Position: "MID", Number: 8},
		{ID: "player-demo-03", TeamID: TeamIDDemo, Name: "Carl Mendes", Position: "DEF", Number: 4},
	}
}

// SeedRoster enrolls the demo players into the demo season.
func SeedRoster(seasonRepo *SeasonRepository) {
	for _, p := range SeedPlayers() {
		_ = seasonRepo.AddRosterEntry(context.Background(), SeasonIDDemoYear, p.ID)
	}
}

package player

// Role is a player's primary discipline.
type Role string

const (
	RoleBatter       Role = "batter"
	RoleBowler       Role = "bowler"
	RoleAllRounder   Role = "all_rounder"
	RoleWicketKeeper Role = "wicket_keeper"
)

var AllRoles = map[Role]struct{}{
	RoleBatter:       {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketKeeper: {},
}

type Player struct {
	ID           string
	Name         string
	Country      string
	Role         Role
	BattingStyle string
	BowlingStyle string
}

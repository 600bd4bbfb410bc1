package model

// Team is the affiliation of a cell, and for RED/BLUE, the owner of a turn
type Team string

const (
	TeamRed      Team = "RED"
	TeamBlue     Team = "BLUE"
	TeamNeutral  Team = "NEUTRAL"
	TeamAssassin Team = "ASSASSIN"
)

// PlayingTeams returns the two teams that can hold a turn
func PlayingTeams() []Team {
	return []Team{TeamRed, TeamBlue}
}

// IsPlaying returns true for RED and BLUE
func (t Team) IsPlaying() bool {
	return t == TeamRed || t == TeamBlue
}

// Opponent returns the other playing team, or the team itself for
// NEUTRAL and ASSASSIN
func (t Team) Opponent() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return t
	}
}

// IsValid returns true if t is one of the four known teams
func (t Team) IsValid() bool {
	switch t {
	case TeamRed, TeamBlue, TeamNeutral, TeamAssassin:
		return true
	}
	return false
}

func (t Team) String() string {
	return string(t)
}

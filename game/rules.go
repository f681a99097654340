package game

import "fmt"

const (
	// DefaultMinPlayers is the smallest roster a session can be created for.
	DefaultMinPlayers = 4
	DefaultMaxPlayers = 20
)

// Rules are the per-process game settings.
type Rules struct {
	MinPlayers int `yaml:"min_players"`
	// MaxPlayers of 0 means unbounded.
	MaxPlayers int `yaml:"max_players"`
	// ResolveNightActions turns doctor protection and detective inspection
	// into game effects. When false they are only recorded.
	ResolveNightActions bool `yaml:"resolve_night_actions"`
}

func DefaultRules() Rules {
	return Rules{
		MinPlayers:          DefaultMinPlayers,
		MaxPlayers:          DefaultMaxPlayers,
		ResolveNightActions: true,
	}
}

// Validate checks that a roster satisfying the rules can always be dealt.
func (r Rules) Validate() error {
	if r.MinPlayers < 3 {
		return fmt.Errorf("game: rules: min_players must be at least 3, got %d", r.MinPlayers)
	}
	if r.MaxPlayers != 0 && r.MaxPlayers < r.MinPlayers {
		return fmt.Errorf("game: rules: max_players %d is below min_players %d", r.MaxPlayers, r.MinPlayers)
	}
	return nil
}

func (r Rules) checkPlayerCount(n int) error {
	if n < r.MinPlayers {
		return fmt.Errorf("%w: нужно минимум %d игроков", ErrInvalidPlayerCount, r.MinPlayers)
	}
	if r.MaxPlayers != 0 && n > r.MaxPlayers {
		return fmt.Errorf("%w: не больше %d игроков", ErrInvalidPlayerCount, r.MaxPlayers)
	}
	if specialRolesCount(n) > n {
		return fmt.Errorf("%w: нужно минимум %d игроков", ErrInsufficientRoster, specialRolesCount(n))
	}
	return nil
}

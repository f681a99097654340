package types

import (
	"fmt"
	"html"
)

// Player is a roster entry. Role is set once on assignment and Alive flips to
// false exactly once.
type Player struct {
	ID          string
	DisplayName string
	Role        RoleType
	Alive       bool
}

func NewPlayer(id string, displayName string) *Player {
	return &Player{
		ID:          id,
		DisplayName: displayName,
		Role:        NoRole,
		Alive:       true,
	}
}

// IsMafia reports whether the player was dealt a mafia role.
func (p *Player) IsMafia() bool {
	return p.Role.IsMafia()
}

// HumanReadableName returns the display name, falling back to the id.
func (p *Player) HumanReadableName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}

// HTMLName returns the name escaped for html parse mode messages.
func (p *Player) HTMLName() string {
	return html.EscapeString(p.HumanReadableName())
}

// WithRole renders "name - <b>role</b>", used in reveals.
func (p *Player) WithRole() string {
	return fmt.Sprintf("%+v - <b>%+v</b>", p.HTMLName(), p.Role)
}

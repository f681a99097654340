package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("42", "Vito")

	assert.Equal(t, "42", p.ID)
	assert.True(t, p.Alive)
	assert.Equal(t, NoRole, p.Role)
	assert.False(t, p.IsMafia())

	p.Role = Mafia
	assert.True(t, p.IsMafia())
}

func TestPlayer_HumanReadableName(t *testing.T) {
	tests := []struct {
		name   string
		player *Player
		want   string
	}{
		{"Display name", NewPlayer("1", "Tommy"), "Tommy"},
		{"Falls back to id", NewPlayer("2", ""), "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.player.HumanReadableName())
		})
	}
}

func TestPlayer_WithRole_EscapesName(t *testing.T) {
	p := NewPlayer("1", "<b>Sonny</b>")
	p.Role = Doctor

	assert.Equal(t, "&lt;b&gt;Sonny&lt;/b&gt; - <b>Доктор</b>", p.WithRole())
}

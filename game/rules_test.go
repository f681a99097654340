package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		wantErr bool
	}{
		{"Defaults", DefaultRules(), false},
		{"Five like the old revision", Rules{MinPlayers: 5}, false},
		{"Too small to deal roles", Rules{MinPlayers: 2}, true},
		{"Max below min", Rules{MinPlayers: 6, MaxPlayers: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRules_checkPlayerCount(t *testing.T) {
	r := DefaultRules()

	assert.ErrorIs(t, r.checkPlayerCount(3), ErrInvalidPlayerCount)
	assert.ErrorIs(t, r.checkPlayerCount(21), ErrInvalidPlayerCount)
	assert.NoError(t, r.checkPlayerCount(4))

	loose := Rules{MinPlayers: 1}
	assert.ErrorIs(t, loose.checkPlayerCount(2), ErrInsufficientRoster)
}

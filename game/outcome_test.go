package game

import (
	"testing"

	"github.com/rredkovich/mafiaengine/types"
	"github.com/stretchr/testify/assert"
)

func rosterOf(roles ...types.RoleType) []*types.Player {
	roster := newRoster(len(roles))
	for i, role := range roles {
		roster[i].Role = role
	}
	return roster
}

func TestEvaluateOutcome(t *testing.T) {
	tests := []struct {
		name   string
		roster []*types.Player
		dead   []int
		want   Outcome
	}{
		{
			name:   "Fresh game goes on",
			roster: rosterOf(types.Mafia, types.Doctor, types.Detective, types.Citizen, types.Citizen),
			want:   NoOutcome,
		},
		{
			name:   "Parity is a mafia win",
			roster: rosterOf(types.Mafia, types.Doctor, types.Detective, types.Citizen),
			dead:   []int{1, 2},
			want:   MafiaWin,
		},
		{
			name:   "Majority is a mafia win",
			roster: rosterOf(types.Mafia, types.Mafia, types.Doctor, types.Citizen),
			dead:   []int{2},
			want:   MafiaWin,
		},
		{
			name:   "No mafia left",
			roster: rosterOf(types.Mafia, types.Doctor, types.Detective, types.Citizen),
			dead:   []int{0},
			want:   CitizenWin,
		},
		{
			name:   "One mafioso against two citizens",
			roster: rosterOf(types.Mafia, types.Doctor, types.Detective, types.Citizen),
			dead:   []int{3},
			want:   NoOutcome,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, i := range tt.dead {
				tt.roster[i].Alive = false
			}
			assert.Equal(t, tt.want, EvaluateOutcome(tt.roster))
		})
	}
}

package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rredkovich/mafiaengine/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoster(n int) []*types.Player {
	roster := make([]*types.Player, 0, n)
	for i := 1; i <= n; i++ {
		roster = append(roster, types.NewPlayer(fmt.Sprintf("u%d", i), fmt.Sprintf("User %d", i)))
	}
	return roster
}

func TestMafiaCount(t *testing.T) {
	tests := []struct {
		players int
		want    int
	}{
		{3, 1},
		{4, 1},
		{5, 1},
		{7, 1},
		{8, 2},
		{12, 3},
		{13, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players", tt.players), func(t *testing.T) {
			assert.Equal(t, tt.want, MafiaCount(tt.players))
		})
	}
}

func TestAssignRoles_Distribution(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 4; n <= 16; n++ {
		for round := 0; round < 10; round++ {
			roster := newRoster(n)
			require.NoError(t, AssignRoles(roster, r))

			counts := make(map[types.RoleType]int)
			for _, p := range roster {
				require.NotEqual(t, types.NoRole, p.Role, "player %v has no role", p.ID)
				counts[p.Role]++
			}

			assert.Equal(t, MafiaCount(n), counts[types.Mafia], "%d players", n)
			assert.Equal(t, 1, counts[types.Doctor], "%d players", n)
			assert.Equal(t, 1, counts[types.Detective], "%d players", n)
			assert.Equal(t, n-MafiaCount(n)-2, counts[types.Citizen], "%d players", n)
		}
	}
}

func TestAssignRoles_InsufficientRoster(t *testing.T) {
	roster := newRoster(2)

	err := AssignRoles(roster, rand.New(rand.NewSource(1)))

	assert.ErrorIs(t, err, ErrInsufficientRoster)
	for _, p := range roster {
		assert.Equal(t, types.NoRole, p.Role)
	}
}

func TestAssignRoles_ThreePlayersHaveNoCitizen(t *testing.T) {
	roster := newRoster(3)
	require.NoError(t, AssignRoles(roster, rand.New(rand.NewSource(1))))

	for _, p := range roster {
		assert.NotEqual(t, types.Citizen, p.Role)
	}
}

func TestAssignRoles_Shuffles(t *testing.T) {
	// with a few seeds the mafioso must not always land on the same seat
	seats := make(map[string]bool)
	for seed := int64(0); seed < 20; seed++ {
		roster := newRoster(5)
		require.NoError(t, AssignRoles(roster, rand.New(rand.NewSource(seed))))
		for _, p := range roster {
			if p.IsMafia() {
				seats[p.ID] = true
			}
		}
	}
	assert.Greater(t, len(seats), 1)
}

package game

import (
	"fmt"
	"math/rand"

	"github.com/rredkovich/mafiaengine/types"
)

// MafiaCount is one mafioso per four players, never less than one.
func MafiaCount(playerCount int) int {
	n := playerCount / 4
	if n < 1 {
		return 1
	}
	return n
}

// specialRolesCount is the number of players that must get a non-citizen role.
func specialRolesCount(playerCount int) int {
	// Doctor and Detective
	return MafiaCount(playerCount) + 2
}

// RoleDeck builds the multiset of roles for playerCount players, unshuffled.
func RoleDeck(playerCount int) ([]types.RoleType, error) {
	if specialRolesCount(playerCount) > playerCount {
		return nil, fmt.Errorf("%w: нужно минимум %d, а есть %d",
			ErrInsufficientRoster, specialRolesCount(playerCount), playerCount)
	}

	deck := make([]types.RoleType, 0, playerCount)
	for i := 0; i < MafiaCount(playerCount); i++ {
		deck = append(deck, types.Mafia)
	}
	deck = append(deck, types.Doctor, types.Detective)
	for len(deck) < playerCount {
		deck = append(deck, types.Citizen)
	}

	return deck, nil
}

// AssignRoles shuffles the role deck and deals it to the roster in roster order.
// Nothing is mutated when it fails.
func AssignRoles(roster []*types.Player, r *rand.Rand) error {
	deck, err := RoleDeck(len(roster))
	if err != nil {
		return err
	}

	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	for i, member := range roster {
		if member.Role != types.NoRole {
			panic(fmt.Sprintf("game: role already assigned to player %v", member.ID))
		}
		member.Role = deck[i]
	}

	return nil
}

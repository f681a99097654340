package game

import "github.com/rredkovich/mafiaengine/types"

type Outcome int

const (
	NoOutcome Outcome = iota
	MafiaWin
	CitizenWin
)

// EvaluateOutcome checks the win condition over the living players.
// Mafia wins on parity or majority, citizens win when no mafioso is left.
func EvaluateOutcome(roster []*types.Player) Outcome {
	mafia, citizens := 0, 0
	for _, member := range roster {
		if !member.Alive {
			continue
		}
		if member.IsMafia() {
			mafia++
		} else {
			citizens++
		}
	}

	switch {
	case mafia == 0:
		return CitizenWin
	case mafia >= citizens:
		return MafiaWin
	}
	return NoOutcome
}

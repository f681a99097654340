package game

import (
	"fmt"
	"strings"

	"github.com/rredkovich/mafiaengine/types"
)

// Mention renders a structured reference to a player, resolved by exact id.
func Mention(id string) string {
	return "<@" + id + ">"
}

func parseMention(text string) (string, bool) {
	if !strings.HasPrefix(text, "<@") || !strings.HasSuffix(text, ">") {
		return "", false
	}
	id := strings.TrimPrefix(text[2:len(text)-1], "!")
	return id, id != ""
}

// ResolveTarget finds the player text refers to within pool.
//
// A mention (Mention form, or anything dir recognises) matches by exact id.
// Free text is compared case-insensitively, first as the whole name, then as a
// name prefix, then as a substring. The first tier with matches decides; more
// than one match in that tier is ErrAmbiguousTarget.
func ResolveTarget(pool []*types.Player, text string, dir PlayerDirectory) (*types.Player, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: имя не указано", ErrInvalidTarget)
	}

	id, isMention := parseMention(text)
	if !isMention && dir != nil {
		id, isMention = dir.ResolveID(text)
	}
	if isMention {
		for _, p := range pool {
			if p.ID == id {
				return p, nil
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, text)
	}

	needle := strings.ToLower(strings.TrimPrefix(text, "@"))
	tiers := []func(name string) bool{
		func(name string) bool { return name == needle },
		func(name string) bool { return strings.HasPrefix(name, needle) },
		func(name string) bool { return strings.Contains(name, needle) },
	}

	for _, match := range tiers {
		var found []*types.Player
		for _, p := range pool {
			if match(strings.ToLower(p.HumanReadableName())) {
				found = append(found, p)
			}
		}

		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			names := make([]string, 0, len(found))
			for _, p := range found {
				names = append(names, p.HumanReadableName())
			}
			return nil, fmt.Errorf("%w: %v", ErrAmbiguousTarget, strings.Join(names, ", "))
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, text)
}

package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rredkovich/mafiaengine/types"
)

var nightDescriptions = []string{
	"Город засыпает. Просыпается мафия.",
	"Фонари гаснут один за другим, на улицах ни души.",
	"Луна спряталась за тучами, где-то скрипнула дверь.",
}

var dayDescriptions = []string{
	"Солнце встаёт над городом, жители выходят на улицы.",
	"Пахнет кофе и свежими газетами.",
	"Петухи пропели, пора считать, кто дожил до утра.",
}

var lynchDescriptions = []string{
	"Пришло время найти и наказать виноватых.",
	"Городское собрание открыто. Кого вздёрнем сегодня?",
}

var mafiaDeathsDescriptions = []string{
	"Этой ночью был убит %v. Говорят, у него была роль <b>%v</b>",
	"Утром нашли тело. %v больше не с нами, роль - <b>%v</b>",
}

var lynchResults = []string{
	"Толпа вздёрнула %v.",
	"%v не пережил городского собрания.",
}

func pick(r *rand.Rand, texts []string) string {
	return texts[r.Intn(len(texts))]
}

// welcomeText is the private role announcement. Mafia also learns its teammates.
func welcomeText(member *types.Player, roster []*types.Player) string {
	text := fmt.Sprintf("Твоя роль: <b>%v</b>\n\n%v", member.Role, member.Role.Description())
	if !member.IsMafia() {
		return text
	}

	var mates []string
	for _, m := range roster {
		if m.IsMafia() && m.ID != member.ID {
			mates = append(mates, m.HTMLName())
		}
	}
	if len(mates) > 0 {
		text += fmt.Sprintf("\n\nТвои подельники: %v", strings.Join(mates, ", "))
	}
	return text
}

// listAlive renders the living roster followed by the living roles, shuffled
// so the order gives nothing away.
func listAlive(roster []*types.Player, r *rand.Rand) string {
	text := "Живые игроки:\n"
	var roles []string
	for _, member := range roster {
		if member.Alive {
			text += fmt.Sprintf("- %v\n", member.HTMLName())
			roles = append(roles, string(member.Role))
		}
	}

	r.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })

	return text + "\n<b>Роли:</b> " + strings.Join(roles, ", ")
}

// resultsText reveals every role and splits the roster into winners and losers.
func resultsText(outcome Outcome, roster []*types.Player) string {
	winnerText := "Вся мафия перебита. Город освобождён."
	if outcome == MafiaWin {
		winnerText = "Город захвачен мафией. Мафия победила."
	}

	winnersList := "Победители:\n"
	defeatedList := "Проигравшие:\n"
	for _, member := range roster {
		line := fmt.Sprintf("  - %v\n", member.WithRole())
		if member.IsMafia() == (outcome == MafiaWin) {
			winnersList += line
		} else {
			defeatedList += line
		}
	}

	return fmt.Sprintf("<b>Игра завершена</b>\n%v\n\n%v\n%v", winnerText, winnersList, defeatedList)
}

func ballotOptions(candidates []*types.Player) []BallotOption {
	options := make([]BallotOption, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, BallotOption{PlayerID: c.ID, Text: c.HumanReadableName()})
	}
	return options
}

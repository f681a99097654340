package types

type RoleType string

const (
	NoRole    RoleType = ""
	Mafia     RoleType = "Мафия"
	Citizen   RoleType = "Мирный житель"
	Doctor    RoleType = "Доктор"
	Detective RoleType = "Комиссар"
)

// IsMafia reports whether the role belongs to the mafia faction.
// Everybody else is citizen-aligned, Doctor and Detective included.
func (r RoleType) IsMafia() bool {
	return r == Mafia
}

func (r RoleType) Description() string {
	switch r {
	case Mafia:
		return "Ты в мафии. Ночью вы вместе выбираете, кто не проснётся."
	case Doctor:
		return "Ты доктор. Каждую ночь можешь спасти одного игрока, себя тоже."
	case Detective:
		return "Ты комиссар. Каждую ночь можешь проверить роль одного игрока."
	case Citizen:
		return "Ты простой мирный житель. Вычисли мафию и линчуй её на дневном собрании."
	}
	return ""
}

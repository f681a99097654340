package game

import "errors"

// Every command failure wraps exactly one of these, callers match with errors.Is.
var (
	ErrNoActiveSession      = errors.New("В этом чате нет активной игры")
	ErrSessionAlreadyExists = errors.New("Уже есть активная игра")
	ErrRosterFull           = errors.New("Все места в игре заняты")
	ErrAlreadyJoined        = errors.New("Вы уже в игре")
	ErrNotJoined            = errors.New("Вы не в игре")
	ErrInvalidPlayerCount   = errors.New("Недопустимое количество игроков")
	ErrWrongPhase           = errors.New("Сейчас это сделать нельзя")
	ErrNotEligibleVoter     = errors.New("Голосование не для вас")
	ErrInvalidTarget        = errors.New("Нельзя выбрать этого игрока")
	ErrAmbiguousTarget      = errors.New("Под это имя подходит несколько игроков, уточните")
	ErrInsufficientRoster   = errors.New("Слишком мало игроков для всех ролей")
	ErrNotAuthorized        = errors.New("Только ведущий может это сделать")
)

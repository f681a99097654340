package game

type Phase int

const (
	Waiting Phase = iota
	Night
	Day
	Voting
	Ended
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "набор игроков"
	case Night:
		return "ночь"
	case Day:
		return "день"
	case Voting:
		return "голосование"
	case Ended:
		return "игра окончена"
	}
	return "неизвестно"
}

/*
next returns the phase a moderator advance leads to:

Waiting -> Night (only by the roster filling up, never by advance)
Night -> Day
Day -> Voting
Voting -> Night
?could be Voting -> Ended or Night -> Ended when the win check fires, not decided here
*/
func (p Phase) next() (Phase, bool) {
	switch p {
	case Night:
		return Day, true
	case Day:
		return Voting, true
	case Voting:
		return Night, true
	}
	return p, false
}

// IsOver marks if the session reached its terminal phase
func (p Phase) IsOver() bool {
	return p == Ended
}

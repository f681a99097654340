package game

type CommandType string

const (
	Start         CommandType = "start"
	LaunchNewGame CommandType = "game"
	Join          CommandType = "join"
	Leave         CommandType = "leave"
	Kill          CommandType = "kill"
	Protect       CommandType = "protect"
	Inspect       CommandType = "inspect"
	Lynch         CommandType = "lynch"
	Next          CommandType = "next"
	Status        CommandType = "status"
	EndGame       CommandType = "endGame"
)

// NightAction is a role-restricted secret intent cast during the night.
type NightAction int

const (
	KillAction NightAction = iota
	ProtectAction
	InspectAction
)

func (a NightAction) String() string {
	switch a {
	case KillAction:
		return "kill"
	case ProtectAction:
		return "protect"
	case InspectAction:
		return "inspect"
	}
	return "unknown"
}

// BallotKind tells which vote a ballot belongs to.
type BallotKind int

const (
	LynchBallot BallotKind = iota
	MafiaBallot
	DoctorBallot
	DetectiveBallot
)

type BallotOption struct {
	PlayerID string
	Text     string
}

// Ballot is attached to a notification that opens a vote for its recipient.
type Ballot struct {
	ChannelKey string
	// Round grows every time a set of ballots is opened in the channel.
	Round      int
	Kind       BallotKind
	Options    []BallotOption
}

// Notification is a message the caller should deliver. Exactly one of
// ChannelKey and PlayerID is set.
type Notification struct {
	ChannelKey string
	PlayerID   string
	Text       string
	Ballot     *Ballot
}

// Result is what a command hands back: a reply for the requester and whatever
// must be announced because of it.
type Result struct {
	Reply         string
	Notifications []Notification
}

// PlayerDirectory is owned by the chat transport.
type PlayerDirectory interface {
	ResolveDisplayName(id string) string
	ResolveID(mention string) (string, bool)
}

// Notifier delivers messages, best effort. Delivery failures are the
// implementation's business.
type Notifier interface {
	SendToChannel(channelKey string, text string, ballot *Ballot)
	SendToPlayer(playerID string, text string, ballot *Ballot)
}

// Dispatch hands every notification of r to n in order.
func Dispatch(n Notifier, r Result) {
	for _, note := range r.Notifications {
		if note.PlayerID != "" {
			n.SendToPlayer(note.PlayerID, note.Text, note.Ballot)
			continue
		}
		n.SendToChannel(note.ChannelKey, note.Text, note.Ballot)
	}
}

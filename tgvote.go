package main

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/segmentio/ksuid"

	"github.com/rredkovich/mafiaengine/game"
)

// TGVoteValue is what an inline ballot button stands for. The button itself
// only carries the ksuid, callback data is too short for anything else.
type TGVoteValue struct {
	UUID       ksuid.KSUID
	ChannelKey string
	Kind       game.BallotKind
	VoterID    string
	TargetID   string
}

func NewTGVoteValue(channelKey string, kind game.BallotKind, voterID, targetID string) *TGVoteValue {
	return &TGVoteValue{
		UUID:       ksuid.New(),
		ChannelKey: channelKey,
		Kind:       kind,
		VoterID:    voterID,
		TargetID:   targetID,
	}
}

func (v *TGVoteValue) UUIDString() string {
	return v.UUID.String()
}

// Ballots keeps the buttons of the latest ballot round of every channel.
// Opening a newer round drops the older buttons, so a stale keyboard stops voting.
type Ballots struct {
	mu     sync.Mutex
	values map[string]*TGVoteValue
	rounds map[string]int
}

func NewBallots() *Ballots {
	return &Ballots{
		values: make(map[string]*TGVoteValue),
		rounds: make(map[string]int),
	}
}

// Keyboard registers a button per option and returns them one per row.
func (b *Ballots) Keyboard(voterID string, ballot *game.Ballot) tgbotapi.InlineKeyboardMarkup {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ballot.Round > b.rounds[ballot.ChannelKey] {
		b.forget(ballot.ChannelKey)
		b.rounds[ballot.ChannelKey] = ballot.Round
	}

	kbdRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(ballot.Options))
	for _, option := range ballot.Options {
		vote := NewTGVoteValue(ballot.ChannelKey, ballot.Kind, voterID, option.PlayerID)
		b.values[vote.UUIDString()] = vote
		row := tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(option.Text, vote.UUIDString()))
		kbdRows = append(kbdRows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(kbdRows...)
}

func (b *Ballots) Get(key string) (*TGVoteValue, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.values[key]
	return v, ok
}

// Forget drops every button of a channel.
func (b *Ballots) Forget(channelKey string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.forget(channelKey)
	delete(b.rounds, channelKey)
}

func (b *Ballots) forget(channelKey string) {
	for key, v := range b.values {
		if v.ChannelKey == channelKey {
			delete(b.values, key)
		}
	}
}

func (b *Ballots) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.values)
}

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rredkovich/mafiaengine/game"
)

type fakeBot struct {
	sent   chan tgbotapi.Chattable
	member tgbotapi.ChatMember
	err    error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent <- c
	return tgbotapi.Message{}, b.err
}

func (b *fakeBot) AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error) {
	return tgbotapi.APIResponse{Ok: true}, b.err
}

func (b *fakeBot) GetChatMember(config tgbotapi.ChatConfigWithUser) (tgbotapi.ChatMember, error) {
	return b.member, b.err
}

func TestTGDirectory(t *testing.T) {
	d := NewTGDirectory()
	id := d.Remember(&tgbotapi.User{ID: 7, UserName: "Vito", FirstName: "Vito", LastName: "Corleone"})

	assert.Equal(t, "7", id)
	assert.Equal(t, "Vito Corleone", d.ResolveDisplayName("7"))
	assert.Equal(t, "8", d.ResolveDisplayName("8"))

	tests := []struct {
		mention string
		want    string
		wantOK  bool
	}{
		{"@vito", "7", true},
		{"@VITO", "7", true},
		{"@tom", "", false},
		{"tg://user?id=12", "12", true},
		{"tg://user?id=x", "x", false},
		{"Vito", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.mention, func(t *testing.T) {
			got, ok := d.ResolveID(tt.mention)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHumanReadableName(t *testing.T) {
	assert.Equal(t, "Tom", HumanReadableName(&tgbotapi.User{FirstName: "Tom"}))
	assert.Equal(t, "Tom Hagen", HumanReadableName(&tgbotapi.User{FirstName: "Tom", LastName: "Hagen"}))
	assert.Equal(t, "consigliere", HumanReadableName(&tgbotapi.User{UserName: "consigliere"}))
}

func receive(t *testing.T, bot *fakeBot) tgbotapi.MessageConfig {
	t.Helper()
	select {
	case c := <-bot.sent:
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok)
		return msg
	case <-time.After(time.Second):
		t.Fatal("nothing was sent")
	}
	return tgbotapi.MessageConfig{}
}

func TestTGTransport_Sends(t *testing.T) {
	bot := &fakeBot{sent: make(chan tgbotapi.Chattable, 10), err: errors.New("flood")}
	ballots := NewBallots()
	transport := NewTGTransport(bot, ballots, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go transport.Run(ctx)

	transport.SendToChannel("-100", "<b>Ночь</b>", nil)
	msg := receive(t, bot)
	assert.Equal(t, int64(-100), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Nil(t, msg.ReplyMarkup)

	ballot := &game.Ballot{ChannelKey: "-100", Kind: game.DoctorBallot, Options: []game.BallotOption{{PlayerID: "3", Text: "Sonny"}}}
	transport.SendToPlayer("5", "Кого забинтуем этой ночью?", ballot)
	msg = receive(t, bot)
	assert.Equal(t, int64(5), msg.ChatID)
	kbd, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kbd.InlineKeyboard, 1)
	v, ok := ballots.Get(*kbd.InlineKeyboard[0][0].CallbackData)
	require.True(t, ok)
	assert.Equal(t, "5", v.VoterID)

	transport.SendJoinLink("-100", "Ведётся набор", "https://t.me/amafia_bot?start=x")
	msg = receive(t, bot)
	_, ok = msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.True(t, ok)

	// unparsable keys are dropped
	transport.SendToPlayer("not-a-number", "text", nil)
	select {
	case <-bot.sent:
		t.Fatal("message to a bad id was sent")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTGTransport_IsChatAdmin(t *testing.T) {
	bot := &fakeBot{member: tgbotapi.ChatMember{Status: "administrator"}}
	transport := NewTGTransport(bot, NewBallots(), 1)
	assert.True(t, transport.IsChatAdmin(-100, 1))

	bot.member = tgbotapi.ChatMember{Status: "creator"}
	assert.True(t, transport.IsChatAdmin(-100, 1))

	bot.member = tgbotapi.ChatMember{Status: "member"}
	assert.False(t, transport.IsChatAdmin(-100, 1))

	bot.member = tgbotapi.ChatMember{Status: "administrator"}
	bot.err = errors.New("chat not found")
	assert.False(t, transport.IsChatAdmin(-100, 1))
}

func TestTGTransport_DropsWhenFull(t *testing.T) {
	bot := &fakeBot{sent: make(chan tgbotapi.Chattable, 10)}
	transport := NewTGTransport(bot, NewBallots(), 1)

	// nothing drains the outbox
	transport.SendToChannel("1", "first", nil)
	transport.SendToChannel("1", "second", nil)

	assert.Len(t, transport.outbox, 1)
}

package main

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/rredkovich/mafiaengine/game"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
	GetChatMember(config tgbotapi.ChatConfigWithUser) (tgbotapi.ChatMember, error)
}

// Transport is everything the dispatcher needs from the chat platform.
type Transport interface {
	game.Notifier
	SendJoinLink(channelKey, text, url string)
	AnswerCallback(callbackID, text string)
	IsChatAdmin(chatID int64, userID int) bool
}

// TGTransport queues outgoing messages and sends them from Run, so callers
// never wait on Telegram.
type TGTransport struct {
	bot     botAPI
	ballots *Ballots
	outbox  chan tgbotapi.Chattable
}

func NewTGTransport(bot botAPI, ballots *Ballots, buffer int) *TGTransport {
	return &TGTransport{
		bot:     bot,
		ballots: ballots,
		outbox:  make(chan tgbotapi.Chattable, buffer),
	}
}

// Run sends queued messages until ctx is done.
func (t *TGTransport) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-t.outbox:
			if _, err := t.bot.Send(msg); err != nil {
				log.Printf("Got error on send! %+v\n", err)
			}
		}
	}
}

func (t *TGTransport) enqueue(msg tgbotapi.Chattable) {
	select {
	case t.outbox <- msg:
	default:
		log.Printf("Outbox is full, dropping message %+v\n", msg)
	}
}

func (t *TGTransport) send(chatID int64, voterID string, text string, ballot *game.Ballot) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if ballot != nil && len(ballot.Options) > 0 {
		msg.ReplyMarkup = t.ballots.Keyboard(voterID, ballot)
	}
	t.enqueue(msg)
}

func (t *TGTransport) SendToChannel(channelKey string, text string, ballot *game.Ballot) {
	chatID, err := strconv.ParseInt(channelKey, 10, 64)
	if err != nil {
		log.Printf("Cannot parse channel key %q: %+v\n", channelKey, err)
		return
	}
	t.send(chatID, "", text, ballot)
}

func (t *TGTransport) SendToPlayer(playerID string, text string, ballot *game.Ballot) {
	chatID, err := strconv.ParseInt(playerID, 10, 64)
	if err != nil {
		log.Printf("Cannot parse player id %q: %+v\n", playerID, err)
		return
	}
	t.send(chatID, playerID, text, ballot)
}

// SendJoinLink posts text with a single "join" button opening url.
func (t *TGTransport) SendJoinLink(channelKey, text, url string) {
	chatID, err := strconv.ParseInt(channelKey, 10, 64)
	if err != nil {
		log.Printf("Cannot parse channel key %q: %+v\n", channelKey, err)
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Присоединиться", url),
		),
	)
	t.enqueue(msg)
}

func (t *TGTransport) AnswerCallback(callbackID, text string) {
	if _, err := t.bot.AnswerCallbackQuery(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("Got error on callback answer! %+v\n", err)
	}
}

func (t *TGTransport) IsChatAdmin(chatID int64, userID int) bool {
	member, err := t.bot.GetChatMember(tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID})
	if err != nil {
		log.Printf("Cannot get chat member %v of %v: %+v\n", userID, chatID, err)
		return false
	}
	return member.IsAdministrator() || member.IsCreator()
}

// TGDirectory remembers every user the bot has seen.
type TGDirectory struct {
	mu        sync.RWMutex
	names     map[string]string
	usernames map[string]string
}

func NewTGDirectory() *TGDirectory {
	return &TGDirectory{
		names:     make(map[string]string),
		usernames: make(map[string]string),
	}
}

// Remember stores the user's name and username and returns its id.
func (d *TGDirectory) Remember(u *tgbotapi.User) string {
	id := strconv.Itoa(u.ID)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.names[id] = HumanReadableName(u)
	if u.UserName != "" {
		d.usernames[strings.ToLower(u.UserName)] = id
	}
	return id
}

func (d *TGDirectory) ResolveDisplayName(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if name, ok := d.names[id]; ok {
		return name
	}
	return id
}

// ResolveID understands "@username" of a known user and "tg://user?id=N" links.
func (d *TGDirectory) ResolveID(mention string) (string, bool) {
	if id, ok := strings.CutPrefix(mention, "tg://user?id="); ok {
		_, err := strconv.Atoi(id)
		return id, err == nil
	}

	username, ok := strings.CutPrefix(mention, "@")
	if !ok {
		return "", false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.usernames[strings.ToLower(username)]
	return id, ok
}

// HumanReadableName returns nice human readable name :shrug:
func HumanReadableName(u *tgbotapi.User) string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

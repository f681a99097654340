package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/rredkovich/mafiaengine/authorization"
	"github.com/rredkovich/mafiaengine/game"
)

// Dispatcher turns Telegram updates into engine commands and hands the
// results to the transport.
type Dispatcher struct {
	registry  *game.Registry
	directory *TGDirectory
	ballots   *Ballots
	transport Transport
	botName   string
}

func NewDispatcher(registry *game.Registry, directory *TGDirectory, ballots *Ballots,
	transport Transport, botName string) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		directory: directory,
		ballots:   ballots,
		transport: transport,
		botName:   botName,
	}
}

// EncodeGameID packs a chat id into a deep link start payload.
func EncodeGameID(chatID int64) string {
	return base64.RawURLEncoding.EncodeToString(strconv.AppendInt(nil, chatID, 10))
}

func DecodeGameID(payload string) (int64, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(decoded), 10, 64)
}

func channelKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (d *Dispatcher) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		d.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		d.handleCommand(update.Message)
	}
}

func (d *Dispatcher) reply(chatID int64, text string) {
	d.transport.SendToChannel(channelKey(chatID), text, nil)
}

// deliver replies to the chat the command came from and emits the rest.
func (d *Dispatcher) deliver(chatID int64, key string, res game.Result, err error) {
	if err != nil {
		d.reply(chatID, html.EscapeString(err.Error()))
		return
	}
	d.reply(chatID, res.Reply)
	game.Dispatch(d.transport, res)
	d.forgetIfGone(key)
}

func (d *Dispatcher) forgetIfGone(key string) {
	if _, ok := d.registry.Lookup(key); !ok {
		d.ballots.Forget(key)
	}
}

// targetText is the command argument, a text mention of a user without a
// username turns into a structured mention.
func targetText(msg *tgbotapi.Message) string {
	if msg.Entities != nil {
		for _, e := range *msg.Entities {
			if e.Type == "text_mention" && e.User != nil {
				return game.Mention(strconv.Itoa(e.User.ID))
			}
		}
	}
	return strings.TrimSpace(msg.CommandArguments())
}

func (d *Dispatcher) handleCommand(msg *tgbotapi.Message) {
	userID := d.directory.Remember(msg.From)
	chatID := msg.Chat.ID
	key := channelKey(chatID)
	log.Printf("[%s] %s", msg.From.UserName, msg.Text)

	cmd := game.CommandType(msg.Command())
	if msg.Chat.IsPrivate() {
		d.handlePrivateCommand(cmd, msg, userID)
		return
	}

	switch cmd {
	case game.LaunchNewGame:
		d.launchGame(msg, userID)
	case game.Join:
		res, err := d.registry.JoinSession(key, userID, HumanReadableName(msg.From))
		d.deliver(chatID, key, res, err)
	case game.Leave:
		res, err := d.registry.LeaveSession(key, userID)
		d.deliver(chatID, key, res, err)
	case game.Lynch:
		res, err := d.registry.CastLynchVote(key, userID, targetText(msg))
		d.deliver(chatID, key, res, err)
	case game.Kill, game.Protect, game.Inspect:
		d.reply(chatID, "Ночные действия только в личных сообщениях боту")
	case game.Next:
		res, err := d.registry.AdvancePhase(key, userID, d.isModerator(chatID, key, msg.From))
		d.deliver(chatID, key, res, err)
	case game.EndGame:
		res, err := d.registry.DestroySession(key, userID, d.isModerator(chatID, key, msg.From))
		if err == nil {
			log.Printf("Stopped game in %v\n", key)
		}
		d.deliver(chatID, key, res, err)
	case game.Status:
		res, err := d.registry.Status(key)
		d.deliver(chatID, key, res, err)
	}
}

func (d *Dispatcher) isModerator(chatID int64, key string, u *tgbotapi.User) bool {
	s, ok := d.registry.Lookup(key)
	if !ok {
		return false
	}
	userID := strconv.Itoa(u.ID)
	// the creator needs no admin lookup
	isAdmin := s.CreatorID != userID && d.transport.IsChatAdmin(chatID, u.ID)
	return authorization.UserCouldModifyGame(userID, s.CreatorID, isAdmin)
}

func (d *Dispatcher) launchGame(msg *tgbotapi.Message, userID string) {
	chatID := msg.Chat.ID
	key := channelKey(chatID)

	n, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
	if err != nil {
		d.reply(chatID, "Укажите количество игроков, например: /game 6")
		return
	}

	res, err := d.registry.CreateSession(key, userID, n)
	if err != nil {
		d.reply(chatID, html.EscapeString(err.Error()))
		return
	}
	if s, ok := d.registry.Lookup(key); ok {
		log.Printf("Created game %v in %v for %d players\n", s.ID, key, n)
	}

	d.transport.SendJoinLink(key, res.Reply, fmt.Sprintf("https://t.me/%v?start=%v", d.botName, EncodeGameID(chatID)))
}

// sessionOf finds the only game the user plays in, night actions come from
// private chats and carry no channel.
func (d *Dispatcher) sessionOf(userID string) (string, error) {
	keys := d.registry.SessionsOf(userID)
	switch len(keys) {
	case 0:
		return "", game.ErrNoActiveSession
	case 1:
		return keys[0], nil
	}
	return "", errors.New("Вы играете в нескольких чатах, голосуйте кнопками")
}

func (d *Dispatcher) handlePrivateCommand(cmd game.CommandType, msg *tgbotapi.Message, userID string) {
	chatID := msg.Chat.ID

	switch cmd {
	case game.Start:
		// "/start <encoded chat id>" from the join button
		payload := strings.TrimSpace(msg.CommandArguments())
		if payload == "" {
			d.reply(chatID, "Это бот для игры в мафию. Добавьте его в группу и наберите /game 6")
			return
		}
		gameChatID, err := DecodeGameID(payload)
		if err != nil {
			log.Printf("Cannot parse game ID on start: %+v\n", err)
			d.reply(chatID, "Игры нет, возможно закончилась?..")
			return
		}
		key := channelKey(gameChatID)
		res, err := d.registry.JoinSession(key, userID, HumanReadableName(msg.From))
		if err != nil {
			d.reply(chatID, html.EscapeString(err.Error()))
			return
		}
		d.reply(chatID, "Вы присоединились к игре")
		d.deliver(gameChatID, key, res, nil)
	case game.Kill, game.Protect, game.Inspect, game.Lynch:
		key, err := d.sessionOf(userID)
		if err != nil {
			d.reply(chatID, html.EscapeString(err.Error()))
			return
		}
		var res game.Result
		switch cmd {
		case game.Kill:
			res, err = d.registry.CastNightAction(key, userID, game.KillAction, targetText(msg))
		case game.Protect:
			res, err = d.registry.CastNightAction(key, userID, game.ProtectAction, targetText(msg))
		case game.Inspect:
			res, err = d.registry.CastNightAction(key, userID, game.InspectAction, targetText(msg))
		default:
			res, err = d.registry.CastLynchVote(key, userID, targetText(msg))
		}
		d.deliver(chatID, key, res, err)
	default:
		d.reply(chatID, "Эта команда работает только в группе")
	}
}

func (d *Dispatcher) handleCallback(q *tgbotapi.CallbackQuery) {
	userID := d.directory.Remember(q.From)

	vote, ok := d.ballots.Get(q.Data)
	if !ok {
		d.transport.AnswerCallback(q.ID, "Голосование уже закончилось")
		return
	}
	if vote.VoterID != "" && vote.VoterID != userID {
		d.transport.AnswerCallback(q.ID, game.ErrNotEligibleVoter.Error())
		return
	}

	target := game.Mention(vote.TargetID)
	var (
		res game.Result
		err error
	)
	switch vote.Kind {
	case game.MafiaBallot:
		res, err = d.registry.CastNightAction(vote.ChannelKey, userID, game.KillAction, target)
	case game.DoctorBallot:
		res, err = d.registry.CastNightAction(vote.ChannelKey, userID, game.ProtectAction, target)
	case game.DetectiveBallot:
		res, err = d.registry.CastNightAction(vote.ChannelKey, userID, game.InspectAction, target)
	case game.LynchBallot:
		res, err = d.registry.CastLynchVote(vote.ChannelKey, userID, target)
	}

	if err != nil {
		// callback answers are plain text
		d.transport.AnswerCallback(q.ID, err.Error())
		return
	}
	d.transport.AnswerCallback(q.ID, res.Reply)
	game.Dispatch(d.transport, res)
	d.forgetIfGone(vote.ChannelKey)
}

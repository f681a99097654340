package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/rredkovich/mafiaengine/config"
	"github.com/rredkovich/mafiaengine/game"
)

const outboxSize = 256

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Cannot load .env: %+v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%+v", err)
	}

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Cannot connect to Telegram: %+v", err)
	}
	bot.Debug = cfg.Debug

	log.Printf("Authorized on account %s", bot.Self.UserName)
	log.Printf("Rules: %+v", rules)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	directory := NewTGDirectory()
	ballots := NewBallots()
	transport := NewTGTransport(bot, ballots, outboxSize)
	go transport.Run(ctx)

	registry := game.NewRegistry(rules, directory)
	dispatcher := NewDispatcher(registry, directory, ballots, transport, cfg.BotName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.UpdateTimeout

	updatesCh, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatalf("Cannot get updates: %+v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("Shutting down, %d games in progress", registry.Len())
			return
		case update := <-updatesCh:
			// sessions serialize their own transitions, different chats run in parallel
			go dispatcher.HandleUpdate(update)
		}
	}
}

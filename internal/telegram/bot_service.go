// Package telegram runs the admin moderation bot. It announces new
// chef registrations to the configured admin chat and lets admins
// moderate them with /pending, /approve and /reject without opening
// the dashboard.
package telegram

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"homechefs/backend/internal/models"
	"homechefs/backend/internal/userdir"
)

// pendingPollInterval is how often the bot re-checks the directory for
// chefs awaiting moderation.
const pendingPollInterval = 30 * time.Second

// BotService watches the directory for pending chefs and routes
// moderation commands from the admin chat.
type BotService struct {
	BotAPI      *tgbotapi.BotAPI
	Dir         *userdir.Directory
	AdminChatID int64

	// chefs already announced, so one registration is reported once
	announced map[int64]bool
}

// NewBotService creates a bot bound to one admin chat.
func NewBotService(token string, adminChatID int64, dir *userdir.Directory) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:      bot,
		Dir:         dir,
		AdminChatID: adminChatID,
		announced:   make(map[int64]bool),
	}, nil
}

// Run processes updates and periodically announces new pending chefs.
func (s *BotService) Run() {
	go s.watchPending()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		if update.Message.Chat.ID != s.AdminChatID {
			// Moderation commands only work from the admin chat.
			continue
		}

		switch update.Message.Command() {
		case "pending":
			s.handlePendingCommand()
		case "approve":
			s.handleModerationCommand(update.Message, s.Dir.ApproveChef, "approved")
		case "reject":
			s.handleModerationCommand(update.Message, s.Dir.RejectChef, "rejected")
		}
	}
}

// watchPending polls the directory and announces chefs that appeared
// since the last check.
func (s *BotService) watchPending() {
	ticker := time.NewTicker(pendingPollInterval)
	defer ticker.Stop()

	for range ticker.C {
		pending, err := s.Dir.PendingChefs()
		if err != nil {
			log.Printf("ERROR: Failed to poll pending chefs: %v", err)
			continue
		}
		for i := range pending {
			chef := &pending[i]
			if s.announced[chef.ID] {
				continue
			}
			s.announced[chef.ID] = true
			s.send(fmt.Sprintf(
				"New chef registration: %s (%s, id %d)\nApprove with /approve %d or reject with /reject %d",
				chef.DisplayName(), chef.Email, chef.ID, chef.ID, chef.ID,
			))
		}
	}
}

func (s *BotService) handlePendingCommand() {
	pending, err := s.Dir.PendingChefs()
	if err != nil {
		log.Printf("ERROR: Failed to list pending chefs: %v", err)
		s.send("Failed to load pending chefs.")
		return
	}
	if len(pending) == 0 {
		s.send("No chefs are waiting for moderation.")
		return
	}

	var b strings.Builder
	b.WriteString("Chefs waiting for moderation:\n")
	for i := range pending {
		fmt.Fprintf(&b, "- %s (%s), id %d\n", pending[i].DisplayName(), pending[i].Email, pending[i].ID)
	}
	s.send(b.String())
}

func (s *BotService) handleModerationCommand(msg *tgbotapi.Message, action func(int64) (*models.User, error), verb string) {
	arg := strings.TrimSpace(msg.CommandArguments())
	chefID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		s.send(fmt.Sprintf("Usage: /%s <chef id>", msg.Command()))
		return
	}

	chef, err := action(chefID)
	if err != nil {
		log.Printf("ERROR: Moderation of chef %d failed: %v", chefID, err)
		s.send("Moderation failed, see server logs.")
		return
	}
	if chef == nil {
		s.send(fmt.Sprintf("No chef with id %d.", chefID))
		return
	}
	s.send(fmt.Sprintf("Chef %s (%s) %s.", chef.DisplayName(), chef.Email, verb))
}

func (s *BotService) send(text string) {
	reply := tgbotapi.NewMessage(s.AdminChatID, text)
	if _, err := s.BotAPI.Send(reply); err != nil {
		log.Printf("Error sending Telegram message: %v", err)
	}
}

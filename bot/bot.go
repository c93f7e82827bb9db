/* bot.go
 * Contains logic used for creating the bot and routing discord messages to the command handlers. Requires a discord
 * bot token and an API pointer, both of which are passed in from main.go
 */

package bot

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"lck-pickems/api/api"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// commandTimeout bounds the database work done for one command
const commandTimeout = 10 * time.Second

// Bot answers pickems commands in discord channels
type Bot struct {
	BotToken string
	APIPtr   *api.API
	Logger   *zap.Logger
	// AdminIDs may record and clear results with $result
	AdminIDs []string

	limiter *userLimiter
}

// NewBot creates a bot for apiPtr. Every user gets their own command rate limit.
func NewBot(botToken string, apiPtr *api.API, adminIDs []string, logger *zap.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Logger:   logger,
		AdminIDs: adminIDs,
		limiter:  newUserLimiter(defaultCommandRate, defaultCommandBurst),
	}, nil
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	command := commandName(message.Content)
	handler, ok := b.commands()[command]
	if !ok {
		return
	}

	if !b.limiter.Allow(message.Author.ID) {
		b.Logger.Debug("command rate limited", zap.String("user", message.Author.ID), zap.String("command", command))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	handler(ctx, session, message)
}

type commandHandler func(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate)

func (b *Bot) commands() map[string]commandHandler {
	return map[string]commandHandler{
		"$help":        b.helpMessageHandler,
		"$details":     b.detailsHandler,
		"$set":         b.setPredictionsHandler,
		"$check":       b.checkPredictionsHandler,
		"$leaderboard": b.leaderboardHandler,
		"$survivors":   b.survivorsHandler,
		"$bracket":     b.bracketHandler,
		"$next":        b.nextMatchHandler,
		"$teams":       b.teamsHandler,
		"$stats":       b.statsHandler,
		"$result":      b.resultHandler,
	}
}

// isAdmin reports whether userID may change results
func (b *Bot) isAdmin(userID string) bool {
	return slices.Contains(b.AdminIDs, userID)
}

// commandName returns the first word of a message, which is the command for messages starting with $
func commandName(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "$") {
		return ""
	}
	return strings.ToLower(fields[0])
}

/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lck-pickems/api/api"
	"lck-pickems/api/bracket"
	"lck-pickems/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// splitArgs returns the arguments after the command with the quotes removed. We use splitter instead of
// strings.Fields so that quoted names such as "Hanwha Life" stay one argument.
func splitArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}
	var args []string
	for i, p := range parts {
		p = strings.Trim(p, "\"“”")
		if i == 0 || strings.TrimSpace(p) == "" {
			continue
		}
		args = append(args, p)
	}
	return args, nil
}

// reply sends content to the channel, splitting it to stay under the discord message limit
func (b *Bot) reply(session DiscordSession, channelID string, content string) {
	for _, chunk := range chunkMessage(content, maxMessageLength) {
		if _, err := session.ChannelMessageSend(channelID, chunk); err != nil {
			b.Logger.Error("failed to send message", zap.String("channel", channelID), zap.Error(err))
			return
		}
	}
}

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	keys := b.APIPtr.Catalog.EntryKeys()
	var res strings.Builder
	res.WriteString("LCK Pickems Bot\n")
	res.WriteString("`$details`: Get information about the tournament including name, format, stages and the pick order\n")
	res.WriteString(fmt.Sprintf("`$set team1 ... team%d`: Sets your Pick'Ems, one team per key in this order: %s\n", len(keys), joinKeys(keys)))
	res.WriteString("There is fuzzy matching on names, however you should try and have a close match for the best results. Names that contain two or more words need to be encased in \" (e.g. \"Hanwha Life\")\n")
	res.WriteString("`$check`: shows every pick you made and whether it was right\n")
	res.WriteString("`$leaderboard`: shows every participant ordered by number of wrong picks\n")
	res.WriteString("`$survivors`: shows who is still perfect and how many have been eliminated\n")
	res.WriteString("`$bracket`: shows the bracket with the results recorded so far\n")
	res.WriteString("`$next`: shows the next match waiting for a result\n")
	res.WriteString("`$teams`: shows the teams in the bracket. Use this list to set your PickEms\n")
	res.WriteString("`$stats match`: shows how everyone picked a match, e.g. `$stats R2 M1`\n")
	res.WriteString("`$result set match team` / `$result clear match`: records or clears a result (admins only)\n")
	b.reply(session, message.ChannelID, res.String())
}

// detailsHandler handles the $details command with a DiscordSession interface
func (b *Bot) detailsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	info := b.APIPtr.GetTournamentInfo()
	var res strings.Builder
	for i := range info {
		res.WriteString(fmt.Sprintf("%s\n", info[i]))
	}
	b.reply(session, message.ChannelID, res.String())
}

// setPredictionsHandler handles the $set command with a DiscordSession interface
func (b *Bot) setPredictionsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}
	res := fmt.Sprintf("%s's Pickems have been updated\n", user.Username)

	userPreds, err := splitArgs(message.Content)
	if err == nil {
		err = b.APIPtr.SetUserPrediction(ctx, user, userPreds)
	}
	if err != nil {
		b.Logger.Info("set prediction rejected", zap.String("user", user.Username), zap.Error(err))
		res = fmt.Sprintf("An error occurred setting %s's Pickems: %s", user.Username, err)
	}
	b.reply(session, message.ChannelID, res)
}

// checkPredictionsHandler handles the $check command with a DiscordSession interface
func (b *Bot) checkPredictionsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}
	report, err := b.APIPtr.CheckPrediction(ctx, user)
	var res string
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		res = fmt.Sprintf("%s does not have any Pickems stored. Use $set to set your predictions\n", user.Username)
	case err != nil:
		b.Logger.Error("check prediction failed", zap.String("user", user.Username), zap.Error(err))
		res = fmt.Sprintf("An error occurred checking %s's Pickems", user.Username)
	default:
		res = formatReport(user.Username, report)
	}
	b.reply(session, message.ChannelID, res)
}

// leaderboardHandler handles the $leaderboard command with a DiscordSession interface
func (b *Bot) leaderboardHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	leaderboard, err := b.APIPtr.GenerateLeaderboard(ctx)
	if err != nil {
		b.Logger.Error("leaderboard failed", zap.Error(err))
		b.reply(session, message.ChannelID, "An error occurred getting the leaderboard")
		return
	}
	b.reply(session, message.ChannelID, formatLeaderboard(leaderboard))
}

// survivorsHandler handles the $survivors command with a DiscordSession interface
func (b *Bot) survivorsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	standings, err := b.APIPtr.GetStandings(ctx)
	if err != nil {
		b.Logger.Error("standings failed", zap.Error(err))
		b.reply(session, message.ChannelID, "An error occurred getting the survivors")
		return
	}
	b.reply(session, message.ChannelID, formatSurvivors(standings))
}

// bracketHandler handles the $bracket command with a DiscordSession interface
func (b *Bot) bracketHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	view, err := b.APIPtr.GetBracket(ctx)
	if err != nil {
		b.Logger.Error("bracket failed", zap.Error(err))
		b.reply(session, message.ChannelID, "An error occurred getting the bracket")
		return
	}
	b.reply(session, message.ChannelID, formatBracket(view))
}

// nextMatchHandler handles the $next command with a DiscordSession interface
func (b *Bot) nextMatchHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	next, err := b.APIPtr.GetNextMatch(ctx)
	if err != nil {
		b.Logger.Error("next match failed", zap.Error(err))
		b.reply(session, message.ChannelID, "An error occurred getting the next match")
		return
	}
	b.reply(session, message.ChannelID, formatNextMatch(next))
}

// teamsHandler handles the $teams command with a DiscordSession interface
func (b *Bot) teamsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Valid teams for this bracket are:\n")
	for _, team := range b.APIPtr.GetTeams() {
		res.WriteString(fmt.Sprintf("- %s\n", team))
	}
	b.reply(session, message.ChannelID, res.String())
}

// statsHandler handles the $stats command with a DiscordSession interface
func (b *Bot) statsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) == 0 {
		b.reply(session, message.ChannelID, "Usage: `$stats match`, e.g. `$stats R2 M1`")
		return
	}

	stats, err := b.APIPtr.GetPickStats(ctx, strings.Join(args, " "))
	if err != nil {
		var unknown *bracket.UnknownMatchError
		if errors.As(err, &unknown) {
			b.reply(session, message.ChannelID, fmt.Sprintf("%s. Valid keys are: %s", err, joinKeys(b.APIPtr.Catalog.EntryKeys())))
			return
		}
		b.Logger.Error("pick stats failed", zap.Error(err))
		b.reply(session, message.ChannelID, "An error occurred getting the pick stats")
		return
	}
	b.reply(session, message.ChannelID, formatPickStats(stats))
}

// resultHandler handles the $result command with a DiscordSession interface. Only admins may use it.
// `$result set R1 M1 T1` records a result and `$result clear R1 M1` removes one. The team is always the last
// argument so match ids do not need quotes.
func (b *Bot) resultHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	if !b.isAdmin(message.Author.ID) {
		b.reply(session, message.ChannelID, "Only admins can change results")
		return
	}

	args, err := splitArgs(message.Content)
	usage := "Usage: `$result set match team` or `$result clear match`"
	if err != nil || len(args) < 2 {
		b.reply(session, message.ChannelID, usage)
		return
	}

	var res string
	switch strings.ToLower(args[0]) {
	case "set":
		if len(args) < 3 {
			b.reply(session, message.ChannelID, usage)
			return
		}
		match := strings.Join(args[1:len(args)-1], " ")
		key, team, err := b.APIPtr.SetMatchResult(ctx, match, args[len(args)-1])
		if err != nil {
			res = resultError(err)
			break
		}
		res = fmt.Sprintf("Recorded %s: %s", key, team)
		b.refreshLeaderboard(ctx)
	case "clear":
		key, err := b.APIPtr.ClearMatchResult(ctx, strings.Join(args[1:], " "))
		if err != nil {
			res = resultError(err)
			break
		}
		res = fmt.Sprintf("Cleared %s", key)
		b.refreshLeaderboard(ctx)
	default:
		res = usage
	}
	b.reply(session, message.ChannelID, res)
}

// refreshLeaderboard stores a new leaderboard snapshot after a result changed
func (b *Bot) refreshLeaderboard(ctx context.Context) {
	if _, err := b.APIPtr.GenerateLeaderboard(ctx); err != nil {
		b.Logger.Warn("leaderboard refresh failed", zap.Error(err))
	}
}

// resultError turns a result ingestion error into a message for the channel
func resultError(err error) string {
	var unknown *bracket.UnknownMatchError
	var inconsistent *bracket.InconsistentResultError
	switch {
	case errors.As(err, &unknown), errors.Is(err, api.ErrUnknownTeam), errors.Is(err, api.ErrResultAlreadyRecorded):
		return fmt.Sprintf("Result rejected: %s", err)
	case errors.As(err, &inconsistent):
		return fmt.Sprintf("Result rejected, it does not fit the bracket: %s", inconsistent.Reason)
	default:
		return "An error occurred updating the result"
	}
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finbot/internal/core"
	"finbot/internal/extract"
	"finbot/internal/ledger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	startText = "Hi! Send me your expenses or incomes in any message, e.g., 'Bought coffee ₹150'. " +
		"Use /summary to get your totals and /breakdown for a monthly report."

	couldNotUnderstandText = "Sorry, I couldn't understand your message. Please try again with details " +
		"like 'Bought snacks ₹150' or 'Received salary ₹50000'."

	invalidAmountText = "Sorry, I couldn't extract a valid positive amount from your message. Please try again."

	emptyLedgerText     = "Your sheet is empty. No breakdown available."
	noValidRecordsText  = "No valid financial records found to generate a breakdown."
	summaryHeaderText   = "📊 Expense Summary:"
	breakdownHeaderText = "📈 *Monthly Financial Breakdown* 📈"
)

// API is the slice of *tgbotapi.BotAPI the bot uses, kept as an interface
// so tests can capture outgoing messages.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot routes incoming Telegram messages: commands go to the summary and
// breakdown handlers, everything else is treated as a transaction to log.
// All collaborators are explicit; the bot holds no state of its own.
type Bot struct {
	api       API
	extractor extract.Extractor
	appender  ledger.Appender
	reader    ledger.Reader
	now       func() time.Time
}

func New(api API, extractor extract.Extractor, appender ledger.Appender, reader ledger.Reader) *Bot {
	return &Bot{
		api:       api,
		extractor: extractor,
		appender:  appender,
		reader:    reader,
		now:       time.Now,
	}
}

// Run long-polls for updates until ctx is done. Each message is handled to
// completion before the next one is read.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	slog.Info("Received message", "chat_id", message.Chat.ID, "text", message.Text)

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.reply(message, startText)
			return
		case "summary":
			b.reply(message, b.summaryText(ctx))
			return
		case "breakdown":
			b.replyMarkdown(message, b.breakdownText(ctx))
			return
		}
		// Unknown commands fall through to the logging path.
	}
	b.reply(message, b.logText(ctx, message))
}

// logText runs the extract → validate → append pipeline for one message
// and returns the user-facing reply.
func (b *Bot) logText(ctx context.Context, message *tgbotapi.Message) string {
	// Typing indicator while the extractor call is in flight.
	if _, err := b.api.Request(tgbotapi.NewChatAction(message.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		slog.Warn("Chat action failed", "error", err)
	}

	candidate, err := b.extractor.Extract(ctx, message.Text)
	if err != nil {
		slog.Warn("Extraction failed", "error", err, "chat_id", message.Chat.ID)
		return couldNotUnderstandText
	}

	tx, err := core.NewTransaction(candidate, b.now())
	if err != nil {
		if !errors.Is(err, core.ErrInvalidAmount) {
			slog.Error("Unexpected validation error", "error", err)
		}
		return invalidAmountText
	}

	if err := b.appender.Append(ctx, tx); err != nil {
		slog.Error("Ledger append failed", "error", err, "description", tx.Description)
		return fmt.Sprintf("Failed to log your data to Google Sheet: %v", err)
	}

	return fmt.Sprintf("✅ Logged your %s: %s of %s", tx.Kind, tx.Description, tx.Amount)
}

func (b *Bot) summaryText(ctx context.Context) string {
	rows, err := b.reader.Records(ctx)
	if err != nil {
		slog.Error("Ledger read failed", "error", err)
		return fmt.Sprintf("Error retrieving summary: %v", err)
	}

	totals := core.Summarize(rows)
	return fmt.Sprintf("%s\nTotal Income: %s\nTotal Expense: %s\nBalance: %s",
		summaryHeaderText, totals.Income, totals.Expense, totals.Balance())
}

func (b *Bot) breakdownText(ctx context.Context) string {
	rows, err := b.reader.Records(ctx)
	if err != nil {
		slog.Error("Ledger read failed", "error", err)
		return fmt.Sprintf("Error generating breakdown summary: %v", err)
	}
	if len(rows) == 0 {
		return emptyLedgerText
	}

	buckets := core.Breakdown(rows)
	if len(buckets) == 0 {
		return noValidRecordsText
	}

	var sb strings.Builder
	sb.WriteString(breakdownHeaderText + "\n\n")
	for _, month := range buckets {
		fmt.Fprintf(&sb, "--- *%s* ---\n", month.Label)
		fmt.Fprintf(&sb, "💰 Income: %s\n", month.Income)
		if len(month.Expenses) > 0 {
			sb.WriteString("💸 Expenses by Category:\n")
			for _, cat := range month.Expenses {
				fmt.Fprintf(&sb, "  - %s: %s\n", cat.Name, cat.Amount)
			}
		} else {
			sb.WriteString("💸 No expenses recorded for this month.\n")
		}
		fmt.Fprintf(&sb, "Total Monthly Expense: %s\n", month.TotalExpense)
		fmt.Fprintf(&sb, "Monthly Balance: %s\n\n", month.Balance())
	}
	return sb.String()
}

func (b *Bot) reply(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Send reply failed", "error", err, "chat_id", message.Chat.ID)
	}
}

func (b *Bot) replyMarkdown(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Send reply failed", "error", err, "chat_id", message.Chat.ID)
	}
}

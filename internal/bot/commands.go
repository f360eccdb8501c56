package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/plugg/internal/models"
	"github.com/shrimpsizemoose/plugg/internal/schedule"
)

const (
	readerHelp = `Available commands:
/today - Today's revision sessions, grouped by time of day
/week - The current week at a glance
/next - Jump to next week
/prev - Jump to previous week
/nextexam - Countdown to the nearest exam
/refresh - Reload subjects, exams and the week's sessions
/help - Show this message`

	adminHelp = readerHelp + `

Admin commands:
/done <event_id> - Toggle a session's completion
/delete <event_id> - Delete a session

Examples:
/done 17
/delete 17`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routeReaderCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":    b.handleStart,
		"today":    b.handleToday,
		"week":     b.handleWeek,
		"next":     b.handleNextWeek,
		"prev":     b.handlePrevWeek,
		"nextexam": b.handleNextExam,
		"refresh":  b.handleRefresh,
		"help":     b.handleHelp,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"done":   b.handleDone,
		"delete": b.handleDelete,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routeReaderCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Send /help for the list of commands.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	text := "Hi! I keep track of your revision calendar.\n\nSend /today to see what's planned."
	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	var text string
	if b.admins[msg.From.ID] {
		text = adminHelp
	} else {
		text = readerHelp
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleRefresh(msg *tgbotapi.Message) error {
	b.calendar.Load()
	return b.sendMessage(msg.Chat.ID, "Reloaded.")
}

func (b *Bot) handleToday(msg *tgbotapi.Message) error {
	today := time.Now()
	b.calendar.GoToWeek(today)
	b.calendar.SelectDate(today)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", today.Format("Mon, Jan 2"))

	for _, exam := range b.calendar.ExamsForDay(today) {
		fmt.Fprintf(&sb, "\n📝 EXAM DAY: %s at %s\n", exam.Name, exam.Time)
	}

	grouped := b.calendar.GroupedByTimeOfDay()
	sections := []struct {
		bucket schedule.Bucket
		events []models.RevisionEvent
	}{
		{schedule.BucketMorning, grouped.Morning},
		{schedule.BucketAfternoon, grouped.Afternoon},
		{schedule.BucketNight, grouped.Night},
	}

	empty := true
	for _, section := range sections {
		if len(section.events) == 0 {
			continue
		}
		empty = false
		fmt.Fprintf(&sb, "\n%s\n", section.bucket.Label())
		for _, e := range section.events {
			sb.WriteString(b.formatEvent(e))
		}
	}

	if empty {
		sb.WriteString("\nNo sessions planned today.")
	}

	return b.sendMessage(msg.Chat.ID, sb.String())
}

func (b *Bot) handleWeek(msg *tgbotapi.Message) error {
	return b.sendWeek(msg.Chat.ID)
}

func (b *Bot) handleNextWeek(msg *tgbotapi.Message) error {
	b.calendar.NextWeek()
	return b.sendWeek(msg.Chat.ID)
}

func (b *Bot) handlePrevWeek(msg *tgbotapi.Message) error {
	b.calendar.PrevWeek()
	return b.sendWeek(msg.Chat.ID)
}

func (b *Bot) sendWeek(chatID int64) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Week of %s\n", b.calendar.WeekLabel())

	empty := true
	for _, day := range b.calendar.Week() {
		events := b.calendar.EventsForDay(day)
		exams := b.calendar.ExamsForDay(day)
		if len(events) == 0 && len(exams) == 0 {
			continue
		}
		empty = false

		fmt.Fprintf(&sb, "\n%s\n", day.Format("Mon 2 Jan"))
		for _, exam := range exams {
			fmt.Fprintf(&sb, "  📝 %s - %s\n", exam.Time, exam.Name)
		}
		for _, e := range events {
			sb.WriteString("  " + b.formatEvent(e))
		}
	}

	if empty {
		sb.WriteString("\nNothing planned this week.")
	}

	return b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleNextExam(msg *tgbotapi.Message) error {
	exam := b.calendar.NextExam()
	if exam == nil {
		return b.sendMessage(msg.Chat.ID, "No upcoming exams. Enjoy the calm.")
	}

	name, _ := exam.DisplaySubject()
	text := fmt.Sprintf("Next exam: %s (%s)\n%s at %s, %s\n",
		exam.Name,
		name,
		exam.Date,
		exam.Time,
		schedule.FormatDuration(exam.Duration),
	)

	switch exam.DaysRemaining {
	case 0:
		text += "That is TODAY."
	case 1:
		text += "Tomorrow!"
	default:
		text += fmt.Sprintf("%d days to go.", exam.DaysRemaining)
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleDone(msg *tgbotapi.Message) error {
	id, err := parseEventID(msg.CommandArguments())
	if err != nil {
		return b.sendMessage(msg.Chat.ID, "Usage: /done <event_id>")
	}

	event, err := b.calendar.ToggleEventCompletion(id)
	if err != nil {
		return err
	}

	state := "pending again"
	if event.Completed {
		state = "done"
	}
	name, _ := event.DisplaySubject()
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s at %s is now %s.", name, event.Time, state))
}

func (b *Bot) handleDelete(msg *tgbotapi.Message) error {
	id, err := parseEventID(msg.CommandArguments())
	if err != nil {
		return b.sendMessage(msg.Chat.ID, "Usage: /delete <event_id>")
	}

	if err := b.calendar.DeleteEvent(id); err != nil {
		return err
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Session %d deleted.", id))
}

func parseEventID(args string) (int64, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return 0, fmt.Errorf("expected exactly one event id")
	}
	return strconv.ParseInt(fields[0], 10, 64)
}

func (b *Bot) formatEvent(e models.RevisionEvent) string {
	name, _ := e.DisplaySubject()
	check := " "
	if e.Completed {
		check = "✓"
	}
	line := fmt.Sprintf("[%s] #%d %s - %s (%s)", check, e.ID, e.Time, name, schedule.FormatDuration(e.Duration))
	if e.Notes != nil && *e.Notes != "" {
		line += " // " + *e.Notes
	}
	return line + "\n"
}

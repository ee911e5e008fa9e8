// Package bot is the Telegram front end: command handlers, the upload
// dialogue, browse/search/request flows, and deep-link downloads, all on
// top of the catalog store.
package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
	"moviezone-bot/internal/metrics"
)

type Bot struct {
	tb      *tele.Bot
	store   *catalog.Store
	cfg     *config.Config
	met     *metrics.Metrics
	log     *slog.Logger
	wizard  *wizardManager
	deleter *autoDeleter
}

// New connects to the Bot API and registers all handlers. The bot does not
// poll until Start is called.
func New(cfg *config.Config, store *catalog.Store, met *metrics.Metrics, log *slog.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token: cfg.BotToken,
		Poller: &tele.LongPoller{
			Timeout: 10 * time.Second,
		},
		OnError: func(err error, c tele.Context) {
			if c != nil && c.Chat() != nil {
				log.Error("handler error", "chat_id", c.Chat().ID, "error", err)
				return
			}
			log.Error("poller error", "error", err)
		},
	}

	tb, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b := &Bot{
		tb:      tb,
		store:   store,
		cfg:     cfg,
		met:     met,
		log:     log,
		wizard:  newWizardManager(cfg.ConversationTimeout),
		deleter: newAutoDeleter(tb, cfg.AutoDeleteTTL, log),
	}
	b.register()
	return b, nil
}

// Username returns the bot's own handle, used to build deep links.
func (b *Bot) Username() string {
	return b.tb.Me.Username
}

// Start clears any stale webhook plus the pending update backlog, then
// blocks polling for updates.
func (b *Bot) Start() {
	if err := b.tb.RemoveWebhook(true); err != nil {
		b.log.Warn("could not remove webhook", "error", err)
	}
	b.log.Info("bot started", "username", b.tb.Me.Username, "id", b.tb.Me.ID)
	b.tb.Start()
}

// Stop halts polling and cancels pending auto-delete timers.
func (b *Bot) Stop() {
	b.deleter.stop()
	b.tb.Stop()
}

func (b *Bot) register() {
	b.tb.Use(b.trackUser)

	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/help", b.handleHelp)

	b.tb.Handle("/add_movie", b.handleAddMovie)
	b.tb.Handle("/remove_movie", b.handleRemoveMovie)
	b.tb.Handle("/cancel", b.handleCancel)
	b.tb.Handle("/search", b.handleSearch)
	b.tb.Handle("/browse", b.handleBrowse)

	b.tb.Handle("/add_admin", b.handleAddAdmin)
	b.tb.Handle("/remove_admin", b.handleRemoveAdmin)
	b.tb.Handle("/admins", b.handleListAdmins)

	b.tb.Handle("/add_channel", b.handleAddChannel)
	b.tb.Handle("/remove_channel", b.handleRemoveChannel)
	b.tb.Handle("/channels", b.handleListChannels)

	b.tb.Handle("/request", b.handleRequest)
	b.tb.Handle("/requests", b.handleRequests)
	b.tb.Handle("/stats", b.handleStats)

	b.tb.Handle(tele.OnText, b.handleText)
	b.tb.Handle(tele.OnDocument, b.handleDocument)
	b.tb.Handle(tele.OnVideo, b.handleVideo)
	b.tb.Handle(tele.OnCallback, b.handleCallback)
}

// trackUser records every interacting user and counts the update.
func (b *Bot) trackUser(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if u := c.Sender(); u != nil {
			if _, err := b.store.UpsertUserSeen(u.ID, u.FirstName, u.Username); err != nil {
				b.log.Warn("could not record user", "user_id", u.ID, "error", err)
			}
		}
		b.met.UpdatesTotal.WithLabelValues(updateKind(c)).Inc()
		return next(c)
	}
}

func updateKind(c tele.Context) string {
	switch {
	case c.Callback() != nil:
		return "callback"
	case c.Message() == nil:
		return "other"
	case c.Message().Document != nil || c.Message().Video != nil:
		return "file"
	case strings.HasPrefix(c.Message().Text, "/"):
		return "command"
	default:
		return "text"
	}
}

func (b *Bot) role(c tele.Context) catalog.Role {
	if c.Sender() == nil {
		return catalog.RoleUser
	}
	return b.store.GetUserRole(c.Sender().ID)
}

func (b *Bot) isPrivileged(c tele.Context) bool {
	r := b.role(c)
	return r == catalog.RoleOwner || r == catalog.RoleAdmin
}

// sendAuto sends a reply and, for admin/owner recipients, schedules it for
// deletion so privileged chats don't accumulate catalog internals.
func (b *Bot) sendAuto(c tele.Context, what any, opts ...any) error {
	m, err := b.tb.Send(c.Chat(), what, opts...)
	if err != nil {
		return err
	}
	if b.isPrivileged(c) {
		b.deleter.schedule(m)
	}
	return nil
}

// editAuto edits the message a callback came from, with the same deferred
// deletion rule as sendAuto.
func (b *Bot) editAuto(c tele.Context, what any, opts ...any) error {
	if err := c.Edit(what, opts...); err != nil {
		return err
	}
	if cb := c.Callback(); cb != nil && cb.Message != nil && b.isPrivileged(c) {
		b.deleter.schedule(cb.Message)
	}
	return nil
}

package bot

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"
)

// autoDeleter removes admin-facing replies after a TTL so privileged chats
// don't accumulate catalog internals. Timers are in-process only; messages
// scheduled before a restart are not revisited.
type autoDeleter struct {
	tb  *tele.Bot
	ttl time.Duration
	log *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newAutoDeleter(tb *tele.Bot, ttl time.Duration, log *slog.Logger) *autoDeleter {
	return &autoDeleter{
		tb:     tb,
		ttl:    ttl,
		log:    log,
		timers: make(map[string]*time.Timer),
	}
}

// schedule queues a message for deletion after the TTL.
func (d *autoDeleter) schedule(m *tele.Message) {
	if m == nil {
		return
	}
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(m.ID),
		ChatID:    m.Chat.ID,
	}
	key := stored.MessageID + ":" + strconv.FormatInt(stored.ChatID, 10)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.timers[key]; ok {
		return
	}
	d.timers[key] = time.AfterFunc(d.ttl, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()

		if err := d.tb.Delete(stored); err != nil {
			d.log.Warn("could not delete scheduled message", "chat_id", stored.ChatID, "message_id", stored.MessageID, "error", err)
			return
		}
		d.log.Debug("deleted scheduled message", "chat_id", stored.ChatID, "message_id", stored.MessageID)
	})
}

// stop cancels all pending timers.
func (d *autoDeleter) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}

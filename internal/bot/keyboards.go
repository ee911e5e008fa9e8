package bot

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
)

// Callback data uses prefix:arg form; the dispatcher in handlers.go splits
// on the first colons. Category and language buttons carry indexes into the
// config lists to stay inside Telegram's 64-byte data limit.
const (
	cbWizCategory     = "wcat"
	cbWizCategoryDone = "wcatdone"
	cbWizLanguage     = "wlang"
	cbWizLanguageDone = "wlangdone"
	cbWizType         = "wtype"
	cbWizQuality      = "wqual"
	cbWizFinish       = "wfinish"
	cbWizCancel       = "wcancel"

	cbBrowseCategory = "bcat"
	cbBrowsePage     = "bpg"
	cbBrowseAlpha    = "balpha"
	cbBrowseLetter   = "blet"
	cbMovie          = "mv"

	cbRemoveAsk     = "rmq"
	cbRemoveConfirm = "rmc"
	cbRemoveCancel  = "rmx"

	cbRequestApprove = "rqa"
	cbRequestReject  = "rqr"
	cbRequestPage    = "rqp"

	cbClose = "close"
)

const moviesPerPage = 10
const requestsPerPage = 5

func btn(text, data string) tele.InlineButton {
	return tele.InlineButton{Text: text, Data: data}
}

func urlBtn(text, url string) tele.InlineButton {
	return tele.InlineButton{Text: text, URL: url}
}

func inline(rows ...[]tele.InlineButton) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func closeRow() []tele.InlineButton {
	return []tele.InlineButton{btn("❌ Close", cbClose)}
}

// multiSelectKeyboard renders a toggle grid of options, two per row, with a
// checkmark on selected entries and a Done row at the bottom.
func multiSelectKeyboard(options, selected []string, prefix, donePrefix string) *tele.ReplyMarkup {
	chosen := map[string]bool{}
	for _, s := range selected {
		chosen[s] = true
	}

	rows := [][]tele.InlineButton{}
	row := []tele.InlineButton{}
	for i, opt := range options {
		label := opt
		if chosen[opt] {
			label = "✅ " + opt
		}
		row = append(row, btn(label, fmt.Sprintf("%s:%d", prefix, i)))
		if len(row) == 2 || i == len(options)-1 {
			rows = append(rows, row)
			row = []tele.InlineButton{}
		}
	}
	rows = append(rows, []tele.InlineButton{btn("✔️ Done", donePrefix)})
	return inline(rows...)
}

func uploadTypeKeyboard() *tele.ReplyMarkup {
	return inline(
		[]tele.InlineButton{btn("🎬 Upload Single Movie File", cbWizType+":"+catalog.TypeSingle)},
		[]tele.InlineButton{btn("📺 Upload Multiple Series (Episodes)", cbWizType+":"+catalog.TypeSeries)},
	)
}

// qualityKeyboard offers the qualities not yet uploaded, plus a finish row
// once at least one file is attached.
func qualityKeyboard(remaining []string, canFinish bool) *tele.ReplyMarkup {
	rows := [][]tele.InlineButton{}
	for _, q := range remaining {
		rows = append(rows, []tele.InlineButton{btn(q, cbWizQuality+":"+q)})
	}
	if canFinish {
		rows = append(rows, []tele.InlineButton{btn("✅ Finish Upload", cbWizFinish)})
	}
	rows = append(rows, []tele.InlineButton{btn("🚫 Cancel", cbWizCancel)})
	return inline(rows...)
}

func episodeKeyboard() *tele.ReplyMarkup {
	return inline(
		[]tele.InlineButton{btn("✅ Finish Upload", cbWizFinish)},
		[]tele.InlineButton{btn("🚫 Cancel", cbWizCancel)},
	)
}

func browseCategoryKeyboard() *tele.ReplyMarkup {
	rows := [][]tele.InlineButton{}
	row := []tele.InlineButton{}
	for i, cat := range config.BrowseCategories {
		row = append(row, btn(cat, fmt.Sprintf("%s:%d", cbBrowseCategory, i)))
		if len(row) == 2 || i == len(config.BrowseCategories)-1 {
			rows = append(rows, row)
			row = []tele.InlineButton{}
		}
	}
	rows = append(rows, closeRow())
	return inline(rows...)
}

func alphabetKeyboard() *tele.ReplyMarkup {
	rows := [][]tele.InlineButton{}
	row := []tele.InlineButton{}
	for r := 'A'; r <= 'Z'; r++ {
		letter := string(r)
		row = append(row, btn(letter, cbBrowseLetter+":"+letter))
		if len(row) == 6 {
			rows = append(rows, row)
			row = []tele.InlineButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, closeRow())
	return inline(rows...)
}

// movieListKeyboard renders one page of a category listing: a button per
// movie and prev/next navigation when more pages exist.
func movieListKeyboard(movies []catalog.Movie, catIdx, offset, total int) *tele.ReplyMarkup {
	rows := [][]tele.InlineButton{}
	for _, m := range movies {
		rows = append(rows, []tele.InlineButton{
			btn(m.Title, cbMovie+":"+strconv.Itoa(m.ID)),
		})
	}

	nav := []tele.InlineButton{}
	if offset > 0 {
		prev := offset - moviesPerPage
		if prev < 0 {
			prev = 0
		}
		nav = append(nav, btn("⬅️ Prev", fmt.Sprintf("%s:%d:%d", cbBrowsePage, catIdx, prev)))
	}
	if offset+len(movies) < total {
		nav = append(nav, btn("Next ➡️", fmt.Sprintf("%s:%d:%d", cbBrowsePage, catIdx, offset+moviesPerPage)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, closeRow())
	return inline(rows...)
}

// categoryPageKeyboard is movieListKeyboard plus, on the all-movies
// category, an entry row into the first-letter index.
func categoryPageKeyboard(movies []catalog.Movie, catIdx, offset, total int) *tele.ReplyMarkup {
	markup := movieListKeyboard(movies, catIdx, offset, total)
	if config.BrowseCategories[catIdx] != catalog.CategoryAll {
		return markup
	}
	rows := markup.InlineKeyboard
	az := []tele.InlineButton{btn("🔤 Browse A–Z", cbBrowseAlpha)}
	markup.InlineKeyboard = append(rows[:len(rows)-1:len(rows)-1], az, rows[len(rows)-1])
	return markup
}

// requestsKeyboard renders approve/reject controls for each listed request
// plus page navigation.
func requestsKeyboard(pending []catalog.PendingRequest, offset, total int) *tele.ReplyMarkup {
	rows := [][]tele.InlineButton{}
	for _, r := range pending {
		rows = append(rows, []tele.InlineButton{
			btn(fmt.Sprintf("✅ #%d", r.ID), cbRequestApprove+":"+strconv.Itoa(r.ID)),
			btn(fmt.Sprintf("❌ #%d", r.ID), cbRequestReject+":"+strconv.Itoa(r.ID)),
		})
	}

	nav := []tele.InlineButton{}
	if offset > 0 {
		prev := offset - requestsPerPage
		if prev < 0 {
			prev = 0
		}
		nav = append(nav, btn("⬅️ Prev", cbRequestPage+":"+strconv.Itoa(prev)))
	}
	if offset+len(pending) < total {
		nav = append(nav, btn("Next ➡️", cbRequestPage+":"+strconv.Itoa(offset+requestsPerPage)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, closeRow())
	return inline(rows...)
}

func removeConfirmKeyboard(movieID int) *tele.ReplyMarkup {
	return inline([]tele.InlineButton{
		btn("🗑 Yes, delete", cbRemoveConfirm+":"+strconv.Itoa(movieID)),
		btn("🚫 Cancel", cbRemoveCancel),
	})
}

func removeResultsKeyboard(movies []catalog.Movie) *tele.ReplyMarkup {
	rows := [][]tele.InlineButton{}
	for _, m := range movies {
		rows = append(rows, []tele.InlineButton{
			btn(m.Title, cbRemoveAsk+":"+strconv.Itoa(m.ID)),
		})
	}
	rows = append(rows, closeRow())
	return inline(rows...)
}

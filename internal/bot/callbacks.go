package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
)

// handleCallback routes inline-button presses by their data prefix.
func (b *Bot) handleCallback(c tele.Context) error {
	data := strings.TrimSpace(c.Callback().Data)
	prefix, args, _ := strings.Cut(data, ":")

	var err error
	switch prefix {
	case cbClose:
		err = c.Delete()

	case cbWizCategory, cbWizCategoryDone, cbWizLanguage, cbWizLanguageDone,
		cbWizType, cbWizQuality, cbWizFinish, cbWizCancel:
		err = b.handleWizardCallback(c, prefix, args)

	case cbBrowseCategory:
		var idx int
		if idx, err = strconv.Atoi(args); err == nil {
			err = b.showCategoryPage(c, idx, 0)
		}
	case cbBrowsePage:
		catArg, offArg, _ := strings.Cut(args, ":")
		idx, err1 := strconv.Atoi(catArg)
		off, err2 := strconv.Atoi(offArg)
		if err1 == nil && err2 == nil {
			err = b.showCategoryPage(c, idx, off)
		}
	case cbBrowseAlpha:
		err = c.Edit("🔤 Pick a letter:", alphabetKeyboard())
	case cbBrowseLetter:
		err = b.showLetterPage(c, args)
	case cbMovie:
		var id int
		if id, err = strconv.Atoi(args); err == nil {
			err = b.sendMoviePost(c, id)
		}

	case cbRemoveAsk, cbRemoveConfirm, cbRemoveCancel:
		err = b.handleRemoveCallback(c, prefix, args)

	case cbRequestApprove, cbRequestReject, cbRequestPage:
		err = b.handleRequestCallback(c, prefix, args)

	default:
		b.log.Warn("unknown callback", "data", data)
	}

	if err != nil {
		return err
	}
	// Branches that showed a toast already answered the query; a repeat
	// answer is a no-op.
	_ = c.Respond()
	return nil
}

func (b *Bot) handleWizardCallback(c tele.Context, prefix, args string) error {
	s := b.wizard.get(c.Sender().ID)
	if s == nil {
		return c.Edit("⌛️ Upload session expired. Use /add_movie to start over.")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch prefix {
	case cbWizCancel:
		b.wizard.end(c.Sender().ID)
		return c.Edit("🚫 Upload cancelled.")

	case cbWizCategory:
		i, err := strconv.Atoi(args)
		if err != nil || i < 0 || i >= len(config.UploadCategories) {
			return nil
		}
		s.toggleCategory(config.UploadCategories[i])
		return c.Edit(
			fmt.Sprintf("📽️ Movie: %s\n\n☘️ Select genres:", s.movie.Title),
			multiSelectKeyboard(config.UploadCategories, s.movie.Categories, cbWizCategory, cbWizCategoryDone),
		)
	case cbWizCategoryDone:
		if len(s.movie.Categories) == 0 {
			return c.Respond(&tele.CallbackResponse{Text: "Select at least one genre."})
		}
		s.step = stepLanguages
		return c.Edit(
			"💬 Select audio languages:",
			multiSelectKeyboard(config.Languages, s.movie.Languages, cbWizLanguage, cbWizLanguageDone),
		)

	case cbWizLanguage:
		i, err := strconv.Atoi(args)
		if err != nil || i < 0 || i >= len(config.Languages) {
			return nil
		}
		s.toggleLanguage(config.Languages[i])
		return c.Edit(
			"💬 Select audio languages:",
			multiSelectKeyboard(config.Languages, s.movie.Languages, cbWizLanguage, cbWizLanguageDone),
		)
	case cbWizLanguageDone:
		if len(s.movie.Languages) == 0 {
			return c.Respond(&tele.CallbackResponse{Text: "Select at least one language."})
		}
		s.step = stepYear
		return c.Edit("🗓 Send the release year (e.g. 2014):")

	case cbWizType:
		s.movie.Type = args
		if args == catalog.TypeSeries {
			s.step = stepEpisode
			return c.Edit("📺 Upload Episode 1:")
		}
		s.step = stepQuality
		return c.Edit("💿 Select a quality to upload:", qualityKeyboard(s.remainingQualities(), false))

	case cbWizQuality:
		s.quality = args
		s.step = stepFile
		return c.Edit(fmt.Sprintf("📤 Upload the %s file:", args))

	case cbWizFinish:
		if len(s.movie.Files) == 0 {
			return c.Respond(&tele.CallbackResponse{Text: "Upload at least one file first."})
		}
		return b.finishUpload(c, s, true)
	}
	return nil
}

// showCategoryPage renders one page of a browse category, identified by its
// index into the browse list.
func (b *Bot) showCategoryPage(c tele.Context, catIdx, offset int) error {
	if catIdx < 0 || catIdx >= len(config.BrowseCategories) {
		return nil
	}
	cat := config.BrowseCategories[catIdx]

	total := b.store.CountMoviesByCategory(cat)
	if total == 0 {
		return c.Edit(fmt.Sprintf("😔 No movies found in %s yet.", cat), inline(closeRow()))
	}

	movies := b.store.GetMoviesByCategory(cat, moviesPerPage, offset)
	page := offset/moviesPerPage + 1
	pages := (total + moviesPerPage - 1) / moviesPerPage
	text := fmt.Sprintf("🗂 %s — %d movies (page %d/%d):", cat, total, page, pages)
	return c.Edit(text, categoryPageKeyboard(movies, catIdx, offset, total))
}

func (b *Bot) showLetterPage(c tele.Context, letter string) error {
	movies := b.store.GetMoviesByFirstLetter(letter, moviesPerPage)
	if len(movies) == 0 {
		return c.Edit(fmt.Sprintf("😔 No movies starting with %q yet.", letter), inline(closeRow()))
	}
	text := fmt.Sprintf("🔤 Movies starting with %s:", letter)
	return c.Edit(text, movieListKeyboard(movies, 0, 0, len(movies)))
}

// sendMoviePost replaces the listing with the movie's rendered post,
// minting fresh deep links for it.
func (b *Bot) sendMoviePost(c tele.Context, id int) error {
	movie := b.store.GetMovie(id)
	if movie == nil {
		return c.Edit("❌ This movie is no longer available.")
	}

	links, err := b.mintLinks(movie)
	if err != nil {
		b.log.Error("could not mint tokens", "movie_id", id, "error", err)
		return c.Edit("❌ Could not build download links, try again later.")
	}

	post, err := renderPost(*movie, links, b.cfg.ChannelUsername)
	if err != nil {
		return err
	}

	rows := [][]tele.InlineButton{}
	for _, l := range links {
		rows = append(rows, []tele.InlineButton{urlBtn("⬇️ "+l.Label, l.URL)})
	}
	rows = append(rows, closeRow())
	return c.Edit(post, inline(rows...), &tele.SendOptions{ParseMode: tele.ModeHTML})
}

func (b *Bot) handleRemoveCallback(c tele.Context, prefix, args string) error {
	if !b.isPrivileged(c) {
		return c.Respond(&tele.CallbackResponse{Text: "Not allowed."})
	}

	switch prefix {
	case cbRemoveCancel:
		return c.Edit("🚫 Removal cancelled.")

	case cbRemoveAsk:
		id, err := strconv.Atoi(args)
		if err != nil {
			return nil
		}
		movie := b.store.GetMovie(id)
		if movie == nil {
			return c.Edit("❌ This movie is no longer available.")
		}
		return c.Edit(
			fmt.Sprintf("🗑 Delete %s (#%d)?\nThis also invalidates its download links.", movie.Title, movie.ID),
			removeConfirmKeyboard(movie.ID),
		)

	case cbRemoveConfirm:
		id, err := strconv.Atoi(args)
		if err != nil {
			return nil
		}
		removed, err := b.store.DeleteMovie(id)
		if err != nil {
			b.log.Error("could not delete movie", "movie_id", id, "error", err)
			return c.Edit("❌ Deletion failed, try again.")
		}
		if !removed {
			return c.Edit("❌ This movie was already removed.")
		}
		if _, err := b.store.PurgeMovieTokens(id); err != nil {
			b.log.Warn("could not purge tokens", "movie_id", id, "error", err)
		}
		return c.Edit(fmt.Sprintf("🗑 Movie #%d deleted.", id))
	}
	return nil
}

func (b *Bot) handleRequestCallback(c tele.Context, prefix, args string) error {
	if !b.isPrivileged(c) {
		return c.Respond(&tele.CallbackResponse{Text: "Not allowed."})
	}

	if prefix == cbRequestPage {
		off, err := strconv.Atoi(args)
		if err != nil {
			return nil
		}
		return b.sendRequestsPage(c, off, true)
	}

	id, err := strconv.Atoi(args)
	if err != nil {
		return nil
	}
	status := catalog.StatusFulfilled
	note := "✅ Your movie request #%d has been fulfilled! Check the channel."
	if prefix == cbRequestReject {
		status = catalog.StatusRejected
		note = "😔 Your movie request #%d was rejected."
	}

	req, err := b.store.UpdateRequestStatus(id, status)
	if err != nil {
		b.log.Error("could not update request", "request_id", id, "error", err)
		return c.Respond(&tele.CallbackResponse{Text: "Update failed."})
	}
	if req == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Request not found."})
	}

	if _, err := b.tb.Send(&tele.User{ID: req.UserID}, fmt.Sprintf(note, req.ID)); err != nil {
		b.log.Warn("could not notify requester", "user_id", req.UserID, "error", err)
	}
	return b.sendRequestsPage(c, 0, true)
}

package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"moviezone-bot/internal/catalog"
)

func (b *Bot) handleStart(c tele.Context) error {
	if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
		return b.handleTokenDownload(c, payload)
	}

	welcome := "🎬 Welcome to Movie Distribution Bot!\n\n"
	switch b.role(c) {
	case catalog.RoleOwner:
		welcome += "👑 Owner Commands:\n" +
			"/add_admin - Add an admin\n" +
			"/remove_admin - Remove an admin\n" +
			"/admins - List admins\n" +
			"/add_channel - Add a channel\n" +
			"/add_movie - Add a new movie\n" +
			"/remove_movie - Remove a movie\n" +
			"/search - Search for movies\n" +
			"/requests - Review movie requests\n" +
			"/stats - Catalog statistics"
		return b.sendAuto(c, welcome)
	case catalog.RoleAdmin:
		welcome += "👨‍💼 Admin Commands:\n" +
			"/add_movie - Add a new movie\n" +
			"/remove_movie - Remove a movie\n" +
			"/add_channel - Add a channel\n" +
			"/search - Search for movies\n" +
			"/requests - Review movie requests"
		return b.sendAuto(c, welcome)
	default:
		welcome += "👤 User Access:\n" +
			"You can access movies through shared links.\n\n" +
			"Download Process:\n" +
			"1. 🔍 Browse with /browse or search with /search\n" +
			"2. 📱 Select quality (480p/720p/1080p) or the series link\n" +
			"3. 📥 Get your movie!\n\n" +
			"🎭 Missing something? Ask for it with /request\n" +
			"🛰️ Join: @" + b.cfg.ChannelUsername + "\n\n" +
			"🎬 Happy watching!"
		return c.Send(welcome)
	}
}

func (b *Bot) handleHelp(c tele.Context) error {
	return b.handleStart(c)
}

// handleTokenDownload resolves a deep-link token and delivers the stored
// file(s) it points at.
func (b *Bot) handleTokenDownload(c tele.Context, token string) error {
	info := b.store.GetTokenInfo(token)
	if info == nil {
		return c.Send("❌ Invalid or expired download link.")
	}
	movie := b.store.GetMovie(info.MovieID)
	if movie == nil {
		return c.Send("❌ This movie is no longer available.")
	}

	files := resolveTokenFiles(movie, info)
	if len(files) == 0 {
		return c.Send("😕 No files are attached to this link yet.")
	}

	for _, f := range files {
		if err := c.Send(fileMedia(movie.Title, f)); err != nil {
			b.log.Warn("could not deliver file", "movie_id", movie.ID, "file_id", f.FileID, "error", err)
			return c.Send("❌ Could not deliver the file, please try again later.")
		}
	}

	if err := b.store.IncrementDownloadCount(movie.ID); err != nil {
		b.log.Warn("could not bump download count", "movie_id", movie.ID, "error", err)
	}
	b.met.DownloadsTotal.Inc()
	b.log.Info("download served", "movie_id", movie.ID, "user_id", c.Sender().ID)
	return nil
}

// resolveTokenFiles picks the files a token narrows to: one quality, one
// episode, or the whole upload.
func resolveTokenFiles(m *catalog.Movie, t *catalog.DownloadToken) []catalog.MovieFile {
	switch {
	case t.Quality != "":
		for _, f := range m.Files {
			if f.Quality == t.Quality {
				return []catalog.MovieFile{f}
			}
		}
		return nil
	case t.Episode > 0:
		for _, f := range m.Files {
			if f.Episode == t.Episode {
				return []catalog.MovieFile{f}
			}
		}
		return nil
	default:
		return m.Files
	}
}

// fileMedia wraps a stored file reference in the sendable matching how it
// was uploaded; resending with the wrong method is rejected by Telegram.
func fileMedia(title string, f catalog.MovieFile) tele.Sendable {
	file := tele.File{FileID: f.FileID}
	caption := fileCaption(title, f)
	if f.Kind == catalog.FileVideo {
		return &tele.Video{File: file, Caption: caption}
	}
	return &tele.Document{File: file, Caption: caption}
}

func fileCaption(title string, f catalog.MovieFile) string {
	switch {
	case f.Quality != "":
		return fmt.Sprintf("🎬 %s (%s)", title, f.Quality)
	case f.Episode > 0:
		return fmt.Sprintf("📺 %s — Episode %d", title, f.Episode)
	default:
		return "🎬 " + title
	}
}

func (b *Bot) handleSearch(c tele.Context) error {
	query := strings.TrimSpace(c.Message().Payload)
	if query == "" {
		return c.Send("Usage: /search <movie name>")
	}

	results := b.store.FuzzySearchMovies(query, 10)
	if len(results) == 0 {
		return c.Send(fmt.Sprintf("😕 No movies found for %q.\nAsk for it with /request %s", query, query))
	}
	return c.Send(
		fmt.Sprintf("🔍 Results for %q:", query),
		movieListKeyboard(results, 0, 0, len(results)),
	)
}

func (b *Bot) handleBrowse(c tele.Context) error {
	return c.Send("🗂 Pick a category:", browseCategoryKeyboard())
}

func (b *Bot) handleRequest(c tele.Context) error {
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /request <movie name>")
	}

	id, err := b.store.AddMovieRequest(c.Sender().ID, name)
	if err != nil {
		b.log.Error("could not record request", "user_id", c.Sender().ID, "error", err)
		return c.Send("❌ Could not record your request, please try again.")
	}
	b.met.RequestsOpenedTotal.Inc()
	return c.Send(fmt.Sprintf("✅ Request #%d recorded. Admins will review it soon.", id))
}

func (b *Bot) handleRequests(c tele.Context) error {
	if !b.isPrivileged(c) {
		return b.sendAuto(c, "❌ You don't have permission to review requests.")
	}
	return b.sendRequestsPage(c, 0, false)
}

// sendRequestsPage renders one page of pending requests, either as a fresh
// message or as an edit of the page the callback came from.
func (b *Bot) sendRequestsPage(c tele.Context, offset int, edit bool) error {
	total := b.store.GetPendingRequestsCount()
	pending := b.store.GetPendingRequests(requestsPerPage, offset)

	if total == 0 {
		text := "📋 No pending requests."
		if edit {
			return b.editAuto(c, text)
		}
		return b.sendAuto(c, text)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Pending Requests (%d)\n\n", total)
	for _, r := range pending {
		who := r.User.FirstName
		if who == "" {
			who = strconv.FormatInt(r.UserID, 10)
		}
		if r.User.Username != "" {
			who += " (@" + r.User.Username + ")"
		}
		fmt.Fprintf(&sb, "#%d %s — %s\n", r.ID, r.MovieName, who)
	}

	markup := requestsKeyboard(pending, offset, total)
	if edit {
		return b.editAuto(c, sb.String(), markup)
	}
	return b.sendAuto(c, sb.String(), markup)
}

func (b *Bot) handleStats(c tele.Context) error {
	if b.role(c) != catalog.RoleOwner {
		return b.sendAuto(c, "❌ This command is only available to the owner.")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Catalog Stats\n\n")
	fmt.Fprintf(&sb, "👥 Users: %d\n", b.store.CountUsers())
	fmt.Fprintf(&sb, "🎬 Movies: %d\n", b.store.CountMovies())
	fmt.Fprintf(&sb, "📋 Pending requests: %d\n", b.store.GetPendingRequestsCount())

	admins := b.store.ListAdmins()
	if len(admins) > 0 {
		sb.WriteString("\n👨‍💼 Uploads by admin:\n")
		for _, a := range admins {
			n := len(b.store.GetMoviesByUploader(a.ID, 0))
			fmt.Fprintf(&sb, "• %s (%s): %d\n", a.FirstName, a.ShortName, n)
		}
	}
	fmt.Fprintf(&sb, "\n👑 Your uploads: %d", len(b.store.GetMoviesByUploader(b.cfg.OwnerID, 0)))
	return b.sendAuto(c, sb.String())
}

func (b *Bot) handleAddAdmin(c tele.Context) error {
	if b.role(c) != catalog.RoleOwner {
		return b.sendAuto(c, "❌ This command is only available to the owner.")
	}

	args := strings.Fields(c.Message().Payload)
	if len(args) < 2 {
		return b.sendAuto(c, "Usage: /add_admin <user_id> <short_name> [first_name]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id == 0 {
		return b.sendAuto(c, "❌ Invalid user id. Please send a valid number.")
	}

	firstName := args[1]
	if len(args) > 2 {
		firstName = strings.Join(args[2:], " ")
	}
	username := ""
	if u := b.store.GetUser(id); u != nil {
		username = u.Username
		if len(args) <= 2 && u.FirstName != "" {
			firstName = u.FirstName
		}
	}

	ok, err := b.store.AddAdmin(id, args[1], firstName, username)
	if err != nil {
		return b.sendAuto(c, "❌ Failed to grant admin privileges.")
	}
	if !ok {
		return b.sendAuto(c, "❌ That user id or short name is already registered.")
	}
	return b.sendAuto(c, fmt.Sprintf("✅ User %d is now an admin (%s).", id, args[1]))
}

func (b *Bot) handleRemoveAdmin(c tele.Context) error {
	if b.role(c) != catalog.RoleOwner {
		return b.sendAuto(c, "❌ This command is only available to the owner.")
	}

	identifier := strings.TrimSpace(c.Message().Payload)
	if identifier == "" {
		return b.sendAuto(c, "Usage: /remove_admin <user_id|short_name>")
	}
	ok, err := b.store.RemoveAdmin(identifier)
	if err != nil {
		return b.sendAuto(c, "❌ Failed to remove admin.")
	}
	if !ok {
		return b.sendAuto(c, fmt.Sprintf("❌ No admin found for %q.", identifier))
	}
	return b.sendAuto(c, fmt.Sprintf("✅ Admin %s removed.", identifier))
}

func (b *Bot) handleListAdmins(c tele.Context) error {
	if b.role(c) != catalog.RoleOwner {
		return b.sendAuto(c, "❌ This command is only available to the owner.")
	}

	admins := b.store.ListAdmins()
	if len(admins) == 0 {
		return b.sendAuto(c, "👨‍💼 No admins yet.")
	}
	var sb strings.Builder
	sb.WriteString("👨‍💼 Admins:\n")
	for _, a := range admins {
		fmt.Fprintf(&sb, "• %s (%s) — %d\n", a.FirstName, a.ShortName, a.ID)
	}
	return b.sendAuto(c, sb.String())
}

func (b *Bot) handleAddChannel(c tele.Context) error {
	if !b.isPrivileged(c) {
		return b.sendAuto(c, "❌ You don't have permission to manage channels.")
	}

	args := strings.Fields(c.Message().Payload)
	if len(args) < 3 {
		return b.sendAuto(c, "Usage: /add_channel <channel_id> <short_name> <name...>")
	}
	ok, err := b.store.AddChannel(args[0], strings.Join(args[2:], " "), args[1])
	if err != nil {
		return b.sendAuto(c, "❌ Failed to add channel.")
	}
	if !ok {
		return b.sendAuto(c, "❌ That channel id or short name is already registered.")
	}
	return b.sendAuto(c, fmt.Sprintf("✅ Channel %s added.", args[0]))
}

func (b *Bot) handleRemoveChannel(c tele.Context) error {
	if !b.isPrivileged(c) {
		return b.sendAuto(c, "❌ You don't have permission to manage channels.")
	}

	identifier := strings.TrimSpace(c.Message().Payload)
	if identifier == "" {
		return b.sendAuto(c, "Usage: /remove_channel <channel_id|short_name>")
	}
	ok, err := b.store.RemoveChannel(identifier)
	if err != nil {
		return b.sendAuto(c, "❌ Failed to remove channel.")
	}
	if !ok {
		return b.sendAuto(c, fmt.Sprintf("❌ No channel found for %q.", identifier))
	}
	return b.sendAuto(c, fmt.Sprintf("✅ Channel %s removed.", identifier))
}

func (b *Bot) handleListChannels(c tele.Context) error {
	if !b.isPrivileged(c) {
		return b.sendAuto(c, "❌ You don't have permission to manage channels.")
	}

	channels := b.store.ListChannels()
	if len(channels) == 0 {
		return b.sendAuto(c, "🛰 No channels yet.")
	}
	var sb strings.Builder
	sb.WriteString("🛰 Channels:\n")
	for _, ch := range channels {
		fmt.Fprintf(&sb, "• %s (%s) — %s\n", ch.Name, ch.ShortName, ch.ID)
	}
	return b.sendAuto(c, sb.String())
}

func (b *Bot) handleRemoveMovie(c tele.Context) error {
	if !b.isPrivileged(c) {
		return b.sendAuto(c, "❌ You don't have permission to remove movies.")
	}

	query := strings.TrimSpace(c.Message().Payload)
	if query == "" {
		return b.sendAuto(c, "Usage: /remove_movie <movie name>")
	}
	results := b.store.FuzzySearchMovies(query, 5)
	if len(results) == 0 {
		return b.sendAuto(c, fmt.Sprintf("😕 No movies found for %q.", query))
	}
	return b.sendAuto(c, "Select the movie to remove:", removeResultsKeyboard(results))
}

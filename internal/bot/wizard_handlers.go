package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
)

func (b *Bot) handleAddMovie(c tele.Context) error {
	if !b.isPrivileged(c) {
		return b.sendAuto(c, "❌ You don't have permission to add movies.")
	}
	b.wizard.begin(c.Sender().ID)
	return b.sendAuto(c, "🎬 Please enter the movie title:")
}

func (b *Bot) handleCancel(c tele.Context) error {
	if b.wizard.get(c.Sender().ID) == nil {
		return nil
	}
	b.wizard.end(c.Sender().ID)
	return b.sendAuto(c, "🚫 Upload cancelled.")
}

// handleText feeds free-text messages into the upload dialogue. Text from
// users without a live session is ignored.
func (b *Bot) handleText(c tele.Context) error {
	s := b.wizard.get(c.Sender().ID)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimSpace(c.Text())
	switch s.step {
	case stepTitle:
		if text == "" {
			return b.sendAuto(c, "❌ Please send a non-empty title.")
		}
		s.movie.Title = text
		s.step = stepCategories
		return b.sendAuto(c,
			fmt.Sprintf("📽️ Movie: %s\n\n☘️ Select genres:", text),
			multiSelectKeyboard(config.UploadCategories, s.movie.Categories, cbWizCategory, cbWizCategoryDone),
		)
	case stepYear:
		s.movie.ReleaseYear = text
		s.step = stepRuntime
		return b.sendAuto(c, "⏰ Send the runtime (e.g. 2h 28m):")
	case stepRuntime:
		s.movie.Runtime = text
		s.step = stepRating
		return b.sendAuto(c, "⭐️ Send the IMDb rating (e.g. 8.8):")
	case stepRating:
		s.movie.Rating = text
		s.step = stepType
		return b.sendAuto(c, "Please select upload type:", uploadTypeKeyboard())
	case stepFile, stepEpisode:
		return b.sendAuto(c, "❌ Please upload a file.")
	default:
		return b.sendAuto(c, "Please use the buttons above.")
	}
}

func (b *Bot) handleDocument(c tele.Context) error {
	return b.handleUploadedFile(c, c.Message().Document.FileID, catalog.FileDocument)
}

func (b *Bot) handleVideo(c tele.Context) error {
	return b.handleUploadedFile(c, c.Message().Video.FileID, catalog.FileVideo)
}

func (b *Bot) handleUploadedFile(c tele.Context, fileID, kind string) error {
	s := b.wizard.get(c.Sender().ID)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case stepFile:
		quality := s.quality
		s.addQualityFile(fileID, kind)
		remaining := s.remainingQualities()
		if len(remaining) == 0 {
			return b.finishUpload(c, s, false)
		}
		return b.sendAuto(c,
			fmt.Sprintf("✅ %s file uploaded!\nSelect another quality or finish:", quality),
			qualityKeyboard(remaining, true),
		)
	case stepEpisode:
		n := s.addEpisodeFile(fileID, kind)
		return b.sendAuto(c,
			fmt.Sprintf("✅ Episode %d uploaded!\nUpload Episode %d or finish:", n, n+1),
			episodeKeyboard(),
		)
	default:
		return b.sendAuto(c, "❌ Not expecting a file right now.")
	}
}

// finishUpload persists the movie, mints its deep-link tokens and replies
// with the rendered post. Called from the file handler when every quality
// is uploaded, or from the finish button.
func (b *Bot) finishUpload(c tele.Context, s *uploadSession, edit bool) error {
	defer b.wizard.end(c.Sender().ID)

	id, err := b.store.AddMovie(s.movie)
	if err != nil {
		b.log.Error("could not store movie", "title", s.movie.Title, "error", err)
		return b.sendAuto(c, "❌ Failed to save the movie, upload aborted.")
	}
	b.met.MoviesAddedTotal.Inc()

	movie := b.store.GetMovie(id)
	links, err := b.mintLinks(movie)
	if err != nil {
		b.log.Error("could not mint tokens", "movie_id", id, "error", err)
		return b.sendAuto(c, fmt.Sprintf("✅ Movie #%d saved, but link generation failed.", id))
	}

	post, err := renderPost(*movie, links, b.cfg.ChannelUsername)
	if err != nil {
		return b.sendAuto(c, fmt.Sprintf("✅ Movie #%d saved.", id))
	}

	opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
	if edit {
		return b.editAuto(c, post, opts)
	}
	return b.sendAuto(c, post, opts)
}

// mintLinks creates one deep link per uploaded quality for single movies,
// or one link covering the whole series.
func (b *Bot) mintLinks(m *catalog.Movie) ([]downloadLink, error) {
	if m.Type == catalog.TypeSeries {
		token, err := b.store.CreateDownloadToken(m.ID, "", 0)
		if err != nil {
			return nil, err
		}
		return []downloadLink{{Label: "Series download link", URL: deepLink(b.Username(), token)}}, nil
	}

	links := []downloadLink{}
	for _, q := range config.Qualities {
		for _, f := range m.Files {
			if f.Quality != q {
				continue
			}
			token, err := b.store.CreateDownloadToken(m.ID, q, 0)
			if err != nil {
				return nil, err
			}
			links = append(links, downloadLink{Label: q, URL: deepLink(b.Username(), token)})
			break
		}
	}
	return links, nil
}

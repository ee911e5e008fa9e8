package bot

import (
	"fmt"
	"strings"
	"text/template"

	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
)

var (
	singleTmpl = template.Must(template.New("single").Parse(config.SingleMoviePostTemplate))
	seriesTmpl = template.Must(template.New("series").Parse(config.SeriesPostTemplate))
)

// downloadLink is one shareable deep link rendered into a post.
type downloadLink struct {
	Label string
	URL   string
}

type postData struct {
	Title         string
	Languages     string
	Categories    string
	ReleaseYear   string
	Runtime       string
	Rating        string
	DownloadLinks string
	Channel       string
	EpisodeCount  int
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// renderPost fills the single-movie or series template from a movie record
// and its generated deep links.
func renderPost(m catalog.Movie, links []downloadLink, channel string) (string, error) {
	var sb strings.Builder
	for _, l := range links {
		fmt.Fprintf(&sb, "🔗 %s: %s\n", l.Label, l.URL)
	}

	data := postData{
		Title:         m.Title,
		Languages:     orNA(strings.Join(m.Languages, ", ")),
		Categories:    orNA(strings.Join(m.Categories, ", ")),
		ReleaseYear:   orNA(m.ReleaseYear),
		Runtime:       orNA(m.Runtime),
		Rating:        orNA(m.Rating),
		DownloadLinks: sb.String(),
		Channel:       channel,
		EpisodeCount:  m.EpisodeCount(),
	}

	tmpl := singleTmpl
	if m.Type == catalog.TypeSeries {
		tmpl = seriesTmpl
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render post: %w", err)
	}
	return out.String(), nil
}

// deepLink builds the t.me start link a token resolves through.
func deepLink(botUsername, token string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, token)
}

package bot

import (
	"strings"
	"testing"

	tele "gopkg.in/telebot.v3"

	"moviezone-bot/internal/catalog"
)

func TestRenderPostSingle(t *testing.T) {
	m := catalog.Movie{
		Title:       "Interstellar",
		Type:        catalog.TypeSingle,
		Categories:  []string{"Sci-Fi 🛸"},
		Languages:   []string{"English", "Hindi"},
		ReleaseYear: "2014",
		Runtime:     "2h 49m",
		Rating:      "8.7",
	}
	links := []downloadLink{
		{Label: "720p", URL: "https://t.me/testbot?start=tok-720"},
		{Label: "1080p", URL: "https://t.me/testbot?start=tok-1080"},
	}

	post, err := renderPost(m, links, "moviezone969")
	if err != nil {
		t.Fatalf("renderPost: %v", err)
	}

	for _, want := range []string{
		"<b>Interstellar</b>",
		"English, Hindi",
		"Sci-Fi 🛸",
		"2014",
		"2h 49m",
		"8.7/10",
		"🔗 720p: https://t.me/testbot?start=tok-720",
		"🔗 1080p: https://t.me/testbot?start=tok-1080",
		"@moviezone969",
	} {
		if !strings.Contains(post, want) {
			t.Errorf("post missing %q:\n%s", want, post)
		}
	}
	if strings.Contains(post, "Available Episodes") {
		t.Error("single post should not use the series template")
	}
}

func TestRenderPostSeries(t *testing.T) {
	m := catalog.Movie{
		Title:     "Dark",
		Type:      catalog.TypeSeries,
		Languages: []string{"English"},
		Files: []catalog.MovieFile{
			{FileID: "a", Episode: 1},
			{FileID: "b", Episode: 2},
		},
	}
	links := []downloadLink{{Label: "Series download link", URL: "https://t.me/testbot?start=tok"}}

	post, err := renderPost(m, links, "moviezone969")
	if err != nil {
		t.Fatalf("renderPost: %v", err)
	}

	if !strings.Contains(post, "Available Episodes - (2 ep)") {
		t.Errorf("series post missing episode count:\n%s", post)
	}
	// unset metadata falls back to N/A
	for _, line := range []string{
		"<b>Genre:</b> N/A",
		"<b>Release Year:</b> N/A",
		"<b>Runtime:</b> N/A",
		"<b>IMDb Rating:</b> N/A/10",
	} {
		if !strings.Contains(post, line) {
			t.Errorf("post missing %q:\n%s", line, post)
		}
	}
}

func TestDeepLink(t *testing.T) {
	got := deepLink("testbot", "abc-123")
	want := "https://t.me/testbot?start=abc-123"
	if got != want {
		t.Fatalf("deepLink = %q, want %q", got, want)
	}
}

// A file must be re-sent with the method matching its upload kind; a
// video-sourced file_id cannot go out through sendDocument.
func TestFileMediaMatchesUploadKind(t *testing.T) {
	video := fileMedia("Dark", catalog.MovieFile{FileID: "vid-1", Kind: catalog.FileVideo, Episode: 1})
	v, ok := video.(*tele.Video)
	if !ok {
		t.Fatalf("video file became %T", video)
	}
	if v.FileID != "vid-1" || v.Caption == "" {
		t.Fatalf("video = %+v", v)
	}

	doc := fileMedia("Inception", catalog.MovieFile{FileID: "doc-1", Kind: catalog.FileDocument, Quality: "720p"})
	if _, ok := doc.(*tele.Document); !ok {
		t.Fatalf("document file became %T", doc)
	}

	// records written before kinds were tracked default to document
	legacy := fileMedia("Inception", catalog.MovieFile{FileID: "doc-2", Quality: "480p"})
	if _, ok := legacy.(*tele.Document); !ok {
		t.Fatalf("legacy file became %T", legacy)
	}
}

func TestFileCaption(t *testing.T) {
	if got := fileCaption("Dark", catalog.MovieFile{FileID: "a", Episode: 3}); got != "📺 Dark — Episode 3" {
		t.Fatalf("episode caption = %q", got)
	}
	if got := fileCaption("Inception", catalog.MovieFile{FileID: "b", Quality: "720p"}); got != "🎬 Inception (720p)" {
		t.Fatalf("quality caption = %q", got)
	}
	if got := fileCaption("Inception", catalog.MovieFile{FileID: "c"}); got != "🎬 Inception" {
		t.Fatalf("bare caption = %q", got)
	}
}

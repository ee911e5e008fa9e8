package bot

import (
	"testing"

	tele "gopkg.in/telebot.v3"

	"moviezone-bot/internal/catalog"
)

func flattenData(markup *tele.ReplyMarkup) []string {
	data := []string{}
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			data = append(data, b.Data)
		}
	}
	return data
}

func containsData(markup *tele.ReplyMarkup, want string) bool {
	for _, d := range flattenData(markup) {
		if d == want {
			return true
		}
	}
	return false
}

func TestAlphabetKeyboard(t *testing.T) {
	markup := alphabetKeyboard()

	letters := 0
	for _, d := range flattenData(markup) {
		if len(d) == len(cbBrowseLetter)+2 && d[:len(cbBrowseLetter)] == cbBrowseLetter {
			letters++
		}
	}
	if letters != 26 {
		t.Fatalf("letter buttons = %d, want 26", letters)
	}
	if !containsData(markup, cbBrowseLetter+":A") || !containsData(markup, cbBrowseLetter+":Z") {
		t.Fatal("keyboard missing A or Z")
	}
	if !containsData(markup, cbClose) {
		t.Fatal("keyboard missing close row")
	}
}

func TestCategoryPageKeyboardAlphabetEntry(t *testing.T) {
	movies := []catalog.Movie{{ID: 1, Title: "Alpha"}}

	// index 0 is the all-movies category and carries the A-Z entry
	all := categoryPageKeyboard(movies, 0, 0, 1)
	if !containsData(all, cbBrowseAlpha) {
		t.Fatal("all-movies page missing the A-Z entry")
	}
	last := all.InlineKeyboard[len(all.InlineKeyboard)-1]
	if last[0].Data != cbClose {
		t.Fatalf("close row not last, got %q", last[0].Data)
	}

	tagged := categoryPageKeyboard(movies, 1, 0, 1)
	if containsData(tagged, cbBrowseAlpha) {
		t.Fatal("tagged category page should not carry the A-Z entry")
	}
}

func TestMovieListKeyboardNavigation(t *testing.T) {
	movies := make([]catalog.Movie, moviesPerPage)
	for i := range movies {
		movies[i] = catalog.Movie{ID: i + 1, Title: "M"}
	}

	// first of three pages: next only
	first := movieListKeyboard(movies, 2, 0, 25)
	if containsData(first, "bpg:2:-10") || !containsData(first, "bpg:2:10") {
		t.Fatalf("first page nav wrong: %v", flattenData(first))
	}

	// middle page: both directions
	mid := movieListKeyboard(movies, 2, 10, 25)
	if !containsData(mid, "bpg:2:0") || !containsData(mid, "bpg:2:20") {
		t.Fatalf("middle page nav wrong: %v", flattenData(mid))
	}

	// last page: prev only
	lastPage := movieListKeyboard(movies[:5], 2, 20, 25)
	if !containsData(lastPage, "bpg:2:10") || containsData(lastPage, "bpg:2:30") {
		t.Fatalf("last page nav wrong: %v", flattenData(lastPage))
	}
}

package config

import "moviezone-bot/internal/catalog"

// UploadCategories are the tags offered during the upload dialogue.
var UploadCategories = []string{
	"Bollywood 🇮🇳", "Hollywood 🇺🇸", "South Indian 🎬", "Web Series 🎥",
	"Bengali ✨", "Anime & cartoon 🌀", "Comedy 🤣", "Action 💥",
	"Romance 💑", "Horror 😱", "Thriller 🔍", "Sci-Fi 🛸",
	"K-Drama 🎎", "18+ 🔞", "Hentai 💦",
}

// BrowseCategories are the categories shown when browsing; the all-movies
// pseudo-category comes first so the alphabet filter is one tap away.
var BrowseCategories = append([]string{catalog.CategoryAll}, UploadCategories...)

// Languages offered during the upload dialogue.
var Languages = []string{
	"Bengali", "Hindi", "English", "Tamil", "Telugu", "Korean", "Gujarati",
}

// Qualities a single-movie upload may carry.
var Qualities = []string{"480p", "720p", "1080p"}

// SingleMoviePostTemplate renders a single-movie post. Fields come from a
// catalog.Movie plus the generated download links.
const SingleMoviePostTemplate = `🍿 <b>{{.Title}}</b>

📌 <b>Language:</b> {{.Languages}}
☘️ <b>Genre:</b> {{.Categories}}
🗓️ <b>Release Year:</b> {{.ReleaseYear}}
⏰ <b>Runtime:</b> {{.Runtime}}
⭐️ <b>IMDb Rating:</b> {{.Rating}}/10

🔗 <b>Download Link Below</b>
{{.DownloadLinks}}
🔥 <b>Ultra Fast • Direct Access</b>
🛰️ <b>Join Now:</b> @{{.Channel}}
🔔 <b>New Movies Uploaded Daily!</b>`

// SeriesPostTemplate renders a series post.
const SeriesPostTemplate = `📺 <b>{{.Title}}</b>

📌 <b>Language:</b> {{.Languages}}
☘️ <b>Genre:</b> {{.Categories}}
🗓️ <b>Release Year:</b> {{.ReleaseYear}}
⏰ <b>Runtime:</b> {{.Runtime}}
⭐️ <b>IMDb Rating:</b> {{.Rating}}/10

<b>Available Episodes - ({{.EpisodeCount}} ep)</b>
🔗 <b>Download Link Below</b>
{{.DownloadLinks}}
🔥 <b>Ultra Fast • Direct Access</b>
🛰️ <b>Join Now:</b> @{{.Channel}}
🔔 <b>New Movies Uploaded Daily!</b>`

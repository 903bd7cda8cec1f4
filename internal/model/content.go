package model

// Page is a markdown page rendered to HTML.
type Page struct {
	Title       string
	Slug        string
	Content     string
	LastUpdated string
}

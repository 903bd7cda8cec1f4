// Package reel turns shared Instagram reel URLs into iframe embed links.
package reel

import "strings"

// EmbedLink drops the query string, normalizes the trailing slash and appends "embed".
// Blank input yields nil.
func EmbedLink(raw string) *string {
	link := strings.TrimSpace(raw)
	if link == "" {
		return nil
	}

	link, _, _ = strings.Cut(link, "?")
	link = strings.TrimRight(link, "/") + "/embed"
	return &link
}

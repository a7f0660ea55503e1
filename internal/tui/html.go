package tui

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML converts marked-up product descriptions to plain text for
// terminal display, using the golang.org/x/net/html tokenizer.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// End of document or malformed input; either way, done.
			return cleanupWhitespace(result.String())

		case html.TextToken:
			result.Write(tokenizer.Text())

		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if isBlockTag(string(tn)) {
				result.WriteString("\n")
			}
		}
	}
}

// isBlockTag reports whether a tag should break the line.
func isBlockTag(name string) bool {
	switch name {
	case "p", "div", "br", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// cleanupWhitespace trims each line, drops blank ones, and decodes common
// HTML entities.
func cleanupWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var cleanLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanLines = append(cleanLines, line)
		}
	}
	return decodeHTMLEntities(strings.Join(cleanLines, "\n"))
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&mdash;", "—",
	"&ndash;", "–",
	"&hellip;", "…",
	"&copy;", "©",
	"&reg;", "®",
	"&trade;", "™",
)

// decodeHTMLEntities decodes the entities that show up in product copy.
func decodeHTMLEntities(s string) string {
	return entityReplacer.Replace(s)
}

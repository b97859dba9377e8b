package mailparse

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/emersion/go-message"
)

const snippetMaxRunes = 160

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Bodies returns the first text/plain and text/html leaf bodies of a parsed
// message. The walk consumes the entity.
func Bodies(ent *message.Entity) (textBody, htmlBody string) {
	var visit func(*message.Entity)
	visit = func(e *message.Entity) {
		if mr := e.MultipartReader(); mr != nil {
			for {
				part, err := mr.NextPart()
				if err == io.EOF {
					return
				}
				if err != nil && !message.IsUnknownCharset(err) {
					return
				}
				if part == nil {
					return
				}
				visit(part)
			}
		}

		ctype, _, err := e.Header.ContentType()
		if err != nil {
			return
		}
		switch {
		case ctype == "text/plain" && textBody == "":
			if b, err := io.ReadAll(e.Body); err == nil {
				textBody = string(b)
			}
		case ctype == "text/html" && htmlBody == "":
			if b, err := io.ReadAll(e.Body); err == nil {
				htmlBody = string(b)
			}
		}
	}
	visit(ent)
	return textBody, htmlBody
}

// Snippet derives a short single-line preview for the index, preferring the
// HTML body when present.
func Snippet(textBody, htmlBody string) string {
	if htmlBody != "" {
		if s, err := htmlToText(htmlBody); err == nil && s != "" {
			return truncate(s)
		}
	}
	return truncate(collapseWhitespace(textBody))
}

func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	// Remove script and style elements
	doc.Find("script, style, head, meta, link").Remove()

	return collapseWhitespace(doc.Text()), nil
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= snippetMaxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:snippetMaxRunes])) + "…"
}

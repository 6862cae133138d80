// Package extract provides best-effort title and description extraction
// from HTML and Markdown documents. The contract is deliberately narrow:
// pattern matching with ordered fallbacks, never correct parsing of
// arbitrary markup, and never an error.
package extract

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

const (
	// minParagraphLen and maxParagraphLen bound the inner markup length of
	// a <p> element considered usable as a description.
	minParagraphLen = 20
	maxParagraphLen = 400

	// maxMarkdownDescription is the truncation limit for Markdown paragraphs.
	maxMarkdownDescription = 300
)

var (
	titleRe     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaTagRe   = regexp.MustCompile(`(?is)<meta\b[^>]*>`)
	metaNameRe  = regexp.MustCompile(`(?is)\bname\s*=\s*["']([^"']+)["']`)
	metaContRe  = regexp.MustCompile(`(?is)\bcontent\s*=\s*["']([^"']*)["']`)
	paragraphRe = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	tagRe       = regexp.MustCompile(`(?s)<[^>]*>`)
	blankLineRe = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Meta is a resolved (title, description) pair. Both fields are always
// usable; Description may be empty.
type Meta struct {
	Title       string
	Description string
}

// FromHTML extracts a title and description from raw HTML.
// Fallback chain for the title: first <title> element, then the decoded
// fallback name. For the description: first <meta name="description">,
// then the first <p> of reasonable length with tags stripped, then "".
func FromHTML(raw, fallbackName string) Meta {
	m := Meta{Title: DecodeName(fallbackName)}

	if match := titleRe.FindStringSubmatch(raw); match != nil {
		if title := cleanText(match[1]); title != "" {
			m.Title = title
		}
	}

	if desc := MetaContent(raw, "description"); desc != "" {
		m.Description = cleanText(desc)
		return m
	}

	for _, match := range paragraphRe.FindAllStringSubmatch(raw, -1) {
		inner := match[1]
		if len(inner) < minParagraphLen || len(inner) > maxParagraphLen {
			continue
		}
		if text := cleanText(tagRe.ReplaceAllString(inner, " ")); text != "" {
			m.Description = text
			break
		}
	}
	return m
}

// FromMarkdown extracts a description from raw Markdown. Markdown has no
// canonical title marker here, so the title is always the decoded fallback
// name. The description is the first prose paragraph with internal
// newlines collapsed, truncated to maxMarkdownDescription characters.
func FromMarkdown(raw, fallbackName string) Meta {
	m := Meta{Title: DecodeName(fallbackName)}

	for _, block := range blankLineRe.Split(raw, -1) {
		block = strings.TrimSpace(block)
		if block == "" || !isProse(block) {
			continue
		}
		text := spaceRe.ReplaceAllString(block, " ")
		if runes := []rune(text); len(runes) > maxMarkdownDescription {
			text = string(runes[:maxMarkdownDescription])
		}
		m.Description = text
		break
	}
	return m
}

// MetaContent returns the content attribute of the first <meta> tag with
// the given name, or "" if absent.
func MetaContent(raw, name string) string {
	for _, tag := range metaTagRe.FindAllString(raw, -1) {
		nameMatch := metaNameRe.FindStringSubmatch(tag)
		if nameMatch == nil || !strings.EqualFold(nameMatch[1], name) {
			continue
		}
		if contMatch := metaContRe.FindStringSubmatch(tag); contMatch != nil {
			return contMatch[1]
		}
	}
	return ""
}

// DecodeName percent-decodes a folder name for display. On decode failure
// the raw name is returned unchanged.
func DecodeName(name string) string {
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return name
	}
	return decoded
}

// isProse reports whether a Markdown block is ordinary paragraph text
// rather than a heading, code fence, image line, or HTML comment.
func isProse(block string) bool {
	switch {
	case strings.HasPrefix(block, "#"),
		strings.HasPrefix(block, "```"),
		strings.HasPrefix(block, "!["),
		strings.HasPrefix(block, "<!--"):
		return false
	}
	return true
}

func cleanText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(html.UnescapeString(s), " "))
}

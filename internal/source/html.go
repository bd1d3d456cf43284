package source

import (
	"regexp"
	"strings"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	spaceRe = regexp.MustCompile(`\s+`)
	hrefRe  = regexp.MustCompile(`(?i)href="([^"]+)"`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// stripTags removes HTML tags, decodes common entities, and collapses
// whitespace. Good enough for pulling listing text out of markup.
func stripTags(html string) string {
	text := tagRe.ReplaceAllString(html, " ")
	text = entityReplacer.Replace(text)
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

package markdown

import (
	"regexp"
	"strings"

	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// extensions jadval va definition list Telegram da ko'rsatilmaydi
const extensions = parser.CommonExtensions &^ (parser.Tables | parser.DefinitionLists)

// telegramTags Telegram HTML parse mode qabul qiladigan teglar
var telegramTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true, "ins": true,
	"s": true, "strike": true, "del": true,
	"a": true, "code": true, "pre": true,
	"blockquote": true, "span": true, "tg-spoiler": true,
}

var (
	anyTag   = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9-]*)(?:\s[^>]*)?\s*/?>`)
	imageTag = regexp.MustCompile(`<img src="([^"]*)" alt="([^"]*)"[^>]*>`)
)

// ToTelegramHTML model javobidagi markdown ni Telegram HTML ga aylantirish
func ToTelegramHTML(s string) string {
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(s))
	r := html.NewRenderer(html.RendererOptions{Flags: html.SkipHTML})
	rendered := string(gomarkdown.Render(doc, r))

	return strings.TrimSpace(keepTelegramTags(imagesToLinks(rendered)))
}

// imagesToLinks rasmni havolaga aylantirish
func imagesToLinks(s string) string {
	return imageTag.ReplaceAllStringFunc(s, func(tag string) string {
		m := imageTag.FindStringSubmatch(tag)
		text := m[2]
		if text == "" {
			text = m[1]
		}
		return `<a href="` + m[1] + `">` + text + `</a>`
	})
}

// keepTelegramTags ruxsat etilmagan teglarni olib tashlaydi, matn qoladi
func keepTelegramTags(s string) string {
	return anyTag.ReplaceAllStringFunc(s, func(tag string) string {
		name := strings.ToLower(anyTag.FindStringSubmatch(tag)[1])
		if telegramTags[name] {
			return tag
		}
		return ""
	})
}

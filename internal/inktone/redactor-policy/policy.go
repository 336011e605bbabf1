// Определяет политики безопасности для HTML-контента редактора.
// Политики ограничивают разрешенные элементы и атрибуты схемой
// редактора и применяются перед сохранением и при экспорте.
//
// Основные возможности:
//   - Санитизация пользовательского HTML под схему редактора.
//   - Поддержка списков задач (data-type, data-checked).
//   - Поддержка подсветки кода (class="language-*").
//   - Полная очистка от тегов для проверки пустоты и plain text.
package policy

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var StripTagsPolicy *bluemonday.Policy = bluemonday.StrictPolicy()
var UgcPolicy *bluemonday.Policy = bluemonday.UGCPolicy()

var (
	languageClassRegexp = regexp.MustCompile(`^language-[\w+-]*$`)
	colorStyleRegexp    = regexp.MustCompile(`^(color|background-color):\s*[^;]+;?$`)
)

func init() {
	UgcPolicy.AllowElements("figure", "figcaption", "mark", "u")

	UgcPolicy.AllowAttrs("style").Matching(colorStyleRegexp).OnElements("span", "mark")
	UgcPolicy.AllowAttrs("class").Matching(languageClassRegexp).OnElements("code")

	UgcPolicy.AllowAttrs("data-type").Matching(regexp.MustCompile("^taskList$")).OnElements("ul")
	UgcPolicy.AllowAttrs("data-checked").Matching(regexp.MustCompile("^(true|false)$")).OnElements("li")
	UgcPolicy.AllowAttrs("data-type").Matching(regexp.MustCompile("^taskItem$")).OnElements("li")
	UgcPolicy.AllowAttrs("start").Matching(regexp.MustCompile(`^\d+$`)).OnElements("ol")

	UgcPolicy.AllowAttrs("width").Matching(regexp.MustCompile(`^\d+$`)).OnElements("img")
	UgcPolicy.AllowDataURIImages()
}

// Sanitize пропускает HTML через политику редактора.
func Sanitize(html string) string {
	return UgcPolicy.Sanitize(html)
}

// StripTags удаляет из HTML всю разметку, оставляя только текст.
func StripTags(html string) string {
	return strings.TrimSpace(StripTagsPolicy.Sanitize(html))
}

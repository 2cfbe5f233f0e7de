// Package format turns raw DonutSMP API fields into text suitable for
// Telegram MarkdownV2 messages.
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ItemNamespace is the prefix the API puts on every item identifier.
const ItemNamespace = "minecraft:"

// markdownReserved lists every character MarkdownV2 requires to be escaped
// outside of code entities.
const markdownReserved = "\\_*[]()~`>#+-=|{}.!"

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

var markdownEscaper = newEscaper(markdownReserved)

func newEscaper(chars string) *strings.Replacer {
	pairs := make([]string, 0, len(chars)*2)
	for _, r := range chars {
		pairs = append(pairs, string(r), "\\"+string(r))
	}
	return strings.NewReplacer(pairs...)
}

// Escape backslash-escapes MarkdownV2 reserved characters in s.
func Escape(s string) string {
	return markdownEscaper.Replace(s)
}

// Escapef formats according to a format specifier and escapes the result.
func Escapef(format string, args ...any) string {
	return Escape(fmt.Sprintf(format, args...))
}

// ItemName converts an identifier such as "minecraft:diamond_sword" into
// "Diamond Sword".
func ItemName(itemID string) string {
	name := strings.ReplaceAll(itemID, ItemNamespace, "")
	name = strings.ReplaceAll(name, "_", " ")
	return cases.Title(language.English).String(name)
}

// Number formats n with thousands separators, e.g. 1234567 -> "1,234,567".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Playtime renders a duration as whole days and hours.
func Playtime(d time.Duration) string {
	days := int64(d / (24 * time.Hour))
	hours := int64((d % (24 * time.Hour)) / time.Hour)
	return fmt.Sprintf("%d days, %d hours", days, hours)
}

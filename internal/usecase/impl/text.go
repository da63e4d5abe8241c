package impl

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"capwatch/internal/domain/entity"
)

var (
	lineBreakTags = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTags      = regexp.MustCompile(`<[^>]*>`)
)

// stripHTML removes markup from feed-provided text: <br> becomes a newline,
// other tags are dropped and entities are decoded.
func stripHTML(text string) string {
	text = lineBreakTags.ReplaceAllString(text, "\n")
	text = htmlTags.ReplaceAllString(text, "")

	return html.UnescapeString(text)
}

// reformatTimestamp renders a feed timestamp for the notification body:
// "02.01.2006 15:04", shortened to the time of day when the date is today.
// Unparseable input is passed through unchanged.
func reformatTimestamp(value string, now time.Time) string {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		if parsed, err = time.Parse("2006-01-02T15:04:05", value); err != nil {
			return value
		}
	}

	if parsed.Year() == now.Year() && parsed.YearDay() == now.YearDay() {
		return parsed.Format("15:04")
	}

	return parsed.Format("02.01.2006 15:04")
}

// formatNotification builds the message body for one alert event: the names
// of the matched areas (when given), then headline, description and
// instruction, then effective/expires timestamps. Empty parts are elided.
func formatNotification(info entity.AlertInfo, areaNames []string) string {
	now := time.Now()

	lines := []string{
		strings.Join(areaNames, ", "),
		info.Headline,
		info.Description,
		info.Instruction,
	}

	if info.Effective != "" {
		lines = append(lines, fmt.Sprintf("Effective: %s", reformatTimestamp(info.Effective, now)))
	}
	if info.Expires != "" {
		lines = append(lines, fmt.Sprintf("Expires: %s", reformatTimestamp(info.Expires, now)))
	}

	nonEmpty := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}

	return stripHTML(strings.Join(nonEmpty, "\n"))
}

package ui

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// truncate shortens s to max display cells with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 3 {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, "...")
}

// truncateMiddle keeps the start and the end of s, which suits paths.
func truncateMiddle(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 5 {
		return string(runes[:max])
	}
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return string(runes[:startLen]) + "..." + string(runes[len(runes)-endLen:])
}

// formatLongDate renders a blog date like "January 2, 2006".
func formatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// formatShortDate renders a feed card date like "Jan 2, 2006".
func formatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// relativeTime renders "3 hours ago" or "in 2 hours" relative to now.
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// formatWords renders a word count with thousands separators.
func formatWords(n int) string {
	if n == 1 {
		return "1 word"
	}
	return printer.Sprintf("%d words", n)
}

// wrapText hard-wraps text to width display cells on word boundaries.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		lineWidth := 0
		for _, w := range words {
			ww := runewidth.StringWidth(w)
			if ww > width {
				w = runewidth.Truncate(w, width, "")
				ww = runewidth.StringWidth(w)
			}
			switch {
			case lineWidth == 0:
				line.WriteString(w)
				lineWidth = ww
			case lineWidth+1+ww <= width:
				line.WriteByte(' ')
				line.WriteString(w)
				lineWidth += 1 + ww
			default:
				lines = append(lines, line.String())
				line.Reset()
				line.WriteString(w)
				lineWidth = ww
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

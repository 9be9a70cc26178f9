package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/search"
	"github.com/abelbrown/marquee/internal/store"
	"github.com/charmbracelet/lipgloss"
)

// cardWidth is the inner width of a movie card. Border, padding and margin
// add cardChrome more columns.
const (
	cardWidth  = 30
	cardChrome = 5
)

// RenderCards lays movies out as a grid of cards that fits width.
func RenderCards(movies []catalog.Movie, width int) string {
	if len(movies) == 0 {
		return ""
	}

	perRow := width / (cardWidth + cardChrome)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(movies); start += perRow {
		end := min(start+perRow, len(movies))
		cards := make([]string, 0, end-start)
		for _, m := range movies[start:end] {
			cards = append(cards, renderCard(m))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard shows poster, title, rating, language and year.
func renderCard(m catalog.Movie) string {
	poster := m.PosterURL()
	if poster == "" {
		poster = "no poster"
	}

	meta := RatingStar.Render("★") + " " + m.Rating() +
		StatusBarText.Render(" • ") + m.Language() +
		StatusBarText.Render(" • ") + m.Year()

	return Card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		MetaItem.Render(truncate(poster, cardWidth)),
		CardTitle.Render(truncate(m.Title, cardWidth)),
		meta,
	))
}

// RenderTrending renders the ranked trending strip, or "" when there is
// nothing to show.
func RenderTrending(docs []store.TrendDocument, width int) string {
	if len(docs) == 0 {
		return ""
	}

	titleWidth := max(width/3, 12)
	lines := make([]string, 0, len(docs))
	for i, d := range docs {
		title := d.Title
		if title == "" {
			title = d.SearchTerm
		}
		poster := d.PosterURL
		if poster == "" {
			poster = "no poster"
		}

		line := TrendRank.Render(fmt.Sprintf("%d", i+1)) +
			TrendTitle.Width(titleWidth).Render(truncate(title, titleWidth-1)) +
			MetaItem.Render(truncate(poster, max(width-titleWidth-6, 10)))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderStatusBar renders the key hints with a short state summary on the
// left.
func RenderStatusBar(hints string, s search.State, width int) string {
	var position string
	switch s.Phase {
	case search.PhaseLoading:
		position = " Loading... "
	case search.PhaseSuccess:
		position = fmt.Sprintf(" %d movies ", len(s.Movies))
	default:
		position = " "
	}

	leftWidth := lipgloss.Width(position)
	rightWidth := lipgloss.Width(hints)
	padding := width - leftWidth - rightWidth - 2
	if padding < 0 {
		padding = 0
	}

	bar := position + strings.Repeat(" ", padding) + hints
	return StatusBar.Width(width).Render(bar)
}

// truncate shortens s to at most n runes, ending with "...".
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorGold      = lipgloss.Color("220")
)

// Title style for the app name in the header.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// Tagline style for the text next to the title.
var Tagline = lipgloss.NewStyle().
	Foreground(colorSecondary)

// SearchBox style wraps the query input.
var SearchBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 1)

// SectionHeader style for "Trending" and "All Movies".
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	MarginTop(1).
	Padding(0, 1)

// TrendRank style for the big rank number in the trending strip.
var TrendRank = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	Width(4).
	Align(lipgloss.Right)

// TrendTitle style for trending entries.
var TrendTitle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	PaddingLeft(1)

// MetaItem style for secondary text such as poster URLs.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorMuted)

// Card style for a single movie in the results grid.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// CardTitle style for the movie title inside a card.
var CardTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// RatingStar style for the ★ glyph.
var RatingStar = lipgloss.NewStyle().
	Foreground(colorGold)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for hints in an empty view.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SpinnerStyle colors the loading spinner.
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(colorHighlight)

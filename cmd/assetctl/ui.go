package main

import "github.com/charmbracelet/lipgloss"

var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}

	StyleTitle       = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StyleSuccess     = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError       = lipgloss.NewStyle().Foreground(ColorError)
	StyleMuted       = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	StyleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

func FormatSuccess(msg string) string { return StyleSuccess.Render("✔ " + msg) }
func FormatError(msg string) string   { return StyleError.Render("✘ " + msg) }
func FormatInfo(msg string) string    { return StyleMuted.Render(msg) }

package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/pkcegen/internal/pkce"
)

var (
	colorPrimary = lipgloss.Color("#6B50FF")
	colorMuted   = lipgloss.Color("#858392")
	colorText    = lipgloss.Color("#DFDBDD")
	colorSuccess = lipgloss.Color("#12C78F")
	colorError   = lipgloss.Color("#EB4268")
	colorBorder  = lipgloss.Color("#3A3943")
)

type styles struct {
	title       lipgloss.Style
	subtitle    lipgloss.Style
	button      lipgloss.Style
	buttonFocus lipgloss.Style
	buttonBusy  lipgloss.Style
	label       lipgloss.Style
	description lipgloss.Style
	value       lipgloss.Style
	panel       lipgloss.Style
	badge       lipgloss.Style
	errorText   lipgloss.Style
	success     lipgloss.Style
	help        lipgloss.Style
	helpKey     lipgloss.Style
	category    lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle().Foreground(colorText)
	return styles{
		title:       base.Bold(true).Foreground(colorPrimary),
		subtitle:    base.Foreground(colorMuted),
		button:      base.Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder),
		buttonFocus: base.Bold(true).Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary),
		buttonBusy:  base.Foreground(colorMuted).Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder),
		label:       base.Bold(true),
		description: base.Foreground(colorMuted),
		value:       base.Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(colorBorder),
		panel:       base.Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder),
		badge:       base.Padding(0, 1).Border(lipgloss.NormalBorder(), false, true).BorderForeground(colorBorder),
		errorText:   base.Foreground(colorError),
		success:     base.Foreground(colorSuccess),
		help:        base.Foreground(colorMuted),
		helpKey:     base.Bold(true),
		category:    base.Bold(true).Foreground(colorMuted),
	}
}

func levelColor(l pkce.Level) color.Color {
	switch l {
	case pkce.LevelExcellent:
		return colorSuccess
	case pkce.LevelVeryGood:
		return lipgloss.Color("#00A4FF")
	case pkce.LevelGood:
		return lipgloss.Color("#E8FE96")
	default:
		return lipgloss.Color("#FF985A")
	}
}

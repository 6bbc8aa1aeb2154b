package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pomoday/pomoday/internal/config"
)

// Theme bundles the lipgloss styles used across the TUI, resolved from the
// config file's color table.
type Theme struct {
	Focus  lipgloss.Style
	Break  lipgloss.Style
	Paused lipgloss.Style
	Title  lipgloss.Style
	Task   lipgloss.Style
	Active lipgloss.Style
	Help   lipgloss.Style

	FocusColor  string
	BreakColor  string
	PausedColor string
}

// NewTheme resolves a theme from config, falling back to defaults for any
// missing color.
func NewTheme(cfg *config.ThemeConfig) Theme {
	resolved := config.DefaultThemeConfig()
	if cfg != nil {
		if cfg.ColorFocus != "" {
			resolved.ColorFocus = cfg.ColorFocus
		}
		if cfg.ColorBreak != "" {
			resolved.ColorBreak = cfg.ColorBreak
		}
		if cfg.ColorPaused != "" {
			resolved.ColorPaused = cfg.ColorPaused
		}
		if cfg.ColorTitle != "" {
			resolved.ColorTitle = cfg.ColorTitle
		}
		if cfg.ColorTask != "" {
			resolved.ColorTask = cfg.ColorTask
		}
		if cfg.ColorHelp != "" {
			resolved.ColorHelp = cfg.ColorHelp
		}
	}

	return Theme{
		Focus:  lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorFocus)).Bold(true),
		Break:  lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorBreak)).Bold(true),
		Paused: lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorPaused)),
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorTitle)).Bold(true),
		Task:   lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorTask)),
		Active: lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorBreak)).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorHelp)),

		FocusColor:  resolved.ColorFocus,
		BreakColor:  resolved.ColorBreak,
		PausedColor: resolved.ColorPaused,
	}
}

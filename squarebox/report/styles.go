// Package report prints styled, human-readable dumps: the period table and
// an end-of-run summary.
package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	note   lipgloss.Style
	warn   lipgloss.Style
	muted  lipgloss.Style
	box    lipgloss.Style
}

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		label:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		value:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)),
		note:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		warn:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

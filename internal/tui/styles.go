package tui

import "github.com/charmbracelet/lipgloss"

var (
    titleStyle = lipgloss.NewStyle().
            Bold(true).
            Foreground(lipgloss.Color("255")).
            Background(lipgloss.Color("29")).
            Padding(0, 1)

    subtitleStyle = lipgloss.NewStyle().
            Foreground(lipgloss.Color("114"))

    userStyle = lipgloss.NewStyle().
            Foreground(lipgloss.Color("255")).
            Background(lipgloss.Color("29")).
            Padding(0, 1)

    assistantStyle = lipgloss.NewStyle().
            Foreground(lipgloss.Color("252")).
            Border(lipgloss.RoundedBorder()).
            BorderForeground(lipgloss.Color("36")).
            Padding(0, 1)

    busyStyle = lipgloss.NewStyle().
            Foreground(lipgloss.Color("42"))

    dimStyle = lipgloss.NewStyle().
            Foreground(lipgloss.Color("242"))
)

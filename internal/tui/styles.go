package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pokeview/pokeview/internal/catalog"
)

// statBarWidth is the number of cells of a full stat bar.
const statBarWidth = 20

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "161", Dark: "204"})
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	nameStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)

// TypeBadge renders a type name on its type colour.
func TypeBadge(typeName string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(catalog.TypeColor(typeName))).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 1).
		Render(typeName)
}

// TypeBadges renders all badges of a record separated by a space.
func TypeBadges(types []string) string {
	badges := make([]string, 0, len(types))
	for _, t := range types {
		badges = append(badges, TypeBadge(t))
	}
	return strings.Join(badges, " ")
}

// StatBar renders one stat as "label value ████░░░░".
func StatBar(stat catalog.Stat) string {
	filled := catalog.StatPercent(stat.Value) * statBarWidth / 100
	bar := lipgloss.NewStyle().
		Foreground(lipgloss.Color(catalog.StatColor(stat.Name))).
		Render(strings.Repeat("█", filled))
	rest := dimStyle.Render(strings.Repeat("░", statBarWidth-filled))
	return fmt.Sprintf("%-16s %3d %s%s", catalog.StatLabel(stat.Name), stat.Value, bar, rest)
}

// Capitalize upper-cases the first letter of a name.
func Capitalize(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

package render

import "github.com/charmbracelet/lipgloss"

var (
	borderColor = lipgloss.AdaptiveColor{Light: "#555", Dark: "#555"}
	gold        = lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FACC15"}
	silver      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#D1D5DB"}
	bronze      = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}

	titleStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(borderColor)

	medalStyles = []lipgloss.Style{
		cellStyle.Foreground(gold).Bold(true),
		cellStyle.Foreground(silver).Bold(true),
		cellStyle.Foreground(bronze).Bold(true),
	}

	noticeStyles = map[Level]lipgloss.Style{
		LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#166534", Dark: "#86EFAC"}),
		LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#93C5FD"}),
		LevelError:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FCA5A5"}),
	}
)

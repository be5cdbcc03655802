package render

import (
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/xplorefs/xplore/internal/logging"
)

// Theme is the style set applied to rendered output.
type Theme struct {
	Name       string
	Directory  lipgloss.Style
	Symlink    lipgloss.Style
	Executable lipgloss.Style
	Header     lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	Prompt     lipgloss.Style
}

func defaultTheme() Theme {
	return Theme{
		Name:       "default",
		Directory:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Symlink:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Executable: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		Header:     lipgloss.NewStyle().Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	}
}

func darkTheme() Theme {
	return Theme{
		Name:       "dark",
		Directory:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		Symlink:    lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
		Executable: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:       "light",
		Directory:  lipgloss.NewStyle().Foreground(lipgloss.Color("19")).Bold(true),
		Symlink:    lipgloss.NewStyle().Foreground(lipgloss.Color("30")),
		Executable: lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("102")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("19")).Bold(true),
	}
}

// Themes lists the available theme names.
func Themes() []string { return []string{"default", "dark", "light"} }

// Lookup resolves a theme by name, falling back to default with a warning
// for names it does not know.
func Lookup(name string, log *logging.Logger) Theme {
	switch name {
	case "", "default":
		return defaultTheme()
	case "dark":
		return darkTheme()
	case "light":
		return lightTheme()
	default:
		if log != nil {
			log.Warn("unknown theme, using default", zap.String("theme", name))
		}
		return defaultTheme()
	}
}

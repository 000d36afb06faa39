package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// Palette - workshop tones
var (
	Steel    = lipgloss.Color("#5DADE2")
	Brass    = lipgloss.Color("#F4D03F")
	Copper   = lipgloss.Color("#DC7633")
	Moss     = lipgloss.Color("#58D68D")
	Rust     = lipgloss.Color("#CD6155")
	Slate    = lipgloss.Color("#5D6D7E")
	Ash      = lipgloss.Color("#AAB7B8")
	Ivory    = lipgloss.Color("#FDFEFE")
	Charcoal = lipgloss.Color("#2C3E50")
	Plum     = lipgloss.Color("#9B59B6")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Brass)

	Success = lipgloss.NewStyle().
		Foreground(Moss)

	Error = lipgloss.NewStyle().
		Foreground(Rust).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Copper)

	Info = lipgloss.NewStyle().
		Foreground(Steel)

	Muted = lipgloss.NewStyle().
		Foreground(Ash)

	Highlight = lipgloss.NewStyle().
			Foreground(Brass).
			Bold(true)
)

var baseBadge = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true)

// SkillBadge returns the skill type badge
func SkillBadge() string {
	if !IsTTY {
		return "[SKILL]"
	}
	return baseBadge.Background(Plum).Foreground(Ivory).Render("SKILL")
}

// CmdBadge returns the command type badge
func CmdBadge() string {
	if !IsTTY {
		return "[CMD]"
	}
	return baseBadge.Background(Steel).Foreground(Ivory).Render("CMD")
}

// AgentBadge returns the agent type badge
func AgentBadge() string {
	if !IsTTY {
		return "[AGENT]"
	}
	return baseBadge.Background(Rust).Foreground(Ivory).Render("AGENT")
}

// HookBadge returns the hook type badge
func HookBadge() string {
	if !IsTTY {
		return "[HOOK]"
	}
	return baseBadge.Background(Copper).Foreground(Ivory).Render("HOOK")
}

// DocBadge returns the doc type badge
func DocBadge() string {
	if !IsTTY {
		return "[DOC]"
	}
	return baseBadge.Background(Slate).Foreground(Ivory).Render("DOC")
}

// Divider returns a horizontal divider
func Divider(width int) string {
	return lipgloss.NewStyle().
		Foreground(Slate).
		Render(strings.Repeat("─", width))
}

// StatusLine creates a status line with icon and message
func StatusLine(icon, message string, color lipgloss.Color) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	iconStyled := lipgloss.NewStyle().Foreground(color).Render(icon)
	msgStyled := lipgloss.NewStyle().Foreground(color).Render(message)
	return fmt.Sprintf("  %s %s", iconStyled, msgStyled)
}

// SuccessLine creates a success status line
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Moss)
}

// ErrorLine creates an error status line
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Rust)
}

// WarningLine creates a warning status line
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Copper)
}

// InfoLine creates an info status line
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, Steel)
}

// Render applies a lipgloss style to text, returning plain text in non-TTY
// environments.
func Render(style lipgloss.Style, text string) string {
	if !IsTTY {
		return text
	}
	return style.Render(text)
}

// TerminalWidth returns the current terminal width, defaulting to 80 if unknown
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// SectionHeader creates a decorated section header
func SectionHeader(title string) string {
	if !IsTTY {
		return fmt.Sprintf("=== %s ===", title)
	}

	width := TerminalWidth()
	if width > 80 {
		width = 80
	}

	titleStyled := lipgloss.NewStyle().
		Foreground(Brass).
		Bold(true).
		Render(title)

	titleLen := lipgloss.Width(title)
	padLeft := (width - titleLen - 6) / 2
	padRight := width - titleLen - 6 - padLeft

	left := lipgloss.NewStyle().Foreground(Slate).Render(strings.Repeat("─", padLeft) + "┤ ")
	right := lipgloss.NewStyle().Foreground(Slate).Render(" ├" + strings.Repeat("─", padRight))

	return left + titleStyled + right
}

// Truncate truncates text to max length with ellipsis
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}

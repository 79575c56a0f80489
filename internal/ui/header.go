package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar for the active list.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	snap := m.snapshot

	parts := []string{bg.Render("ledgerdeck", styles.Logo)}

	if rv := m.current(); rv != nil {
		parts = append(parts,
			bg.Render(rv.res.Title, styles.Text.Bold(true))+bg.Space()+
				bg.Render("("+rv.res.Mode.String()+")", styles.FaintText))
	}

	switch {
	case snap.IsOffline():
		parts = append(parts,
			bg.Render(classifyConnectionError(snap.LastError), styles.DangerText)+bg.Space()+
				bg.Render("Retrying...", styles.WarningText.Bold(true)))
	case snap.Loading:
		parts = append(parts, bg.Render("● Loading", styles.WarningText))
	case snap.HasData:
		parts = append(parts, bg.Render("● Live", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("Connecting...", styles.WarningText.Bold(true)))
	}

	if ts := formatTimestamp(snap.LastUpdated, time.Now()); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if snap.LastError != nil && !snap.IsOffline() {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(snap.LastError.Error(), maxErr), styles.DangerText))
	}

	if m.errorMsg != "" {
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.errorMsg, 60), styles.WarningText))
	}

	if !compact && m.config != nil {
		if p := m.config.LogPath(); p != "" {
			parts = append(parts, bg.Render("logs", styles.FaintText)+bg.Space()+bg.Render(truncate(p, 40), styles.MutedText))
		}
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "  "))
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "status 401"), strings.Contains(msg, "status 403"):
		return "UNAUTHORIZED"
	default:
		return "ERROR"
	}
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := now.Sub(t)
	s := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		s += " (now)"
	case since < time.Hour:
		s += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		s += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return s
}

// renderCommandBar renders the key hints, or the search prompt while typing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.searching {
		return styles.Header.Width(m.width).Render(m.search.View())
	}

	h := m.help
	h.Width = max(m.width-20, 20)
	h.Styles = helpStyles(m.theme)
	hints := h.ShortHelpView(m.keys.ShortHelp())

	theme := bg.Render("T", styles.AccentText) + bg.Sep(":") + bg.Render(m.theme.Name, styles.FaintText)
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(hints + bg.Spaces(2) + theme)
}

func helpStyles(t Theme) help.Styles {
	bg := lipgloss.Color(t.Surface)
	return help.Styles{
		Ellipsis:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)).Background(bg),
		ShortKey:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Background(bg),
		ShortDesc:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Background(bg),
		ShortSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)).Background(bg),
		FullKey:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		FullDesc:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		FullSeparator:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
	}
}

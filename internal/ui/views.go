package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	s := m.styles

	badge := s.Success.Bold(true).Render("ONLINE")
	if m.snapshot.IsOffline() {
		badge = s.Danger.Bold(true).Render("OFFLINE")
	} else if !m.snapshot.HasStats {
		badge = s.Warning.Render(m.spinner.View() + "connecting")
	}

	parts := []string{
		s.Accent.Bold(true).Render("voidpanel"),
		badge,
	}
	if m.snapshot.HasStats {
		st := m.snapshot.Stats
		parts = append(parts,
			fmt.Sprintf("CPU %d°C", st.CPUTemp),
			fmt.Sprintf("SOC %d°C", st.SOCTemp),
			m.renderFanBadge(),
			fmt.Sprintf("up %s", st.Uptime),
		)
		if st.AppRunning() {
			parts = append(parts, s.Accent.Render("▶ "+st.ActiveApp))
		}
	}
	if m.snapshot.LastError != nil {
		parts = append(parts, s.Danger.Render(truncate(m.snapshot.LastError.Error(), 48)))
	}

	return s.Header.Width(m.width).Render(" " + strings.Join(parts, "  "))
}

func (m Model) renderFanBadge() string {
	label := fmt.Sprintf("fan→%d°C", m.fanTarget())
	if m.snapshot.HasStats && m.snapshot.Stats.FanActive {
		return m.styles.Warning.Render(label + " ●")
	}
	return m.styles.Muted.Render(label)
}

func (m Model) renderTabs() string {
	var out []string
	for t := tabDashboard; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t.title())
		if t == m.active {
			out = append(out, m.styles.TabActive.Render(label))
		} else {
			out = append(out, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) renderBody() string {
	switch m.active {
	case tabDashboard:
		return m.renderDashboard()
	case tabPackages:
		return m.renderPackages()
	case tabPayloads:
		return m.renderPayloads()
	case tabSettings:
		return m.renderSettings()
	case tabLogs:
		return m.renderLogs()
	}
	return ""
}

func (m Model) renderDashboard() string {
	s := m.styles
	var b strings.Builder

	if m.snapshot.HasStats {
		st := m.snapshot.Stats
		b.WriteString(s.Muted.Render("library") + " ")
		b.WriteString(fmt.Sprintf("%d titles (%d PS5, %d PS4)\n\n", st.Total, st.PS5, st.PS4))
	} else {
		b.WriteString(s.Muted.Render("waiting for telemetry...") + "\n\n")
	}

	if len(m.snapshot.Library) == 0 {
		b.WriteString(s.Muted.Render("no titles. s rescan, e repair"))
		return b.String()
	}

	for i, game := range m.snapshot.Library {
		line := fmt.Sprintf("%-10s %-40s %s", game.ID, truncate(game.Name, 40), game.Version)
		switch {
		case !game.OnDisk():
			line = s.Danger.Render(line + "  (missing)")
		case i == m.libCursor:
			line = s.Selected.Render(line)
		default:
			line = s.Text.Render(line)
		}
		if i == m.libCursor && game.OnDisk() {
			line = s.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderPackages() string {
	s := m.styles
	var b strings.Builder

	if m.pkgErr != nil {
		b.WriteString(s.Danger.Render("package listing failed: "+m.pkgErr.Error()) + "\n\n")
	}

	if m.uploading {
		p := m.uploadNow
		b.WriteString(fmt.Sprintf("uploading %s  %s  %s\n",
			p.Name,
			m.uploadBar.ViewAs(float64(p.Percent)/100),
			s.Muted.Render(formatSpeed(p.Speed)),
		))
		b.WriteString("\n")
	}

	if len(m.packages) == 0 {
		b.WriteString(s.Muted.Render("no packages on scan paths. u upload, U install from URL"))
		return b.String()
	}

	for i, pkg := range m.packages {
		mark := "[ ]"
		style := s.Text
		if m.installQ.Contains(pkg.Path) {
			mark = "[+]"
			style = s.Queued
		}
		line := fmt.Sprintf("%s %-44s %10s", mark, truncate(pkg.Name, 44), formatBytes(pkg.Size))
		if i == m.pkgCursor {
			b.WriteString(s.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + style.Render(line) + "\n")
		}
	}

	if n := m.installQ.Len(); n > 0 {
		b.WriteString("\n")
		if m.installing {
			b.WriteString(s.Warning.Render(m.spinner.View() + fmt.Sprintf("installing %d queued...", n)))
		} else {
			b.WriteString(s.Accent.Render(fmt.Sprintf("%d queued. i install", n)))
		}
	}
	return b.String()
}

func (m Model) renderPayloads() string {
	s := m.styles
	var b strings.Builder

	if m.payloadErr != nil {
		b.WriteString(s.Danger.Render("payload listing failed: "+m.payloadErr.Error()) + "\n\n")
	}
	if len(m.payloads) == 0 {
		b.WriteString(s.Muted.Render("no payloads on the daemon"))
		return b.String()
	}

	for i, pl := range m.payloads {
		line := fmt.Sprintf("%-44s %10s", truncate(pl.Name, 44), formatBytes(pl.Size))
		if i == m.payloadCursor {
			b.WriteString(s.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + s.Text.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + s.Muted.Render("enter send to console"))
	return b.String()
}

func (m Model) renderSettings() string {
	s := m.styles
	var b strings.Builder

	if m.confErr != nil {
		b.WriteString(s.Warning.Render("config not loaded: "+truncate(m.confErr.Error(), 60)) + "\n")
		b.WriteString(s.Muted.Render("editing a local skeleton; r to retry") + "\n\n")
	}
	if m.saveState != "" {
		b.WriteString(s.Muted.Render(m.saveState) + "\n\n")
	}

	var cols []string
	for i, name := range settingsSections {
		cols = append(cols, m.renderSection(name, i == m.secFocus))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return b.String()
}

func (m Model) renderSection(name string, focused bool) string {
	s := m.styles
	var b strings.Builder

	title := s.Muted.Render(name)
	if focused {
		title = s.Accent.Bold(true).Render(name)
	}
	b.WriteString(title + "\n")

	sec := m.conf.SectionSnapshot(name)
	if sec == nil || sec.Len() == 0 {
		b.WriteString(s.Muted.Render("(empty)") + "\n")
	} else {
		for i, key := range sec.Keys() {
			line := key
			if v := sec.Value(key); v != "" {
				line = key + "=" + v
			}
			line = truncate(line, 24)
			if focused && i == m.entryCursor {
				b.WriteString(s.Selected.Render(line) + "\n")
			} else {
				b.WriteString(s.Text.Render(line) + "\n")
			}
		}
	}

	panel := s.Panel
	if focused {
		panel = panel.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
	}
	return panel.Width(26).Render(b.String())
}

func (m Model) renderLogs() string {
	if m.logErr != nil {
		return m.styles.Danger.Render("log fetch failed: " + m.logErr.Error())
	}
	if !m.logReady {
		return m.styles.Muted.Render("loading logs...")
	}
	return m.logView.View()
}

func (m Model) renderStatusBar() string {
	s := m.styles

	if m.inputFor != inputNone {
		return s.StatusBar.Width(m.width).Render(" " + m.input.View())
	}

	hint := m.tabHint()
	line := " " + hint
	if m.status != "" {
		line += "  │  " + m.status
	}
	return s.StatusBar.Width(m.width).Render(truncate(line, m.width))
}

func (m Model) tabHint() string {
	switch m.active {
	case tabDashboard:
		return "enter launch · [/] fan temp · s rescan · e repair · p pause · t theme · q quit"
	case tabPackages:
		return "space queue · i install · u upload · U url · d delete · r refresh"
	case tabPayloads:
		return "enter send · r refresh"
	case tabSettings:
		return "h/l section · j/k entry · a add · x remove · r reload"
	case tabLogs:
		return "j/k scroll · c clear · r refresh"
	}
	return ""
}

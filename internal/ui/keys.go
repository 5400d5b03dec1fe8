package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hexvoid/voidpanel/internal/confstore"
	"github.com/hexvoid/voidpanel/internal/queue"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputFor != inputNone {
		return m.handlePromptKey(msg)
	}

	key := msg.String()

	// Arm-and-confirm for package deletion.
	if m.pendingDelete != "" {
		path := m.pendingDelete
		m.pendingDelete = ""
		if key == "y" {
			return m, m.actionCmd("delete", func(ctx context.Context) error {
				return m.opts.Client.DeletePackage(ctx, path)
			})
		}
		m.setStatus("delete cancelled")
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.conf.Close()
		return m, tea.Quit
	case "tab":
		m.active = (m.active + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.active = (m.active + tabCount - 1) % tabCount
		return m, nil
	case "1", "2", "3", "4", "5":
		m.active = tab(key[0] - '1')
		return m, nil
	case "t":
		m.cycleTheme()
		return m, nil
	case "r":
		return m, m.refreshActiveTab()
	}

	switch m.active {
	case tabDashboard:
		return m.handleDashboardKey(key)
	case tabPackages:
		return m.handlePackagesKey(key)
	case tabPayloads:
		return m.handlePayloadsKey(key)
	case tabSettings:
		return m.handleSettingsKey(key)
	case tabLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) refreshActiveTab() tea.Cmd {
	switch m.active {
	case tabDashboard:
		return m.refreshLibraryCmd()
	case tabPackages:
		return m.fetchPackagesCmd()
	case tabPayloads:
		return m.fetchPayloadsCmd()
	case tabSettings:
		return m.loadConfCmd()
	case tabLogs:
		return m.fetchLogsCmd()
	}
	return nil
}

func (m Model) handleDashboardKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.libCursor > 0 {
			m.libCursor--
		}
	case "down", "j":
		if m.libCursor < len(m.snapshot.Library)-1 {
			m.libCursor++
		}
	case "enter":
		if m.libCursor < len(m.snapshot.Library) {
			game := m.snapshot.Library[m.libCursor]
			return m, m.actionCmd("launch "+game.ID, func(ctx context.Context) error {
				return m.opts.Client.Launch(ctx, game.ID)
			})
		}
	case "[":
		m.adjustFanTarget(-1)
	case "]":
		m.adjustFanTarget(+1)
	case "s":
		return m, m.actionCmd("rescan", m.opts.Client.Rescan)
	case "e":
		return m, m.actionCmd("repair", m.opts.Client.Repair)
	case "p":
		return m, m.actionCmd("pause", m.opts.Client.Pause)
	}
	return m, nil
}

func (m Model) handlePackagesKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.pkgCursor > 0 {
			m.pkgCursor--
		}
	case "down", "j":
		if m.pkgCursor < len(m.packages)-1 {
			m.pkgCursor++
		}
	case " ", "space":
		if m.pkgCursor < len(m.packages) {
			m.installQ.Toggle(m.packages[m.pkgCursor].Path)
		}
	case "i":
		if m.installing {
			m.setStatus("install already running")
			return m, nil
		}
		if m.installQ.Len() == 0 {
			m.setStatus("queue is empty")
			return m, nil
		}
		m.installing = true
		return m, m.startInstallCmd()
	case "u":
		return m.openPrompt(inputUploadPath, "local .pkg path", m.opts.Config.UploadDir+"/")
	case "U":
		return m.openPrompt(inputURLInstall, "https://...", "")
	case "d":
		if m.pkgCursor < len(m.packages) {
			m.pendingDelete = m.packages[m.pkgCursor].Path
			m.setStatus("delete " + m.packages[m.pkgCursor].Name + "? press y to confirm")
		}
	}
	return m, nil
}

func (m Model) handlePayloadsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.payloadCursor > 0 {
			m.payloadCursor--
		}
	case "down", "j":
		if m.payloadCursor < len(m.payloads)-1 {
			m.payloadCursor++
		}
	case "enter":
		if m.payloadCursor < len(m.payloads) {
			name := m.payloads[m.payloadCursor].Name
			return m, m.actionCmd("send "+name, func(ctx context.Context) error {
				return m.opts.Client.SendPayload(ctx, name)
			})
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(key string) (tea.Model, tea.Cmd) {
	section := settingsSections[m.secFocus]

	switch key {
	case "left", "h":
		m.secFocus = (m.secFocus + len(settingsSections) - 1) % len(settingsSections)
		m.entryCursor = 0
	case "right", "l":
		m.secFocus = (m.secFocus + 1) % len(settingsSections)
		m.entryCursor = 0
	case "up", "k":
		if m.entryCursor > 0 {
			m.entryCursor--
		}
	case "down", "j":
		sec := m.conf.SectionSnapshot(section)
		if sec != nil && m.entryCursor < sec.Len()-1 {
			m.entryCursor++
		}
	case "a":
		switch section {
		case confstore.SectionWhitelist:
			return m.openPrompt(inputWhitelistAdd, "title ID", "")
		case confstore.SectionBlacklist:
			return m.openPrompt(inputBlacklistAdd, "title ID", "")
		case confstore.SectionDelays:
			return m.openPrompt(inputDelayAdd, "title ID [delay ms]", "")
		case confstore.SectionPaths:
			text := m.conf.RawList(confstore.SectionPaths).Text()
			return m.openPrompt(inputPathsEdit, "paths separated by ;", strings.ReplaceAll(text, "\n", ";"))
		case confstore.SectionSettings:
			return m.openPrompt(inputScalarEdit, "KEY=VALUE", "")
		}
	case "x":
		sec := m.conf.SectionSnapshot(section)
		if sec == nil || m.entryCursor >= sec.Len() {
			return m, nil
		}
		entry := sec.Keys()[m.entryCursor]
		switch section {
		case confstore.SectionWhitelist, confstore.SectionBlacklist, confstore.SectionPaths:
			m.conf.SetList(section).Remove(entry)
		case confstore.SectionDelays:
			m.conf.DelayMap(section).Remove(entry)
		case confstore.SectionSettings:
			m.setStatus("scalar keys are edited, not removed")
			return m, nil
		}
		m.conf.ScheduleSave()
		m.saveState = "saving..."
	}
	return m, nil
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		return m, m.actionCmd("clear logs", m.opts.Client.ClearLogs)
	}
	if m.logReady {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ---- shared text prompt ----

func (m Model) openPrompt(purpose inputPurpose, placeholder, prefill string) (tea.Model, tea.Cmd) {
	m.inputFor = purpose
	m.input.Placeholder = placeholder
	m.input.SetValue(prefill)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputFor = inputNone
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		purpose := m.inputFor
		m.inputFor = inputNone
		m.input.Blur()
		m.input.SetValue("")
		return m.commitPrompt(purpose, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitPrompt(purpose inputPurpose, value string) (tea.Model, tea.Cmd) {
	if value == "" {
		return m, nil
	}

	switch purpose {
	case inputWhitelistAdd:
		m.conf.SetList(confstore.SectionWhitelist).Add(value)
	case inputBlacklistAdd:
		m.conf.SetList(confstore.SectionBlacklist).Add(value)
	case inputDelayAdd:
		id, ms, ok := m.delayFields(value)
		if !ok {
			m.setStatus("expected: TITLEID [delay ms]")
			return m, nil
		}
		m.conf.DelayMap(confstore.SectionDelays).Add(id, ms)
	case inputPathsEdit:
		m.conf.RawList(confstore.SectionPaths).SetText(strings.ReplaceAll(value, ";", "\n"))
	case inputScalarEdit:
		key, val, found := strings.Cut(value, "=")
		if !found || strings.TrimSpace(key) == "" {
			m.setStatus("expected: KEY=VALUE")
			return m, nil
		}
		m.conf.SetScalar(confstore.SectionSettings, strings.TrimSpace(key), strings.TrimSpace(val))
	case inputURLInstall:
		return m, m.actionCmd("install url", func(ctx context.Context) error {
			return m.opts.Client.InstallURL(ctx, value)
		})
	case inputUploadPath:
		if m.uploading {
			m.setStatus("upload already running")
			return m, nil
		}
		m.uploading = true
		m.uploadNow = queue.Progress{}
		return m, m.startUploadCmd(value)
	default:
		return m, nil
	}

	m.conf.ScheduleSave()
	m.saveState = "saving..."
	return m, nil
}

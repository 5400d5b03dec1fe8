package ui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hexvoid/voidpanel/internal/confstore"
	"github.com/hexvoid/voidpanel/internal/logtail"
	"github.com/hexvoid/voidpanel/internal/payload"
	"github.com/hexvoid/voidpanel/internal/prefs"
	"github.com/hexvoid/voidpanel/internal/queue"
	"github.com/hexvoid/voidpanel/internal/state"
	"github.com/hexvoid/voidpanel/internal/voidshell"
)

type tab int

const (
	tabDashboard tab = iota
	tabPackages
	tabPayloads
	tabSettings
	tabLogs
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabDashboard:
		return "Dashboard"
	case tabPackages:
		return "Packages"
	case tabPayloads:
		return "Payloads"
	case tabSettings:
		return "Settings"
	case tabLogs:
		return "Logs"
	}
	return "?"
}

// inputPurpose tags what the shared text prompt is collecting.
type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputWhitelistAdd
	inputBlacklistAdd
	inputDelayAdd
	inputPathsEdit
	inputScalarEdit
	inputURLInstall
	inputUploadPath
)

const (
	fanTempMin     = 40
	fanTempMax     = 85
	fanTempDefault = 65
)

// settingsSections is the edit focus ring on the settings tab.
var settingsSections = []string{
	confstore.SectionSettings,
	confstore.SectionWhitelist,
	confstore.SectionBlacklist,
	confstore.SectionDelays,
	confstore.SectionPaths,
}

type (
	refreshTickMsg time.Time

	packagesMsg struct {
		files []voidshell.PackageFile
		err   error
	}
	payloadsMsg struct {
		files []voidshell.PayloadFile
		order []string
		err   error
	}
	logsMsg struct {
		text string
		err  error
	}
	confLoadedMsg struct{ err error }
	savedMsg      struct{ err error }

	// actionMsg reports a fire-and-forget daemon call.
	actionMsg struct {
		label string
		err   error
	}

	installDoneMsg    struct{ results []queue.Result }
	uploadProgressMsg queue.Progress
	uploadDoneMsg     struct{ results []queue.Result }
)

// Model is the whole panel UI. All daemon traffic happens inside
// commands; Update never blocks on the network.
type Model struct {
	ctx  context.Context
	opts Options

	theme  Theme
	styles Styles
	width  int
	height int

	active   tab
	snapshot state.Snapshot
	status   string
	statusAt time.Time

	spinner spinner.Model

	// dashboard
	libCursor int

	// packages
	packages      []voidshell.PackageFile
	pkgCursor     int
	pkgErr        error
	installQ      *queue.InstallQueue
	installing    bool
	uploading     bool
	uploadNow     queue.Progress
	uploadBar     progress.Model
	uploadCh      chan queue.Progress
	pendingDelete string

	// payloads
	payloads      []voidshell.PayloadFile
	payloadCursor int
	payloadErr    error

	// settings
	conf           *confstore.Store
	confErr        error
	saveCh         chan error
	saveState      string
	secFocus       int
	entryCursor    int
	defaultDelayMS int

	// logs
	logView  viewport.Model
	logErr   error
	logReady bool

	// shared text prompt
	input    textinput.Model
	inputFor inputPurpose
}

func newModel(ctx context.Context, opts Options) Model {
	theme := ThemeByName(opts.ThemeName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.CharLimit = 512

	conf := confstore.New(opts.Client)
	saveCh := make(chan error, 4)
	conf.OnSaved(func(err error) {
		select {
		case saveCh <- err:
		default:
		}
	})

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	return Model{
		ctx:            ctx,
		opts:           opts,
		theme:          theme,
		styles:         theme.Styles(),
		active:         tabDashboard,
		spinner:        sp,
		installQ:       queue.NewInstallQueue(opts.Client.InstallPackage),
		uploadBar:      progress.New(progress.WithDefaultGradient()),
		uploadCh:       make(chan queue.Progress, 16),
		conf:           conf,
		saveCh:         saveCh,
		defaultDelayMS: userPrefs.SentinelDelayMS,
		input:          ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.tickCmd(),
		m.loadConfCmd(),
		m.fetchPackagesCmd(),
		m.fetchPayloadsCmd(),
		m.fetchLogsCmd(),
		waitSave(m.saveCh),
		waitUploadProgress(m.uploadCh),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyH := m.height - 4
		if bodyH < 3 {
			bodyH = 3
		}
		if !m.logReady {
			m.logView = viewport.New(m.width, bodyH)
			m.logReady = true
		} else {
			m.logView.Width = m.width
			m.logView.Height = bodyH
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshTickMsg:
		m.snapshot = m.opts.Store.Snapshot()
		m.clampCursors()
		return m, m.tickCmd()

	case confLoadedMsg:
		m.confErr = msg.err
		return m, nil

	case packagesMsg:
		m.pkgErr = msg.err
		if msg.err == nil {
			m.packages = msg.files
			m.clampCursors()
		}
		return m, nil

	case payloadsMsg:
		m.payloadErr = msg.err
		if msg.err == nil {
			m.payloads = payload.Resolve(msg.files, msg.order)
			m.clampCursors()
		}
		return m, nil

	case logsMsg:
		m.logErr = msg.err
		if msg.err == nil && m.logReady {
			m.logView.SetContent(msg.text)
			m.logView.GotoBottom()
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.saveState = "save failed: " + msg.err.Error()
		} else {
			m.saveState = "saved " + time.Now().Format("15:04:05")
		}
		return m, waitSave(m.saveCh)

	case actionMsg:
		if msg.err != nil {
			m.setStatus(msg.label + " failed: " + msg.err.Error())
			return m, nil
		}
		m.setStatus(msg.label + " ok")
		switch msg.label {
		case "delete", "install url":
			return m, tea.Batch(m.fetchPackagesCmd(), m.refreshLibraryCmd())
		case "clear logs":
			return m, m.fetchLogsCmd()
		}
		return m, nil

	case installDoneMsg:
		m.installing = false
		m.setStatus(summarizeResults("install", msg.results))
		return m, tea.Batch(m.fetchPackagesCmd(), m.refreshLibraryCmd())

	case uploadProgressMsg:
		m.uploadNow = queue.Progress(msg)
		return m, waitUploadProgress(m.uploadCh)

	case uploadDoneMsg:
		m.uploading = false
		m.setStatus(summarizeResults("upload", msg.results))
		return m, m.fetchPackagesCmd()
	}

	if m.logReady && m.active == tabLogs {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}

func (m *Model) clampCursors() {
	if n := len(m.snapshot.Library); m.libCursor >= n {
		m.libCursor = max(0, n-1)
	}
	if n := len(m.packages); m.pkgCursor >= n {
		m.pkgCursor = max(0, n-1)
	}
	if n := len(m.payloads); m.payloadCursor >= n {
		m.payloadCursor = max(0, n-1)
	}
	if sec := m.conf.SectionSnapshot(settingsSections[m.secFocus]); sec != nil {
		if m.entryCursor >= sec.Len() {
			m.entryCursor = max(0, sec.Len()-1)
		}
	}
}

// fanTarget reads the fan target temperature from the config store.
func (m Model) fanTarget() int {
	v, err := strconv.Atoi(m.conf.Scalar(confstore.SectionFan, "TargetTemp"))
	if err != nil || v == 0 {
		return fanTempDefault
	}
	return v
}

func (m *Model) adjustFanTarget(delta int) {
	target := m.fanTarget() + delta
	if target < fanTempMin {
		target = fanTempMin
	}
	if target > fanTempMax {
		target = fanTempMax
	}
	m.conf.SetScalar(confstore.SectionFan, "TargetTemp", target)
	m.conf.ScheduleSave()
	m.saveState = "saving..."
}

func summarizeResults(label string, results []queue.Result) string {
	ok, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	if failed == 0 {
		return label + ": " + strconv.Itoa(ok) + " ok"
	}
	return label + ": " + strconv.Itoa(ok) + " ok, " + strconv.Itoa(failed) + " failed"
}

// ---- commands ----

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(uiRefreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m Model) loadConfCmd() tea.Cmd {
	conf, ctx := m.conf, m.ctx
	return func() tea.Msg {
		return confLoadedMsg{err: conf.Load(ctx)}
	}
}

func (m Model) fetchPackagesCmd() tea.Cmd {
	client, ctx := m.opts.Client, m.ctx
	return func() tea.Msg {
		files, err := client.ListPackages(ctx)
		return packagesMsg{files: files, err: err}
	}
}

func (m Model) fetchPayloadsCmd() tea.Cmd {
	client, ctx := m.opts.Client, m.ctx
	return func() tea.Msg {
		files, err := client.ListPayloads(ctx)
		if err != nil {
			return payloadsMsg{err: err}
		}
		// Ordering preference is cosmetic; losing it is not an error.
		order, err := client.FetchPayloadOrder(ctx)
		if err != nil {
			order = nil
		}
		return payloadsMsg{files: files, order: order}
	}
}

// logViewLimit caps how much of the daemon's log buffer the viewer
// keeps around.
const logViewLimit = 2000

func (m Model) fetchLogsCmd() tea.Cmd {
	client, ctx := m.opts.Client, m.ctx
	return func() tea.Msg {
		text, err := client.FetchLogs(ctx)
		if err != nil {
			return logsMsg{err: err}
		}
		lines, err := logtail.Tail(strings.NewReader(text), logViewLimit)
		if err != nil {
			return logsMsg{err: err}
		}
		return logsMsg{text: strings.Join(lines, "\n")}
	}
}

func (m Model) refreshLibraryCmd() tea.Cmd {
	store, client, ctx := m.opts.Store, m.opts.Client, m.ctx
	return func() tea.Msg {
		games, err := client.FetchLibrary(ctx)
		if err != nil {
			return actionMsg{label: "library", err: err}
		}
		store.SetLibrary(games)
		return actionMsg{label: "library"}
	}
}

func (m Model) actionCmd(label string, call func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{label: label, err: call(ctx)}
	}
}

func (m Model) startInstallCmd() tea.Cmd {
	q, ctx := m.installQ, m.ctx
	return func() tea.Msg {
		results, err := q.Start(ctx)
		if err != nil {
			return actionMsg{label: "install", err: err}
		}
		return installDoneMsg{results: results}
	}
}

func (m Model) startUploadCmd(path string) tea.Cmd {
	client, ctx, ch := m.opts.Client, m.ctx, m.uploadCh
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return uploadDoneMsg{results: []queue.Result{{Path: path, Err: err}}}
		}
		file := queue.File{
			Name: filepath.Base(path),
			Size: info.Size(),
			Open: func() (io.ReadCloser, error) { return os.Open(path) },
		}
		up := queue.NewUploader(client.Upload)
		up.OnProgress(func(p queue.Progress) {
			select {
			case ch <- p:
			default:
			}
		})
		return uploadDoneMsg{results: up.Start(ctx, []queue.File{file})}
	}
}

func waitSave(ch chan error) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: <-ch}
	}
}

func waitUploadProgress(ch chan queue.Progress) tea.Cmd {
	return func() tea.Msg {
		return uploadProgressMsg(<-ch)
	}
}

// cycleTheme switches palettes and persists the choice.
func (m *Model) cycleTheme() {
	next := NextTheme(m.theme.Name)
	m.theme = next
	m.styles = next.Styles()

	p, _ := prefs.Load(m.opts.PrefsPath)
	p.Theme = next.Name
	if err := prefs.Save(m.opts.PrefsPath, p); err != nil {
		m.setStatus("theme not saved: " + err.Error())
		return
	}
	m.setStatus("theme: " + next.Name)
}

// delayFields splits "PPSA01234 15000" or "PPSA01234=15000" style
// input, defaulting the delay when only an ID is given.
func (m Model) delayFields(raw string) (id, ms string, ok bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "=", " "))
	fields := strings.Fields(raw)
	switch len(fields) {
	case 1:
		return fields[0], strconv.Itoa(m.defaultDelayMS), true
	case 2:
		if _, err := strconv.Atoi(fields[1]); err != nil {
			return "", "", false
		}
		return fields[0], fields[1], true
	}
	return "", "", false
}

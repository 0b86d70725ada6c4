// Package ui is the fullscreen terminal interface: Devices, SMART,
// Benchmark and History tabs over the session engine. All collection
// work runs off the UI goroutine as bubbletea commands; every message
// carries a generation so a late result from a superseded action is
// dropped instead of clobbering newer state.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhealth/diskscope/collector"
	"github.com/dhealth/diskscope/engine"
	"github.com/dhealth/diskscope/history"
	"github.com/dhealth/diskscope/model"
	"github.com/dhealth/diskscope/report"
)

// Tab identifies the current screen.
type Tab int

const (
	TabDevices Tab = iota
	TabSmart
	TabBench
	TabHistory
	tabCount
)

var tabNames = []string{"Devices", "SMART", "Benchmark", "History"}

// Messages delivered from background workers.

type devicesMsg struct {
	gen     int
	devices []model.DeviceInfo
	err     error
}

type reportMsg struct {
	gen    int
	device string
	report *model.SmartReport
	err    error
}

type benchSampleMsg struct {
	gen    int
	sample model.BenchmarkSample
	done   int
	total  int
}

type benchDoneMsg struct {
	gen    int
	result model.BenchmarkResult
	err    error
}

type historyMsg struct {
	reports []history.ReportSummary
	benches []history.BenchSummary
	err     error
}

type histReportMsg struct {
	report *model.SmartReport
	err    error
}

type statusMsg struct {
	text string
	err  error
}

// Model is the bubbletea model.
type Model struct {
	eng    *engine.Engine
	width  int
	height int
	tab    Tab

	// Devices tab
	devices  []model.DeviceInfo
	selected int
	devGen   int
	scanning bool

	// SMART tab
	report    *model.SmartReport
	reportErr string
	checkGen  int
	checking  bool
	attrTable table.Model

	// Benchmark tab
	benching    bool
	benchGen    int
	benchCancel context.CancelFunc
	benchCh     chan tea.Msg
	benchBar    progress.Model
	benchDone   int
	benchTotal  int
	speeds      []float64
	benchResult *model.BenchmarkResult
	benchErr    string

	// History tab
	histReports []history.ReportSummary
	histBenches []history.BenchSummary
	histTable   table.Model
	histErr     string

	// Status feedback
	status     string
	statusErr  bool
	statusTime time.Time

	showHelp bool
}

// NewModel creates the TUI model.
func NewModel(eng *engine.Engine) Model {
	return Model{
		eng:       eng,
		attrTable: newAttrTable(),
		histTable: newHistTable(),
		benchBar:  progress.New(progress.WithDefaultGradient()),
	}
}

func newAttrTable() table.Model {
	t := table.New(
		table.WithColumns(ataColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())
	return t
}

func newHistTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Device", Width: 14},
			{Title: "Type", Width: 9},
			{Title: "Health", Width: 8},
			{Title: "Warn", Width: 5},
			{Title: "Attrs", Width: 6},
			{Title: "Collected", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorCyan).BorderForeground(colorGray)
	s.Selected = selectedStyle
	return s
}

func (m Model) Init() tea.Cmd {
	return refreshDevices(m.eng, m.devGen)
}

// refreshDevices enumerates block devices in the background.
func refreshDevices(eng *engine.Engine, gen int) tea.Cmd {
	return func() tea.Msg {
		devs, err := eng.RefreshDevices(context.Background())
		return devicesMsg{gen: gen, devices: devs, err: err}
	}
}

// checkDevice runs one SMART collection in the background.
func checkDevice(eng *engine.Engine, device string, gen int) tea.Cmd {
	return func() tea.Msg {
		rep, err := eng.CheckDevice(context.Background(), device)
		return reportMsg{gen: gen, device: device, report: rep, err: err}
	}
}

// loadHistory queries the history store in the background.
func loadHistory(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		store := eng.Store()
		if store == nil {
			return historyMsg{err: errors.New("history store unavailable")}
		}
		reports, err := store.ListReports(100)
		if err != nil {
			return historyMsg{err: err}
		}
		benches, err := store.ListBenchmarks(20)
		if err != nil {
			return historyMsg{err: err}
		}
		return historyMsg{reports: reports, benches: benches}
	}
}

// loadHistReport loads one stored report for display.
func loadHistReport(eng *engine.Engine, id int64) tea.Cmd {
	return func() tea.Msg {
		store := eng.Store()
		if store == nil {
			return histReportMsg{err: errors.New("history store unavailable")}
		}
		rep, err := store.GetReport(id)
		return histReportMsg{report: rep, err: err}
	}
}

// startBenchmark launches the benchmark worker. Samples stream back
// through a channel; waitBench re-arms after every message.
func (m *Model) startBenchmark(device string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.benchCancel = cancel

	ch := make(chan tea.Msg, 32)
	m.benchCh = ch
	gen := m.benchGen
	eng := m.eng

	go func() {
		res, err := eng.Benchmark(ctx, device, func(s model.BenchmarkSample, done, total int) {
			ch <- benchSampleMsg{gen: gen, sample: s, done: done, total: total}
		})
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		ch <- benchDoneMsg{gen: gen, result: res, err: err}
		close(ch)
	}()
	return waitBench(ch)
}

func waitBench(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusTime = time.Now()
}

// friendlyError turns typed collector errors into actionable text.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, collector.ErrToolNotFound):
		return "smartctl not found — install smartmontools (or run with sudo)"
	case errors.Is(err, collector.ErrTimeout):
		return "diagnostic tool timed out"
	case errors.Is(err, collector.ErrParse):
		return "diagnostic tool returned no parseable data"
	default:
		return err.Error()
	}
}

func (m Model) selectedDevice() string {
	if m.selected < 0 || m.selected >= len(m.devices) {
		return ""
	}
	return m.devices[m.selected].Path
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.benchBar.Width = maxInt(10, msg.Width-20)
		m.attrTable.SetHeight(maxInt(6, msg.Height-16))
		m.histTable.SetHeight(maxInt(6, msg.Height-18))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case devicesMsg:
		if msg.gen != m.devGen {
			return m, nil
		}
		m.scanning = false
		if msg.err != nil {
			m.devices = nil
			m.setStatus(friendlyError(msg.err), true)
			return m, nil
		}
		m.devices = msg.devices
		if m.selected >= len(m.devices) {
			m.selected = 0
		}
		if len(m.devices) == 0 {
			m.setStatus("no block devices found", false)
		} else {
			m.setStatus(fmt.Sprintf("%d device(s) found", len(m.devices)), false)
		}
		return m, nil

	case reportMsg:
		if msg.gen != m.checkGen {
			return m, nil
		}
		m.checking = false
		if msg.err != nil {
			m.report = m.eng.EmptyReport(msg.device)
			m.reportErr = friendlyError(msg.err)
		} else {
			m.report = msg.report
			m.reportErr = ""
		}
		m.refitAttrTable()
		return m, nil

	case benchSampleMsg:
		if msg.gen != m.benchGen {
			return m, nil
		}
		m.benchDone = msg.done
		m.benchTotal = msg.total
		m.speeds = append(m.speeds, msg.sample.ReadMBps)
		return m, waitBench(m.benchCh)

	case benchDoneMsg:
		if msg.gen != m.benchGen {
			return m, nil
		}
		m.benching = false
		m.benchCancel = nil
		if msg.err != nil {
			m.benchErr = msg.err.Error()
			m.benchResult = nil
		} else {
			m.benchErr = ""
			res := msg.result
			m.benchResult = &res
		}
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.histErr = msg.err.Error()
			return m, nil
		}
		m.histErr = ""
		m.histReports = msg.reports
		m.histBenches = msg.benches
		m.refitHistTable()
		return m, nil

	case histReportMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.report = msg.report
		m.reportErr = ""
		m.refitAttrTable()
		m.tab = TabSmart
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus(msg.text, false)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.benchCancel != nil {
			m.benchCancel()
		}
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		if m.tab == TabHistory {
			return m, loadHistory(m.eng)
		}
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		if m.tab == TabHistory {
			return m, loadHistory(m.eng)
		}
		return m, nil
	case "1", "2", "3", "4":
		m.tab = Tab(int(msg.String()[0] - '1'))
		if m.tab == TabHistory {
			return m, loadHistory(m.eng)
		}
		return m, nil
	}

	switch m.tab {
	case TabDevices:
		return m.handleDevicesKey(msg)
	case TabSmart:
		return m.handleSmartKey(msg)
	case TabBench:
		return m.handleBenchKey(msg)
	case TabHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleDevicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.selected < len(m.devices)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "r":
		if !m.scanning {
			m.scanning = true
			m.devGen++
			return m, refreshDevices(m.eng, m.devGen)
		}
	case "enter", "c":
		return m.startCheck()
	case "b":
		return m.launchBenchmark()
	}
	return m, nil
}

func (m Model) startCheck() (tea.Model, tea.Cmd) {
	dev := m.selectedDevice()
	if dev == "" {
		m.setStatus("no device selected", true)
		return m, nil
	}
	if m.checking {
		return m, nil
	}
	m.checking = true
	m.checkGen++
	m.tab = TabSmart
	return m, checkDevice(m.eng, dev, m.checkGen)
}

func (m Model) launchBenchmark() (tea.Model, tea.Cmd) {
	dev := m.selectedDevice()
	if dev == "" {
		m.setStatus("no device selected", true)
		return m, nil
	}
	if m.benching {
		return m, nil
	}
	m.benching = true
	m.benchGen++
	m.benchDone = 0
	m.benchTotal = 0
	m.speeds = nil
	m.benchResult = nil
	m.benchErr = ""
	m.tab = TabBench
	cmd := m.startBenchmark(dev)
	return m, cmd
}

func (m Model) handleSmartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", "enter":
		return m.startCheck()
	case "s":
		if m.report == nil {
			m.setStatus("no report to save", true)
			return m, nil
		}
		rep := m.report
		return m, func() tea.Msg {
			path := report.DefaultJSONFilename(rep.Device)
			if err := report.SaveJSON(rep, path); err != nil {
				return statusMsg{err: err}
			}
			return statusMsg{text: "saved " + path}
		}
	case "e":
		if m.report == nil {
			m.setStatus("no report to export", true)
			return m, nil
		}
		rep := m.report
		return m, func() tea.Msg {
			path := report.DefaultCSVFilename(rep.Device)
			if err := report.SaveCSV(rep, path); err != nil {
				return statusMsg{err: err}
			}
			return statusMsg{text: "exported " + path}
		}
	case "w":
		if m.report == nil {
			m.setStatus("no report to store", true)
			return m, nil
		}
		rep := m.report
		eng := m.eng
		return m, func() tea.Msg {
			id, err := eng.SaveReport(rep)
			if err != nil {
				return statusMsg{err: err}
			}
			return statusMsg{text: fmt.Sprintf("stored report #%d", id)}
		}
	}

	var cmd tea.Cmd
	m.attrTable, cmd = m.attrTable.Update(msg)
	return m, cmd
}

func (m Model) handleBenchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b":
		return m.launchBenchmark()
	case "x":
		if m.benchCancel != nil {
			m.benchCancel()
		}
	case "e":
		if m.benchResult == nil {
			m.setStatus("no benchmark to export", true)
			return m, nil
		}
		res := m.benchResult
		return m, func() tea.Msg {
			path := report.DefaultBenchFilename(res.Device)
			if err := report.SaveBenchmarkCSV(res, path); err != nil {
				return statusMsg{err: err}
			}
			return statusMsg{text: "exported " + path}
		}
	case "w":
		if m.benchResult == nil {
			m.setStatus("no benchmark to store", true)
			return m, nil
		}
		res := m.benchResult
		eng := m.eng
		return m, func() tea.Msg {
			id, err := eng.SaveBenchmark(res)
			if err != nil {
				return statusMsg{err: err}
			}
			return statusMsg{text: fmt.Sprintf("stored benchmark #%d", id)}
		}
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m, loadHistory(m.eng)
	case "enter":
		idx := m.histTable.Cursor()
		if idx >= 0 && idx < len(m.histReports) {
			return m, loadHistReport(m.eng, m.histReports[idx].ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.histTable, cmd = m.histTable.Update(msg)
	return m, cmd
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

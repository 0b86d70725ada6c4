package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dhealth/diskscope/collector"
	"github.com/dhealth/diskscope/config"
	"github.com/dhealth/diskscope/engine"
	"github.com/dhealth/diskscope/history"
	"github.com/dhealth/diskscope/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// options holds parsed CLI flags.
type options struct {
	listMode    bool
	checkDevice string
	benchDevice string
	histMode    bool
	jsonOut     bool
	csvOut      bool
	outPath     string
	configPath  string
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `diskscope v%s — disk health (SMART) and benchmark console

Usage:
  diskscope [OPTIONS]

Modes:
  (default)         Interactive TUI (fullscreen)
  -list             Print block devices and exit
  -check DEVICE     Collect and print a SMART report, then exit
  -bench DEVICE     Run a read benchmark, print results, then exit
  -history          List stored reports and benchmarks, then exit
  -version          Print version and exit

Options:
  -json             Output JSON (with -list, -check)
  -csv              Output CSV (with -check, -bench)
  -o FILE           Write output to FILE instead of stdout
  -config FILE      Config file (default: ~/.config/diskscope/config.yaml)

Examples:
  sudo diskscope                      Interactive TUI
  sudo diskscope -list                Device table
  sudo diskscope -check /dev/sda      SMART report, human readable
  sudo diskscope -check /dev/nvme0n1 -json | jq .Overall
  sudo diskscope -check /dev/sda -csv -o sda.csv
  sudo diskscope -bench /dev/sda      Read benchmark
  diskscope -history                  Stored runs

SMART collection and raw device reads usually require root.
`, Version)
}

// Run parses flags and starts the application.
func Run() error {
	var opts options
	var showVersion bool

	flag.BoolVar(&opts.listMode, "list", false, "Print block devices and exit")
	flag.StringVar(&opts.checkDevice, "check", "", "Collect a SMART report for DEVICE and exit")
	flag.StringVar(&opts.benchDevice, "bench", "", "Run a read benchmark against DEVICE and exit")
	flag.BoolVar(&opts.histMode, "history", false, "List stored reports and benchmarks")
	flag.BoolVar(&opts.jsonOut, "json", false, "Output JSON")
	flag.BoolVar(&opts.csvOut, "csv", false, "Output CSV")
	flag.StringVar(&opts.outPath, "o", "", "Write output to FILE")
	flag.StringVar(&opts.configPath, "config", "", "Config file path")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("diskscope v%s\n", Version)
		return nil
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
	}

	oneShot := opts.listMode || opts.checkDevice != "" || opts.benchDevice != "" || opts.histMode
	setupLogging(cfg, oneShot)

	switch {
	case opts.listMode:
		return runList(cfg, opts)
	case opts.checkDevice != "":
		return runCheck(cfg, opts)
	case opts.benchDevice != "":
		return runBench(cfg, opts)
	case opts.histMode:
		return runHistory(cfg)
	}

	if !collector.SmartctlAvailable() {
		fmt.Fprintln(os.Stderr, "Warning: smartctl not found, SMART checks will fail (install smartmontools)")
	}

	// Normal TUI mode. A broken history store disables the History tab
	// but never blocks the interface.
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Warn().Err(err).Msg("history store unavailable")
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	eng := engine.New(cfg, store)
	p := tea.NewProgram(ui.NewModel(eng), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// setupLogging configures the global zerolog logger. The TUI owns the
// terminal, so interactive runs log to the configured file; one-shot
// modes log human-readably to stderr.
func setupLogging(cfg config.Config, oneShot bool) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if oneShot {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0755); err == nil {
		if f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			log.Logger = zerolog.New(f).With().Timestamp().Logger()
			return
		}
	}
	// No usable log file: drop messages rather than corrupt the TUI
	log.Logger = zerolog.Nop()
}

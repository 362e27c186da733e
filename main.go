package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cablegrove/tanksim/config"
	"github.com/cablegrove/tanksim/sim"
	"github.com/cablegrove/tanksim/systems"
	"github.com/cablegrove/tanksim/tank"
	"github.com/cablegrove/tanksim/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	ticks := flag.Int("ticks", 720, "Number of one-hour ticks to simulate")
	logStats := flag.Bool("log-stats", true, "Output window stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotPath := flag.String("snapshot", "", "Resume from a ledger snapshot file")
	saveSnapshot := flag.String("save-snapshot", "", "Write the final ledger snapshot to this path")
	listSystems := flag.Bool("list-systems", false, "List registered simulation systems and exit")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *listSystems {
		registry := systems.NewSystemRegistry()
		for _, info := range registry.All() {
			fmt.Printf("%-14s %-16s %-12s %s\n", info.ID, info.Name, info.Category, info.Description)
		}
		return
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config stats window if not overridden by CLI
	windowTicks := cfg.Telemetry.StatsWindowTicks
	if *statsWindow > 0 {
		windowTicks = *statsWindow
	}

	// Starting ledger: fresh tank or resumed snapshot
	var led *tank.Ledger
	if *snapshotPath != "" {
		var err error
		led, err = sim.ReadSnapshot(*snapshotPath)
		if err != nil {
			slog.Error("failed to read snapshot", "path", *snapshotPath, "error", err)
			os.Exit(1)
		}
		slog.Info("resumed from snapshot", "path", *snapshotPath, "tick", led.Tick)
	} else {
		led = sim.NewLedger(cfg)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	collector := telemetry.NewCollector(windowTicks)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	milestones := telemetry.NewMilestoneDetector()

	scheduler := sim.NewScheduler()
	scheduler.SetPerfCollector(perf)

	slog.Info("starting simulation",
		"ticks", *ticks,
		"stats_window", windowTicks,
		"volume_l", led.Water,
		"surface_cm2", led.Surface,
	)

	for i := 0; i < *ticks; i++ {
		next, effects := scheduler.Tick(led, cfg)
		led = next

		collector.Observe(led, effects)
		for _, m := range milestones.Check(led) {
			m.LogMilestone()
			if err := output.WriteMilestone(m); err != nil {
				slog.Error("failed to write milestone", "error", err)
			}
		}

		if collector.ShouldFlush(led.Tick) {
			stats := collector.Flush(led.Tick, led)
			if *logStats {
				stats.LogStats()
			}
			if err := output.WriteTelemetry(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}
			if err := output.WritePerf(perf.Stats(), led.Tick); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}
	}

	if *saveSnapshot != "" {
		if err := sim.WriteSnapshot(*saveSnapshot, led); err != nil {
			slog.Error("failed to write snapshot", "path", *saveSnapshot, "error", err)
			os.Exit(1)
		}
		slog.Info("wrote snapshot", "path", *saveSnapshot, "tick", led.Tick)
	}

	slog.Info("simulation complete", "tick", led.Tick)
}

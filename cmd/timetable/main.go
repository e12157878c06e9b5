package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileylov/timetable/cell"
	"github.com/rileylov/timetable/internal/config"
	"github.com/rileylov/timetable/internal/log"
	"github.com/rileylov/timetable/playhead"
	"github.com/rileylov/timetable/timeline"
)

func options(cfg config.Config, logger *log.Logger) timeline.Options {
	mode, _ := playhead.ParseMode(cfg.Playhead.Visual) // checked by Validate
	actions := make([]cell.Action, 0, len(cfg.Cell.CustomActions))
	for _, a := range cfg.Cell.CustomActions {
		actions = append(actions, cell.Action{Label: a.Label, ID: a.ID})
	}
	return timeline.Options{
		Beats: cfg.Timeline.Beats,
		Rows:  cfg.Timeline.Rows,
		Geometry: playhead.Geometry{
			BeatWidth:      cfg.Timeline.BeatWidth,
			RowHeight:      cfg.Timeline.RowHeight,
			RowHeaderWidth: cfg.Timeline.RowHeaderWidth,
		},
		Snap:         cfg.Timeline.Snap,
		LiveFollow:   cfg.Timeline.LiveFollow,
		LongPress:    time.Duration(cfg.Timeline.LongPressMS) * time.Millisecond,
		ResizeMargin: cfg.Cell.ResizeMargin,
		Actions:      actions,
		Image:        playhead.ImageFromString(cfg.Playhead.Image),
		Visual:       mode,
		Guide: playhead.GuideLine{
			Color: lipgloss.Color(cfg.Playhead.GuideColor),
			Width: cfg.Playhead.GuideWidth,
		},
		Log: logger,
	}
}

func demoEvents() []timeline.Event {
	return []timeline.Event{
		{Row: 0, Start: 0, Length: 1, Label: "kick"},
		{Row: 0, Start: 2, Length: 1, Label: "kick"},
		{Row: 1, Start: 1, Length: 0.5, Label: "snare"},
		{Row: 2, Start: 0, Length: 4, Label: "pad"},
		{Row: 3, Start: 4, Length: 2, Label: "bass"},
	}
}

func main() {
	configPath := flag.String("config", "timetable.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	f, err := tea.LogToFile(cfg.LogFile, "")
	if err != nil {
		fmt.Println("Error opening log file:", err)
		os.Exit(1)
	}
	defer f.Close()
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.New(f, level)

	// Initialize a global zone manager, so we don't have to pass around the manager
	// throughout components.
	zone.NewGlobal()

	m := timeline.New(options(cfg, logger), demoEvents()...)
	logger.Infof("timetable: %d beats, %d rows, config %s", cfg.Timeline.Beats, cfg.Timeline.Rows, *configPath)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		fmt.Println("error running program:", err)
		f.Close()
		os.Exit(1)
	}
}

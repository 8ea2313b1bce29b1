// Copyright 2025 The SuggestScope Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the suggestion expansion server and CLI application.

SuggestScope expands a keyword through a fixed catalog of phrase templates,
asks Google's autocomplete endpoint for every phrase, keeps the suggestions
that mention the keyword and sorts them into a taxonomy of intent categories.
Each run is exported to a single-column CSV file.

It can operate as a MessagePack IPC server for integration with other
processes, as an MCP tool server for assistants, or as a CLI application.

# Usage

Start the IPC server with default settings:

	suggestscope

Expand one keyword and print the sections:

	suggestscope -q shoes

Run in CLI mode, reading one keyword per line:

	suggestscope -c -d

Serve the expand_suggestions tool over MCP:

	suggestscope -mcp

# Configuration

Runtime configuration is a TOML file holding the fetch settings, the export
destination, the taxonomy table and the display sections:

	[fetch]
	language = "en"
	timeout_ms = 10000
	skip_failed = false

	[export]
	dir = "."
	unique_names = false

	[[taxonomy]]
	name = "Complaints"
	prefixes = ["Not working", "Broken", "Refund policy"]

The config file is created with defaults if it doesn't exist. A .env file
and SUGGESTSCOPE_ENDPOINT, SUGGESTSCOPE_LANG and SUGGESTSCOPE_EXPORT_DIR
override the file.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. One request runs
the whole pipeline; the response lists every category:

	{"id": "req1", "q": "shoes"}
	{"id": "req1", "c": [{"n": "Questions", "s": []}, ...], "f": "./google_suggestions_categorized.csv", "t": 812}

Logs always go to stderr.

# Command Line Flags

	-d  Enable debug mode with detailed logging
	-c  Run CLI mode instead of server mode
	-q string
	    Expand a single keyword, print the result and exit
	-mcp
	    Serve the MCP tool over stdio
	-config string
	    Path to a custom config file
	-fixture string
	    TOML file of canned responses used instead of the network
	-out string
	    Export directory (overrides config)
	-skip-failed
	    Skip phrases whose fetch fails instead of aborting the run
	-reset-config
	    Rewrite the default config file and exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/suggestscope/internal/cli"
	"github.com/bastiangx/suggestscope/internal/display"
	"github.com/bastiangx/suggestscope/internal/logger"
	"github.com/bastiangx/suggestscope/internal/utils"
	"github.com/bastiangx/suggestscope/pkg/config"
	"github.com/bastiangx/suggestscope/pkg/export"
	"github.com/bastiangx/suggestscope/pkg/fetch"
	"github.com/bastiangx/suggestscope/pkg/mcptool"
	"github.com/bastiangx/suggestscope/pkg/pipeline"
	"github.com/bastiangx/suggestscope/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "suggestscope"
	gh      = "https://github.com/bastiangx/suggestscope"
)

// sigHandler cancels the returned context on the first signal and exits on the second.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		<-c
		os.Exit(1)
	}()
	return ctx
}

// main only manages the flow; the front ends and the pipeline live in their packages.
func main() {
	ctx := sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI, one keyword per line")
	mcpMode := flag.Bool("mcp", false, "Serve the MCP tool over stdio")
	query := flag.String("q", "", "Expand a single keyword and exit")
	configPath := flag.String("config", "", "Path to custom config file")
	fixture := flag.String("fixture", "", "TOML file of canned suggest responses (no network)")
	outDir := flag.String("out", "", "Export directory (overrides config)")
	skipFailed := flag.Bool("skip-failed", false, "Skip phrases whose fetch fails")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config file and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Print("Config file rebuilt with defaults")
		return
	}

	appConfig, loadedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appConfig.ApplyEnv()
	if *outDir != "" {
		appConfig.Export.Dir = *outDir
	}
	if *skipFailed {
		appConfig.Fetch.SkipFailed = true
	}
	// every MCP call returns its own export location
	if *mcpMode {
		appConfig.Export.UniqueNames = true
	}
	log.Debugf("Using config: (%s)", config.GetActiveConfigPath(loadedPath))

	tx, err := appConfig.BuildTaxonomy()
	if err != nil {
		log.Fatalf("Invalid taxonomy: %v", err)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	exportDir := pathResolver.ResolveExportDir(appConfig.Export.Dir)

	var fetcher fetch.Fetcher
	if *fixture != "" {
		static, err := fetch.LoadStatic(*fixture)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		log.Debugf("Using fixture responses from %s", *fixture)
		fetcher = static
	} else {
		fetcher = fetch.NewGoogle(appConfig.GoogleOptions())
	}

	p := pipeline.New(fetcher, tx,
		export.New(exportDir, appConfig.Export.FileName, appConfig.Export.UniqueNames),
		pipeline.WithSkipFailed(appConfig.Fetch.SkipFailed),
	)
	sections := display.SectionsFromConfig(appConfig.Display)

	switch {
	case *query != "":
		h := cli.NewInputHandler(p, sections, os.Stdin, os.Stdout)
		if err := h.Handle(ctx, *query); err != nil {
			log.Fatalf("Run failed: %v", err)
		}

	case *cliMode:
		log.SetReportTimestamp(false)
		h := cli.NewInputHandler(p, sections, os.Stdin, os.Stdout)
		if err := h.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	case *mcpMode:
		log.Debug("spawning MCP stdio server")
		if err := mcptool.NewServer(p, sections, Version).ServeStdio(); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}

	default:
		log.Debug("spawning IPC")
		showStartupInfo(loadedPath, exportDir)
		srv := server.NewServer(p, os.Stdin, os.Stdout)
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ SuggestScope ] Expands keywords into categorized autocomplete suggestions")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(configPath, exportDir string) {
	info := logger.New(AppName)
	info.SetLevel(log.InfoLevel)

	info.Infof("Version: %s", Version)
	info.Infof("Process ID: [ %d ]", os.Getpid())
	info.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	info.Infof("export dir: ( %s )", exportDir)
	info.Info("status: ready")
}

// Copyright 2025 The SpellServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the SpellServe board solver server and CLI application.

SpellServe finds every dictionary word that can be traced on a 5x5 letter
board by stepping between neighbouring cells, scores each one with the
board's double-letter, triple-letter and double-word tiles, and ranks the
results. It can also try every single-letter swap to show how one change
would improve the best score.

It runs as a MessagePack IPC server for other programs, as an interactive
prompt, or once for a board given on the command line.

# Usage

Start the server with the default word list:

	spellserve

Use a custom word list and enable debug mode:

	spellserve -dict /usr/share/dict/words -d

Run the interactive prompt:

	spellserve -c -top 10

Solve one board and exit:

	spellserve -board osnruymbiidxeugodnonaiuec -dl 0,0 -dw 2,3 -swap

# Word list

The word list is a plain text file with one word per line. Words are
lowercased, blank lines are ignored and lines with anything other than the
letters a-z are skipped and reported. The path is resolved against the working
directory, then the executable directory, then the config directory.

# Configuration

Runtime configuration is read from a TOML file:

	[solver]
	workers = 0
	swap_timeout_sec = 60

	[dict]
	path = "words.txt"
	backend = "trie"

	[server]
	max_limit = 50
	default_limit = 10

	[cli]
	default_top = 5
	show_progress = true

The file is created with defaults if it doesn't exist. Flags given on the
command line override the file. The server re-reads both the config and the
word list on a "reload" request.

# IPC Protocol

The server reads MessagePack requests from stdin and writes one response per
request to stdout. See package server for the message shapes.

	{"id": "req1", "b": "catszzzzzzzzzzzzzzzzzzzzz", "dl": [0, 0], "l": 5}

# Command Line Flags

	-version
	    Show current version
	-dict string
	    Word list file (default from config)
	-config string
	    Config file path
	-backend string
	    Dictionary backend: trie or patricia
	-workers int
	    Search goroutines, 0 for GOMAXPROCS
	-d  Enable debug mode with detailed logging
	-c  Run the interactive prompt instead of the server
	-top int
	    Score groups to print per section
	-board string
	    Solve this board once and exit
	-dl, -dw, -tl string
	    Modifier tile positions as "col,row" for -board
	-swap
	    Also explore single-letter swaps for -board
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/spellserve/internal/cli"
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/bastiangx/spellserve/pkg/server"
	"github.com/bastiangx/spellserve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "spellserve"
	gh      = "https://github.com/bastiangx/spellserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary and solver together and picks a mode.
// It does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Word list file, one word per line (default from config)")
	configPath := flag.String("config", "", "Config file path")
	backend := flag.String("backend", "", "Dictionary backend: trie or patricia (default from config)")
	workers := flag.Int("workers", defaultConfig.Solver.Workers, "Search goroutines, 0 for GOMAXPROCS")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive prompt instead of the IPC server")
	top := flag.Int("top", defaultConfig.CLI.DefaultTop, "Score groups to print per section")
	boardStr := flag.String("board", "", "Solve this 25 letter board once and exit")
	dl := flag.String("dl", "", "Double-letter tile as col,row (with -board)")
	dw := flag.String("dw", "", "Double-word tile as col,row (with -board)")
	tl := flag.String("tl", "", "Triple-letter tile as col,row (with -board)")
	swap := flag.Bool("swap", false, "Explore single-letter swaps (with -board)")

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

	appConfig, activeConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfigPath))

	// flags given explicitly win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			appConfig.Dict.Path = *dictPath
		case "backend":
			appConfig.Dict.Backend = *backend
		case "workers":
			appConfig.Solver.Workers = *workers
		case "top":
			appConfig.CLI.DefaultTop = *top
		}
	})

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolvedDict := pathResolver.GetDictPath(appConfig.Dict.Path)
	log.Debugf("Using word list at: %s", resolvedDict)

	loader := dictionary.NewRuntimeLoader(resolvedDict, dictionary.Backend(appConfig.Dict.Backend))
	if err := loader.Load(); err != nil {
		log.Fatalf("Failed to init dictionary: %v", err)
	}
	log.Debug("Dictionary init done", "words", loader.Info().Words, "backend", appConfig.Dict.Backend)

	s := solver.New(loader.Lexicon(),
		solver.WithWorkers(appConfig.Solver.Workers),
		solver.WithSwapTimeout(appConfig.Solver.SwapTimeout()),
	)
	ctx := context.Background()

	if *boardStr != "" {
		req, err := solver.ParseRequest(*boardStr, *dl, *dw, *tl, *swap)
		if err != nil {
			log.Fatalf("Invalid board: %v", err)
		}
		cli.RunOnce(ctx, os.Stdout, s, req, appConfig.CLI.DefaultTop, appConfig.CLI.ShowProgress)
		return
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "top", appConfig.CLI.DefaultTop, "workers", s.Workers())

		inputHandler := cli.NewInputHandler(s, appConfig.CLI.DefaultTop, appConfig.CLI.ShowProgress)
		if err := inputHandler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(loader, appConfig, activeConfigPath)

	showStartupInfo(loader.Info(), s.Workers())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// printVersion shows the styled version banner on stderr.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SpellServe ] Finds the best words on a SpellCast board")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// Everything goes to stderr; stdout is reserved for the IPC stream.
func showStartupInfo(info dictionary.Info, workers int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" SpellServe ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("word list: ( %s )", info.Path)
	log.Infof("words: %s, skipped: %d, backend: %s", utils.FormatWithCommas(info.Words), info.Skipped, info.Backend)
	log.Infof("workers: %d", workers)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

package main

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cinebook-cli/config"
	"cinebook-cli/model"
	"cinebook-cli/service"
	"cinebook-cli/store"
	"cinebook-cli/tui"
)

const appName = "cinebook-cli"

var (
	version = "dev"
	commit  = "none"
)

func printUsage(out *os.File) {
	fmt.Fprintf(out, "Usage: %s [--version]\n", appName)
}

func printVersion() {
	fmt.Printf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		fmt.Printf(" (%s)", commit)
	}
	fmt.Println()
}

func handleArgs(args []string) bool {
	if len(args) == 0 {
		return true
	}

	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			printUsage(os.Stdout)
			return false
		case "-v", "--version", "version":
			printVersion()
			return false
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", arg)
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	return false
}

func main() {
	if !handleArgs(os.Args[1:]) {
		return
	}

	cfg := config.Load()
	client := service.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg.APIBaseURL)

	// A stale or unreadable session file just means starting signed out.
	var user *model.User
	if u, ok, err := store.LoadSession(); err == nil && ok {
		user = &u
	}

	app := tui.New(tui.Options{
		Client:     client,
		TotalSeats: cfg.TotalSeats,
		User:       user,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	TelegramLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Resumes(ctx context.Context) error
	SelectResume(ctx context.Context) error
	ShowFilters(ctx context.Context) error
	EditFilters(ctx context.Context) error
	Areas(ctx context.Context) error
	SearchVacancies(ctx context.Context) error
	Count(ctx context.Context) error
	Apply(ctx context.Context) error
	Schedulers(ctx context.Context) error
	ShowScheduler(ctx context.Context) error
	CreateScheduler(ctx context.Context) error
	ToggleScheduler(ctx context.Context) error
	DeleteScheduler(ctx context.Context) error
	Link(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the vaiti CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate with email and password
//	  - tglogin        — authenticate with a Telegram widget payload
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - whoami         — show the current profile
//	  - resumes        — list linked resumes
//	  - select         — pick the resume used for search and apply
//	  - filters        — show the current search filters
//	  - set            — edit a search filter field
//	  - areas          — show the location tree
//	  - search         — fetch matching vacancies
//	  - count          — preview how many vacancies match
//	  - apply          — send bulk applications
//	  - schedulers     — list auto-apply schedulers
//	  - sshow          — show a single scheduler (interactive ID prompt)
//	  - screate        — create a scheduler from the current filters
//	  - stoggle        — enable or disable a scheduler
//	  - sdelete        — delete a scheduler
//	  - link           — link a HeadHunter account
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vaiti %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, resumes, select, filters, set, areas, search, count, apply, schedulers, sshow, screate, stoggle, sdelete, link, logout, exit")
			} else {
				printlnFn("Available commands: register, login, tglogin, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "tglogin":
			_ = a.TelegramLogin(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "resumes":
			_ = a.Resumes(ctx)

		case "select":
			_ = a.SelectResume(ctx)

		case "filters":
			_ = a.ShowFilters(ctx)

		case "set":
			_ = a.EditFilters(ctx)

		case "areas":
			_ = a.Areas(ctx)

		case "search":
			_ = a.SearchVacancies(ctx)

		case "count":
			_ = a.Count(ctx)

		case "apply":
			_ = a.Apply(ctx)

		case "schedulers":
			_ = a.Schedulers(ctx)

		case "sshow":
			_ = a.ShowScheduler(ctx)

		case "screate":
			_ = a.CreateScheduler(ctx)

		case "stoggle":
			_ = a.ToggleScheduler(ctx)

		case "sdelete":
			_ = a.DeleteScheduler(ctx)

		case "link":
			_ = a.Link(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

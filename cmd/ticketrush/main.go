package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/michal995/ticketrush/internal/app"
	"github.com/michal995/ticketrush/internal/auth"
	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/web"
)

// ANSI escape codes
const (
	clearLine = "\033[2K"
	moveUp    = "\033[%dA"
	reset     = "\033[0m"
	yellow    = "\033[33m"
	red       = "\033[31m"
	green     = "\033[32m"
	cyan      = "\033[36m"
	bold      = "\033[1m"
)

// showStartupAnimation displays the TicketRush logo then a short bus animation
func showStartupAnimation(skipBus bool) {
	width := 58
	border := ""
	for i := 0; i < width; i++ {
		border += "═"
	}

	logo := []string{
		`   _____ _      _        _   ____            _        `,
		`  |_   _(_) ___| | _____| |_|  _ \ _   _ ___| |__     `,
		`    | | | |/ __| |/ / _ \ __| |_) | | | / __| '_ \    `,
		`    | | | | (__|   <  __/ |_|  _ <| |_| \__ \ | | |   `,
		`    |_| |_|\___|_|\_\___|\__|_| \_\\__,_|___/_| |_|   `,
	}

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		for len(line) < width {
			line += " "
		}
		fmt.Printf("  %s║%s%s%s║%s\n", cyan, yellow, line, cyan, reset)
	}
	fmt.Printf("  %s╚%s╝%s\n", cyan, border, reset)

	if skipBus {
		fmt.Print("\n")
		return
	}

	// Change the bottom border into a divider and animate a bus driving by
	fmt.Printf(moveUp, 1)
	fmt.Printf("%s  %s╠%s╣%s\n", clearLine, cyan, border, reset)

	bus := `[=BUS=]o`
	busLen := len(bus)
	stop := width - busLen

	fmt.Printf("  %s║%s║%s\n", cyan, spaces(width), reset)
	fmt.Printf("  %s╚%s╝%s\n", cyan, border, reset)
	fmt.Printf(moveUp, 2)

	for pos := 0; pos <= stop; pos += 3 {
		if pos > stop {
			pos = stop
		}
		fmt.Printf("%s  %s║%s%s%s%s%s║%s\n", clearLine, cyan, spaces(pos), yellow, bus, reset, spaces(width-pos-busLen), reset)
		fmt.Printf("%s  %s╚%s╝%s\n", clearLine, cyan, border, reset)
		if pos < stop {
			fmt.Printf(moveUp, 2)
		}
		time.Sleep(60 * time.Millisecond)
	}
	fmt.Print("\n")
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	s := ""
	for i := 0; i < n; i++ {
		s += " "
	}
	return s
}

var (
	version = "dev"
)

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) {
	current := appLog.GetLevel()
	var next string

	switch current.String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	case "ERROR":
		next = "debug"
	default:
		next = "info"
	}

	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Printf("%sLog level: %s%s%s\n", green, yellow, next, reset)
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %so%s      - Open kiosk page in browser\n", cyan, reset)
	fmt.Printf("    %sa%s      - Open admin page in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "ticketrush.db", "SQLite database path")
	adminPw := flag.String("adminpw", "", "Admin password (auto-generated if not set)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	noAnimate := flag.Bool("noanimate", false, "Show logo only, skip bus animation")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `TicketRush - Transit Ticket Kiosk Minigame

Usage:
  ticketrush [options]

Options:
  -port int      HTTP server port (default 8080)
  -db string     SQLite database path (default "ticketrush.db")
  -adminpw str   Admin password (auto-generated if not set)
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -noanimate     Show logo only, skip bus animation
  -nokeyboard    Disable keyboard shortcuts
  -version       Show version and exit
  -help          Show this help message

Keyboard Shortcuts (when enabled):
  o              Open kiosk page in browser
  a              Open admin page in browser
  h              Toggle HTTP request logging
  l              Cycle log level (debug → info → warn → error)
  q              Quit server
  ?              Show keyboard help

Examples:
  ticketrush                         # Run on port 8080 with ticketrush.db
  ticketrush -port 9000              # Run on port 9000
  ticketrush -db /data/arcade.db     # Use custom database path
  ticketrush -adminpw secret123      # Use specific admin password
  ticketrush -nokeyboard             # Disable keyboard shortcuts

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("ticketrush %s\n", version)
		os.Exit(0)
	}

	// Show startup animation or just logo
	showStartupAnimation(*noAnimate)

	// Setup admin authentication
	password := *adminPw
	if password == "" {
		password = auth.GeneratePassword()
	}
	adminAuth := auth.New(password)

	// Create logger with specified level
	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	a, err := app.New(appLog, *dbPath, web.GetTemplatesFS(), web.GetStaticFS(), adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", *port)
	appLog.Info("Admin password", "password", password)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	// Wait a moment for server to start
	time.Sleep(100 * time.Millisecond)

	kioskURL := fmt.Sprintf("http://localhost:%d/", *port)
	adminURL := fmt.Sprintf("http://localhost:%d/admin", *port)

	// Print keyboard shortcuts and start listener (unless disabled)
	if !*noKeyboard {
		printKeyboardHelp()
		go listenForKeyboard(kioskURL, adminURL, appLog)
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	// Wait for server error or signal
	if err := <-serverErr; err != nil {
		log.Fatal(err)
	}
}

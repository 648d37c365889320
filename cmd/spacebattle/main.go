// spacebattle is a vertical arcade shooter played in the terminal.
//
// Usage:
//
//	spacebattle play             - Play a game
//	spacebattle list             - List available games
//	spacebattle replays          - Browse recorded sessions
//	spacebattle verify <id>      - Re-run a recorded session and compare
//	spacebattle sim              - Run a headless session with the autopilot
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set replay database path (default: ~/.arcade/spacebattle.db)
//	--log-file <path>   - Set log file path (default: ~/.arcade/spacebattle.log)
//	--debug             - Log debug messages
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/space-battle/internal/games/spacebattle"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacebattle",
	Short: "Space Battle - a vertical shooter in your terminal",
	Long: `Space Battle is a vertical arcade shooter. Steer your ship, shoot the
enemies coming down from the top and pick up hearts for extra lives.

Available commands:
  play     - Play the game
  list     - Show all available games
  replays  - Browse recorded sessions
  verify   - Re-run a recorded session and compare the outcome
  sim      - Run a headless session with the autopilot

Examples:
  spacebattle play
  spacebattle play --seed 42 --mute
  spacebattle replays
  spacebattle verify 3
  spacebattle sim --ticks 3600`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/spacebattle.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/spacebattle.log", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(simCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger returns a logger writing to the log file. The terminal belongs
// to the game while it runs, so nothing is logged to stderr. The returned
// function closes the file.
func openLogger() (*log.Logger, func()) {
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "spacebattle",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }
}

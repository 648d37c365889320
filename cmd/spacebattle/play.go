package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-battle/internal/audio"
	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle"
	"github.com/vovakirdan/space-battle/internal/platform/tui"
	"github.com/vovakirdan/space-battle/internal/registry"
	"github.com/vovakirdan/space-battle/internal/storage"
)

var (
	flagConfig string
	flagMute   bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to spacebattle.

Controls:
  Space        - Fire (starts the game on the title screen)
  Enter        - Start
  Arrows/WASD  - Move the ship
  Mouse        - Click to tap, drag to move
  P/Esc        - Pause
  M            - Mute sound
  R            - Restart (after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Every session is recorded to the replay database and can be checked
later with 'spacebattle verify <id>'.

Examples:
  spacebattle play
  spacebattle play --seed 42
  spacebattle play --config ./my-spacebattle.yaml --mute`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeGameID,
	Run:               runPlay,
}

// completeGameID offers the registered game IDs for the first argument.
func completeGameID(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, id := range registry.IDs() {
		if strings.HasPrefix(id, toComplete) {
			ids = append(ids, id)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "spacebattle"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'spacebattle list' to see available games.")
		os.Exit(1)
	}

	// Reject a broken config before taking over the terminal
	gameCfg, err := config.LoadSpaceBattle(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	spacebattle.SetConfigPath(flagConfig)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger, closeLog := openLogger()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{Logger: logger}

	player := audio.NewPlayer(gameCfg.Audio)
	switch err := player.Start(); {
	case err == nil:
		player.SetMuted(flagMute)
		opts.Audio = player
	case errors.Is(err, audio.ErrDisabled):
		logger.Info("sound disabled in config")
	default:
		logger.Warn("sound unavailable", "error", err)
	}

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		// Continue without storage - game still works
		logger.Warn("replays disabled", "error", err)
	} else {
		opts.Store = store
	}

	logger.Info("starting", "game", gameID, "fps", flagFPS, "seed", flagSeed, "width", width, "height", height)
	runErr := tui.Run(game, cfg, opts)

	// Release resources before potential exit
	player.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game crashed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle"
	"github.com/vovakirdan/space-battle/internal/storage"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-run a recorded session and compare the outcome",
	Long: `Plays a recorded session again from its seed, its inputs and the game
config stored with it, without a terminal, and checks that it ends with the
same score, kills, breaches, hearts, lives lost and phase.

Examples:
  spacebattle verify 3`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !verifyReplay(store, id) {
		store.Close()
		os.Exit(1)
	}
}

// verifyReplay prints the comparison for one replay and reports whether the
// re-run matched.
func verifyReplay(store *storage.Store, id int64) bool {
	header, err := store.Replay(id)
	if errors.Is(err, storage.ErrReplayNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		return false
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	if header.GameID != "spacebattle" {
		fmt.Fprintf(os.Stderr, "Error: replay %d is for %q, which cannot be verified\n", id, header.GameID)
		return false
	}

	inputs, err := store.ReplayInputs(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}

	if header.ConfigYAML == "" {
		fmt.Println("Note: replay has no stored config, re-running with the defaults")
	}
	g, err := rerun(header, inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: replay %d: %v\n", id, err)
		return false
	}
	diffs := compareOutcome(header, g)

	fmt.Printf("Replay %d  seed %d  %dx%d @ %d fps  %d ticks  %d inputs\n",
		header.ID, header.Seed, header.ScreenW, header.ScreenH, header.TickRate, header.Ticks, len(inputs))
	if len(diffs) == 0 {
		fmt.Printf("OK: score %d, phase %s\n", header.Score, header.FinalPhase)
		return true
	}

	fmt.Println("MISMATCH:")
	for _, d := range diffs {
		fmt.Println("  " + d)
	}
	return false
}

// rerun plays a recorded session headless under the config it was
// recorded with. The local config files play no part.
func rerun(header storage.Replay, inputs []storage.InputRecord) (*spacebattle.Game, error) {
	gc := config.DefaultSpaceBattleConfig()
	if header.ConfigYAML != "" {
		var err error
		if gc, err = config.ParseSpaceBattle([]byte(header.ConfigYAML)); err != nil {
			return nil, fmt.Errorf("stored config: %w", err)
		}
	}

	frames := make(map[int]core.InputFrame, len(inputs))
	for _, in := range inputs {
		frames[in.Tick] = in.Frame
	}
	return spacebattle.SimulateWith(gc, header.Runtime(), header.Ticks, spacebattle.Playback(frames)), nil
}

// compareOutcome lists the recorded values the re-run did not reproduce.
func compareOutcome(header storage.Replay, g *spacebattle.Game) []string {
	st := g.Stats()
	var diffs []string
	check := func(name string, recorded, got int) {
		if recorded != got {
			diffs = append(diffs, fmt.Sprintf("%s: recorded %d, got %d", name, recorded, got))
		}
	}

	check("score", header.Score, g.State().Score)
	check("kills", header.Kills, st.Kills)
	check("breaches", header.Breaches, st.Breaches)
	check("hearts", header.Hearts, st.Hearts)
	check("lives lost", header.LivesLost, st.LivesLost)
	if phase := g.State().Phase; phase != header.FinalPhase {
		diffs = append(diffs, fmt.Sprintf("phase: recorded %s, got %s", header.FinalPhase, phase))
	}
	return diffs
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle"
)

var (
	flagTicks   int
	flagWidth   int
	flagHeight  int
	flagSimConf string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session with the autopilot",
	Long: `Plays a session without a terminal using a simple autopilot and prints
the outcome. With a fixed --seed the result is reproducible.

Examples:
  spacebattle sim --seed 7
  spacebattle sim --ticks 36000 --config ./my-spacebattle.yaml`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 60*60, "Maximum number of ticks to simulate")
	simCmd.Flags().IntVar(&flagWidth, "width", 80, "Virtual screen width in cells")
	simCmd.Flags().IntVar(&flagHeight, "height", 24, "Virtual screen height in cells")
	simCmd.Flags().StringVar(&flagSimConf, "config", "", "Path to custom game config YAML")
}

func runSim(cmd *cobra.Command, args []string) {
	if _, err := config.LoadSpaceBattle(flagSimConf); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	spacebattle.SetConfigPath(flagSimConf)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.RuntimeConfig{
		ScreenW:  flagWidth,
		ScreenH:  flagHeight,
		TickRate: flagFPS,
		Seed:     seed,
	}

	logger, closeLog := openLogger()
	defer closeLog()

	start := time.Now()
	g := spacebattle.Simulate(rt, flagTicks, spacebattle.Autopilot)
	elapsed := time.Since(start)

	st := g.State()
	stats := g.Stats()
	logger.Info("simulation finished", "seed", seed, "ticks", g.Ticks(), "score", st.Score, "elapsed", elapsed)

	fmt.Printf("Seed:       %d\n", seed)
	fmt.Printf("Ticks:      %d (%.1fs of play)\n", g.Ticks(), float64(g.Ticks())/float64(rt.TickRate))
	fmt.Printf("Phase:      %s\n", st.Phase)
	fmt.Printf("Score:      %d\n", st.Score)
	fmt.Printf("Lives:      %d\n", st.Lives)
	fmt.Printf("Kills:      %d\n", stats.Kills)
	fmt.Printf("Breaches:   %d\n", stats.Breaches)
	fmt.Printf("Hearts:     %d\n", stats.Hearts)
	fmt.Printf("Lives lost: %d\n", stats.LivesLost)
}

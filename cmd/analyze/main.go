// Command analyze runs batches of seeded games and prints win-rate and
// game-length statistics for a strategy lineup. It is the quickest way to
// compare strategies or to sanity check a new map configuration: if one seat
// wins every game, or games never reach the generator end condition, the map
// or the rules tables likely need tuning.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/nelsp/pb-power-grid/game/config"
	"github.com/nelsp/pb-power-grid/game/service"
)

// batchResult aggregates the outcomes of one simulation batch.
type batchResult struct {
	games      int
	errors     int
	winsBySeat []int
	rounds     []int
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "run seeded game batches and report win rates per strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "configs",
				Value: "configs",
				Usage: "directory holding map configuration files",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "",
				Usage: "map configuration name (empty picks the default)",
			},
			&cli.StringFlag{
				Name:  "strategies",
				Value: "greedy,balanced",
				Usage: "comma-separated strategy lineup, one per seat",
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 100,
				Usage: "number of games to simulate",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "base seed; game i runs with seed+i",
			},
		},
		Action: runBatch,
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	manager, err := config.NewManager(cmd.String("configs"))
	if err != nil {
		return err
	}

	configName := cmd.String("config")
	if configName == "" {
		configName = manager.DefaultName()
	}

	strategies := splitLineup(cmd.String("strategies"))
	if len(strategies) < 2 {
		return fmt.Errorf("need at least 2 strategies, got %d", len(strategies))
	}

	games := int(cmd.Int("games"))
	baseSeed := int64(cmd.Int("seed"))

	players := make([]string, len(strategies))
	for i, s := range strategies {
		players[i] = fmt.Sprintf("%s_%d", s, i)
	}

	result := batchResult{
		winsBySeat: make([]int, len(strategies)),
	}

	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		meta := service.GameMeta{
			ConfigName: configName,
			Players:    players,
			Strategies: strategies,
			Seed:       baseSeed + int64(i),
		}

		game, err := service.NewGameFromMeta(manager, meta)
		if err != nil {
			return fmt.Errorf("game %d setup failed: %w", i, err)
		}

		winner, err := game.Run()
		if err != nil {
			result.errors++
			continue
		}

		result.games++
		result.winsBySeat[winner]++
		result.rounds = append(result.rounds, game.State().Round)
	}

	printReport(configName, players, strategies, result)
	return nil
}

func splitLineup(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printReport(configName string, players, strategies []string, result batchResult) {
	fmt.Printf("\n=== Batch report: %s ===\n", configName)
	fmt.Printf("Games completed: %d", result.games)
	if result.errors > 0 {
		fmt.Printf(" (%d failed)", result.errors)
	}
	fmt.Println()

	if result.games == 0 {
		return
	}

	fmt.Println("\nWin rates:")
	for i, name := range players {
		rate := 100 * float64(result.winsBySeat[i]) / float64(result.games)
		fmt.Printf("  seat %d %-20s %-14s %3d wins (%.1f%%)\n",
			i, name, "("+strategies[i]+")", result.winsBySeat[i], rate)
	}

	sort.Ints(result.rounds)
	total := 0
	for _, r := range result.rounds {
		total += r
	}
	fmt.Printf("\nGame length (rounds): min %d, median %d, max %d, mean %.1f\n",
		result.rounds[0],
		result.rounds[len(result.rounds)/2],
		result.rounds[len(result.rounds)-1],
		float64(total)/float64(len(result.rounds)))
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/content"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/commands"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// maxDispatches bounds a simulated playthrough.
const maxDispatches = 500

var (
	seed  = flag.Int64("seed", 1, "random seed for the simulated playthrough")
	games = flag.Int("games", 20, "number of simulated playthroughs per scenario")
)

func main() {
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{""}
	}

	fmt.Println("=== Scenario Lint ===")
	failed := 0
	for _, path := range paths {
		if err := lint(path); err != nil {
			log.Printf("✗ %s: %v", name(path), err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func name(path string) string {
	if path == "" {
		return "bundled scenario"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func lint(path string) error {
	var (
		f   *content.File
		err error
	)
	if path == "" {
		f, err = content.LoadDefault()
	} else {
		f, err = content.Load(path)
	}
	if err != nil {
		return err
	}
	if err := content.Validate(f); err != nil {
		return err
	}

	fmt.Printf("\n%s\n", name(path))
	fmt.Printf("  title:       %s\n", f.Scenario.Title)
	fmt.Printf("  player deck: %d card(s)\n", len(f.PlayerDeck.Hand)+len(f.PlayerDeck.DrawPile)+len(f.PlayerDeck.DiscardPile))
	fmt.Printf("  event deck:  %d event(s)\n", len(f.EventDeck))
	fmt.Printf("  journal:     %d entr(ies)\n", len(content.JournalEntries(f)))

	outcomes := make(map[state.Outcome]int)
	turns := 0
	for i := 0; i < *games; i++ {
		final, err := simulate(f, *seed+int64(i))
		if err != nil {
			return err
		}
		outcomes[final.GameOutcome]++
		turns += final.Turn.Number
	}

	fmt.Printf("  simulated %d game(s): %d victory, %d defeat, %d unfinished, %.1f turns on average\n",
		*games, outcomes[state.OutcomeVictory], outcomes[state.OutcomeDefeat], outcomes[state.OutcomeNone],
		float64(turns)/float64(max(*games, 1)))
	fmt.Println("  ✓ ok")
	return nil
}

// simulate plays one game greedily: every affordable card, then end turn,
// then the first open choice until the event phase closes.
func simulate(f *content.File, seed int64) (*state.GameState, error) {
	rnd := state.NewRandom(seed)
	ids := &state.SequenceIDs{}
	initial, err := content.Build(f, rnd, ids)
	if err != nil {
		return nil, err
	}
	engine := game.NewGameEngine(initial,
		game.WithLogger(zap.NewNop()),
		game.WithRandom(rnd),
		game.WithIDGenerator(ids),
	)

	for i := 0; i < maxDispatches; i++ {
		s := engine.State()
		if s.Finished() {
			return s, nil
		}
		if err := engine.Dispatch(next(s)); err != nil {
			return nil, err
		}
	}
	return engine.State(), nil
}

func next(s *state.GameState) commands.Command {
	switch s.LoopStage {
	case state.StageStory:
		return commands.NewAdvanceJournal()
	case state.StageEvent:
		for _, choice := range s.Event.Choices {
			if !choice.Resolved {
				return commands.NewResolveEventChoice(choice.ID)
			}
		}
	case state.StagePlayer:
		for _, card := range s.Hand {
			if card.Playable && card.Cost() <= s.Turn.Actions.Remaining {
				return commands.NewPlayCard(card.ID)
			}
		}
	}
	return commands.NewEndTurn()
}

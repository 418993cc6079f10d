package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/config"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/engine"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/ml"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/storage"
)

// #region main
func main() {
	dbPath := flag.String("db", envOr("KINETIQ_DB", "kinetiq.db"), "path to kinetiq.db")
	configPath := flag.String("config", envOr("KINETIQ_CONFIG", "kinetiq.toml"), "path to profile TOML")
	exerciseName := flag.String("exercise", "bench_press", "exercise to train")
	debug := flag.Bool("debug", false, "include debug payload in suggestions")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	settings := cfg.Settings()
	exercise := cfg.Exercise(*exerciseName, settings)

	store, err := storage.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	var state *ml.State
	if cfg.UseML {
		state, err = store.LoadLatestState(cfg.UserID)
		if err != nil {
			log.Fatalf("failed to load learning state: %v", err)
		}
	}
	policy := engine.New(cfg.UseML, state, cfg.UserID)

	fmt.Println("Kinetiq ready.")
	fmt.Printf("  DB: %s | Exercise: %s | Unit: %s | ML: %v\n", *dbPath, exercise.Name, settings.Unit, cfg.UseML)
	fmt.Printf("  Rep range: %d-%d | Target RPE: %.1f-%.1f\n", exercise.RepMin, exercise.RepMax, exercise.TargetRPEMin, exercise.TargetRPEMax)
	fmt.Println("Log a set as 'weight reps rpe' (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		set, err := parseSet(line)
		if err != nil {
			fmt.Printf("bad input: %v\n", err)
			continue
		}

		if err := store.AppendSet(exercise.Name, set, settings.Unit); err != nil {
			log.Printf("error appending set: %v", err)
			continue
		}

		history, err := store.History(exercise.Name, 0)
		if err != nil {
			log.Printf("error loading history: %v", err)
			continue
		}

		sug, err := policy.Suggest(set, exercise, settings, history, *debug)
		if err != nil {
			fmt.Printf("engine error: %v\n", err)
			continue
		}

		fmt.Printf("\nnext: %s: %.1f %s x %d\n  %s\n\n", sug.Action, sug.NextWeight, sug.Unit, sug.NextReps, sug.Explanation)

		source := "rules"
		if cfg.UseML {
			source = "learned"
		}
		if _, err := store.LogSuggestion(exercise.Name, source, sug); err != nil {
			log.Printf("logging error: %v", err)
		}
		if state != nil {
			if _, err := store.SaveState(cfg.UserID, state); err != nil {
				log.Printf("snapshot error: %v", err)
			}
		}
	}
}

// #endregion main

// #region helpers
func parseSet(line string) (lift.SetLog, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return lift.SetLog{}, fmt.Errorf("expected 'weight reps rpe', got %d fields", len(fields))
	}
	weight, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return lift.SetLog{}, fmt.Errorf("weight: %w", err)
	}
	reps, err := strconv.Atoi(fields[1])
	if err != nil {
		return lift.SetLog{}, fmt.Errorf("reps: %w", err)
	}
	rpe, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return lift.SetLog{}, fmt.Errorf("rpe: %w", err)
	}
	return lift.SetLog{Weight: weight, Reps: reps, RPE: rpe}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers

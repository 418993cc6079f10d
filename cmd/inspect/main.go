package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/storage"
)

// #region main
func main() {
	dbPath := flag.String("db", "", "path to kinetiq.db")
	exercise := flag.String("exercise", "", "exercise to inspect")
	user := flag.String("user", "", "also show this user's latest learning-state snapshot")
	last := flag.Int("last", 20, "show N most recent entries")
	jsonOut := flag.Bool("json", false, "output as JSON instead of text")
	flag.Parse()

	if *dbPath == "" || *exercise == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/kinetiq.db --exercise name [--last N] [--json]")
		os.Exit(2)
	}

	store, err := storage.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := run(store, *exercise, *user, *last, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run
type report struct {
	Exercise    string                     `json:"exercise"`
	Sets        []setRow                   `json:"sets"`
	Suggestions []storage.SuggestionRecord `json:"suggestions"`
	Snapshot    *storage.SnapshotInfo      `json:"snapshot,omitempty"`
}

type setRow struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	RPE    float64 `json:"rpe"`
}

func run(store *storage.Store, exercise, user string, last int, jsonOut bool) error {
	history, err := store.History(exercise, last)
	if err != nil {
		return err
	}
	suggestions, err := store.RecentSuggestions(exercise, last)
	if err != nil {
		return err
	}
	var snapshot *storage.SnapshotInfo
	if user != "" {
		snapshot, err = store.LatestSnapshotInfo(user)
		if err != nil {
			return err
		}
	}

	if jsonOut {
		rep := report{Exercise: exercise}
		for _, s := range history {
			rep.Sets = append(rep.Sets, setRow{Weight: s.Weight, Reps: s.Reps, RPE: s.RPE})
		}
		rep.Suggestions = suggestions
		rep.Snapshot = snapshot
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Printf("Exercise: %s\n\n", exercise)
	if len(history) == 0 {
		fmt.Println("no sets logged")
	} else {
		fmt.Printf("Last %d sets (oldest first):\n", len(history))
		for i, s := range history {
			fmt.Printf("  %2d. %.1f x %d @ RPE %.1f\n", i+1, s.Weight, s.Reps, s.RPE)
		}
	}

	fmt.Printf("\nRecent suggestions (newest first):\n")
	if len(suggestions) == 0 {
		fmt.Println("  none")
	}
	for _, rec := range suggestions {
		fmt.Printf("  %s  %-12s %.1f x %d (%s)  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.Action, rec.NextWeight, rec.NextReps, rec.Source, rec.Reason)
	}

	if user != "" {
		fmt.Printf("\nLearning state for %s:\n", user)
		if snapshot == nil {
			fmt.Println("  no snapshots")
		} else {
			fmt.Printf("  version %s saved %s\n", snapshot.VersionID, snapshot.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

// #endregion run

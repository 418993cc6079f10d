package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/engine"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/ml"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/presets"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/sim"
)

// #region main
func main() {
	weeks := flag.Int("weeks", 16, "number of weeks to simulate")
	sessions := flag.Int("sessions", 2, "sessions per week")
	sets := flag.Int("sets", 4, "sets per session")
	exerciseName := flag.String("exercise", "bench_press", "exercise name")
	startWeight := flag.Float64("start-weight", 185.0, "starting weight")
	startReps := flag.Int("start-reps", 5, "starting reps")
	seed := flag.Int64("seed", 7, "rng seed")
	useML := flag.Bool("ml", false, "use the learned policy")
	verbose := flag.Bool("v", false, "print every set")
	flag.Parse()

	if *weeks < 1 || *sessions < 1 || *sets < 1 {
		fmt.Fprintln(os.Stderr, "usage: simulate [--weeks N] [--sessions N] [--sets N] [--ml] [--seed N]")
		os.Exit(2)
	}

	settings := lift.DefaultSettings()
	exercise := presets.MakeExercise(*exerciseName, 5, 8, settings)

	var state *ml.State
	userID := "sim_user"
	if *useML {
		state = ml.NewState()
		state.Seed(*seed)
	}
	policy := engine.New(*useML, state, userID)

	lifter := sim.NewLifter(*startWeight, *seed)
	var history lift.History
	var summary sim.Summary

	// Seed the opening set.
	day0 := lifter.DayReadiness()
	rpe0 := lifter.RPEForSet(*startWeight, *startReps, exercise.RepMin, 0, day0)
	current := lift.SetLog{Weight: *startWeight, Reps: *startReps, RPE: rpe0}
	history = append(history, current)
	summary.Record(current, exercise.TargetRPEMin, exercise.TargetRPEMax)

	mode := "rules"
	if *useML {
		mode = "learned"
	}
	fmt.Printf("Kinetiq simulation (%s mode)\n", mode)
	fmt.Printf("Exercise: %s | Rep range: %d-%d | Target RPE: %.1f-%.1f\n",
		exercise.Name, exercise.RepMin, exercise.RepMax, exercise.TargetRPEMin, exercise.TargetRPEMax)
	fmt.Printf("Weeks: %d | Sessions/week: %d | Sets/session: %d\n\n", *weeks, *sessions, *sets)

	for week := 1; week <= *weeks; week++ {
		for sess := 1; sess <= *sessions; sess++ {
			dayReadiness := lifter.DayReadiness()
			var sessionRPEs []float64

			// Top set decides progression.
			sug, err := policy.Suggest(current, exercise, settings, history, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "engine error: %v\n", err)
				os.Exit(1)
			}

			topRPE := lifter.RPEForSet(sug.NextWeight, sug.NextReps, exercise.RepMin, 0, dayReadiness)
			current = lift.SetLog{Weight: sug.NextWeight, Reps: sug.NextReps, RPE: topRPE}
			history = append(history, current)
			sessionRPEs = append(sessionRPEs, topRPE)
			inZone := summary.Record(current, exercise.TargetRPEMin, exercise.TargetRPEMax)
			if *verbose {
				printSet(week, sess, 1, current, sug.Action, inZone)
			}

			// Backoff sets repeat the top prescription, shedding a rep only
			// when it comes out too hard.
			backoffWeight := current.Weight
			backoffReps := current.Reps
			for setIdx := 1; setIdx < *sets; setIdx++ {
				rpe := lifter.RPEForSet(backoffWeight, backoffReps, exercise.RepMin, setIdx, dayReadiness)
				if rpe > exercise.TargetRPEMax && backoffReps > exercise.RepMin {
					backoffReps--
					rpe = lifter.RPEForSet(backoffWeight, backoffReps, exercise.RepMin, setIdx, dayReadiness)
				}
				current = lift.SetLog{Weight: backoffWeight, Reps: backoffReps, RPE: rpe}
				history = append(history, current)
				sessionRPEs = append(sessionRPEs, rpe)
				inZone = summary.Record(current, exercise.TargetRPEMin, exercise.TargetRPEMax)
				if *verbose {
					printSet(week, sess, setIdx+1, current, lift.ActionStay, inZone)
				}
			}

			lifter.AdaptAfterSession(sessionRPEs, exercise.TargetRPEMin, exercise.TargetRPEMax)
		}
	}

	fmt.Printf("Total sets: %d | Target-zone hit rate: %.0f%% | Final weight: %.1f %s\n",
		summary.TotalSets, summary.HitRate()*100, summary.FinalWeight, settings.Unit)
}

// #endregion main

// #region helpers
func printSet(week, sess, setNum int, set lift.SetLog, action lift.Action, inZone bool) {
	zone := "in-zone"
	if !inZone {
		zone = "off-zone"
	}
	fmt.Printf("W%02d S%d set %d: %.1f x %d @ RPE %.1f [%s] action=%s\n",
		week, sess, setNum, set.Weight, set.Reps, set.RPE, zone, action)
}

// #endregion helpers

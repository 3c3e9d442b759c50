// Command pilot is a minimal driver for the pilot library: it configures a
// workload container with a synthetic benchmark, runs it to completion
// through a session.Controller, and exports the results (spec.md §6's
// "CLI surface: outside the core" — this binary is a consumer of the
// library, not part of it).
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pilot/domain/core"
	"pilot/domain/workload"
	"pilot/internal/config"
	"pilot/internal/container"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	wc := newSyntheticWorkload(cfg)

	c, err := container.New(cfg, wc)
	if err != nil {
		return fmt.Errorf("failed to wire container: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if c.Status != nil {
		go func() {
			if err := c.Status.Run(cfg.StatusAddr); err != nil {
				fmt.Fprintf(os.Stderr, "status server stopped: %v\n", err)
			}
		}()
	}

	runErr := c.RunAndExport(ctx)
	if shutdownErr := c.Shutdown(ctx); shutdownErr != nil && runErr == nil {
		runErr = shutdownErr
	}
	if runErr != nil {
		return fmt.Errorf("session run: %w", runErr)
	}

	fmt.Printf("session complete, results exported to %s\n", cfg.ExportDir)
	return nil
}

// newSyntheticWorkload builds a single-PI demo container whose "benchmark"
// is a synthetic latency generator (spec.md §8's scenarios all drive the
// session loop this same way: a workload func returning one Reading and one
// UnitReadings slice per round).
func newSyntheticWorkload(cfg *config.Config) *workload.Container {
	wc := workload.NewContainer("synthetic-demo")
	wc.SetNumOfPI(1)
	wc.SetPIInfo(0, workload.PIDescriptor{
		Name:               "latency_ms",
		Unit:               "ms",
		ReadingMustSatisfy: true,
	})
	wc.SetWorkAmountLimit(10000)
	wc.SetSessionDurationLimit(cfg.SessionDurationLimit)

	rng := rand.New(rand.NewSource(1))
	wc.SetWorkloadFunc(func(ctx context.Context, round core.RoundID, workAmount uint64) (workload.Result, error) {
		n := 200
		unit := make([]float64, n)
		var sum float64
		for i := range unit {
			v := 10 + rng.Float64()*2
			unit[i] = v
			sum += v
		}
		return workload.Result{
			Readings:      []float64{sum / float64(n)},
			UnitReadings:  [][]float64{unit},
			DurationNanos: time.Second.Nanoseconds(),
		}, nil
	})

	return wc
}

// Package container wires pilot's components into a runnable graph:
// config -> event sink -> optional baseline load -> session controller ->
// optional HTTP status server, the same New/Shutdown dependency-injection
// shape the teacher uses, trimmed down from its AI/research/database
// component graph to pilot's own.
package container

import (
	"context"
	"fmt"

	"pilot/adapters/baseline"
	"pilot/adapters/export"
	"pilot/adapters/httpstatus"
	"pilot/domain/pilotlog"
	"pilot/domain/session"
	"pilot/domain/workload"
	"pilot/internal/config"
	pilog "pilot/internal/log"
)

// Container holds every wired pilot component for one process run.
type Container struct {
	Config *config.Config

	Workload   *workload.Container
	Controller *session.Controller
	Sink       pilotlog.Sink
	Exporter   *export.Writer
	Status     *httpstatus.Server
}

// New builds a Container from cfg around the given workload container. wc
// must already have its PIs, workload func and settings configured by the
// caller (cmd/pilot); this function only wires the ambient components
// around it.
func New(cfg *config.Config, wc *workload.Container) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if wc == nil {
		return nil, fmt.Errorf("workload container cannot be nil")
	}

	c := &Container{Config: cfg, Workload: wc}

	if err := c.initLogging(); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := c.initBaseline(); err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}
	if err := c.initController(); err != nil {
		return nil, fmt.Errorf("failed to initialize controller: %w", err)
	}
	if err := c.initExporter(); err != nil {
		return nil, fmt.Errorf("failed to initialize exporter: %w", err)
	}
	c.initStatusServer()

	return c, nil
}

func (c *Container) initLogging() error {
	c.Sink = pilog.NewFromEnv()
	return nil
}

func (c *Container) initBaseline() error {
	if c.Config.BaselineFile == "" {
		return nil
	}
	return baseline.LoadInto(c.Workload, c.Config.BaselineFile)
}

func (c *Container) initController() error {
	c.Controller = session.NewController(c.Workload)
	c.Controller.SetSink(c.Sink)
	return nil
}

func (c *Container) initExporter() error {
	w, err := export.New(c.Config.ExportDir)
	if err != nil {
		return err
	}
	c.Exporter = w
	return nil
}

func (c *Container) initStatusServer() {
	if !c.Config.StatusEnabled {
		return
	}
	c.Status = httpstatus.New(c.Controller, "release")
}

// RunAndExport runs the wrapped session to completion and then exports its
// final results to the configured export directory (spec.md §4.7's
// run_workload followed by an export, the typical single-process flow
// cmd/pilot drives).
func (c *Container) RunAndExport(ctx context.Context) error {
	runErr := c.Controller.RunWorkload(ctx)

	snap := c.Controller.AnalyticalResult(nil)
	if exportErr := c.Exporter.WriteAll(ctx, c.Workload, snap); exportErr != nil {
		if runErr != nil {
			return runErr
		}
		return exportErr
	}
	return runErr
}

// Shutdown releases everything the container owns.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Controller != nil {
		c.Controller.Destroy()
	}
	return nil
}

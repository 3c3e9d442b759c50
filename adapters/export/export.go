// Package export writes a pilot session's results to a directory
// (spec.md §6, "Export writes a directory containing: readings.csv,
// unit_readings_piid_<p>_round_<r>.csv, summary.txt. Not required to be
// round-trippable."). It also writes two bonus artifacts a plain pilot
// session never required: a readings.xlsx workbook and an HTML rendering
// of summary.txt, both pure presentation and never read back by anything
// in domain/.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/semaphore"

	"pilot/domain/core"
	"pilot/domain/result"
	pilerr "pilot/internal/errors"
	"pilot/domain/workload"
)

// maxConcurrentWrites bounds how many per-PI/round unit-reading CSV files
// are written at once, the same weighted-semaphore shape the teacher uses
// to bound concurrent validation jobs.
const maxConcurrentWrites = int64(8)

// Writer writes a completed session's container state and snapshot to dir.
type Writer struct {
	dir string
	sem *semaphore.Weighted
}

// New creates a Writer rooted at dir, creating the directory if needed.
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pilerr.Codef(pilerr.IO, "creating export directory %q: %v", dir, err)
	}
	return &Writer{dir: dir, sem: semaphore.NewWeighted(maxConcurrentWrites)}, nil
}

// WriteAll writes readings.csv, one unit-reading CSV per (PI, round),
// summary.txt, and the two bonus artifacts readings.xlsx/summary.html.
func (w *Writer) WriteAll(ctx context.Context, c *workload.Container, snap *result.Snapshot) error {
	if err := w.writeReadingsCSV(c); err != nil {
		return err
	}
	if err := w.writeUnitReadingsCSVs(ctx, c); err != nil {
		return err
	}
	if err := w.writeSummaryTxt(c, snap); err != nil {
		return err
	}
	if err := w.writeReadingsXLSX(c); err != nil {
		return err
	}
	return w.writeSummaryHTML(c, snap)
}

// writeReadingsCSV writes rounds x PIs, one row per round.
func (w *Writer) writeReadingsCSV(c *workload.Container) error {
	path := filepath.Join(w.dir, "readings.csv")
	file, err := os.Create(path)
	if err != nil {
		return pilerr.Codef(pilerr.IO, "creating %q: %v", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := make([]string, 0, c.NumPI()+1)
	header = append(header, "round")
	for p := 0; p < c.NumPI(); p++ {
		header = append(header, c.PI(core.PIID(p)).Name)
	}
	if err := writer.Write(header); err != nil {
		return pilerr.Codef(pilerr.IO, "writing readings.csv header: %v", err)
	}

	for _, round := range c.Rounds() {
		row := make([]string, 0, c.NumPI()+1)
		row = append(row, strconv.FormatUint(uint64(round.ID), 10))
		for p := 0; p < c.NumPI(); p++ {
			if p < len(round.Readings) {
				row = append(row, strconv.FormatFloat(round.Readings[p], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return pilerr.Codef(pilerr.IO, "writing readings.csv row: %v", err)
		}
	}
	return writer.Error()
}

// writeUnitReadingsCSVs writes one unit_readings_piid_<p>_round_<r>.csv per
// (PI, round), each a single column. Files are written one after another,
// each write holding one slot of the writer's semaphore.
func (w *Writer) writeUnitReadingsCSVs(ctx context.Context, c *workload.Container) error {
	for _, round := range c.Rounds() {
		for p, unitReadings := range round.UnitReadings {
			if err := w.sem.Acquire(ctx, 1); err != nil {
				return pilerr.Codef(pilerr.IO, "acquiring export semaphore: %v", err)
			}
			err := w.writeOneUnitReadingCSV(p, int(round.ID), unitReadings)
			w.sem.Release(1)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeOneUnitReadingCSV(piid, round int, unitReadings []float64) error {
	path := filepath.Join(w.dir, fmt.Sprintf("unit_readings_piid_%d_round_%d.csv", piid, round))
	file, err := os.Create(path)
	if err != nil {
		return pilerr.Codef(pilerr.IO, "creating %q: %v", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	for _, v := range unitReadings {
		if err := writer.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return pilerr.Codef(pilerr.IO, "writing %q: %v", path, err)
		}
	}
	return writer.Error()
}


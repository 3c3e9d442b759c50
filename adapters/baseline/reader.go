// Package baseline reads the CSV baseline file spec.md §6 describes: one
// header line, then one data row per (piid, reading_type) giving the
// historical mean/sample-size/variance a workload's results get compared
// against (domain/planner's comparison planner). This package is an
// adapter — domain/workload must never import it; callers load a file here
// and push the result in through workload.Container.SetBaseline.
package baseline

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"pilot/domain/core"
	pilerr "pilot/internal/errors"
	"pilot/domain/workload"
)

// Row is one parsed line of a baseline file.
type Row struct {
	PIID         core.PIID
	ReadingType  workload.ReadingType
	Mean         float64
	SampleSize   int
	Variance     float64
}

// ReadFile opens path and parses it into Rows. Any parse failure is reported
// as ERR_IO (spec.md §6, "On parse error -> ERR_IO").
func ReadFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pilerr.Codef(pilerr.IO, "opening baseline file %q: %v", path, err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses a baseline CSV from r. The first line is a header and is
// skipped; columns are piid, reading_type, mean, sample_size, variance
// (spec.md §6).
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 5

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, pilerr.Codef(pilerr.IO, "baseline file is empty")
		}
		return nil, pilerr.Codef(pilerr.IO, "reading baseline header: %v", err)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pilerr.Codef(pilerr.IO, "reading baseline row: %v", err)
		}

		row, err := parseRow(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string) (Row, error) {
	piid, err := strconv.Atoi(record[0])
	if err != nil {
		return Row{}, pilerr.Codef(pilerr.IO, "invalid piid %q: %v", record[0], err)
	}

	rtCode, err := strconv.Atoi(record[1])
	if err != nil {
		return Row{}, pilerr.Codef(pilerr.IO, "invalid reading_type %q: %v", record[1], err)
	}
	rt, err := parseReadingType(rtCode)
	if err != nil {
		return Row{}, err
	}

	mean, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return Row{}, pilerr.Codef(pilerr.IO, "invalid mean %q: %v", record[2], err)
	}

	n, err := strconv.Atoi(record[3])
	if err != nil {
		return Row{}, pilerr.Codef(pilerr.IO, "invalid sample_size %q: %v", record[3], err)
	}

	variance, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return Row{}, pilerr.Codef(pilerr.IO, "invalid variance %q: %v", record[4], err)
	}

	return Row{PIID: core.PIID(piid), ReadingType: rt, Mean: mean, SampleSize: n, Variance: variance}, nil
}

// parseReadingType maps spec.md §6's reading-type enum (0=reading,
// 1=unit-reading, 2=WPS) onto domain/workload's ReadingType.
func parseReadingType(code int) (workload.ReadingType, error) {
	switch code {
	case 0:
		return workload.ReadingTypeReading, nil
	case 1:
		return workload.ReadingTypeUnitReading, nil
	case 2:
		return workload.ReadingTypeWPS, nil
	default:
		return 0, pilerr.Codef(pilerr.IO, "unknown reading_type code %d", code)
	}
}

// LoadInto reads path and applies every row to c via SetBaseline, matching
// spec.md §4.7's load_baseline_file(path) operation.
func LoadInto(c *workload.Container, path string) error {
	rows, err := ReadFile(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := c.SetBaseline(row.PIID, row.ReadingType, row.Mean, row.SampleSize, row.Variance); err != nil {
			return err
		}
	}
	return nil
}

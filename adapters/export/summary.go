package export

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/gomarkdown/markdown"
	"github.com/xuri/excelize/v2"

	"pilot/domain/core"
	"pilot/domain/result"
	pilerr "pilot/internal/errors"
	"pilot/domain/workload"
)

const summaryTemplate = `pilot session summary
======================

num_of_pi:      {{.NumPI}}
num_of_rounds:  {{.NumRounds}}
session_duration: {{.SessionDuration}}

{{range .PIs -}}
--- {{.Name}} ({{.Unit}}) ---
  raw: n={{.Raw.SampleCount}} mean={{.Raw.MeanFormatted}} var={{.Raw.Variance}} ci_width={{.Raw.CIWidthFormatted}} required_n={{.Raw.RequiredSampleSize}}
{{if .Dominant}}  dominant segment: n={{.Dominant.SampleCount}} mean={{.Dominant.MeanFormatted}} ci_width={{.Dominant.CIWidthFormatted}}
{{end -}}
  unit readings: n={{.UnitReadingRaw.SampleCount}} mean={{.UnitReadingRaw.MeanFormatted}} required_from_hook={{.UnitReadingRequiredFromHook}}
  last_changepoint: {{.LastChangepoint}}

{{end -}}
{{if .WPS.HasData -}}
--- WPS ---
  harmonic_mean={{.WPS.HarmonicMean}} alpha={{.WPS.Alpha}} v={{.WPS.V}} v_ci={{.WPS.VCI}} h={{.WPS.H}} err={{.WPS.Err}} err_pct={{.WPS.ErrPercent}}
{{end -}}
`

var parsedSummaryTemplate = template.Must(template.New("summary").Parse(summaryTemplate))

// writeSummaryTxt renders snap as human-readable text (spec.md §6's
// summary.txt, "analytical result in human form").
func (w *Writer) writeSummaryTxt(c *workload.Container, snap *result.Snapshot) error {
	path := filepath.Join(w.dir, "summary.txt")
	content, err := renderSummary(snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return pilerr.Codef(pilerr.IO, "writing %q: %v", path, err)
	}
	return nil
}

// writeSummaryHTML renders the same content as summary.txt through
// gomarkdown, wrapping the whole summary in one fenced code block. This is strictly
// a bonus presentation artifact; nothing in domain/ reads it back.
func (w *Writer) writeSummaryHTML(c *workload.Container, snap *result.Snapshot) error {
	path := filepath.Join(w.dir, "summary.html")
	content, err := renderSummary(snap)
	if err != nil {
		return err
	}
	html := markdown.ToHTML(toMarkdown(content), nil, nil)
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return pilerr.Codef(pilerr.IO, "writing %q: %v", path, err)
	}
	return nil
}

func toMarkdown(summary []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("```\n")
	buf.Write(summary)
	buf.WriteString("\n```\n")
	return buf.Bytes()
}

func renderSummary(snap *result.Snapshot) ([]byte, error) {
	if snap == nil {
		snap = &result.Snapshot{}
	}
	var buf bytes.Buffer
	if err := parsedSummaryTemplate.Execute(&buf, snap); err != nil {
		return nil, pilerr.Codef(pilerr.IO, "rendering summary: %v", err)
	}
	return buf.Bytes(), nil
}

// writeReadingsXLSX mirrors readings.csv into a workbook, the bonus
// artifact spec.md itself does not require (spec.md §6 only names CSV and
// summary.txt); grounded on the teacher's WriteXLSX helper.
func (w *Writer) writeReadingsXLSX(c *workload.Container) error {
	path := filepath.Join(w.dir, "readings.xlsx")
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return pilerr.Codef(pilerr.IO, "creating sheet: %v", err)
		}
		f.SetActiveSheet(idx)
	}

	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetCellValue(sheet, cell, "round"); err != nil {
		return pilerr.Codef(pilerr.IO, "writing header: %v", err)
	}
	for p := 0; p < c.NumPI(); p++ {
		cell, _ := excelize.CoordinatesToCellName(p+2, 1)
		if err := f.SetCellValue(sheet, cell, c.PI(core.PIID(p)).Name); err != nil {
			return pilerr.Codef(pilerr.IO, "writing header: %v", err)
		}
	}

	for rowIdx, round := range c.Rounds() {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetCellValue(sheet, cell, uint64(round.ID)); err != nil {
			return pilerr.Codef(pilerr.IO, "writing row: %v", err)
		}
		for p, v := range round.Readings {
			cell, _ := excelize.CoordinatesToCellName(p+2, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return pilerr.Codef(pilerr.IO, "writing row: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return pilerr.Codef(pilerr.IO, "saving %q: %v", path, err)
	}
	return nil
}

package baseline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot/domain/core"
	pilerr "pilot/internal/errors"
	"pilot/domain/workload"
)

const validCSV = `piid,reading_type,mean,sample_size,variance
0,0,10.5,30,1.2
0,2,2.0,30,0.05
`

func TestReadParsesValidRows(t *testing.T) {
	rows, err := Read(strings.NewReader(validCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, core.PIID(0), rows[0].PIID)
	assert.Equal(t, workload.ReadingTypeReading, rows[0].ReadingType)
	assert.Equal(t, 10.5, rows[0].Mean)
	assert.Equal(t, 30, rows[0].SampleSize)
	assert.Equal(t, 1.2, rows[0].Variance)

	assert.Equal(t, workload.ReadingTypeWPS, rows[1].ReadingType)
}

func TestReadRejectsUnknownReadingType(t *testing.T) {
	const badCSV = `piid,reading_type,mean,sample_size,variance
0,9,10.5,30,1.2
`
	_, err := Read(strings.NewReader(badCSV))
	require.Error(t, err)
	assert.Equal(t, pilerr.IO, pilerr.GetNumericCode(err))
}

func TestReadRejectsMalformedRow(t *testing.T) {
	const badCSV = `piid,reading_type,mean,sample_size,variance
not_a_number,0,10.5,30,1.2
`
	_, err := Read(strings.NewReader(badCSV))
	require.Error(t, err)
	assert.Equal(t, pilerr.IO, pilerr.GetNumericCode(err))
}

func TestLoadIntoAppliesBaselines(t *testing.T) {
	c := workload.NewContainer("baseline-test")
	c.SetNumOfPI(1)
	c.SetPIInfo(0, workload.PIDescriptor{Name: "throughput"})

	rows, err := Read(strings.NewReader(validCSV))
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, c.SetBaseline(row.PIID, row.ReadingType, row.Mean, row.SampleSize, row.Variance))
	}

	b, ok := c.Baseline(0, workload.ReadingTypeReading)
	require.True(t, ok)
	assert.Equal(t, 10.5, b.Mean)
}

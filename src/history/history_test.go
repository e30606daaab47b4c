package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
)

func TestReadText(t *testing.T) {
	in := `# weight log
2016-01-02 81.4

2016-01-03	81.0 after breakfast
  2016-01-05 80.6
`
	got, err := ReadText(strings.NewReader(in), "log.txt")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Date.Equal(calendar.Day(2016, time.January, 2)))
	assert.Equal(t, 81.4, got[0].Kg)
	assert.Equal(t, 81.0, got[1].Kg)
	assert.True(t, got[2].Date.Equal(calendar.Day(2016, time.January, 5)))
}

func TestReadText_Malformed(t *testing.T) {
	for _, in := range []string{
		"2016-01-02\n",
		"2016-13-02 80\n",
		"2016-01-02 heavy\n",
		"2016-01-02 -3\n",
	} {
		_, err := ReadText(strings.NewReader(in), "bad.txt")
		assert.ErrorIs(t, err, errs.ErrInvalidInput, "input %q", in)
	}
	_, err := ReadText(strings.NewReader("x\n2016-01-02\n"), "bad.txt")
	assert.ErrorContains(t, err, "bad.txt:1")
}

func TestReadFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.txt")
	require.NoError(t, os.WriteFile(path, []byte("2016-02-01 70.2\n"), 0o644))
	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "A1", "Date"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Weight"))
	require.NoError(t, f.SetCellValue(sheet, "A2", calendar.Day(2016, time.January, 10)))
	require.NoError(t, f.SetCellValue(sheet, "B2", 80.5))
	require.NoError(t, f.SetCellValue(sheet, "A3", "2016-01-11"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 80.1))

	path := filepath.Join(t.TempDir(), "weights.xlsx")
	require.NoError(t, f.SaveAs(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2016-01-10", got[0].Date.Format(calendar.ISODate))
	assert.Equal(t, 80.5, got[0].Kg)
	assert.Equal(t, "2016-01-11", got[1].Date.Format(calendar.ISODate))
	assert.Equal(t, 80.1, got[1].Kg)
}

func TestReadXLSX_BadRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "2016-01-11"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 80.1))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "tomorrow"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 79))
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := ReadXLSX(path)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

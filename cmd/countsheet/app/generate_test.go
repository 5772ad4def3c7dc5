package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "valid", raw: "2024", want: 2024},
		{name: "padded", raw: " 2019 ", want: 2019},
		{name: "too short", raw: "24", wantErr: true},
		{name: "too long", raw: "20244", wantErr: true},
		{name: "not numeric", raw: "twty", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, err := parseYear(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, year)
		})
	}
}

func TestReadYear(t *testing.T) {
	year, err := readYear(strings.NewReader("2023\n"))
	require.NoError(t, err)
	assert.Equal(t, 2023, year)

	_, err = readYear(strings.NewReader(""))
	assert.Error(t, err)
}

// writeTable builds a one-sheet workbook for pipeline tests.
func writeTable(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		anchor, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", anchor, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestGenerateEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	writeTable(t, filepath.Join(inputDir, "SITES.xlsx"), [][]any{
		{"SUBSITE", "SUBSITE_ID", "PARENTSITE", "PARENTSITE_ID", "MML_ID", "REGION", "REGNO", "RCA", "ROOK", "LAT", "LON"},
		{"Adak East", "101", "ADAK", "10", "100", "ALEUTIANS", "1", "", "", "51.85", "-176.64"},
		{"Kiska North", "102", "KISKA", "11", "200", "ALEUTIANS", "1", "", "", "52.10", "177.50"},
	})
	writeTable(t, filepath.Join(inputDir, "2024_LOGSummary.xlsx"), [][]any{
		{"DATE", "MML_ID", "SUBSITE", "PARENTSITE", "TIME", "COUNT", "PASS", "PASS DESCRIPTION", "ADD", "DISTURBANCE", "Priority", "REGION", "REGNO", "RCA", "ROOK"},
		{"2024-06-12", "100", "Adak East", "ADAK", "0930", "5", "", "skiff count", "", "", "1", "ALEUTIANS", "1", "", ""},
		{"2024-06-13", "NEW", "Buldir Rock", "BULDIR", "1015", "2", "", "", "", "", "", "ALEUTIANS", "1", "", ""},
	})

	application, err := New("test", "none", "today")
	require.NoError(t, err)

	rootCmd := application.createRootCommand()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{
		"generate", "2024",
		"--input-dir", inputDir,
		"--output-dir", outputDir,
		"--quiet",
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	outPath := filepath.Join(outputDir, "COUNTSHEET_TEMPLATE_2024.xlsx")
	_, err = os.Stat(outPath)
	require.NoError(t, err)

	summary := out.String()
	assert.Contains(t, summary, "Countsheet Generation Summary for 2024")
	assert.Contains(t, summary, "Total sites in template: 3")
	assert.Contains(t, summary, "Otter (surveyed): 2")
	assert.Contains(t, summary, "Outside (not planned): 1")
	assert.Contains(t, summary, "New Site: 1 sites")

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("COUNTSHEET")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	// Surveyed rows sort first, the unplanned registry site last.
	assert.Equal(t, "Adak East", rows[1][1])
	assert.Equal(t, "Buldir Rock", rows[2][1])
	assert.Equal(t, "Kiska North", rows[3][1])
	assert.Contains(t, f.GetSheetList(), "Flagged Sites")
}

func TestGenerateMissingLogFile(t *testing.T) {
	inputDir := t.TempDir()
	writeTable(t, filepath.Join(inputDir, "SITES.xlsx"), [][]any{
		{"SUBSITE", "SUBSITE_ID", "PARENTSITE", "PARENTSITE_ID", "MML_ID", "REGION", "REGNO", "RCA", "ROOK", "LAT", "LON"},
		{"Adak East", "101", "ADAK", "10", "100", "ALEUTIANS", "1", "", "", "51.85", "-176.64"},
	})

	application, err := New("test", "none", "today")
	require.NoError(t, err)

	rootCmd := application.createRootCommand()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"generate", "2024",
		"--input-dir", inputDir,
		"--output-dir", t.TempDir(),
		"--quiet",
	})

	err = rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log summary")
}

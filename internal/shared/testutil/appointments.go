package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// AppointmentHeader is the header of the raw appointments dataset
var AppointmentHeader = []string{
	"PatientId", "AppointmentID", "Gender", "ScheduledDay", "AppointmentDay", "Age",
	"Neighbourhood", "Scholarship", "Hipertension", "Diabetes", "Alcoholism",
	"Handcap", "SMS_received", "No-show",
}

// AppointmentRow builds a valid raw record; only the identifying fields and
// the age vary.
func AppointmentRow(patientID, appointmentID, age string) []string {
	return []string{
		patientID, appointmentID, "F", "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z", age,
		"JARDIM DA PENHA", "0", "1", "0", "0", "0", "0", "No",
	}
}

// CSVContent renders header and rows as comma separated text
func CSVContent(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ",") + "\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r, ",") + "\n")
	}
	return b.String()
}

// WriteCSV writes an appointments.csv source into a fresh temp dir
func WriteCSV(t *testing.T, header []string, rows ...[]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.csv")
	require.NoError(t, os.WriteFile(path, []byte(CSVContent(header, rows...)), 0644))
	return path
}

// WriteWorkbook writes the same table as WriteCSV into appointments.xlsx,
// every cell stored as text
func WriteWorkbook(t *testing.T, header []string, rows ...[]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, r := range append([][]string{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]interface{}, len(r))
		for j, v := range r {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	path := filepath.Join(t.TempDir(), "appointments.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

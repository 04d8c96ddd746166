package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var appointmentHeader = []string{
	"PatientId", "AppointmentID", "Gender", "ScheduledDay", "AppointmentDay", "Age",
	"Neighbourhood", "Scholarship", "Hipertension", "Diabetes", "Alcoholism",
	"Handcap", "SMS_received", "No-show",
}

// appointmentRow builds a record with the given ids and age; other fields fixed
func appointmentRow(patientID, appointmentID, age string) []string {
	return []string{
		patientID, appointmentID, "F", "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z", age,
		"JARDIM DA PENHA", "0", "1", "0", "0", "0", "0", "No",
	}
}

func csvContent(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mustDataset(t *testing.T, columns []string, rows ...[]any) *Dataset {
	t.Helper()
	ds, err := NewDataset(columns)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, ds.AppendRow(r))
	}
	return ds
}

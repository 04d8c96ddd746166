package operations

import (
	"bytes"
	"log/slog"
	"testing"

	"noshowcli/internal/infrastructure"
	"noshowcli/internal/shared/testutil"
)

var appointmentHeader = testutil.AppointmentHeader

func appointmentRow(patientID, appointmentID, age string) []string {
	return testutil.AppointmentRow(patientID, appointmentID, age)
}

func writeCSV(t *testing.T, header []string, rows ...[]string) string {
	t.Helper()
	return testutil.WriteCSV(t, header, rows...)
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return infrastructure.NewJSONLogger(&buf, "debug"), &buf
}

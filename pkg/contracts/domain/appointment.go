package domain

import (
	"time"
)

// Column names of the medical appointment no-show dataset
const (
	ColumnPatientID      = "PatientId"
	ColumnAppointmentID  = "AppointmentID"
	ColumnGender         = "Gender"
	ColumnScheduledDay   = "ScheduledDay"
	ColumnAppointmentDay = "AppointmentDay"
	ColumnAge            = "Age"
	ColumnNeighbourhood  = "Neighbourhood"
	ColumnScholarship    = "Scholarship"
	ColumnHipertension   = "Hipertension"
	ColumnDiabetes       = "Diabetes"
	ColumnAlcoholism     = "Alcoholism"
	ColumnHandcap        = "Handcap"
	ColumnSMSReceived    = "SMS_received"

	// ColumnNoShowSource is the outcome column as it appears in the raw file.
	ColumnNoShowSource = "No-show"
	// ColumnNoShow is the outcome column after cleaning.
	ColumnNoShow = "No_show"
)

// TimestampColumns lists the columns normalized into time.Time values
var TimestampColumns = []string{ColumnScheduledDay, ColumnAppointmentDay}

// Appointment is the typed view of one cleaned record
type Appointment struct {
	PatientID      float64   `json:"patient_id" validate:"gte=0"`
	AppointmentID  int64     `json:"appointment_id" validate:"gte=0"`
	Gender         string    `json:"gender" validate:"omitempty,oneof=F M"`
	ScheduledDay   time.Time `json:"scheduled_day" validate:"required"`
	AppointmentDay time.Time `json:"appointment_day" validate:"required"`
	Age            int64     `json:"age" validate:"gte=0"`
	Neighbourhood  string    `json:"neighbourhood"`
	Scholarship    int64     `json:"scholarship" validate:"oneof=0 1"`
	Hipertension   int64     `json:"hipertension" validate:"oneof=0 1"`
	Diabetes       int64     `json:"diabetes" validate:"oneof=0 1"`
	Alcoholism     int64     `json:"alcoholism" validate:"oneof=0 1"`
	Handcap        int64     `json:"handcap" validate:"gte=0"`
	SMSReceived    int64     `json:"sms_received" validate:"oneof=0 1"`
	NoShow         string    `json:"no_show" validate:"omitempty,oneof=Yes No"`
}

// TimestampPolicy defines what happens to a record whose timestamp cannot be parsed
type TimestampPolicy string

const (
	TimestampPolicyFail TimestampPolicy = "fail" // Abort the run
	TimestampPolicyDrop TimestampPolicy = "drop" // Remove the record and count it
)

package dataprocessing

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"noshowcli/internal/errors"
	"noshowcli/pkg/contracts/domain"
)

var appointmentValidator = validator.New()

// ToAppointments converts a cleaned dataset into typed records and checks
// every record against the Appointment contract.
func ToAppointments(d *Dataset) ([]domain.Appointment, error) {
	for _, name := range []string{domain.ColumnScheduledDay, domain.ColumnAppointmentDay, domain.ColumnAge, domain.ColumnNoShow} {
		if !d.HasColumn(name) {
			return nil, errors.NewValidationError(fmt.Sprintf("column %q missing, dataset is not cleaned", name))
		}
	}

	out := make([]domain.Appointment, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		rec := d.Record(i)

		scheduled, ok1 := rec[domain.ColumnScheduledDay].(time.Time)
		appointment, ok2 := rec[domain.ColumnAppointmentDay].(time.Time)
		if !ok1 || !ok2 {
			return nil, errors.NewValidationError("timestamps are not normalized").WithContext("row", i)
		}

		a := domain.Appointment{
			PatientID:      cast.ToFloat64(rec[domain.ColumnPatientID]),
			AppointmentID:  cast.ToInt64(rec[domain.ColumnAppointmentID]),
			Gender:         cast.ToString(rec[domain.ColumnGender]),
			ScheduledDay:   scheduled,
			AppointmentDay: appointment,
			Age:            cast.ToInt64(rec[domain.ColumnAge]),
			Neighbourhood:  cast.ToString(rec[domain.ColumnNeighbourhood]),
			Scholarship:    cast.ToInt64(rec[domain.ColumnScholarship]),
			Hipertension:   cast.ToInt64(rec[domain.ColumnHipertension]),
			Diabetes:       cast.ToInt64(rec[domain.ColumnDiabetes]),
			Alcoholism:     cast.ToInt64(rec[domain.ColumnAlcoholism]),
			Handcap:        cast.ToInt64(rec[domain.ColumnHandcap]),
			SMSReceived:    cast.ToInt64(rec[domain.ColumnSMSReceived]),
			NoShow:         cast.ToString(rec[domain.ColumnNoShow]),
		}

		if err := appointmentValidator.Struct(a); err != nil {
			return nil, errors.NewAppError(errors.ErrTypeValidation, "record violates appointment contract", err).
				WithContext("row", i)
		}
		out = append(out, a)
	}

	return out, nil
}

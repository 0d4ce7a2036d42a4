package handlers

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type attendancePayload struct {
	EmployeeID    validation.Field[string] `json:"employeeId"`
	ArrivalTime   validation.Field[string] `json:"arrivalTime"`
	DepartureTime validation.Field[string] `json:"departureTime"`
	ShiftType     validation.Field[string] `json:"shiftType"`
}

func (p *attendancePayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "employeeId", p.EmployeeID, validation.NotBlank())
	validation.Required(&v, partial, "arrivalTime", p.ArrivalTime, validation.ClockOrTimestamp())
	validation.Required(&v, partial, "departureTime", p.DepartureTime, validation.ClockOrTimestamp())
	validation.Required(&v, partial, "shiftType", p.ShiftType, validation.OneOf(model.ShiftTypes...))
	return v
}

func (p *attendancePayload) build(id string, now time.Time) (model.Attendance, error) {
	return model.Attendance{
		ID:            id,
		EmployeeID:    p.EmployeeID.Value,
		ArrivalTime:   p.ArrivalTime.Value,
		DepartureTime: p.DepartureTime.Value,
		ShiftType:     p.ShiftType.Value,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *attendancePayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "employeeId", p.EmployeeID)
	set(patch, "arrivalTime", p.ArrivalTime)
	set(patch, "departureTime", p.DepartureTime)
	set(patch, "shiftType", p.ShiftType)
	return patch, nil
}

func (a *API) newAttendance() *resource[model.Attendance, *attendancePayload] {
	return &resource[model.Attendance, *attendancePayload]{
		entity:     "Attendance",
		noun:       "attendance",
		plural:     "attendance records",
		store:      a.stores.Attendance,
		newPayload: func() *attendancePayload { return &attendancePayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		verify: func(ctx context.Context, p *attendancePayload) (validation.Violations, error) {
			var v validation.Violations
			if p.EmployeeID.Present() {
				if err := a.employeeExists(ctx, &v, "employeeId", p.EmployeeID.Value); err != nil {
					return nil, err
				}
			}
			return v, nil
		},
		report: reportLayout[model.Attendance]{
			title:    "Attendance Report",
			filename: "attendance_report",
			columns:  []string{"Employee ID", "Employee", "Arrival", "Departure", "Shift"},
			rows: func(ctx context.Context, docs []model.Attendance) ([][]string, error) {
				names, err := a.employeeNames(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					name, ok := names[d.EmployeeID]
					if !ok {
						name = "-"
					}
					rows = append(rows, []string{d.EmployeeID, name, d.ArrivalTime, d.DepartureTime, d.ShiftType})
				}
				return rows, nil
			},
		},
	}
}

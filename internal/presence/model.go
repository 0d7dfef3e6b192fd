package presence

import (
	"student-attendance-manager/internal/student"
	"student-attendance-manager/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"
)

type Presence struct {
	bun.BaseModel `bun:"table:presences,alias:p"`

	ID        int              `bun:"id,pk,autoincrement" json:"id"`
	StudentID int              `bun:"student_id,notnull" json:"student_id"`
	Student   *student.Student `bun:"rel:belongs-to,join:student_id=id,on_delete:CASCADE" json:"-"`
	Day       int              `bun:"day,notnull" json:"day"`
	StartTime TimeOfDay        `bun:"start_time,type:time,notnull" json:"start_time"`
	EndTime   TimeOfDay        `bun:"end_time,type:time,notnull" json:"end_time"`
	Room      string           `bun:"room,notnull" json:"room"`
}

// DurationMinutes is the minute difference between end and start.
func (p *Presence) DurationMinutes() int {
	return p.EndTime.Minutes() - p.StartTime.Minutes()
}

// Input holds the raw fields a Presence is built from.
type Input struct {
	StudentID int    `json:"student_id" validate:"required"`
	Day       int    `json:"day" validate:"required,min=1,max=7"`
	StartTime string `json:"start_time" validate:"required,timeofday"`
	EndTime   string `json:"end_time" validate:"required,timeofday"`
	Room      string `json:"room" validate:"required"`
}

var validate = newValidator()

func newValidator() *validation.Validator {
	v := validation.New()

	err := v.RegisterValidation("timeofday", "Not a valid time.", func(fl validator.FieldLevel) bool {
		_, err := ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}

	v.RegisterMessage("after_start", "end_time must be after start_time")
	v.RegisterStructValidation(validateRange, Input{})

	return v
}

func validateRange(sl validator.StructLevel) {
	in := sl.Current().Interface().(Input)

	start, err := ParseTimeOfDay(in.StartTime)
	if err != nil {
		return
	}
	end, err := ParseTimeOfDay(in.EndTime)
	if err != nil {
		return
	}

	if !start.Before(end) {
		sl.ReportError(in.EndTime, "end_time", "EndTime", "after_start", "")
	}
}

// New validates in and returns an unsaved Presence. Failures are *validation.Error.
func New(in Input) (*Presence, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	start, _ := ParseTimeOfDay(in.StartTime)
	end, _ := ParseTimeOfDay(in.EndTime)

	return &Presence{
		StudentID: in.StudentID,
		Day:       in.Day,
		StartTime: start,
		EndTime:   end,
		Room:      in.Room,
	}, nil
}

package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
)

type (
	checkInForm struct {
		Day       string `form:"day"`
		StudentID int    `form:"student_id"`
		CourseID  int    `form:"course_id"`
		Status    string `form:"status"`
	}

	rosterData struct {
		Day        string
		Days       []string
		Statuses   []string
		Rows       []school.RosterRow
		Attendance []school.AttendanceRecord
	}
)

func registerRosterPages(e *echo.Echo, h *handlers) {
	g := e.Group("/roster")
	g.GET("", h.roster)
	g.POST("/checkin", h.checkIn)
}

// rosterPage shows the lessons of day, today when blank.
func (h *handlers) rosterPage(ctx echo.Context, code int, fl *flash, day string) error {
	if day = core.CleanString(day); day == "" {
		day = nowFunc().Weekday().String()
	}
	return h.render(ctx, code, "roster", "Daily roster", fl, rosterData{
		Day:        day,
		Days:       school.Weekdays,
		Statuses:   school.AllStatuses,
		Rows:       h.store.RosterForDay(day),
		Attendance: h.store.ListAttendance(school.AttendanceFilter{}),
	})
}

func (h *handlers) roster(ctx echo.Context) error {
	return h.rosterPage(ctx, http.StatusOK, nil, ctx.QueryParam("day"))
}

func (h *handlers) checkIn(ctx echo.Context) error {
	var form checkInForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.rosterPage(ctx, code, fl, "")
	}
	rec, err := h.store.CheckIn(school.NewCheckIn{StudentID: form.StudentID, CourseID: form.CourseID, Status: form.Status})
	code, fl := h.outcome(ctx, err, "Checked in student #%d to course #%d (%s).", rec.StudentID, rec.CourseID, rec.Status)
	return h.rosterPage(ctx, code, fl, form.Day)
}

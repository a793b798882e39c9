package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/msms/core/school"
)

type (
	courseForm struct {
		CourseID   int    `form:"course_id"`
		Name       string `form:"name"`
		Instrument string `form:"instrument"`
		TeacherID  int    `form:"teacher_id"`
		StudentID  int    `form:"student_id"`
		Day        string `form:"day"`
		StartTime  string `form:"start_time"`
		Room       string `form:"room"`
	}

	courseView struct {
		school.Course
		TeacherName string
	}

	coursesData struct {
		Courses  []courseView
		Teachers []school.Teacher
		Days     []string
	}
)

func registerCoursePages(e *echo.Echo, h *handlers) {
	g := e.Group("/courses")
	g.GET("", h.courses)
	g.POST("", h.addCourse)
	g.POST("/lessons", h.addLesson)
	g.POST("/enroll", h.enroll)
	g.POST("/unenroll", h.unenroll)
	g.POST("/reassign", h.reassignCourse)
}

func (h *handlers) coursesPage(ctx echo.Context, code int, fl *flash) error {
	data := coursesData{Teachers: h.store.Teachers(), Days: school.Weekdays}
	for _, c := range h.store.Courses() {
		name := "?"
		if t, err := h.store.FindTeacherByID(c.TeacherID); err == nil {
			name = t.Name
		}
		data.Courses = append(data.Courses, courseView{Course: c, TeacherName: name})
	}
	return h.render(ctx, code, "courses", "Courses", fl, data)
}

func (h *handlers) courses(ctx echo.Context) error {
	return h.coursesPage(ctx, http.StatusOK, nil)
}

// bindCourseForm binds the posted form, re-rendering the page on failure.
func (h *handlers) bindCourseForm(ctx echo.Context) (courseForm, bool, error) {
	var form courseForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return form, false, h.coursesPage(ctx, code, fl)
	}
	return form, true, nil
}

func (h *handlers) addCourse(ctx echo.Context) error {
	form, ok, err := h.bindCourseForm(ctx)
	if !ok {
		return err
	}
	c, err := h.store.AddCourse(school.NewCourse{Name: form.Name, Instrument: form.Instrument, TeacherID: form.TeacherID})
	code, fl := h.outcome(ctx, err, "Added course #%d %s.", c.ID, c.Name)
	return h.coursesPage(ctx, code, fl)
}

func (h *handlers) addLesson(ctx echo.Context) error {
	form, ok, err := h.bindCourseForm(ctx)
	if !ok {
		return err
	}
	l, err := h.store.AddLesson(form.CourseID, school.NewLesson{Day: form.Day, StartTime: form.StartTime, Room: form.Room})
	code, fl := h.outcome(ctx, err, "Scheduled %s %s in %s for course #%d.", l.Day, l.StartTime, l.Room, form.CourseID)
	return h.coursesPage(ctx, code, fl)
}

func (h *handlers) enroll(ctx echo.Context) error {
	form, ok, err := h.bindCourseForm(ctx)
	if !ok {
		return err
	}
	err = h.store.EnrollStudentInCourse(form.StudentID, form.CourseID)
	code, fl := h.outcome(ctx, err, "Enrolled student #%d in course #%d.", form.StudentID, form.CourseID)
	return h.coursesPage(ctx, code, fl)
}

func (h *handlers) unenroll(ctx echo.Context) error {
	form, ok, err := h.bindCourseForm(ctx)
	if !ok {
		return err
	}
	err = h.store.UnenrollStudent(form.StudentID, form.CourseID)
	code, fl := h.outcome(ctx, err, "Unenrolled student #%d from course #%d.", form.StudentID, form.CourseID)
	return h.coursesPage(ctx, code, fl)
}

func (h *handlers) reassignCourse(ctx echo.Context) error {
	form, ok, err := h.bindCourseForm(ctx)
	if !ok {
		return err
	}
	c, err := h.store.ReassignCourse(form.CourseID, form.TeacherID)
	code, fl := h.outcome(ctx, err, "Course #%d is now taught by teacher #%d.", c.ID, c.TeacherID)
	return h.coursesPage(ctx, code, fl)
}

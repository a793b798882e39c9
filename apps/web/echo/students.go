package echoweb

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/msms/core/school"
)

type (
	studentForm struct {
		ID         int    `form:"id"`
		Name       string `form:"name"`
		Email      string `form:"email"`
		Instrument string `form:"instrument"`
	}

	studentsData struct {
		Query       string
		Exact       *school.Student
		Students    []school.Student
		Suggestions []school.Student
	}
)

func registerStudentPages(e *echo.Echo, h *handlers) {
	g := e.Group("/students")
	g.GET("", h.students)
	g.POST("", h.addStudent)
	g.POST("/register", h.registerStudent)
	g.POST("/update", h.updateStudent)
	g.POST("/:id/delete", h.removeStudent)
	g.GET("/:id/card", h.studentCard)
}

func (h *handlers) studentsPage(ctx echo.Context, code int, fl *flash) error {
	q := ctx.QueryParam("q")
	data := studentsData{Query: q, Students: h.store.FindStudents(q)}
	if st, err := h.store.FindStudentByName(q); err == nil {
		data.Exact = &st
	}
	if q != "" && len(data.Students) == 0 {
		data.Suggestions = h.store.SuggestStudents(q)
	}
	return h.render(ctx, code, "students", "Students", fl, data)
}

func (h *handlers) students(ctx echo.Context) error {
	return h.studentsPage(ctx, http.StatusOK, nil)
}

func (h *handlers) addStudent(ctx echo.Context) error {
	var form studentForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.studentsPage(ctx, code, fl)
	}
	st, err := h.store.AddStudent(school.NewStudent{Name: form.Name, Email: form.Email})
	code, fl := h.outcome(ctx, err, "Added student #%d %s.", st.ID, st.Name)
	return h.studentsPage(ctx, code, fl)
}

func (h *handlers) registerStudent(ctx echo.Context) error {
	var form studentForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.studentsPage(ctx, code, fl)
	}
	st, courseID, err := h.store.RegisterStudent(form.Name, form.Instrument)
	msg := fmt.Sprintf("Registered %s for %s", st.Name, form.Instrument)
	if courseID != 0 {
		msg += fmt.Sprintf(", enrolled in course #%d.", courseID)
	} else {
		msg += ", no course teaches it yet."
	}
	code, fl := h.outcome(ctx, err, "%s", msg)
	return h.studentsPage(ctx, code, fl)
}

func (h *handlers) updateStudent(ctx echo.Context) error {
	var form studentForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.studentsPage(ctx, code, fl)
	}
	st, err := h.store.UpdateStudent(form.ID, school.StudentPatch{Name: optional(form.Name), Email: optional(form.Email)})
	code, fl := h.outcome(ctx, err, "Updated student #%d %s.", st.ID, st.Name)
	return h.studentsPage(ctx, code, fl)
}

func (h *handlers) removeStudent(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err == nil {
		err = h.store.RemoveStudent(id)
	}
	code, fl := h.outcome(ctx, err, "Removed student #%d.", id)
	return h.studentsPage(ctx, code, fl)
}

func (h *handlers) studentCard(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	card, err := h.store.StudentCard(id)
	if err != nil {
		return errors.Wrap(err, "rendering student card")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", school.CardFileName(id)))
	return ctx.String(http.StatusOK, card)
}

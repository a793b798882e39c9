package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/msms/core/school"
)

type (
	teacherForm struct {
		ID         int    `form:"id"`
		Name       string `form:"name"`
		Email      string `form:"email"`
		Speciality string `form:"speciality"`
	}

	teachersData struct {
		Query    string
		Teachers []school.Teacher
	}
)

func registerTeacherPages(e *echo.Echo, h *handlers) {
	g := e.Group("/teachers")
	g.GET("", h.teachers)
	g.POST("", h.addTeacher)
	g.POST("/update", h.updateTeacher)
	g.POST("/:id/delete", h.removeTeacher)
}

func (h *handlers) teachersPage(ctx echo.Context, code int, fl *flash) error {
	q := ctx.QueryParam("q")
	return h.render(ctx, code, "teachers", "Teachers", fl, teachersData{Query: q, Teachers: h.store.FindTeachers(q)})
}

func (h *handlers) teachers(ctx echo.Context) error {
	return h.teachersPage(ctx, http.StatusOK, nil)
}

func (h *handlers) addTeacher(ctx echo.Context) error {
	var form teacherForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.teachersPage(ctx, code, fl)
	}
	t, err := h.store.AddTeacher(school.NewTeacher{Name: form.Name, Email: form.Email, Speciality: form.Speciality})
	code, fl := h.outcome(ctx, err, "Added teacher #%d %s.", t.ID, t.Name)
	return h.teachersPage(ctx, code, fl)
}

func (h *handlers) updateTeacher(ctx echo.Context) error {
	var form teacherForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.teachersPage(ctx, code, fl)
	}
	t, err := h.store.UpdateTeacher(form.ID, school.TeacherPatch{
		Name:       optional(form.Name),
		Email:      optional(form.Email),
		Speciality: optional(form.Speciality),
	})
	code, fl := h.outcome(ctx, err, "Updated teacher #%d %s.", t.ID, t.Name)
	return h.teachersPage(ctx, code, fl)
}

func (h *handlers) removeTeacher(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err == nil {
		err = h.store.RemoveTeacher(id)
	}
	code, fl := h.outcome(ctx, err, "Removed teacher #%d.", id)
	return h.teachersPage(ctx, code, fl)
}

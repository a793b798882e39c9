package echoweb

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
)

var nowFunc = time.Now // mockable

type handlers struct {
	store     *school.RecordStore
	log       core.Logger
	appName   string
	reportDir string
}

func (h *handlers) render(ctx echo.Context, code int, page, title string, fl *flash, data interface{}) error {
	return ctx.Render(code, page, layout{
		AppName: h.appName,
		Title:   title,
		Active:  page,
		Flash:   fl,
		Data:    data,
	})
}

// outcome turns the result of a store call into the status and flash message of the re-rendered page.
func (h *handlers) outcome(ctx echo.Context, err error, format string, args ...interface{}) (int, *flash) {
	if err == nil {
		return http.StatusOK, &flash{Kind: "success", Message: fmt.Sprintf(format, args...)}
	}
	code := statusFor(err)
	message := errorMessage(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", err, map[string]interface{}{
			"path":       ctx.Request().URL.Path,
			"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
		})
		if !ctx.Echo().Debug {
			message = "Something went wrong, nothing was changed. Please try again."
		}
	}
	return code, &flash{Kind: "error", Message: message}
}

func paramID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: name + " must be a number"})
	}
	return id, nil
}

// clearValue is the form value that empties an optional field.
const clearValue = "-"

// optional maps a blank form value to nil, meaning "keep the current value", and clearValue to "".
func optional(s string) *string {
	if s = core.CleanString(s); s == "" {
		return nil
	}
	if s == clearValue {
		s = ""
	}
	return &s
}

type homeData struct {
	Students int
	Teachers int
	Courses  int
	Today    string
	Lessons  int
}

func (h *handlers) home(ctx echo.Context) error {
	today := nowFunc().Weekday().String()
	return h.render(ctx, http.StatusOK, "home", "Dashboard", nil, homeData{
		Students: len(h.store.Students()),
		Teachers: len(h.store.Teachers()),
		Courses:  len(h.store.Courses()),
		Today:    today,
		Lessons:  len(h.store.RosterForDay(today)),
	})
}

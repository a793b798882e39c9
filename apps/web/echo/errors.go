package echoweb

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/msms/core"
)

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch origErr := errors.Cause(err).(type) {
	case *echo.HTTPError:
		return origErr.Code
	case *core.ValidationError:
		return http.StatusBadRequest
	case *core.NotFoundError:
		return http.StatusNotFound
	case *core.ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	if he, ok := errors.Cause(err).(*echo.HTTPError); ok {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler rendering errors as an HTML page.
func newAppHTTPErrorHandler(appName string, logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code := statusFor(err)
		message := errorMessage(err)
		if code >= http.StatusInternalServerError {
			logger.Error(http.StatusText(code), err, map[string]interface{}{
				"path":       ctx.Request().URL.Path,
				"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
			})
			if !ctx.Echo().Debug {
				message = http.StatusText(code)
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.Render(code, "error", layout{AppName: appName, Title: http.StatusText(code), Data: message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

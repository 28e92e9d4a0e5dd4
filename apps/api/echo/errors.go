package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/directory"
)

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case *core.ValidationError:
			code = http.StatusBadRequest
			if errors.Is(origErr, core.ErrDuplicateKey) {
				code = http.StatusConflict
			}
			if len(origErr.Fields) > 0 {
				message = origErr.FieldMap()
			} else {
				message = origErr.Error()
			}
		default:
			if errors.Is(err, core.ErrNotFound) {
				code = http.StatusNotFound
				message = origErr.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			logger.Error(msg, errors.Wrap(err, ctx.Request().Method+" "+ctx.Path()), requestExtras(ctx))
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// requestExtras describes the failed request and the object it addressed, for error reports.
func requestExtras(ctx echo.Context) map[string]interface{} {
	extras := map[string]interface{}{
		"method":     ctx.Request().Method,
		"path":       ctx.Path(),
		"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
	}
	switch obj := ctx.Get(contextObjectKey).(type) {
	case directory.Student:
		extras["student_id"] = obj.ID
	case directory.Subject:
		extras["subject_code"] = obj.Code
	}
	return extras
}

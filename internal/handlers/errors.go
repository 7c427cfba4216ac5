package handlers

import (
	"net/http"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders every failure as {"message": ...}. Service
// errors carry their own status; echo errors keep theirs; anything else is
// an internal error and is logged.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status  int
		message string
	)
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		message = http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		if he.Internal != nil {
			log.Log.WithError(he.Internal).Debug("echo error")
		}
	} else {
		kind := apperr.KindOf(err)
		status = apperr.HTTPStatus(kind)
		message = apperr.MessageOf(err)
		if kind == apperr.KindInternal {
			log.Log.WithError(err).WithField("path", c.Path()).Errorf("%+v", err)
		}
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, echo.Map{"message": message})
	}
	if writeErr != nil {
		log.Log.WithError(writeErr).Error("failed to write error response")
	}
}

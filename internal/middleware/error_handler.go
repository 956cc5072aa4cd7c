package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ErrorResponse is the JSON body returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONErrorHandler creates a custom error handler for Echo. Every failure
// path renders a JSON body; clients can always degrade to an empty state
// instead of crashing on an HTML error page.
func JSONErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok && msg != "" {
			message = msg
		} else {
			switch code {
			case http.StatusNotFound:
				message = "The requested resource doesn't exist."
			case http.StatusForbidden:
				message = "You don't have permission to access this resource."
			case http.StatusUnauthorized:
				message = "Identify yourself with the " + UserIDHeader + " header."
			case http.StatusBadRequest:
				message = "The request could not be processed."
			}
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		code = http.StatusNotFound
		message = "The requested resource doesn't exist."
	}

	c.Logger().Error(err)

	if writeErr := c.JSON(code, ErrorResponse{Error: message}); writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireUser(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID uint
	}{
		{"valid id", "42", http.StatusOK, 42},
		{"missing header", "", http.StatusUnauthorized, 0},
		{"non-numeric id", "alice", http.StatusUnauthorized, 0},
		{"zero id", "0", http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var gotUserID uint
			handler := RequireUser()(func(c echo.Context) error {
				gotUserID = UserID(c)
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)

			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUserID, gotUserID)
				return
			}

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
		})
	}
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, uint(0), UserID(c))
}

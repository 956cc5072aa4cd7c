package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/models"
)

// uintParam parses a numeric path parameter
func uintParam(c echo.Context, name string) (uint, error) {
	val, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(val), nil
}

// requireCircleAdmin checks that userID is an ADMIN member of the circle
func requireCircleAdmin(db *gorm.DB, circleID, userID uint) error {
	var membership models.Membership
	err := db.Where("circle_id = ? AND user_id = ?", circleID, userID).First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusForbidden, "not a member of this circle")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check membership")
	}
	if membership.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "admin role required")
	}
	return nil
}

package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

// ActorHeader carries the administrator written to UpdatedBy.
const ActorHeader = "X-Actor"

const defaultActor = "system"

func actorFromContext(c *gin.Context) string {
	if actor := strings.TrimSpace(c.GetHeader(ActorHeader)); actor != "" {
		return actor
	}
	return defaultActor
}

type monthQuery struct {
	Department string
	Year       int
	Month      int
}

// parseMonthQuery reads department and month (yyyy-MM) from the query string.
// A blank department falls back to fallback.
func parseMonthQuery(c *gin.Context, fallback string) (monthQuery, error) {
	department := strings.TrimSpace(c.Query("department"))
	if department == "" {
		department = fallback
	}
	if department == "" {
		return monthQuery{}, appErrors.Validation("department is required")
	}
	year, month, err := models.ParseMonth(c.Query("month"))
	if err != nil {
		return monthQuery{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "month must be yyyy-MM")
	}
	return monthQuery{Department: department, Year: year, Month: month}, nil
}

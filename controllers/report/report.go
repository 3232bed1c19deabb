package reportControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendora/storefront-api/services"
)

// POST /admin/reports/daily
// Sends the sales report for a day on demand. Defaults to today; an optional
// ?date=YYYY-MM-DD picks another day.
func TriggerDailyReport(svc *services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		day := time.Now()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
				return
			}
			day = parsed
		}

		if err := svc.SendDailyReport(c.Request.Context(), day); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Report sent"})
	}
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trendora/storefront-api/mail"
	"github.com/trendora/storefront-api/models"
	"github.com/trendora/storefront-api/store"
)

// ReportService formats and mails the plain-text daily sales summary.
type ReportService struct {
	store      store.Store
	orders     *OrderService
	mailer     mail.Mailer
	adminEmail string
}

func NewReportService(s store.Store, orders *OrderService, mailer mail.Mailer, adminEmail string) *ReportService {
	return &ReportService{store: s, orders: orders, mailer: mailer, adminEmail: adminEmail}
}

// SendDailyReport mails the sales summary for the given day to the admin
// address. A day with no orders logs and sends nothing.
func (s *ReportService) SendDailyReport(ctx context.Context, day time.Time) error {
	orders, err := s.orders.OrdersForDay(ctx, day)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		logger.Info().Str("date", day.Format("2006-01-02")).Msg("no sales, skipping daily report")
		return nil
	}

	body := s.BuildDailyReport(ctx, day, orders)
	subject := "Daily Sales Report - " + day.Format("2006-01-02")
	if err := s.mailer.Send(s.adminEmail, subject, body); err != nil {
		logger.Error().Err(err).Msg("failed to send daily sales report")
		return err
	}
	logger.Info().Str("to", s.adminEmail).Int("orders", len(orders)).Msg("daily sales report sent")
	return nil
}

// BuildDailyReport renders the report body for a day's orders.
func (s *ReportService) BuildDailyReport(ctx context.Context, day time.Time, orders []models.Order) string {
	date := day.Format("2006-01-02")

	totalSales := decimal.Zero
	for _, o := range orders {
		totalSales = totalSales.Add(o.TotalAmount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily Sales Report for %s\n\n", date)
	fmt.Fprintf(&b, "Total Orders: %d\n", len(orders))
	fmt.Fprintf(&b, "Total Sales: $%s\n\n", totalSales.StringFixed(2))
	b.WriteString("Orders:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")

	for _, o := range orders {
		fmt.Fprintf(&b, "Order #%d\n", o.ID)
		if u, err := s.store.Users().Get(ctx, o.UserID); err == nil {
			fmt.Fprintf(&b, "User: %s (%s)\n", u.Name, u.Email)
		} else {
			fmt.Fprintf(&b, "User: %s\n", o.UserID)
		}
		fmt.Fprintf(&b, "Amount: $%s\n", o.TotalAmount.StringFixed(2))
		b.WriteString("Items:\n")
		for _, item := range o.Items {
			fmt.Fprintf(&b, "  - %s x %d @ $%s\n", item.ProductName, item.Quantity, item.Price.StringFixed(2))
		}
		b.WriteString("\n")
	}

	return b.String()
}

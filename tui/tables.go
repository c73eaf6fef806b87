package tui

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"cinebook-cli/model"
)

// renderReportTables lays out the three admin dashboards as text tables.
// Render returns the string instead of mirroring to stdout so the tables
// compose into the bubbletea view.
func renderReportTables(trends []model.BookingTrend, sales []model.SalesPerformance, activity []model.UserActivity) string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Booking Trends") + "\n")
	b.WriteString(trendsTable(trends) + "\n\n")

	b.WriteString(labelStyle.Render("Sales Performance") + "\n")
	b.WriteString(salesTable(sales) + "\n\n")

	b.WriteString(labelStyle.Render("User Activity") + "\n")
	b.WriteString(activityTable(activity) + "\n")

	return b.String()
}

func trendsTable(trends []model.BookingTrend) string {
	t := newReportTable(table.Row{"Period", "Bookings"})
	for _, row := range trends {
		t.AppendRow(table.Row{row.Period, formatCount(row.Bookings)})
	}
	return renderOrEmpty(t, len(trends))
}

func salesTable(sales []model.SalesPerformance) string {
	t := newReportTable(table.Row{"Period", "Revenue", "Tickets"})
	for _, row := range sales {
		t.AppendRow(table.Row{row.Period, fmt.Sprintf("$%.2f", row.Revenue), formatCount(row.Tickets)})
	}
	return renderOrEmpty(t, len(sales))
}

func activityTable(activity []model.UserActivity) string {
	t := newReportTable(table.Row{"Period", "Active Users", "New Users"})
	for _, row := range activity {
		t.AppendRow(table.Row{row.Period, formatCount(row.ActiveUsers), formatCount(row.NewUsers)})
	}
	return renderOrEmpty(t, len(activity))
}

func newReportTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(header)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	return t
}

func renderOrEmpty(t table.Writer, rows int) string {
	if rows == 0 {
		return hint("No data for this report yet.")
	}
	return t.Render()
}

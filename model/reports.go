package model

// Report rows from GET /reports/*. The dashboard treats these as opaque
// aggregates; the client only formats them.

type BookingTrend struct {
	Period   string `json:"period"`
	Bookings int    `json:"bookings"`
}

type SalesPerformance struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Tickets int     `json:"tickets"`
}

type UserActivity struct {
	Period      string `json:"period"`
	ActiveUsers int    `json:"activeUsers"`
	NewUsers    int    `json:"newUsers"`
}

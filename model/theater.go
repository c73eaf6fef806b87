package model

type Theater struct {
	Id        string   `json:"_id"`
	Name      string   `json:"name"`
	Showtimes []string `json:"showtimes"`
	SeatPrice float64  `json:"seatPrice"`
}

package domain

type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Removed bool   `json:"removed"`
}

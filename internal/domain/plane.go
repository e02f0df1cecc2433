package domain

type Plane struct {
	ID        int64  `json:"id"`
	Model     string `json:"model"`
	Capacity  int    `json:"capacity"`
	AirlineID int64  `json:"airline_id"`
}

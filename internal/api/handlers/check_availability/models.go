package check_availability

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	HallID    int64  `json:"hallId"`
	Date      string `json:"date"`
	Shift     string `json:"shift"`
	Available bool   `json:"available"`
}

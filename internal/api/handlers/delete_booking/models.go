package delete_booking

// DeleteBookingResponse HTTP response model
type DeleteBookingResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

package models

import (
	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-GigBookingService/internal/service/bookings/models"
)

// PartyView сторона бронирования, как её видит экран
// Если пользователя нет в Identity Store - заполнен только ID
type PartyView struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`

	// Только для музыканта
	Instruments   *string  `json:"instruments,omitempty"`
	Location      *string  `json:"location,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	RatingsCount  *int     `json:"ratingsCount,omitempty"`
}

// BookingView бронирование вместе со сторонами и признаком оценки
type BookingView struct {
	bookingModels.BookingResponse

	Contractor PartyView `json:"contractor"`
	Musician   PartyView `json:"musician"`
	Rated      bool      `json:"rated"`
}

// BookingViewList список представлений бронирований
type BookingViewList struct {
	Bookings []BookingView `json:"bookings"`
}

// FromDomainUser строит представление стороны; user == nil даёт представление только с ID
func FromDomainUser(id string, user *domain.User) PartyView {
	view := PartyView{ID: id}
	if user == nil {
		return view
	}

	if user.Name != "" {
		name := user.Name
		view.Name = &name
	}
	view.Email = user.Email
	view.Phone = user.Phone

	if user.Musician != nil {
		avg := user.Musician.AverageRating
		count := user.Musician.RatingsCount
		view.Instruments = user.Musician.Instruments
		view.Location = user.Musician.Location
		view.AverageRating = &avg
		view.RatingsCount = &count
	}

	return view
}

package domain

import (
	"errors"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

var (
	// ErrUnknownStatus возвращается, когда строка не соответствует ни одному статусу
	ErrUnknownStatus = errors.New("domain: unknown booking status")

	// ErrTransitionNotAllowed возвращается при переходе, которого нет в автомате статусов
	ErrTransitionNotAllowed = errors.New("domain: status transition not allowed")
)

// statusAliases значения статусов, которые присылают старые клиенты (pt-BR)
var statusAliases = map[string]BookingStatus{
	"pending":    StatusPending,
	"pendente":   StatusPending,
	"confirmed":  StatusConfirmed,
	"confirmado": StatusConfirmed,
	"aceito":     StatusConfirmed,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
	"cancelado":  StatusCancelled,
	"recusado":   StatusCancelled,
}

// allowedTransitions автомат статусов: confirmed и cancelled терминальные
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending: {StatusConfirmed, StatusCancelled},
}

// ParseBookingStatus приводит строку к одному из канонических статусов
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// Booking represents a hiring of a musician by a contractor for an event
type Booking struct {
	ID           string
	ContractorID string
	MusicianID   string

	// Denormalized data for history
	ContractorName *string
	MusicianName   *string
	Instruments    *string

	EventDate string // YYYY-MM-DD
	EventTime *string
	Location  *string
	Notes     *string
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo returns true if the status machine allows moving to next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the booking to next if the status machine allows it
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !b.CanTransitionTo(next) {
		return ErrTransitionNotAllowed
	}
	b.Status = next
	return nil
}

// IsConfirmed returns true if the musician has accepted the booking
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return len(allowedTransitions[b.Status]) == 0
}

// IsParty returns true if userID is the contractor or the musician of the booking
func (b *Booking) IsParty(userID string) bool {
	return userID != "" && (b.ContractorID == userID || b.MusicianID == userID)
}

// PartyFilter фильтр для выборки бронирований одной из сторон
type PartyFilter struct {
	PartyID string
	Role    Role // RoleContractor или RoleMusician
}

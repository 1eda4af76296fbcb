package domain

import "github.com/google/uuid"

// IsBookingID проверяет, что id похож на идентификатор бронирования или оценки
// Идентификаторы пользователей непрозрачны и не проверяются
func IsBookingID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

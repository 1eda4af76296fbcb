package domain

// Role роль пользователя в Identity Store
type Role string

const (
	RoleContractor Role = "contractor"
	RoleMusician   Role = "musician"
	RoleAdmin      Role = "admin"
)

// IsValid returns true for the roles the service knows about
func (r Role) IsValid() bool {
	return r == RoleContractor || r == RoleMusician || r == RoleAdmin
}

// User represents an Identity Store entry as seen by the core
type User struct {
	ID    string
	Name  string
	Email *string
	Phone *string
	Role  Role

	// Заполнено только для музыкантов
	Musician *MusicianProfile
}

// MusicianProfile профиль музыканта с текущим средним рейтингом
type MusicianProfile struct {
	Instruments   *string
	Location      *string
	Description   *string
	AverageRating float64
	RatingsCount  int
}

// Actor аутентифицированный вызывающий
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin returns true for administrative actors
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Is returns true if the actor is the given user
func (a Actor) Is(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}

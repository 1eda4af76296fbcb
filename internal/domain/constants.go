package domain

// Business validation constants
const (
	MinRatingScore     = 1
	MaxRatingScore     = 5
	MaxNotesLength     = 1000
	MaxLocationLength  = 255
	MaxCommentLength   = 1000
	MaxEventTimeLength = 32
)

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

package entity

type UserRole string

const (
	RoleUser        UserRole = "user"
	RoleInterviewer UserRole = "interviewer"
	RoleAdmin       UserRole = "admin"
)

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`

	// Interviewer-only fields; zero-values for regular users.
	Approved    bool  `db:"approved"`
	Verified    bool  `db:"verified"`
	Blocked     bool  `db:"blocked"`
	SessionRate int64 `db:"session_rate"`
}

// CanTakeBookings reports whether an interviewer may be booked.
func (u *User) CanTakeBookings() bool {
	return u.Role == RoleInterviewer && u.Approved && u.Verified && !u.Blocked && u.IsActive
}

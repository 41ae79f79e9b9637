package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // manages settings, trainees and users
	RoleSupervisor Role = "supervisor" // reviews attendance and reports
	RoleKiosk      Role = "kiosk"      // scan terminal account
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleKiosk:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can manage settings
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

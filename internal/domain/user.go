package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID                uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string     `json:"name" gorm:"not null"`
	Email             string     `json:"email" gorm:"uniqueIndex;not null"`
	Password          string     `json:"-" gorm:"not null"`
	Role              Role       `json:"role" gorm:"type:enum('user','admin');default:'user'"`
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// HasRole reports whether the user's role is one of the allowed set.
func (u *User) HasRole(allowed ...Role) bool {
	for _, r := range allowed {
		if u.Role == r {
			return true
		}
	}
	return false
}

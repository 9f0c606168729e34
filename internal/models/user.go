package models

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleKasir UserRole = "kasir"
)

type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"passwordHash"`
	Role         UserRole `json:"role"`
}

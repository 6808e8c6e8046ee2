package helpers

// Principal is the immutable identity the auth middleware resolves from a
// token and threads into every downstream handler.
type Principal struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
}

// Helper methods for role checking
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

func (p Principal) IsEmployer() bool {
	return p.Role == "employer"
}

func (p Principal) IsDeveloper() bool {
	return p.Role == "developer"
}

func (p Principal) HasRole(role string) bool {
	return p.Role == role
}

func (p Principal) IsOwner(userID string) bool {
	return p.UserID == userID
}

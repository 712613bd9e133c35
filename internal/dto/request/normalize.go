package request

import "strings"

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeEmailPtr(email *string) {
	if email != nil {
		*email = NormalizeEmail(*email)
	}
}

// Normalize must run before validation.
func (r *RegisterRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r *UpdateUserRequest) Normalize() {
	normalizeEmailPtr(r.Email)
}

func (r *CreateCardRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r *UpdateCardRequest) Normalize() {
	normalizeEmailPtr(r.Email)
}

package request

type RegisterRequest struct {
	Name       NameRequest    `json:"name" validate:"required"`
	Email      string         `json:"email" validate:"required,email"`
	Password   string         `json:"password" validate:"required,password"`
	Phone      string         `json:"phone" validate:"required,phone"`
	Address    AddressRequest `json:"address" validate:"required"`
	Image      ImageRequest   `json:"image" validate:"required"`
	IsBusiness bool           `json:"isBusiness"`
}

// LoginRequest carries no password rules so a wrong password is 401, not 400.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

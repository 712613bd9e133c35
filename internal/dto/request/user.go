package request

// UpdateUserRequest is a partial profile. Role flags are not patchable here.
type UpdateUserRequest struct {
	Name     *NameRequest    `json:"name,omitempty" validate:"omitempty"`
	Email    *string         `json:"email,omitempty" validate:"omitempty,email"`
	Password *string         `json:"password,omitempty" validate:"omitempty,password"`
	Phone    *string         `json:"phone,omitempty" validate:"omitempty,phone"`
	Address  *AddressRequest `json:"address,omitempty" validate:"omitempty"`
	Image    *ImageRequest   `json:"image,omitempty" validate:"omitempty"`
}

func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil &&
		r.Phone == nil && r.Address == nil && r.Image == nil
}

type BusinessStatusRequest struct {
	IsBusiness *bool `json:"isBusiness" validate:"required"`
}

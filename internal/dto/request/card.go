package request

type CreateCardRequest struct {
	Title       string         `json:"title" validate:"required,min=2,max=100"`
	Subtitle    string         `json:"subtitle" validate:"required,min=2,max=100"`
	Description string         `json:"description" validate:"required,min=10,max=500"`
	Phone       string         `json:"phone" validate:"required,phone"`
	Email       string         `json:"email" validate:"required,email"`
	Web         *string        `json:"web,omitempty" validate:"omitempty,url"`
	Image       ImageRequest   `json:"image" validate:"required"`
	Address     AddressRequest `json:"address" validate:"required"`
}

type UpdateCardRequest struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	Subtitle    *string         `json:"subtitle,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,min=10,max=500"`
	Phone       *string         `json:"phone,omitempty" validate:"omitempty,phone"`
	Email       *string         `json:"email,omitempty" validate:"omitempty,email"`
	Web         *string         `json:"web,omitempty" validate:"omitempty,url"`
	Image       *ImageRequest   `json:"image,omitempty" validate:"omitempty"`
	Address     *AddressRequest `json:"address,omitempty" validate:"omitempty"`
}

// IsEmpty reports whether the patch names no field at all.
func (r *UpdateCardRequest) IsEmpty() bool {
	return r.Title == nil && r.Subtitle == nil && r.Description == nil && r.Phone == nil &&
		r.Email == nil && r.Web == nil && r.Image == nil && r.Address == nil
}

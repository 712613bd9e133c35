package request

type NameRequest struct {
	First  string `json:"first" validate:"required,min=2,max=50"`
	Middle string `json:"middle,omitempty" validate:"omitempty,min=2,max=50"`
	Last   string `json:"last" validate:"required,min=2,max=50"`
}

type AddressRequest struct {
	State       string `json:"state,omitempty" validate:"omitempty,min=2,max=256"`
	Country     string `json:"country" validate:"required,min=2,max=256"`
	City        string `json:"city" validate:"required,min=2,max=256"`
	Street      string `json:"street" validate:"required,min=2,max=256"`
	HouseNumber int    `json:"houseNumber" validate:"required,min=1"`
	Zip         string `json:"zip,omitempty" validate:"omitempty,zip"`
}

type ImageRequest struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt" validate:"required,min=2,max=100"`
}

package entity

// Name, Address and Image are stored as JSONB columns.
type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

type Address struct {
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber int    `json:"houseNumber"`
	Zip         string `json:"zip,omitempty"`
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type User struct {
	Base
	Name         Name    `db:"name"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password"`
	Phone        string  `db:"phone"`
	Address      Address `db:"address"`
	Image        Image   `db:"image"`
	IsBusiness   bool    `db:"is_business"`
	IsAdmin      bool    `db:"is_admin"`

	// Derived on read from cards and card_likes.
	CreatedCards []string `db:"-"`
	LikedCards   []string `db:"-"`
}

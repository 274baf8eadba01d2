package kitab

import "time"

type Kitab struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	NameArabic  string    `json:"name_arabic"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateKitabRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	NameArabic  string `json:"name_arabic" validate:"max=200"`
	Description string `json:"description"`
}

// UpdateKitabRequest only touches the fields that are set.
type UpdateKitabRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameArabic  *string `json:"name_arabic,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBrandingThemeRequest struct {
	Name           string `json:"name" validate:"required,max=80"`
	PrimaryColor   string `json:"primary_color" validate:"required,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"required,hexcolor"`
	AccentColor    string `json:"accent_color" validate:"omitempty,hexcolor"`
	LogoUrl        string `json:"logo_url" validate:"omitempty,url"`
	FontFamily     string `json:"font_family"`
	Activate       bool   `json:"activate"`
}

type BrandingThemeResponse struct {
	Id             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	PrimaryColor   string     `json:"primary_color"`
	SecondaryColor string     `json:"secondary_color"`
	AccentColor    string     `json:"accent_color"`
	LogoUrl        string     `json:"logo_url"`
	FontFamily     string     `json:"font_family"`
	IsActive       bool       `json:"is_active"`
	IsDefault      bool       `json:"is_default"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

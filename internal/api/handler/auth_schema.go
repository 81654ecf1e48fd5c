package handler

import "github.com/woiya/marketplace/internal/core/domain"

type locationRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

type registerRequest struct {
	Email    string           `json:"email"     validate:"required,email"`
	Password string           `json:"password"  validate:"required,min=6,max=72"`
	FullName string           `json:"full_name" validate:"required,max=120"`
	Phone    string           `json:"phone"     validate:"required,max=32"`
	Role     string           `json:"role"      validate:"required,oneof=pencari_jasa penyedia_jasa"`
	Location *locationRequest `json:"location"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

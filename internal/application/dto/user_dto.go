package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Role      string `json:"role" validate:"required,oneof=admin gestor lector"`
}

// UpdateUserRequest entrada para actualizar nombre, rol o estado.
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,max=200"`
	Role   string `json:"role" validate:"omitempty,oneof=admin gestor lector"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// UserResponse salida de un usuario (sin password ni secreto TOTP).
type UserResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	TwoFactorMethod string    `json:"two_factor_method,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

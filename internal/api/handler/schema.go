package handler

import (
	"time"

	"github.com/bookstore/catalog-api/internal/core/validation"
)

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// bookRequest is the create/update schema. Numbers accept numeric strings;
// a missing field fails "required" while 0 stays valid.
type bookRequest struct {
	Title         string            `json:"title"         validate:"required"`
	Author        string            `json:"author"        validate:"required"`
	Category      string            `json:"category"      validate:"required"`
	Price         validation.Number `json:"price"         validate:"required,isnumber,min=0" swaggertype:"number"`
	Rating        validation.Number `json:"rating"        validate:"required,isnumber,min=0,max=5" swaggertype:"number"`
	PublishedDate string            `json:"publishedDate" validate:"required,isodate"`
}

// --- Response types ---
// Every body carries "success"; errors are rendered by the HTTP error handler.

type userResponse struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type meResponse struct {
	Success bool         `json:"success"`
	Data    userResponse `json:"data"`
}

type bookResponse struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	Rating        float64   `json:"rating"`
	PublishedDate time.Time `json:"publishedDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

type bookEnvelope struct {
	Success bool         `json:"success"`
	Data    bookResponse `json:"data"`
}

type listBooksResponse struct {
	Success     bool           `json:"success"`
	Count       int            `json:"count"`
	Total       int64          `json:"total"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Limit       int            `json:"limit"`
	Data        []bookResponse `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")

// Book is a catalog entry. Every persisted Book satisfies the constraints
// declared on BookInput.
type Book struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	Rating        float64   `json:"rating"`
	PublishedDate time.Time `json:"publishedDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookInput carries the writable fields of a Book. Numeric fields are
// pointers so that an absent value can be told apart from zero.
type BookInput struct {
	Title         string     `validate:"required"`
	Author        string     `validate:"required"`
	Category      string     `validate:"required"`
	Price         *float64   `validate:"required,min=0"`
	Rating        *float64   `validate:"required,min=0,max=5"`
	PublishedDate *time.Time `validate:"required"`
}

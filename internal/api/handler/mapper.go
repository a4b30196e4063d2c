package handler

import (
	"strings"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
	"github.com/bookstore/catalog-api/internal/core/validation"
)

// --- Request → Service input ---

func (r *bookRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Category = strings.TrimSpace(r.Category)
	r.PublishedDate = strings.TrimSpace(r.PublishedDate)
}

// toBookInput assumes r has passed validation, so the date parses.
func toBookInput(r bookRequest) domain.BookInput {
	in := domain.BookInput{
		Title:    r.Title,
		Author:   r.Author,
		Category: r.Category,
		Price:    r.Price.Float64(),
		Rating:   r.Rating.Float64(),
	}
	if d, err := validation.ParseDate(r.PublishedDate); err == nil {
		in.PublishedDate = &d
	}
	return in
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Success: true,
		Token:   r.Token,
		User:    toUserResponse(r.User),
	}
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Category:      b.Category,
		Price:         b.Price,
		Rating:        b.Rating,
		PublishedDate: b.PublishedDate.UTC(),
		CreatedAt:     b.CreatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListBooksResult) listBooksResponse {
	items := make([]bookResponse, len(r.Items))
	for i, b := range r.Items {
		items[i] = toBookResponse(b)
	}
	return listBooksResponse{
		Success:     true,
		Count:       r.Count,
		Total:       r.Total,
		TotalPages:  r.TotalPages,
		CurrentPage: r.CurrentPage,
		Limit:       r.Limit,
		Data:        items,
	}
}

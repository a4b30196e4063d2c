package ports

import (
	"context"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// ListBooksInput carries the raw list parameters as received by the
// transport layer. Page, Limit and Rating are left unparsed; the service
// applies defaults.
type ListBooksInput struct {
	Author   string
	Category string
	Rating   string
	Title    string
	Page     string
	Limit    string
	Sort     string
}

// ListBooksResult is one page of a book listing.
type ListBooksResult struct {
	Items       []*domain.Book
	Count       int
	Total       int64
	TotalPages  int
	CurrentPage int
	Limit       int
}

// BookService defines the use-case operations on the catalog.
type BookService interface {
	Create(ctx context.Context, input domain.BookInput) (*domain.Book, error)
	List(ctx context.Context, input ListBooksInput) (*ListBooksResult, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Update(ctx context.Context, id string, input domain.BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

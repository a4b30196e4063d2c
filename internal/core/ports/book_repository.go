package ports

import (
	"context"
	"time"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// SortSpec orders a book listing by a single field.
type SortSpec struct {
	Field string
	Desc  bool
}

// ListBooksFilter carries the normalized query for a book listing. Zero
// values mean "no constraint".
type ListBooksFilter struct {
	Author    string
	Category  string
	MinRating *float64
	Title     string // case-insensitive substring
	Sort      SortSpec
	Skip      int64
	Limit     int64
}

// BookRepository defines persistence operations for books. Every method
// returning a single book reports domain.ErrBookNotFound for absent and
// malformed IDs alike.
type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, int64, error)
	// Replace overwrites the writable fields of an existing book and returns
	// the updated document. No write happens when the ID does not match.
	Replace(ctx context.Context, id string, b *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

// BookCache is an optional read-through cache in front of BookRepository.
// Every key carries a generation that Invalidate advances.
type BookCache interface {
	// Get returns ErrCacheMiss together with the key's current generation
	// when the book is not cached.
	Get(ctx context.Context, id string) (*domain.Book, int64, error)
	// Set stores b only while the key is still at generation gen, and
	// returns ErrCacheStale otherwise.
	Set(ctx context.Context, b *domain.Book, gen int64, ttl time.Duration) error
	Invalidate(ctx context.Context, id string) error
}

// CacheError represents a cache error type.
type CacheError string

// ErrCacheMiss is returned by BookCache.Get when the key is not cached.
const ErrCacheMiss CacheError = "cache miss"

// ErrCacheStale is returned by BookCache.Set when the key was invalidated
// after the generation was read.
const ErrCacheStale CacheError = "cache generation changed"

func (e CacheError) Error() string {
	return string(e)
}

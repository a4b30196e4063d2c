package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
	"github.com/bookstore/catalog-api/internal/core/validation"
)

const (
	defaultPage     = 1
	defaultLimit    = 10
	defaultCacheTTL = 5 * time.Minute
	defaultSort     = "createdAt"
)

// sortableFields lists the book fields a listing may be ordered by.
var sortableFields = map[string]struct{}{
	"title":         {},
	"author":        {},
	"category":      {},
	"price":         {},
	"rating":        {},
	"publishedDate": {},
	"createdAt":     {},
}

// BookService implements ports.BookService on top of a BookRepository,
// with an optional read-through cache for single-book lookups.
type BookService struct {
	repo     ports.BookRepository
	cache    ports.BookCache
	cacheTTL time.Duration
	validate *validation.Validator
	logger   zerolog.Logger
}

// NewBookService wires the service. A nil cache disables caching.
func NewBookService(repo ports.BookRepository, cache ports.BookCache, cacheTTL time.Duration, logger zerolog.Logger) *BookService {
	if cache == nil {
		cache = nopCache{}
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &BookService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		validate: validation.New(),
		logger:   logger,
	}
}

func (s *BookService) Create(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	input = normalizeInput(input)
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	book := toBook(input)
	book.CreatedAt = time.Now().UTC()

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create book")
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("category", created.Category).Msg("book created")
	return created, nil
}

// List translates raw query parameters into a repository filter and returns
// one page of results with pagination totals.
func (s *BookService) List(ctx context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error) {
	page := parsePositive(input.Page, defaultPage)
	limit := parsePositive(input.Limit, defaultLimit)

	filter := ports.ListBooksFilter{
		Author:   input.Author,
		Category: input.Category,
		Title:    input.Title,
		Sort:     parseSort(input.Sort),
		Skip:     int64(page-1) * int64(limit),
		Limit:    int64(limit),
	}
	if r, err := strconv.ParseFloat(strings.TrimSpace(input.Rating), 64); err == nil && !math.IsNaN(r) {
		filter.MinRating = &r
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Book{}
	}

	return &ports.ListBooksResult{
		Items:       items,
		Count:       len(items),
		Total:       total,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
		Limit:       limit,
	}, nil
}

// GetByID reads through the cache. A miss carries the key's generation; the
// book read from the store is cached only if no write invalidated the key
// in between.
func (s *BookService) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	cached, gen, err := s.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	cacheable := errors.Is(err, ports.ErrCacheMiss)
	if !cacheable {
		s.logger.Warn().Err(err).Str("book_id", id).Msg("book cache read failed")
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, book, gen, s.cacheTTL); err != nil && !errors.Is(err, ports.ErrCacheStale) {
			s.logger.Warn().Err(err).Str("book_id", id).Msg("book cache write failed")
		}
	}
	return book, nil
}

// Update validates the payload before touching the store, then replaces
// the book's writable fields. createdAt is preserved.
func (s *BookService) Update(ctx context.Context, id string, input domain.BookInput) (*domain.Book, error) {
	input = normalizeInput(input)
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		return nil, fmt.Errorf("invalidate cached book: %w", err)
	}

	updated, err := s.repo.Replace(ctx, id, toBook(input))
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("book_id", id).Msg("book updated")
	return updated, nil
}

// Delete removes the book. Writes are refused while the cache cannot be
// invalidated, so a cached copy never outlives the stored one.
func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		return fmt.Errorf("invalidate cached book: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

// invalidate runs after a write. It bumps the generation again so a read
// that loaded the old document during the write cannot cache it.
func (s *BookService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("book_id", id).Msg("book cache invalidation failed")
	}
}

func normalizeInput(in domain.BookInput) domain.BookInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

// toBook assumes in has passed validation.
func toBook(in domain.BookInput) *domain.Book {
	return &domain.Book{
		Title:         in.Title,
		Author:        in.Author,
		Category:      in.Category,
		Price:         *in.Price,
		Rating:        *in.Rating,
		PublishedDate: in.PublishedDate.UTC(),
	}
}

// parsePositive returns def when s is empty, malformed or below 1.
func parsePositive(s string, def int) int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || n < 1 {
		return def
	}
	return int(n)
}

// parseSort reads "field" or "field:desc". Unknown fields fall back to
// newest first.
func parseSort(s string) ports.SortSpec {
	field, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
	if _, ok := sortableFields[field]; !ok {
		return ports.SortSpec{Field: defaultSort, Desc: true}
	}
	return ports.SortSpec{Field: field, Desc: strings.EqualFold(dir, "desc")}
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (*domain.Book, int64, error) {
	return nil, 0, ports.ErrCacheMiss
}

func (nopCache) Set(context.Context, *domain.Book, int64, time.Duration) error { return nil }

func (nopCache) Invalidate(context.Context, string) error { return nil }

package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

type stubBookService struct {
	createFn func(ctx context.Context, input domain.BookInput) (*domain.Book, error)
	listFn   func(ctx context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Book, error)
	updateFn func(ctx context.Context, id string, input domain.BookInput) (*domain.Book, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBookService) Create(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookService) List(ctx context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubBookService) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) Update(ctx context.Context, id string, input domain.BookInput) (*domain.Book, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubBookService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

const duneJSON = `{"title":"  Dune ","author":"Frank Herbert","category":"SciFi","price":9.99,"rating":4.5,"publishedDate":"1965-08-01"}`

func bookFromInput(id string, in domain.BookInput) *domain.Book {
	return &domain.Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		Category:      in.Category,
		Price:         *in.Price,
		Rating:        *in.Rating,
		PublishedDate: *in.PublishedDate,
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestBookHandler_Create(t *testing.T) {
	e := newTestEcho()
	var got domain.BookInput
	h := NewBookHandler(&stubBookService{
		createFn: func(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
			got = input
			return bookFromInput("b1", input), nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/books", duneJSON)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Title != "Dune" {
		t.Fatalf("expected trimmed title, got %q", got.Title)
	}
	if got.PublishedDate == nil || !got.PublishedDate.Equal(time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published date: %v", got.PublishedDate)
	}

	resp := decodeBody(t, rec)
	data, ok := resp["data"].(map[string]any)
	if resp["success"] != true || !ok {
		t.Fatalf("unexpected envelope: %v", resp)
	}
	if data["_id"] != "b1" || data["title"] != "Dune" || data["price"] != 9.99 {
		t.Fatalf("unexpected data: %v", data)
	}
	if data["publishedDate"] != "1965-08-01T00:00:00Z" {
		t.Fatalf("unexpected publishedDate: %v", data["publishedDate"])
	}
	if _, ok := data["createdAt"]; !ok {
		t.Fatal("missing createdAt")
	}
}

func TestBookHandler_Create_ValidationFailsBeforeService(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{
		createFn: func(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	cases := map[string]struct {
		body string
		msg  string
	}{
		"missing title":    {`{"author":"A","category":"C","price":1,"rating":1,"publishedDate":"2020-01-01"}`, "Title is required"},
		"blank title":      {`{"title":"   ","author":"A","category":"C","price":1,"rating":1,"publishedDate":"2020-01-01"}`, "Title is required"},
		"negative price":   {`{"title":"T","author":"A","category":"C","price":-1,"rating":1,"publishedDate":"2020-01-01"}`, "Price cannot be negative"},
		"rating too high":  {`{"title":"T","author":"A","category":"C","price":1,"rating":5.5,"publishedDate":"2020-01-01"}`, "Rating cannot be more than 5"},
		"missing rating":   {`{"title":"T","author":"A","category":"C","price":1,"publishedDate":"2020-01-01"}`, "Rating is required"},
		"price not number": {`{"title":"T","author":"A","category":"C","price":"ten","rating":1,"publishedDate":"2020-01-01"}`, "Price must be a number"},
		"rating object":    {`{"title":"T","author":"A","category":"C","price":1,"rating":{},"publishedDate":"2020-01-01"}`, "Rating must be a number"},
		"bad date":         {`{"title":"T","author":"A","category":"C","price":1,"rating":1,"publishedDate":"yesterday"}`, "Published date must be a valid date"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := jsonRequest(e, http.MethodPost, "/api/books", tc.body)
			err := h.Create(c)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Error() != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, ve.Error())
			}
		})
	}
}

func TestBookHandler_Create_ZeroPriceAndRating(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{
		createFn: func(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
			return bookFromInput("b0", input), nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/books",
		`{"title":"Free","author":"A","category":"C","price":0,"rating":0,"publishedDate":"2020-01-01T10:00:00Z"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBookHandler_Create_NumericStrings(t *testing.T) {
	e := newTestEcho()
	var got domain.BookInput
	h := NewBookHandler(&stubBookService{
		createFn: func(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
			got = input
			return bookFromInput("b2", input), nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/books",
		`{"title":"T","author":"A","category":"C","price":"15","rating":"4","publishedDate":"2020-01-01"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Price == nil || *got.Price != 15 || got.Rating == nil || *got.Rating != 4 {
		t.Fatalf("numeric strings not converted: %+v", got)
	}
}

func TestBookHandler_List_PassesRawQuery(t *testing.T) {
	e := newTestEcho()
	var got ports.ListBooksInput
	h := NewBookHandler(&stubBookService{
		listFn: func(ctx context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error) {
			got = input
			return &ports.ListBooksResult{
				Items:       []*domain.Book{{ID: "b1", Title: "Dune"}},
				Count:       1,
				Total:       12,
				TotalPages:  2,
				CurrentPage: 2,
				Limit:       10,
			}, nil
		},
	})

	c, rec := jsonRequest(e, http.MethodGet, "/api/books?category=SciFi&page=2&limit=10&sort=price:desc&rating=4&title=du&author=X", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := ports.ListBooksInput{Author: "X", Category: "SciFi", Rating: "4", Title: "du", Page: "2", Limit: "10", Sort: "price:desc"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	resp := decodeBody(t, rec)
	if resp["count"] != float64(1) || resp["total"] != float64(12) ||
		resp["totalPages"] != float64(2) || resp["currentPage"] != float64(2) || resp["limit"] != float64(10) {
		t.Fatalf("unexpected envelope: %v", resp)
	}
	if items, ok := resp["data"].([]any); !ok || len(items) != 1 {
		t.Fatalf("unexpected data: %v", resp["data"])
	}
}

func TestBookHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{
		listFn: func(ctx context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error) {
			return &ports.ListBooksResult{Items: []*domain.Book{}, CurrentPage: 1, Limit: 10}, nil
		},
	})

	c, rec := jsonRequest(e, http.MethodGet, "/api/books", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if items, ok := resp["data"].([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty array, got %v", resp["data"])
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{
		getFn: func(ctx context.Context, id string) (*domain.Book, error) {
			if id != "missing" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil, domain.ErrBookNotFound
		},
	})

	c, _ := jsonRequest(e, http.MethodGet, "/api/books/missing", "")
	if err := h.Get(withID(c, "missing")); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookHandler_Update(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{
		updateFn: func(ctx context.Context, id string, input domain.BookInput) (*domain.Book, error) {
			if id != "b1" {
				t.Fatalf("unexpected id %q", id)
			}
			return bookFromInput(id, input), nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPut, "/api/books/b1",
		`{"title":"Dune Messiah","author":"Frank Herbert","category":"SciFi","price":10,"rating":4,"publishedDate":"1969-01-01"}`)
	if err := h.Update(withID(c, "b1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["title"] != "Dune Messiah" {
		t.Fatalf("unexpected title: %v", data["title"])
	}
}

func TestBookHandler_Update_InvalidBodyNeverReachesService(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{
		updateFn: func(ctx context.Context, id string, input domain.BookInput) (*domain.Book, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	c, _ := jsonRequest(e, http.MethodPut, "/api/books/b1", `{"title":"T"}`)
	var ve *domain.ValidationError
	if err := h.Update(withID(c, "b1")); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	h := NewBookHandler(&stubBookService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	c, rec := jsonRequest(e, http.MethodDelete, "/api/books/b1", "")
	if err := h.Delete(withID(c, "b1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "b1" {
		t.Fatalf("expected b1 deleted, got %q", deleted)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["message"] != "Book removed" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

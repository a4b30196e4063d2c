package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/api/metrics"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// errInvalidPayload is returned when the body cannot be decoded at all.
var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// Create handles POST /api/books.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book"
// @Success      201   {object}  bookEnvelope
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	req, err := bindBook(c)
	if err != nil {
		return err
	}

	book, err := h.service.Create(c.Request().Context(), toBookInput(req))
	if err != nil {
		return err
	}

	metrics.BookWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, bookEnvelope{Success: true, Data: toBookResponse(book)})
}

// List handles GET /api/books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        author    query     string  false  "Exact author"
// @Param        category  query     string  false  "Exact category"
// @Param        rating    query     number  false  "Minimum rating (inclusive)"
// @Param        title     query     string  false  "Case-insensitive title substring"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Page size (default 10)"
// @Param        sort      query     string  false  "field or field:desc (default createdAt:desc)"
// @Success      200       {object}  listBooksResponse
// @Failure      401       {object}  messageResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	res, err := h.service.List(c.Request().Context(), ports.ListBooksInput{
		Author:   c.QueryParam("author"),
		Category: c.QueryParam("category"),
		Rating:   c.QueryParam("rating"),
		Title:    c.QueryParam("title"),
		Page:     c.QueryParam("page"),
		Limit:    c.QueryParam("limit"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}

	metrics.BookListPageSize.Observe(float64(res.Count))
	return c.JSON(http.StatusOK, toListResponse(res))
}

// Get handles GET /api/books/:id.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  bookEnvelope
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookEnvelope{Success: true, Data: toBookResponse(book)})
}

// Update handles PUT /api/books/:id.
//
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book ID"
// @Param        body  body      bookRequest  true  "Book"
// @Success      200   {object}  bookEnvelope
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	req, err := bindBook(c)
	if err != nil {
		return err
	}

	book, err := h.service.Update(c.Request().Context(), c.Param("id"), toBookInput(req))
	if err != nil {
		return err
	}

	metrics.BookWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, bookEnvelope{Success: true, Data: toBookResponse(book)})
}

// Delete handles DELETE /api/books/:id.
//
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.BookWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Book removed"})
}

func bindBook(c echo.Context) (bookRequest, error) {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return req, errInvalidPayload
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

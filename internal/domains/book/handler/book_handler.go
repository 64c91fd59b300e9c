package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookspace-backend/internal/domains/book/model"
	"bookspace-backend/internal/domains/book/service"
	userModel "bookspace-backend/internal/domains/user/model"
	"bookspace-backend/internal/shared/response"
)

type BookHandler struct {
	bookService service.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// Create adds a book to the catalog, linking its genres and tags
// POST /api/v1/books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrISBNTaken) {
			response.Conflict(c, "A book with this ISBN already exists")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// Details returns the full book page for the current viewer
// GET /api/v1/books/:id
func (h *BookHandler) Details(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	viewerID := uuid.Nil
	if value, exists := c.Get("user_id"); exists {
		if parsed, ok := value.(uuid.UUID); ok {
			viewerID = parsed
		}
	}

	detail, err := h.bookService.GetBookDetails(c.Request.Context(), id, c.GetString("username"), viewerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookNotFound):
			response.NotFound(c, "Book not found")
		case errors.Is(err, userModel.ErrUnknownIdentity):
			response.Unauthorized(c, "Unknown identity")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Update modifies catalog fields
// PUT /api/v1/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Delete soft-deletes a book
// DELETE /api/v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// List returns a page of books
// GET /api/v1/books
func (h *BookHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	books, total, err := h.bookService.ListBooks(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Search finds books by filter text and field selector
// GET /api/v1/books/search?filter=...&by=title|author|genre|tag
func (h *BookHandler) Search(c *gin.Context) {
	var q model.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, err := h.bookService.SearchBooks(c.Request.Context(), q)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Rate folds the caller's vote into the book's aggregate rating
// POST /api/v1/books/:id/rate
func (h *BookHandler) Rate(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	value, exists := c.Get("user_id")
	userID, ok := value.(uuid.UUID)
	if !exists || !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.RateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.RateBook(c.Request.Context(), bookID, userID, req.Rate)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookNotFound):
			response.NotFound(c, "Book not found")
		case errors.Is(err, model.ErrNoVotesToRevise):
			response.BadRequest(c, "Cannot revise a vote on a book that has no votes")
		case errors.Is(err, model.ErrRatingConflict):
			response.Conflict(c, "The rating was updated concurrently, please retry")
		case errors.Is(err, model.ErrInvalidRating):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, book)
}

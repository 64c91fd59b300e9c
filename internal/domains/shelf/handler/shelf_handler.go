package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookspace-backend/internal/domains/shelf/model"
	"bookspace-backend/internal/domains/shelf/service"
	"bookspace-backend/internal/shared/response"
)

type ShelfHandler struct {
	shelfService service.ServiceInterface
}

func NewShelfHandler(shelfService service.ServiceInterface) *ShelfHandler {
	return &ShelfHandler{shelfService: shelfService}
}

type addRequest struct {
	State string `json:"state" binding:"required"`
}

// Add files a book on the caller's shelf
// PUT /api/v1/shelf/:bookId
func (h *ShelfHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.shelfService.AddToShelf(c.Request.Context(), bookID, userID, model.State(req.State)); err != nil {
		if err == model.ErrInvalidState {
			response.BadRequest(c, "Invalid shelf state")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// Remove drops a book from the caller's shelf
// DELETE /api/v1/shelf/:bookId
func (h *ShelfHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	if err := h.shelfService.RemoveFromShelf(c.Request.Context(), bookID, userID); err != nil {
		if err == model.ErrNotOnShelf {
			response.NotFound(c, "Book is not on the shelf")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// List returns the caller's shelf for a collection state
// GET /api/v1/shelf?state=read
func (h *ShelfHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	state := model.State(c.DefaultQuery("state", string(model.StateDefault)))

	books, err := h.shelfService.ListShelf(c.Request.Context(), userID, state)
	if err != nil {
		if err == model.ErrInvalidState {
			response.BadRequest(c, "Invalid shelf state")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

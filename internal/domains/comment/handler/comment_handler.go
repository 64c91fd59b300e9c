package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookspace-backend/internal/domains/comment/model"
	"bookspace-backend/internal/domains/comment/service"
	userModel "bookspace-backend/internal/domains/user/model"
	"bookspace-backend/internal/shared/response"
)

type CommentHandler struct {
	commentService service.ServiceInterface
}

func NewCommentHandler(commentService service.ServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add creates a comment on a book
// POST /api/v1/books/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), bookID, userID, req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

// List returns a book's comments annotated for the current viewer
// GET /api/v1/books/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	comments, err := h.commentService.ListForBook(c.Request.Context(), bookID, c.GetString("username"))
	if err != nil {
		if errors.Is(err, userModel.ErrUnknownIdentity) {
			response.Unauthorized(c, "Unknown identity")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, comments)
}

// Delete removes a comment the caller may edit
// DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID")
		return
	}

	viewer := c.GetString("username")
	if viewer == "" {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), commentID, viewer); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			response.NotFound(c, "Comment not found")
		case errors.Is(err, model.ErrNotAllowed):
			response.Forbidden(c, "You may only delete your own comments")
		case errors.Is(err, userModel.ErrUnknownIdentity):
			response.Unauthorized(c, "Unknown identity")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}

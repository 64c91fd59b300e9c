package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookspace-backend/internal/domains/taxonomy/model"
	"bookspace-backend/internal/domains/taxonomy/service"
	"bookspace-backend/internal/shared/response"
)

type TaxonomyHandler struct {
	taxonomyService service.ServiceInterface
}

func NewTaxonomyHandler(taxonomyService service.ServiceInterface) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// AttachRequest carries raw delimited genre/tag text for a book.
type AttachRequest struct {
	Genres string `json:"genres"`
	Tags   string `json:"tags"`
}

// Attach links genres and tags from raw text to a book
// POST /api/v1/books/:id/taxonomy
func (h *TaxonomyHandler) Attach(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.taxonomyService.AttachTaxonomy(c.Request.Context(), bookID, req.Genres, req.Tags); err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// BookGenres lists genre labels for a book
// GET /api/v1/books/:id/genres
func (h *TaxonomyHandler) BookGenres(c *gin.Context) {
	h.listByBook(c, model.KindGenre)
}

// BookTags lists tag labels for a book
// GET /api/v1/books/:id/tags
func (h *TaxonomyHandler) BookTags(c *gin.Context) {
	h.listByBook(c, model.KindTag)
}

func (h *TaxonomyHandler) listByBook(c *gin.Context, kind model.Kind) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var entities []*model.Entity
	switch kind {
	case model.KindGenre:
		entities, err = h.taxonomyService.BookGenres(c.Request.Context(), bookID)
	default:
		entities, err = h.taxonomyService.BookTags(c.Request.Context(), bookID)
	}
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	labels := make([]string, 0, len(entities))
	for _, e := range entities {
		labels = append(labels, e.Label)
	}

	response.Success(c, http.StatusOK, labels)
}

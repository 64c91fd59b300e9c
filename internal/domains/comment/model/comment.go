package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Comment is a user comment on a book as shown to a viewer. Author fields
// are denormalized from the identity store at read time. CanEdit is derived
// per viewing request and never persisted: it reflects the current viewer,
// not the one who loaded the page last.
type Comment struct {
	ID     uuid.UUID `json:"id" db:"id"`
	BookID uuid.UUID `json:"book_id" db:"book_id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`

	Author       string  `json:"author" db:"author"`
	AuthorPicURL *string `json:"author_pic_url,omitempty" db:"author_pic_url"`

	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	CanEdit bool `json:"can_edit" db:"-"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 2000),
		),
	)
}

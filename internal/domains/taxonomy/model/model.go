package model

// Kind selects which canonical collection an entity belongs to.
type Kind string

const (
	KindGenre Kind = "genre"
	KindTag   Kind = "tag"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindGenre, KindTag:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Entity is a canonical genre or tag. The label is an exact-match,
// case-sensitive key; at most one entity of a given kind carries it.
// IDs are random 128-bit identifiers rendered as text, generated at
// creation time.
type Entity struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
}

// BookEntityLink associates a book with a canonical entity. The pair has
// no identity of its own.
type BookEntityLink struct {
	BookID   string `json:"book_id"`
	EntityID string `json:"entity_id"`
}

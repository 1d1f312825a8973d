package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	MediaTypeBook      = "book"
	MediaTypeComic     = "comic"
	MediaTypeAudiobook = "audiobook"
	MediaTypeMovie     = "movie"
	MediaTypeMusic     = "music"
	MediaTypePodcast   = "podcast"
)

// Role constants for item_person_roles.
const (
	RoleAuthor   = "AUTHOR"
	RoleNarrator = "NARRATOR"
	RoleArtist   = "ARTIST"
	RoleDirector = "DIRECTOR"
)

type MediaItem struct {
	bun.BaseModel `bun:"table:media_items,alias:mi"`

	ID            int       `bun:",pk,nullzero" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LibraryID     int       `bun:",nullzero" json:"library_id"`
	Library       *Library  `bun:"rel:belongs-to" json:"library,omitempty"`
	Filepath      string    `bun:",nullzero" json:"filepath"`
	MediaType     string    `bun:",nullzero" json:"media_type"`
	MimeType      *string   `json:"mime_type"`
	ContentHash   string    `bun:",notnull" json:"content_hash"`
	DateAdded     time.Time `json:"date_added"`
	LastScannedAt time.Time `json:"last_scanned_at"`

	Metadata *MetadataCommon   `bun:"rel:has-one,join:id=media_item_id" json:"metadata,omitempty"`
	Roles    []*ItemPersonRole `bun:"rel:has-many,join:id=media_item_id" json:"roles,omitempty"`
}

type MetadataCommon struct {
	bun.BaseModel `bun:"table:metadata_common,alias:mc"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	MediaItemID int       `bun:",nullzero" json:"media_item_id"`
	Title       string    `bun:",nullzero" json:"title"`
	SortTitle   string    `bun:",nullzero" json:"sort_title"`
	Year        *int      `json:"year"`
	ReleaseDate *string   `json:"release_date"`
	Rating      *float64  `json:"rating"`
	Summary     *string   `json:"summary"`
	CoverPath   *string   `json:"cover_path"`
}

type ItemPersonRole struct {
	bun.BaseModel `bun:"table:item_person_roles,alias:ipr"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	MediaItemID int       `bun:",nullzero" json:"media_item_id"`
	PersonID    int       `bun:",nullzero" json:"person_id"`
	Person      *Person   `bun:"rel:belongs-to,join:person_id=id" json:"person,omitempty"`
	Role        string    `bun:",nullzero" json:"role"`
}

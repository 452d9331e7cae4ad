package workshop

import (
	"context"
	"errors"
	"time"

	"github.com/movelabhq/movelab/domain/store"
)

// ErrImageNotFound indicates the requested image does not exist.
var ErrImageNotFound = errors.New("image not found")

// Store persists workshop aggregates.
type Store interface {
	// Save inserts or updates a workshop and all of its steps.
	Save(ctx context.Context, workshop Workshop) error
	// Find returns workshops matching the given options, without steps.
	Find(ctx context.Context, options ...store.Option) ([]Workshop, error)
	// FindOne returns a single workshop with its steps loaded.
	FindOne(ctx context.Context, options ...store.Option) (Workshop, error)
	// Delete removes a workshop and its steps.
	Delete(ctx context.Context, id string) error
	// Count returns the number of workshops matching the given options.
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// Image is a stored image attached to step annotations.
type Image struct {
	id          string
	name        string
	contentType string
	data        []byte
	createdAt   time.Time
}

// NewImage creates an Image.
func NewImage(id, name, contentType string, data []byte) Image {
	return Image{
		id:          id,
		name:        name,
		contentType: contentType,
		data:        data,
		createdAt:   time.Now().UTC(),
	}
}

// ReconstructImage rebuilds an Image from persisted state.
func ReconstructImage(id, name, contentType string, data []byte, createdAt time.Time) Image {
	return Image{id: id, name: name, contentType: contentType, data: data, createdAt: createdAt}
}

// ID returns the image id.
func (i Image) ID() string {
	return i.id
}

// Name returns the original file name.
func (i Image) Name() string {
	return i.name
}

// ContentType returns the MIME type.
func (i Image) ContentType() string {
	return i.contentType
}

// Data returns the image bytes.
func (i Image) Data() []byte {
	return i.data
}

// CreatedAt returns the upload timestamp.
func (i Image) CreatedAt() time.Time {
	return i.createdAt
}

// Size returns the image size in bytes.
func (i Image) Size() int {
	return len(i.data)
}

// ImageStore persists annotation images.
type ImageStore interface {
	SaveImage(ctx context.Context, image Image) error
	FindImage(ctx context.Context, id string) (Image, error)
	DeleteImage(ctx context.Context, id string) error
}

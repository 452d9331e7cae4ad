package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/movelabhq/movelab/domain/workshop"
	"github.com/movelabhq/movelab/internal/database"
	"gorm.io/gorm"
)

// ImageStore persists annotation images in the database.
type ImageStore struct {
	db     database.Database
	mapper imageMapper
}

// NewImageStore creates an ImageStore.
func NewImageStore(db database.Database) *ImageStore {
	return &ImageStore{db: db}
}

// SaveImage inserts an image.
func (s *ImageStore) SaveImage(ctx context.Context, image workshop.Image) error {
	model := s.mapper.ToModel(image)
	if err := s.db.Session(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("save image %s: %w", image.ID(), err)
	}
	return nil
}

// FindImage returns the image with the given id.
func (s *ImageStore) FindImage(ctx context.Context, id string) (workshop.Image, error) {
	var model Image
	if err := s.db.Session(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workshop.Image{}, workshop.ErrImageNotFound
		}
		return workshop.Image{}, fmt.Errorf("find image %s: %w", id, err)
	}
	return s.mapper.ToDomain(model), nil
}

// DeleteImage removes the image with the given id.
func (s *ImageStore) DeleteImage(ctx context.Context, id string) error {
	if err := s.db.Session(ctx).Where("id = ?", id).Delete(&Image{}).Error; err != nil {
		return fmt.Errorf("delete image %s: %w", id, err)
	}
	return nil
}

package persistence

import (
	"context"
	"fmt"

	"github.com/movelabhq/movelab/domain/store"
	"github.com/movelabhq/movelab/domain/workshop"
	"github.com/movelabhq/movelab/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkshopStore persists workshop aggregates in a relational database.
type WorkshopStore struct {
	db   database.Database
	repo database.Repository[workshop.Workshop, Workshop]
}

// NewWorkshopStore creates a WorkshopStore.
func NewWorkshopStore(db database.Database) *WorkshopStore {
	return &WorkshopStore{
		db:   db,
		repo: database.NewRepository[workshop.Workshop, Workshop](db, workshopMapper{}, "workshop"),
	}
}

// Save upserts the workshop row and rewrites its steps in one transaction.
// Steps are replaced wholesale so reordering and removal need no diffing.
func (s *WorkshopStore) Save(ctx context.Context, w workshop.Workshop) error {
	model := s.repo.Mapper().ToModel(w)

	steps := w.Steps()
	stepModels := make([]Step, len(steps))
	for i, step := range steps {
		sm, err := stepToModel(w.ID(), i, step)
		if err != nil {
			return err
		}
		stepModels[i] = sm
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model).Error; err != nil {
			return fmt.Errorf("save workshop %s: %w", w.ID(), err)
		}
		if err := tx.Where("workshop_id = ?", w.ID()).Delete(&Step{}).Error; err != nil {
			return fmt.Errorf("clear steps for workshop %s: %w", w.ID(), err)
		}
		if len(stepModels) > 0 {
			if err := tx.Create(&stepModels).Error; err != nil {
				return fmt.Errorf("save steps for workshop %s: %w", w.ID(), err)
			}
		}
		return nil
	})
}

// Find returns workshops matching the given options, without their steps.
func (s *WorkshopStore) Find(ctx context.Context, options ...store.Option) ([]workshop.Workshop, error) {
	return s.repo.Find(ctx, options...)
}

// FindOne returns a single workshop with its steps loaded in order.
func (s *WorkshopStore) FindOne(ctx context.Context, options ...store.Option) (workshop.Workshop, error) {
	w, err := s.repo.FindOne(ctx, options...)
	if err != nil {
		return workshop.Workshop{}, err
	}

	var stepModels []Step
	err = s.db.Session(ctx).
		Where("workshop_id = ?", w.ID()).
		Order("position ASC").
		Find(&stepModels).Error
	if err != nil {
		return workshop.Workshop{}, fmt.Errorf("load steps for workshop %s: %w", w.ID(), err)
	}

	steps := make([]workshop.Step, len(stepModels))
	for i, sm := range stepModels {
		step, err := stepToDomain(sm)
		if err != nil {
			return workshop.Workshop{}, err
		}
		steps[i] = step
	}

	return workshop.ReconstructWorkshop(w.ID(), w.Title(), w.Description(), w.CreatedAt(), w.UpdatedAt(), steps), nil
}

// Delete removes a workshop and its steps.
func (s *WorkshopStore) Delete(ctx context.Context, id string) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("workshop_id = ?", id).Delete(&Step{}).Error; err != nil {
			return fmt.Errorf("delete steps for workshop %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&Workshop{}).Error; err != nil {
			return fmt.Errorf("delete workshop %s: %w", id, err)
		}
		return nil
	})
}

// Count returns the number of workshops matching the given options.
func (s *WorkshopStore) Count(ctx context.Context, options ...store.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

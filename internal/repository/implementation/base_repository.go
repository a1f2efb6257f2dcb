package implementation

import (
	"context"
	"errors"

	"intellilab-gc-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// baseRepository carries the CRUD plumbing every lab repository shares.
// E is the domain entity, M the gorm model.
type baseRepository[E any, M any] struct {
	db       *gorm.DB
	toEntity func(*M) *E
	toModel  func(*E) *M
}

func (r *baseRepository[E, M]) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *baseRepository[E, M]) Create(ctx context.Context, e *E) error {
	m := r.toModel(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*e = *r.toEntity(m)
	return nil
}

// Update saves every column, including zero values.
func (r *baseRepository[E, M]) Update(ctx context.Context, e *E) error {
	m := r.toModel(e)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*e = *r.toEntity(m)
	return nil
}

func (r *baseRepository[E, M]) Delete(ctx context.Context, id uuid.UUID) error {
	var m M
	res := r.db.WithContext(ctx).Delete(&m, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *baseRepository[E, M]) FindOne(ctx context.Context, specs ...specification.Specification) (*E, error) {
	var m M
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *baseRepository[E, M]) FindAll(ctx context.Context, specs ...specification.Specification) ([]*E, error) {
	var models []*M
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*E, len(models))
	for i, m := range models {
		out[i] = r.toEntity(m)
	}
	return out, nil
}

func (r *baseRepository[E, M]) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	var m M
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&m), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

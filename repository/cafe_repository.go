package repository

import (
	"cafewifi/model"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
	"strings"
)

type CafeRepository struct {
	db *gorm.DB
}

func NewCafeRepository(db *gorm.DB) *CafeRepository {
	return &CafeRepository{db: db}
}

func (r *CafeRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author")
}

// Create inserts c unless another cafe already uses its name.
func (r *CafeRepository) Create(ctx context.Context, c *model.Cafe) error {
	taken, err := r.nameTaken(ctx, c.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrCafeNameTaken
	}

	if err := r.db.WithContext(ctx).Omit("Author").Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCafeNameTaken
		}
		return fmt.Errorf("create cafe: %w", err)
	}
	return nil
}

func (r *CafeRepository) GetByID(ctx context.Context, id uint) (*model.Cafe, error) {
	var c model.Cafe
	if err := r.withAuthor(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "get cafe")
	}
	return &c, nil
}

// Update overwrites every mutable column of c. The new name may equal c's
// current name but not the name of a different cafe.
func (r *CafeRepository) Update(ctx context.Context, c *model.Cafe) error {
	taken, err := r.nameTaken(ctx, c.Name, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrCafeNameTaken
	}

	res := r.db.WithContext(ctx).Model(&model.Cafe{ID: c.ID}).
		Select("Name", "MapURL", "ImgURL", "Location", "Seats",
			"HasToilet", "HasWifi", "HasSockets", "CanTakeCalls", "CoffeePrice").
		Updates(c)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrCafeNameTaken
		}
		return fmt.Errorf("update cafe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CafeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Cafe{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete cafe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every cafe ordered by name.
func (r *CafeRepository) List(ctx context.Context) ([]model.Cafe, error) {
	var cafes []model.Cafe
	if err := r.withAuthor(ctx).Order("name ASC").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	return cafes, nil
}

// Random picks one cafe uniformly in a single statement. An empty table
// yields ErrNotFound.
func (r *CafeRepository) Random(ctx context.Context) (*model.Cafe, error) {
	var c model.Cafe
	if err := r.withAuthor(ctx).Order("RANDOM()").Take(&c).Error; err != nil {
		return nil, notFound(err, "random cafe")
	}
	return &c, nil
}

func (r *CafeRepository) SearchByName(ctx context.Context, query string) ([]model.Cafe, error) {
	return r.search(ctx, "name", query)
}

func (r *CafeRepository) SearchByLocation(ctx context.Context, query string) ([]model.Cafe, error) {
	return r.search(ctx, "location", query)
}

// search matches column case-insensitively against query as a plain substring.
func (r *CafeRepository) search(ctx context.Context, column, query string) ([]model.Cafe, error) {
	if r.db.Dialector.Name() == "sqlite" {
		return r.searchFolded(ctx, column, query)
	}

	var cafes []model.Cafe
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	err := r.withAuthor(ctx).
		Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern).
		Order("name ASC").
		Find(&cafes).Error
	if err != nil {
		return nil, fmt.Errorf("search cafes by %s: %w", column, err)
	}
	return cafes, nil
}

// searchFolded filters in Go because SQLite's LOWER only folds ASCII.
func (r *CafeRepository) searchFolded(ctx context.Context, column, query string) ([]model.Cafe, error) {
	cafes, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search cafes by %s: %w", column, err)
	}

	needle := strings.ToLower(query)
	matched := make([]model.Cafe, 0, len(cafes))
	for _, c := range cafes {
		value := c.Name
		if column == "location" {
			value = c.Location
		}
		if strings.Contains(strings.ToLower(value), needle) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *CafeRepository) nameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Cafe{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check cafe name: %w", err)
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Package store is a local SQLite backend for the dashboard. It implements the
// same services as the remote API and backs the --demo mode.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"admin-dash/data"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// every pooled connection to ":memory:" would get its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&data.User{},
		&data.UserType{},
		&data.Vendor{},
		&data.Category{},
		&data.Civilian{},
		&data.Site{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Repository is a CRUD service over one table. Search matches any of the
// searchColumns with LIKE.
type Repository[T data.Item] struct {
	db            *gorm.DB
	searchParam   string
	searchColumns []string
}

func NewRepository[T data.Item](s *Store, searchParam string, searchColumns ...string) *Repository[T] {
	return &Repository[T]{
		db:            s.db,
		searchParam:   searchParam,
		searchColumns: searchColumns,
	}
}

func (r *Repository[T]) GetData(ctx context.Context, params data.ListParams) (data.ListResponse[T], error) {
	page, pageSize := params.Page(), params.PageSize()

	var total int64
	base := r.db.WithContext(ctx).Model(new(T)).Scopes(r.search(params))
	if err := base.Count(&total).Error; err != nil {
		return data.ListResponse[T]{}, mapError(err)
	}

	items := []T{}
	err := base.Scopes(paginate(page, pageSize)).
		Order("created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return data.ListResponse[T]{}, mapError(err)
	}

	return data.ListResponse[T]{
		Data:       items,
		Pagination: data.NewPaginationInfo(int(total), page, pageSize),
	}, nil
}

func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return item, mapError(err)
	}
	return item, nil
}

func (r *Repository[T]) Create(ctx context.Context, payload data.Payload) (T, error) {
	var item T
	if err := decode(payload, &item); err != nil {
		return item, err
	}
	if err := setField(&item, "id", uuid.NewString()); err != nil {
		return item, err
	}
	if err := setField(&item, "createdAt", time.Now().UTC()); err != nil {
		return item, err
	}

	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return item, mapError(err)
	}
	return item, nil
}

func (r *Repository[T]) Update(ctx context.Context, id string, payload data.Payload) (T, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return item, err
	}

	patch := data.Payload{}
	for k, v := range payload {
		if k == "id" || k == "createdAt" {
			continue
		}
		patch[k] = v
	}
	if err := decode(patch, &item); err != nil {
		return item, err
	}

	if err := r.db.WithContext(ctx).Save(&item).Error; err != nil {
		return item, mapError(err)
	}
	return item, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return data.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) search(params data.ListParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.TrimSpace(params.String(r.searchParam))
		if term == "" || len(r.searchColumns) == 0 {
			return db
		}

		like := "%" + term + "%"
		clauses := make([]string, 0, len(r.searchColumns))
		args := make([]any, 0, len(r.searchColumns))
		for _, column := range r.searchColumns {
			clauses = append(clauses, column+" LIKE ?")
			args = append(args, like)
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

func paginate(page int, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

// decode copies the JSON fields of payload onto item.
func decode(payload data.Payload, item any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	if err := json.Unmarshal(b, item); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

func setField(item any, field string, value any) error {
	return decode(data.Payload{field: value}, item)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return data.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", data.ErrConflict, err)
	}
	return fmt.Errorf("store: %w", err)
}

// The pure Go sqlite driver does not translate constraint errors to
// gorm.ErrDuplicatedKey.
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

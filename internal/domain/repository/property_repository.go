package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"

	"github.com/jmoiron/sqlx"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *model.Property) error
	Update(ctx context.Context, p *model.Property) error
	FindByID(ctx context.Context, id int64) (*model.Property, error)
	List(ctx context.Context, limit, offset int, filter model.PropertyFilter) ([]model.Property, int, error)
	Delete(ctx context.Context, id int64) error
}

const propertyColumns = `id, slug, zpid, title, location, price, description, image_url, bedrooms, bathrooms, sqft,
	property_type, is_for_sale, images, details, created_at, updated_at`

// likeEscaper makes user input match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type pgPropertyRepository struct {
	db *sqlx.DB
}

func NewPgPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &pgPropertyRepository{db: db}
}

func (r *pgPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	query := `INSERT INTO properties (slug, zpid, title, location, price, description, image_url, bedrooms, bathrooms, sqft,
	              property_type, is_for_sale, images, details, created_at, updated_at)
	          VALUES (:slug, :zpid, :title, :location, :price, :description, :image_url, :bedrooms, :bathrooms, :sqft,
	              :property_type, :is_for_sale, :images, :details, :created_at, :updated_at)
	          RETURNING id`
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Create prepare: %w", err)
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, &p.ID, p); err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("property with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgPropertyRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPropertyRepository) Update(ctx context.Context, p *model.Property) error {
	query := `UPDATE properties SET
	              slug = :slug, zpid = :zpid, title = :title, location = :location, price = :price,
	              description = :description, image_url = :image_url, bedrooms = :bedrooms, bathrooms = :bathrooms,
	              sqft = :sqft, property_type = :property_type, is_for_sale = :is_for_sale, images = :images,
	              details = :details, updated_at = :updated_at
	          WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("property with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgPropertyRepository.Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Update rows: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPropertyRepository) FindByID(ctx context.Context, id int64) (*model.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	p := &model.Property{}
	if err := r.db.GetContext(ctx, p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPropertyRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgPropertyRepository) List(ctx context.Context, limit, offset int, filter model.PropertyFilter) ([]model.Property, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.ForSale != nil {
		conditions = append(conditions, fmt.Sprintf("is_for_sale = $%d", argID))
		args = append(args, *filter.ForSale)
		argID++
	}
	if filter.PropertyType != "" {
		conditions = append(conditions, fmt.Sprintf("property_type = $%d", argID))
		args = append(args, filter.PropertyType)
		argID++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR location ILIKE $%d ESCAPE '\')`, argID, argID))
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		argID++
	}

	var where string
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM properties`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("pgPropertyRepository.List count: %w", err)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	properties := []model.Property{}
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("pgPropertyRepository.List query: %w", err)
	}
	return properties, total, nil
}

func (r *pgPropertyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPropertyRepository.Delete rows: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

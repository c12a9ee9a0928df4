package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/product"
	"github.com/vinestrading/catalog-service/internal/product/dto"
)

const productColumns = "id, category_id, name_en, name_ar, code, weight, description_en, description_ar, image, created_at"

type SQLRepository struct {
	db *sqlx.DB
	DB sqlx.ExtContext
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db, DB: db}
}

func (r *SQLRepository) Transact(ctx context.Context, fn func(repo product.Repository) error) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&SQLRepository{db: r.db, DB: tx})
	})
}

func (r *SQLRepository) Create(ctx context.Context, p *model.Product) error {
	id, err := database.InsertReturningID(ctx, r.DB, `
        INSERT INTO products (category_id, name_en, name_ar, code, weight, description_en, description_ar, image, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CategoryID, p.NameEN, p.NameAR, p.Code, p.Weight, p.DescriptionEN, p.DescriptionAR, p.Image, p.CreatedAt)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := r.DB.Rebind("SELECT " + productColumns + " FROM products WHERE id = ?")
	err := sqlx.GetContext(ctx, r.DB, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := []any{}

	if f != nil && f.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f != nil && strings.TrimSpace(f.SearchQuery) != "" {
		// LOWER on both sides keeps the match case-insensitive on every dialect.
		pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(f.SearchQuery))) + "%"
		conditions = append(conditions,
			"(LOWER(name_en) LIKE ? ESCAPE '!' OR LOWER(name_ar) LIKE ? ESCAPE '!' OR LOWER(code) LIKE ? ESCAPE '!')")
		args = append(args, pattern, pattern, pattern)
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	products := []model.Product{}
	if err := sqlx.SelectContext(ctx, r.DB, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *SQLRepository) CodeTaken(ctx context.Context, code string, excludeID int64) (bool, error) {
	var n int
	query := r.DB.Rebind("SELECT COUNT(*) FROM products WHERE code = ? AND id <> ?")
	if err := sqlx.GetContext(ctx, r.DB, &n, query, code, excludeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) Update(ctx context.Context, p *model.Product) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
        UPDATE products
        SET category_id = ?,
            name_en = ?,
            name_ar = ?,
            code = ?,
            weight = ?,
            description_en = ?,
            description_ar = ?,
            image = ?
        WHERE id = ?`),
		p.CategoryID, p.NameEN, p.NameAR, p.Code, p.Weight, p.DescriptionEN, p.DescriptionAR, p.Image, p.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM products WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

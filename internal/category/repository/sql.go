package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/vinestrading/catalog-service/internal/category"
	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/model"
)

const categoryColumns = "id, name_en, name_ar, slug, image, created_at"

type SQLRepository struct {
	db *sqlx.DB
	DB sqlx.ExtContext
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db, DB: db}
}

func (r *SQLRepository) Transact(ctx context.Context, fn func(repo category.Repository) error) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&SQLRepository{db: r.db, DB: tx})
	})
}

func (r *SQLRepository) Create(ctx context.Context, c *model.Category) error {
	id, err := database.InsertReturningID(ctx, r.DB,
		`INSERT INTO categories (name_en, name_ar, slug, image, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.NameEN, c.NameAR, c.Slug, c.Image, c.CreatedAt)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	query := r.DB.Rebind("SELECT " + categoryColumns + " FROM categories WHERE id = ?")
	err := sqlx.GetContext(ctx, r.DB, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := sqlx.SelectContext(ctx, r.DB, &categories, "SELECT "+categoryColumns+" FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *SQLRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int
	query := r.DB.Rebind("SELECT COUNT(*) FROM categories WHERE slug = ? AND id <> ?")
	if err := sqlx.GetContext(ctx, r.DB, &n, query, slug, excludeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepository) Update(ctx context.Context, c *model.Category) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		r.DB.Rebind(`UPDATE categories SET name_en = ?, name_ar = ?, slug = ?, image = ? WHERE id = ?`),
		c.NameEN, c.NameAR, c.Slug, c.Image, c.ID)
	if err != nil {
		return false, err
	}
	return matched(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM categories WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	return matched(res)
}

func (r *SQLRepository) ProductImages(ctx context.Context, categoryID int64) ([]string, error) {
	images := []string{}
	query := r.DB.Rebind("SELECT image FROM products WHERE category_id = ? AND image IS NOT NULL ORDER BY id")
	if err := sqlx.SelectContext(ctx, r.DB, &images, query, categoryID); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *SQLRepository) DeleteProducts(ctx context.Context, categoryID int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM products WHERE category_id = ?"), categoryID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func matched(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

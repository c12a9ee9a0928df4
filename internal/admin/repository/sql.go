package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/model"
)

const adminColumns = "id, username, password_hash, role, created_at"

type SQLRepository struct {
	DB sqlx.ExtContext
}

func NewSQLRepository(db sqlx.ExtContext) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Create(ctx context.Context, a *model.Admin) error {
	id, err := database.InsertReturningID(ctx, r.DB,
		`INSERT INTO admins (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)`,
		a.Username, a.PasswordHash, string(a.Role), a.CreatedAt)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Admin, error) {
	return r.findOne(ctx, "SELECT "+adminColumns+" FROM admins WHERE id = ?", id)
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	return r.findOne(ctx, "SELECT "+adminColumns+" FROM admins WHERE username = ?", username)
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]model.Admin, error) {
	admins := []model.Admin{}
	err := sqlx.SelectContext(ctx, r.DB, &admins, "SELECT "+adminColumns+" FROM admins ORDER BY id")
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.DB, &n, "SELECT COUNT(*) FROM admins"); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, id int64, hash string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("UPDATE admins SET password_hash = ? WHERE id = ?"), hash, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM admins WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *SQLRepository) findOne(ctx context.Context, query string, arg any) (*model.Admin, error) {
	var a model.Admin
	err := sqlx.GetContext(ctx, r.DB, &a, r.DB.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/afero"

	"github.com/vinestrading/catalog-service/internal/category"
	"github.com/vinestrading/catalog-service/internal/category/dto"
	"github.com/vinestrading/catalog-service/internal/category/repository"
	"github.com/vinestrading/catalog-service/internal/category/usecase"
	"github.com/vinestrading/catalog-service/internal/database/dbtest"
	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/upload"
)

var png = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{7}, 32)...)

type fixture struct {
	db *sqlx.DB
	fs afero.Fs
	uc category.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	fs := afero.NewMemMapFs()
	store := upload.NewStore(fs, "uploads", "/static/uploads", 1<<20)
	uc := usecase.NewCategoryUseCase(repository.NewSQLRepository(db), store, logger.NewNop())
	return &fixture{db: db, fs: fs, uc: uc}
}

func (f *fixture) count(c *qt.C, table string) int {
	var n int
	c.Assert(f.db.Get(&n, "SELECT COUNT(*) FROM "+table), qt.IsNil)
	return n
}

func (f *fixture) exists(c *qt.C, path string) bool {
	ok, err := afero.Exists(f.fs, path)
	c.Assert(err, qt.IsNil)
	return ok
}

func (f *fixture) addProduct(c *qt.C, categoryID int64, code, image string) {
	var img any
	if image != "" {
		img = image
		c.Assert(afero.WriteFile(f.fs, "uploads/"+strings.TrimPrefix(image, "/static/uploads/"), png, 0o644), qt.IsNil)
	}
	_, err := f.db.Exec(`INSERT INTO products (category_id, name_en, name_ar, code, weight, image) VALUES (?, 'p', 'ب', ?, '1kg', ?)`,
		categoryID, code, img)
	c.Assert(err, qt.IsNil)
}

func TestCreateAndListInInsertionOrder(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	for _, slug := range []string{"nuts", "dates", "chocolate"} {
		_, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{NameEN: " " + slug + " ", NameAR: "عربي", Slug: slug})
		c.Assert(err, qt.IsNil)
	}

	cats, err := f.uc.ListCategories(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(cats, qt.HasLen, 3)
	c.Assert(cats[0].Slug, qt.Equals, "nuts")
	c.Assert(cats[0].NameEN, qt.Equals, "nuts")
	c.Assert(cats[2].Slug, qt.Equals, "chocolate")
	c.Assert(cats[0].CreatedAt.IsZero(), qt.IsFalse)
	c.Assert(cats[0].Image, qt.IsNil)

	got, err := f.uc.GetCategory(ctx, cats[1].ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Slug, qt.Equals, "dates")
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{NameEN: "Nuts", NameAR: "مكسرات", Slug: "nuts"})
	c.Assert(err, qt.IsNil)

	_, err = f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{NameEN: "Other", NameAR: "أخرى", Slug: "nuts"})
	c.Assert(errors.Is(err, apperr.ErrConflict), qt.IsTrue)
	var appErr *apperr.Error
	c.Assert(errors.As(err, &appErr), qt.IsTrue)
	c.Assert(appErr.Field, qt.Equals, "slug")
	c.Assert(f.count(c, "categories"), qt.Equals, 1)
}

func TestCreateValidatesInput(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)

	for _, in := range []dto.CreateCategoryInput{
		{NameEN: "Nuts", NameAR: "مكسرات", Slug: "Not A Slug"},
		{NameEN: "", NameAR: "مكسرات", Slug: "nuts"},
		{NameEN: "Nuts", NameAR: "   ", Slug: "nuts"},
	} {
		_, err := f.uc.CreateCategory(context.Background(), &in)
		c.Assert(errors.Is(err, apperr.ErrValidation), qt.IsTrue, qt.Commentf("%+v", in))
	}
	c.Assert(f.count(c, "categories"), qt.Equals, 0)
}

func TestCreateWithImage(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	cat, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		NameEN: "Nuts", NameAR: "مكسرات", Slug: "nuts",
		Image: &upload.Image{Filename: "nuts.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*cat.Image, qt.Equals, "/static/uploads/nuts_nuts.png")
	c.Assert(f.exists(c, "uploads/nuts_nuts.png"), qt.IsTrue)

	stored, err := f.uc.GetCategory(ctx, cat.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(*stored.Image, qt.Equals, "/static/uploads/nuts_nuts.png")
}

func TestCreateRollsBackOnBadImage(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)

	_, err := f.uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		NameEN: "Nuts", NameAR: "مكسرات", Slug: "nuts",
		Image: &upload.Image{Filename: "nuts.txt", Content: strings.NewReader("plain text")},
	})
	c.Assert(errors.Is(err, apperr.ErrValidation), qt.IsTrue)
	c.Assert(f.count(c, "categories"), qt.Equals, 0)
}

func TestUpdateCategory(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	nuts, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		NameEN: "Nuts", NameAR: "مكسرات", Slug: "nuts",
		Image: &upload.Image{Filename: "a.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	_, err = f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{NameEN: "Dates", NameAR: "تمور", Slug: "dates"})
	c.Assert(err, qt.IsNil)

	// Without an image the previous one stays.
	updated, err := f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: nuts.ID, NameEN: "Mixed Nuts", NameAR: "مكسرات مشكلة", Slug: "mixed-nuts"})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Slug, qt.Equals, "mixed-nuts")
	c.Assert(*updated.Image, qt.Equals, "/static/uploads/nuts_a.png")

	// A new image replaces the old file.
	updated, err = f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID: nuts.ID, NameEN: "Mixed Nuts", NameAR: "مكسرات مشكلة", Slug: "mixed-nuts",
		Image: &upload.Image{Filename: "b.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*updated.Image, qt.Equals, "/static/uploads/mixed-nuts_b.png")
	c.Assert(f.exists(c, "uploads/mixed-nuts_b.png"), qt.IsTrue)
	c.Assert(f.exists(c, "uploads/nuts_a.png"), qt.IsFalse)

	_, err = f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: nuts.ID, NameEN: "X", NameAR: "Y", Slug: "dates"})
	c.Assert(errors.Is(err, apperr.ErrConflict), qt.IsTrue)

	got, err := f.uc.GetCategory(ctx, nuts.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.NameEN, qt.Equals, "Mixed Nuts")
}

func TestUpdateMissingCategory(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{NameEN: "Nuts", NameAR: "مكسرات", Slug: "nuts"})
	c.Assert(err, qt.IsNil)

	_, err = f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: 999, NameEN: "X", NameAR: "Y", Slug: "x"})
	c.Assert(errors.Is(err, apperr.ErrNotFound), qt.IsTrue)

	cats, err := f.uc.ListCategories(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(cats, qt.HasLen, 1)
	c.Assert(cats[0].Slug, qt.Equals, "nuts")

	_, err = f.uc.GetCategory(ctx, 999)
	c.Assert(errors.Is(err, apperr.ErrNotFound), qt.IsTrue)
}

func TestDeleteCascadesToProducts(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	nuts, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{NameEN: "Nuts", NameAR: "مكسرات", Slug: "nuts"})
	c.Assert(err, qt.IsNil)
	dates, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{NameEN: "Dates", NameAR: "تمور", Slug: "dates"})
	c.Assert(err, qt.IsNil)

	f.addProduct(c, nuts.ID, "N1", "/static/uploads/N1_a.png")
	f.addProduct(c, nuts.ID, "N2", "")
	f.addProduct(c, dates.ID, "D1", "/static/uploads/D1_a.png")

	c.Assert(f.uc.DeleteCategory(ctx, nuts.ID), qt.IsNil)

	var codes []string
	c.Assert(f.db.Select(&codes, "SELECT code FROM products ORDER BY id"), qt.IsNil)
	c.Assert(codes, qt.DeepEquals, []string{"D1"})
	c.Assert(f.count(c, "categories"), qt.Equals, 1)
	c.Assert(f.exists(c, "uploads/N1_a.png"), qt.IsFalse)
	c.Assert(f.exists(c, "uploads/D1_a.png"), qt.IsTrue)

	err = f.uc.DeleteCategory(ctx, nuts.ID)
	c.Assert(errors.Is(err, apperr.ErrNotFound), qt.IsTrue)
	c.Assert(f.count(c, "categories"), qt.Equals, 1)
}

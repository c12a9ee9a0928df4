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

	catdto "github.com/vinestrading/catalog-service/internal/category/dto"
	catrepo "github.com/vinestrading/catalog-service/internal/category/repository"
	catuc "github.com/vinestrading/catalog-service/internal/category/usecase"
	"github.com/vinestrading/catalog-service/internal/database/dbtest"
	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/product"
	"github.com/vinestrading/catalog-service/internal/product/dto"
	"github.com/vinestrading/catalog-service/internal/product/repository"
	"github.com/vinestrading/catalog-service/internal/product/usecase"
	"github.com/vinestrading/catalog-service/internal/upload"
)

var png = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{7}, 32)...)

type fixture struct {
	db    *sqlx.DB
	fs    afero.Fs
	uc    product.UseCase
	nuts  *model.Category
	dates *model.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := qt.New(t)
	ctx := context.Background()

	db := dbtest.Open(t)
	fs := afero.NewMemMapFs()
	store := upload.NewStore(fs, "uploads", "/static/uploads", 1<<20)
	categories := catrepo.NewSQLRepository(db)

	cats := catuc.NewCategoryUseCase(categories, store, logger.NewNop())
	nuts, err := cats.CreateCategory(ctx, &catdto.CreateCategoryInput{NameEN: "Nuts", NameAR: "مكسرات", Slug: "nuts"})
	c.Assert(err, qt.IsNil)
	dates, err := cats.CreateCategory(ctx, &catdto.CreateCategoryInput{NameEN: "Dates", NameAR: "تمور", Slug: "dates"})
	c.Assert(err, qt.IsNil)

	return &fixture{
		db:    db,
		fs:    fs,
		uc:    usecase.NewProductUseCase(repository.NewSQLRepository(db), categories, store, logger.NewNop()),
		nuts:  nuts,
		dates: dates,
	}
}

func (f *fixture) create(c *qt.C, categoryID int64, nameEN, nameAR, code string) *model.Product {
	p, err := f.uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		CategoryID: categoryID, NameEN: nameEN, NameAR: nameAR, Code: code, Weight: "500g",
	})
	c.Assert(err, qt.IsNil)
	return p
}

func (f *fixture) exists(c *qt.C, path string) bool {
	ok, err := afero.Exists(f.fs, path)
	c.Assert(err, qt.IsNil)
	return ok
}

func codes(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Code
	}
	return out
}

func TestListProductsFilters(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	f.create(c, f.dates.ID, "Chocolate Dates", "تمر بالشوكولاتة", "D-100")
	f.create(c, f.nuts.ID, "Roasted Almonds", "لوز محمص", "N-200")
	f.create(c, f.nuts.ID, "Cashews", "كاجو", "CHOC-300")
	f.create(c, f.dates.ID, "Medjool", "مجدول", "D-400")
	f.create(c, f.nuts.ID, "Éclair Praline", "برالين", "P-500")

	tests := []struct {
		name    string
		filters *dto.ProductFilters
		want    []string
	}{
		{name: "all", filters: nil, want: []string{"D-100", "N-200", "CHOC-300", "D-400", "P-500"}},
		{name: "lower search", filters: &dto.ProductFilters{SearchQuery: "choc"}, want: []string{"D-100", "CHOC-300"}},
		{name: "upper search", filters: &dto.ProductFilters{SearchQuery: "CHOC"}, want: []string{"D-100", "CHOC-300"}},
		{name: "arabic search", filters: &dto.ProductFilters{SearchQuery: "لوز"}, want: []string{"N-200"}},
		{name: "code search", filters: &dto.ProductFilters{SearchQuery: "-400"}, want: []string{"D-400"}},
		{name: "accented lower search", filters: &dto.ProductFilters{SearchQuery: "éclair"}, want: []string{"P-500"}},
		{name: "accented exact search", filters: &dto.ProductFilters{SearchQuery: "ÉCLAIR"}, want: []string{"P-500"}},
		{name: "category", filters: &dto.ProductFilters{CategoryID: &f.nuts.ID}, want: []string{"N-200", "CHOC-300", "P-500"}},
		{name: "category and search", filters: &dto.ProductFilters{CategoryID: &f.dates.ID, SearchQuery: "choc"}, want: []string{"D-100"}},
		{name: "no match", filters: &dto.ProductFilters{SearchQuery: "pistachio"}, want: []string{}},
		{name: "wildcards are literal", filters: &dto.ProductFilters{SearchQuery: "%"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			got, err := f.uc.ListProducts(ctx, tt.filters)
			c.Assert(err, qt.IsNil)
			c.Assert(codes(got), qt.DeepEquals, tt.want)
		})
	}

	all, err := f.uc.ListProducts(ctx, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(all[0].Category, qt.IsNotNil)
	c.Assert(all[0].Category.Slug, qt.Equals, "dates")
}

func TestCreateProductRules(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	p := f.create(c, f.nuts.ID, "Almonds", "لوز", "N-1")
	c.Assert(p.Category.Slug, qt.Equals, "nuts")
	c.Assert(p.DescriptionEN, qt.IsNil)
	c.Assert(p.Image, qt.IsNil)

	_, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: f.dates.ID, NameEN: "X", NameAR: "Y", Code: "N-1", Weight: "1kg"})
	c.Assert(errors.Is(err, apperr.ErrConflict), qt.IsTrue)
	c.Assert(apperr.MessageID(err), qt.Equals, "error_code_exists")

	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: 999, NameEN: "X", NameAR: "Y", Code: "N-2", Weight: "1kg"})
	c.Assert(errors.Is(err, apperr.ErrValidation), qt.IsTrue)
	var appErr *apperr.Error
	c.Assert(errors.As(err, &appErr), qt.IsTrue)
	c.Assert(appErr.Field, qt.Equals, "category_id")

	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: f.nuts.ID, NameEN: "X", NameAR: "Y", Code: "N-3"})
	c.Assert(errors.Is(err, apperr.ErrValidation), qt.IsTrue)

	all, err := f.uc.ListProducts(ctx, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(all, qt.HasLen, 1)
}

func TestCreateProductImage(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CategoryID: f.nuts.ID, NameEN: "Almonds", NameAR: "لوز", Code: "N-1", Weight: "1kg",
		DescriptionEN: "Crunchy", Image: &upload.Image{Filename: "almonds.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*p.Image, qt.Equals, "/static/uploads/N-1_almonds.png")
	c.Assert(*p.DescriptionEN, qt.Equals, "Crunchy")
	c.Assert(f.exists(c, "uploads/N-1_almonds.png"), qt.IsTrue)

	// A rejected file leaves neither a row nor a file behind.
	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CategoryID: f.nuts.ID, NameEN: "Walnuts", NameAR: "جوز", Code: "N-2", Weight: "1kg",
		Image: &upload.Image{Filename: "walnuts.png", Content: strings.NewReader("not an image")},
	})
	c.Assert(errors.Is(err, apperr.ErrValidation), qt.IsTrue)
	all, err := f.uc.ListProducts(ctx, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(codes(all), qt.DeepEquals, []string{"N-1"})
	c.Assert(f.exists(c, "uploads/N-2_walnuts.png"), qt.IsFalse)
}

func TestUpdateProductImage(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CategoryID: f.nuts.ID, NameEN: "Almonds", NameAR: "لوز", Code: "N-1", Weight: "1kg",
		Image: &upload.Image{Filename: "a.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)

	// No new image keeps the old reference.
	updated, err := f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID: p.ID, CategoryID: f.dates.ID, NameEN: "Almonds XL", NameAR: "لوز", Code: "N-1", Weight: "2kg",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*updated.Image, qt.Equals, "/static/uploads/N-1_a.png")
	c.Assert(updated.Category.Slug, qt.Equals, "dates")
	c.Assert(updated.Weight, qt.Equals, "2kg")

	// A new image replaces the reference and removes the old file.
	updated, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID: p.ID, CategoryID: f.dates.ID, NameEN: "Almonds XL", NameAR: "لوز", Code: "N-1", Weight: "2kg",
		Image: &upload.Image{Filename: "b.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*updated.Image, qt.Equals, "/static/uploads/N-1_b.png")
	c.Assert(f.exists(c, "uploads/N-1_b.png"), qt.IsTrue)
	c.Assert(f.exists(c, "uploads/N-1_a.png"), qt.IsFalse)

	// Re-uploading under the same name stores a new file and drops the old one.
	updated, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID: p.ID, CategoryID: f.dates.ID, NameEN: "Almonds XL", NameAR: "لوز", Code: "N-1", Weight: "2kg",
		Image: &upload.Image{Filename: "b.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*updated.Image, qt.Equals, "/static/uploads/N-1_2_b.png")
	c.Assert(f.exists(c, "uploads/N-1_2_b.png"), qt.IsTrue)
	c.Assert(f.exists(c, "uploads/N-1_b.png"), qt.IsFalse)
}

func TestReusedCodeKeepsOtherProductsImage(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CategoryID: f.nuts.ID, NameEN: "Almonds", NameAR: "لوز", Code: "X", Weight: "1kg",
		Image: &upload.Image{Filename: "a.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)

	_, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID: a.ID, CategoryID: f.nuts.ID, NameEN: "Almonds", NameAR: "لوز", Code: "Y", Weight: "1kg",
	})
	c.Assert(err, qt.IsNil)

	b, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CategoryID: f.nuts.ID, NameEN: "Cashews", NameAR: "كاجو", Code: "X", Weight: "1kg",
		Image: &upload.Image{Filename: "a.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*b.Image, qt.Not(qt.Equals), *a.Image)

	c.Assert(f.uc.DeleteProduct(ctx, b.ID), qt.IsNil)

	got, err := f.uc.GetProduct(ctx, a.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(*got.Image, qt.Equals, "/static/uploads/X_a.png")
	c.Assert(f.exists(c, "uploads/X_a.png"), qt.IsTrue)
	c.Assert(f.exists(c, "uploads/X_2_a.png"), qt.IsFalse)
}

func TestCategorySlugMatchingCodeKeepsProductImage(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CategoryID: f.nuts.ID, NameEN: "Almonds", NameAR: "لوز", Code: "spices", Weight: "1kg",
		Image: &upload.Image{Filename: "a.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)

	cats := catuc.NewCategoryUseCase(catrepo.NewSQLRepository(f.db), upload.NewStore(f.fs, "uploads", "/static/uploads", 1<<20), logger.NewNop())
	spices, err := cats.CreateCategory(ctx, &catdto.CreateCategoryInput{
		NameEN: "Spices", NameAR: "بهارات", Slug: "spices",
		Image: &upload.Image{Filename: "a.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*spices.Image, qt.Equals, "/static/uploads/spices_2_a.png")

	c.Assert(cats.DeleteCategory(ctx, spices.ID), qt.IsNil)
	c.Assert(f.exists(c, "uploads/spices_a.png"), qt.IsTrue)

	got, err := f.uc.GetProduct(ctx, p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(*got.Image, qt.Equals, "/static/uploads/spices_a.png")
}

func TestUpdateProductConflictsAndMissing(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	a := f.create(c, f.nuts.ID, "Almonds", "لوز", "N-1")
	f.create(c, f.nuts.ID, "Cashews", "كاجو", "N-2")

	_, err := f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: a.ID, CategoryID: f.nuts.ID, NameEN: "A", NameAR: "B", Code: "N-2", Weight: "1kg"})
	c.Assert(errors.Is(err, apperr.ErrConflict), qt.IsTrue)

	_, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: a.ID, CategoryID: 999, NameEN: "A", NameAR: "B", Code: "N-1", Weight: "1kg"})
	c.Assert(errors.Is(err, apperr.ErrValidation), qt.IsTrue)

	_, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: 999, CategoryID: f.nuts.ID, NameEN: "A", NameAR: "B", Code: "N-9", Weight: "1kg"})
	c.Assert(errors.Is(err, apperr.ErrNotFound), qt.IsTrue)

	got, err := f.uc.GetProduct(ctx, a.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.NameEN, qt.Equals, "Almonds")
	c.Assert(got.Code, qt.Equals, "N-1")
}

func TestDeleteProduct(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CategoryID: f.nuts.ID, NameEN: "Almonds", NameAR: "لوز", Code: "N-1", Weight: "1kg",
		Image: &upload.Image{Filename: "a.png", Content: bytes.NewReader(png)},
	})
	c.Assert(err, qt.IsNil)

	c.Assert(f.uc.DeleteProduct(ctx, p.ID), qt.IsNil)
	c.Assert(f.exists(c, "uploads/N-1_a.png"), qt.IsFalse)

	_, err = f.uc.GetProduct(ctx, p.ID)
	c.Assert(errors.Is(err, apperr.ErrNotFound), qt.IsTrue)
	err = f.uc.DeleteProduct(ctx, p.ID)
	c.Assert(errors.Is(err, apperr.ErrNotFound), qt.IsTrue)
}

package duck

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"

	nt "shopkeep/entity"
	"shopkeep/mutation"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any) {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}
func (nopLogger) WithFields(ctx context.Context, kv ...any) context.Context { return ctx }

func seeded(t *testing.T) *Duck {
	t.Helper()

	dk, err := New("", nopLogger{})
	if err != nil {
		t.Fatalf("failed to open duck: %v", err)
	}
	t.Cleanup(dk.Close)

	seed, err := LoadSeed("testdata/seed.yaml")
	if err != nil {
		t.Fatalf("failed to load seed: %v", err)
	}
	err = dk.Load(context.Background(), seed)
	if err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return dk
}

func count(t *testing.T, dk *Duck, kind nt.ListKind) int {
	t.Helper()

	n, err := dk.Count(context.Background(), kind)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func valid() nt.Values {
	return nt.Values{
		Title:        "Bowl",
		Price:        4.5,
		CountInStock: 2,
		Images:       []string{"/img/bowl.png"},
		Brand:        "Acme",
		Categories:   []string{"kitchen"},
		Status:       nt.Hidden,
	}
}

func TestPage(t *testing.T) {

	dk := seeded(t)
	ctx := context.Background()

	prds, err := dk.Page(ctx, nt.MainList, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prds) != 2 {
		t.Fatalf("got %d products, want 2", len(prds))
	}

	mug := prds[0]
	if mug.Id != 7 || mug.Title != "Mug" || mug.Price != 9.99 || mug.CountInStock != 3 {
		t.Errorf("unexpected product: %#v", mug)
	}
	if mug.Brand == nil || mug.Brand.Brand.Name != "Acme" {
		t.Errorf("brand not loaded: %#v", mug.Brand)
	}
	if len(mug.Images) != 1 || mug.Images[0].Image.Alt != "front" {
		t.Errorf("images not loaded: %#v", mug.Images)
	}
	if len(mug.Categories) != 2 || mug.Categories[1].Category.Name != "gifts" {
		t.Errorf("categories not loaded: %#v", mug.Categories)
	}
	if mug.CreatedAt == nil || mug.CreatedAt.Year() != 2024 {
		t.Errorf("created at not loaded: %v", mug.CreatedAt)
	}
	if prds[1].Brand != nil || prds[1].CreatedAt != nil {
		t.Errorf("absent values should stay absent: %#v", prds[1])
	}

	prds, err = dk.Page(ctx, nt.MainList, 5, 10)
	if err != nil || len(prds) != 0 {
		t.Errorf("page past end: %d products, %v", len(prds), err)
	}

	if count(t, dk, nt.RemovedList) != 1 {
		t.Errorf("removed list not seeded")
	}

	_, err = dk.Page(ctx, nt.ListKind("OTHER"), 0, 10)
	if err == nil {
		t.Errorf("expected error for unknown list")
	}
}

func TestValidate(t *testing.T) {

	cases := []struct {
		name  string
		edit  func(*nt.Values)
		valid bool
	}{
		{name: "valid", edit: func(v *nt.Values) {}, valid: true},
		{name: "blank title", edit: func(v *nt.Values) { v.Title = "  " }},
		{name: "nan price", edit: func(v *nt.Values) { v.Price = math.NaN() }},
		{name: "negative price", edit: func(v *nt.Values) { v.Price = -1 }},
		{name: "nan stock", edit: func(v *nt.Values) { v.CountInStock = math.NaN() }},
		{name: "fractional stock", edit: func(v *nt.Values) { v.CountInStock = 1.5 }},
		{name: "removal status", edit: func(v *nt.Values) { v.Status = nt.InRemoval }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			values := valid()
			tc.edit(&values)

			err := Validate(values)
			if tc.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidValues) {
				t.Errorf("expected ErrInvalidValues, got %v", err)
			}
		})
	}
}

func TestCreateAndUpdate(t *testing.T) {

	dk := seeded(t)
	ctx := context.Background()

	id, err := dk.Create(ctx, valid(), mutation.CreateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 9 {
		t.Errorf("got id %d, want 9", id)
	}
	if count(t, dk, nt.MainList) != 3 {
		t.Errorf("product not listed")
	}

	values := valid()
	values.Title = "Big Bowl"
	values.Images = []string{"/a.png", "/b.png"}
	err = dk.Update(ctx, id, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prds, _ := dk.Page(ctx, nt.MainList, 2, 1)
	if len(prds) != 1 || prds[0].Title != "Big Bowl" || len(prds[0].Images) != 2 {
		t.Errorf("update not stored: %#v", prds)
	}

	values.Price = math.NaN()
	err = dk.Update(ctx, id, values)
	if !errors.Is(err, ErrInvalidValues) {
		t.Errorf("expected ErrInvalidValues, got %v", err)
	}

	err = dk.Update(ctx, 404, valid())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAndRestore(t *testing.T) {

	dk := seeded(t)
	ctx := context.Background()

	err := dk.Delete(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count(t, dk, nt.MainList) != 1 || count(t, dk, nt.RemovedList) != 2 {
		t.Errorf("delete did not move product")
	}

	err = dk.Delete(ctx, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	removed, _ := dk.Page(ctx, nt.RemovedList, 0, 10)
	if len(removed) != 2 || removed[1].Id != 7 || len(removed[1].Images) != 1 {
		t.Fatalf("unexpected removed list: %#v", removed)
	}

	id, err := dk.Create(ctx, removed[1].Values(), mutation.CreateOptions{RestoreId: 7, Origin: nt.RemovedList})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("restored under id %d, want 7", id)
	}
	if count(t, dk, nt.MainList) != 2 || count(t, dk, nt.RemovedList) != 1 {
		t.Errorf("restore did not move product back")
	}

	prds, _ := dk.Page(ctx, nt.MainList, 0, 1)
	if prds[0].Title != "Mug" || prds[0].CreatedAt == nil || prds[0].CreatedAt.Year() != 2024 {
		t.Errorf("restored product lost data: %#v", prds[0])
	}

	_, err = dk.Create(ctx, valid(), mutation.CreateOptions{RestoreId: 99})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCreated(t *testing.T) {

	dk, err := New("", nopLogger{})
	if err != nil {
		t.Fatalf("failed to open duck: %v", err)
	}
	t.Cleanup(dk.Close)
	ctx := context.Background()

	values := valid()
	values.Title = "Mug"
	values.Price = 9.99
	values.Status = nt.Visible

	id, err := dk.Create(ctx, values, mutation.CreateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = dk.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete(%d): %v", id, err)
	}

	removed, err := dk.Page(ctx, nt.RemovedList, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed) != 1 || removed[0].Id != id || removed[0].Title != "Mug" {
		t.Errorf("unexpected removed list: %#v", removed)
	}
	if count(t, dk, nt.MainList) != 0 {
		t.Errorf("deleted product still listed")
	}
}

func TestImageAltKept(t *testing.T) {

	dk := seeded(t)
	ctx := context.Background()

	prds, _ := dk.Page(ctx, nt.MainList, 0, 1)
	values := prds[0].Values()
	values.Images = append(values.Images, "/img/mug-side.png")

	err := dk.Update(ctx, 7, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prds, _ = dk.Page(ctx, nt.MainList, 0, 1)
	images := prds[0].Images
	if len(images) != 2 || images[0].Image.Alt != "front" || images[1].Image.Alt != "" {
		t.Fatalf("alt text not kept on update: %#v", images)
	}

	err = dk.Delete(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = dk.Create(ctx, values, mutation.CreateOptions{RestoreId: 7, Origin: nt.RemovedList})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prds, _ = dk.Page(ctx, nt.MainList, 0, 1)
	if prds[0].Id != 7 || len(prds[0].Images) != 2 || prds[0].Images[0].Image.Alt != "front" {
		t.Errorf("alt text not kept on restore: %#v", prds[0].Images)
	}
}

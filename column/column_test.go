package column

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	nt "shopkeep/entity"
	"shopkeep/theme"
)

type stubImages struct {
	calls int
}

func (si *stubImages) Render(src, alt string, width, height int) string {
	si.calls++
	return "[" + alt + "]"
}

func env() Env {
	return Env{
		Theme: theme.New(theme.Dark),
		Dates: DateFormat{Layout: "2006-01-02 15:04", Location: time.UTC},
	}
}

func mugRow() nt.Row {

	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	return nt.Row{
		Product: nt.Product{
			Id:           7,
			Title:        "Mug",
			Price:        9.99,
			CountInStock: 3,
			Status:       string(nt.Visible),
			CreatedAt:    &created,
			Brand:        &nt.BrandRef{Brand: nt.Brand{Name: "Acme"}},
			Categories: []nt.CategoryRef{
				{Category: nt.Category{Name: "kitchen"}},
				{Category: nt.Category{Name: "gifts"}},
			},
		},
		Mutate: nt.Mutate{Update: true},
	}
}

func column(key string) Column {
	for _, col := range Registry() {
		if col.Key == key {
			col.Width = 0
			return col
		}
	}
	panic("no column " + key)
}

func TestRegistryOrder(t *testing.T) {

	want := []string{
		"status", "images", "title", "price", "countInStock", "description",
		"brand", "categories", "createdAt", "updatedAt", "mutate",
	}

	got := Headers(Registry())
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRender(t *testing.T) {

	cases := []struct {
		name string
		key  string
		want string
	}{
		{name: "title", key: "title", want: "Mug"},
		{name: "price shortest float", key: "price", want: "9.99"},
		{name: "stock", key: "countInStock", want: "3"},
		{name: "status", key: "status", want: "VISIBLE"},
		{name: "date", key: "createdAt", want: "2024-03-01 10:30"},
		{name: "absent date", key: "updatedAt", want: ""},
		{name: "brand", key: "brand", want: "Acme"},
		{name: "categories", key: "categories", want: "kitchen\ngifts"},
		{name: "no images", key: "images", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			got, err := Render(env(), mugRow(), column(tc.key))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderStatusInvalid(t *testing.T) {

	for _, status := range []string{"", "visible", "ARCHIVED"} {
		row := mugRow()
		row.Product.Status = status

		got, err := Render(env(), row, column("status"))

		var se *nt.StatusError
		if !errors.As(err, &se) {
			t.Errorf("%q: expected status error, got %v", status, err)
		}
		if got != "" {
			t.Errorf("%q: expected no cell text with error, got %q", status, got)
		}
	}
}

func TestRenderAbsentBrand(t *testing.T) {

	row := mugRow()
	row.Product.Brand = nil

	got, err := Render(env(), row, column("brand"))
	if err != nil || got != "" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestRenderImages(t *testing.T) {

	row := mugRow()
	row.Product.Images = []nt.ProductImage{
		{Image: nt.Image{Id: 1, Src: "/img/mug.png", Alt: "front"}},
		{Image: nt.Image{Id: 2, Src: "/img/mug-back.png", Alt: "back"}},
	}

	stub := &stubImages{}
	ev := env()
	ev.Images = stub

	got, err := Render(ev, row, column("images"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("got %d thumbnails, want 2", stub.calls)
	}
	if !strings.Contains(got, "[front]") || !strings.Contains(got, "[back]") {
		t.Errorf("unexpected images cell: %q", got)
	}
}

func TestRenderAction(t *testing.T) {

	row := mugRow()

	got, err := Render(env(), row, column("mutate"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Update") || strings.Contains(got, "Delete") {
		t.Errorf("unexpected action cell: %q", got)
	}

	row.Mutate = nt.Mutate{}
	got, _ = Render(env(), row, column("mutate"))
	if got != "" {
		t.Errorf("expected empty action cell, got %q", got)
	}
}

func TestRenderTruncates(t *testing.T) {

	col := column("title")
	col.Width = 4

	row := mugRow()
	row.Product.Title = "Enamel Mug"

	got, err := Render(env(), row, col)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Ena…" {
		t.Errorf("got %q", got)
	}
}

func TestApply(t *testing.T) {

	layout := []Column{
		{Key: "description", Hidden: true},
		{Key: "TITLE", Width: 30, Header: "name"},
		{Key: "nosuch", Width: 5},
	}

	cols := Apply(Registry(), layout)
	if len(cols) != len(Registry()) {
		t.Fatalf("apply changed column count")
	}

	vis := Visible(cols)
	for _, col := range vis {
		if col.Key == "description" {
			t.Errorf("description should be hidden")
		}
		if col.Key == "title" && (col.Width != 30 || col.Header != "name") {
			t.Errorf("title not overridden: %#v", col)
		}
	}
	if len(vis) != len(cols)-1 {
		t.Errorf("got %d visible, want %d", len(vis), len(cols)-1)
	}
	if Same(cols, Registry()) {
		t.Errorf("overridden columns should differ")
	}
	if !Same(Registry(), Registry()) {
		t.Errorf("registry should equal itself")
	}
}

func TestNewDateFormat(t *testing.T) {

	tm := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)

	cases := []struct {
		locale string
		want   string
	}{
		{locale: "", want: "3/1/2024, 2:05:09 PM"},
		{locale: "en-US", want: "3/1/2024, 2:05:09 PM"},
		{locale: "en-GB", want: "01/03/2024, 14:05:09"},
		{locale: "de-DE", want: "1.3.2024, 14:05:09"},
		{locale: "ja", want: "2024/3/1 14:05:09"},
	}

	for _, tc := range cases {
		t.Run(tc.locale, func(t *testing.T) {

			df, err := NewDateFormat(tc.locale, time.UTC)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := df.Format(tm); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	_, err := NewDateFormat("not a locale!", time.UTC)
	if err == nil {
		t.Errorf("expected error for bad locale")
	}
}

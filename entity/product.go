package entity

import "time"

// Image is a stored product image.
type Image struct {
	Id  int64  `json:"id" yaml:"id"`
	Src string `json:"src" yaml:"src"`
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// ProductImage links an image to a product.
type ProductImage struct {
	Image Image `json:"image" yaml:"image"`
}

type Brand struct {
	Name string `json:"name" yaml:"name"`
}

// BrandRef is the optional brand relation of a product.
type BrandRef struct {
	Brand Brand `json:"brand" yaml:"brand"`
}

type Category struct {
	Name string `json:"name" yaml:"name"`
}

// CategoryRef links a category to a product.
type CategoryRef struct {
	Category Category `json:"category" yaml:"category"`
}

// Product is a storefront product as listed by the admin panel.
type Product struct {
	Id           int64          `json:"id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	Price        float64        `json:"price" yaml:"price"`
	CountInStock int            `json:"countInStock" yaml:"countInStock"`
	Description  string         `json:"description" yaml:"description"`
	Status       string         `json:"status" yaml:"status"`
	CreatedAt    *time.Time     `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt    *time.Time     `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Images       []ProductImage `json:"images" yaml:"images"`
	Brand        *BrandRef      `json:"brand,omitempty" yaml:"brand,omitempty"`
	Categories   []CategoryRef  `json:"categories" yaml:"categories"`
}

// Values returns the form values a product would be edited or re-created with.
func (prd Product) Values() Values {

	images := make([]string, len(prd.Images))
	for i, img := range prd.Images {
		images[i] = img.Image.Src
	}

	categories := make([]string, len(prd.Categories))
	for i, cat := range prd.Categories {
		categories[i] = cat.Category.Name
	}

	brand := ""
	if prd.Brand != nil {
		brand = prd.Brand.Brand.Name
	}

	return Values{
		Title:        prd.Title,
		Price:        prd.Price,
		Images:       images,
		Brand:        brand,
		Description:  prd.Description,
		Categories:   categories,
		Status:       Status(prd.Status),
		CountInStock: float64(prd.CountInStock),
	}
}

// Values is the editable shape of a product as held by a form.
// Numeric members may be NaN when the text they were parsed from was not a number.
type Values struct {
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Images       []string `json:"images"`
	Brand        string   `json:"brand"`
	Description  string   `json:"description"`
	Categories   []string `json:"categories"`
	Status       Status   `json:"status"`
	CountInStock float64  `json:"countInStock"`
}

// ListKind identifies which product list a row was loaded from.
type ListKind string

const (
	MainList    ListKind = "MAIN"
	RemovedList ListKind = "REMOVED"
)

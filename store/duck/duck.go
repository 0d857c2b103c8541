// Package duck is a DuckDB-backed product store listing pages and applying product mutations.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	_ "github.com/marcboeker/go-duckdb"

	nt "shopkeep/entity"
	"shopkeep/mutation"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrInvalidValues = errors.New("invalid product values")
)

const (
	productsTable = "products"
	removedTable  = "removed_products"
)

// Duck stores products in main and removed lists.
type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filename string
	now      func() time.Time
	mu       sync.Mutex
}

// New opens the database at path, in memory when path is empty, and creates the schema.
func New(path string, lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open duck at %q", path)
		return
	}

	dk = &Duck{
		db:       db,
		logger:   lgr,
		filename: path,
		now:      func() time.Time { return time.Now().UTC() },
	}

	err = dk.createSchema()
	if err != nil {
		db.Close()
		dk = nil
	}
	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the database.
func (dk *Duck) Name() string {

	if dk.filename == "" {
		return "memory"
	}
	return dk.filename
}

// Count returns the number of products in a list.
func (dk *Duck) Count(ctx context.Context, kind nt.ListKind) (count int, err error) {

	table, err := tableFor(kind)
	if err != nil {
		return
	}

	err = dk.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	err = errors.Wrapf(err, "failed to count %s", table)
	return
}

// Page returns products of a list ordered by id.
func (dk *Duck) Page(ctx context.Context, kind nt.ListKind, offset, size int) (prds []nt.Product, err error) {

	table, err := tableFor(kind)
	if err != nil {
		return
	}

	query := fmt.Sprintf(`
		SELECT id, title, price, count_in_stock, description, status, brand, created_at, updated_at
		FROM %s ORDER BY id LIMIT ? OFFSET ?`, table)

	rows, err := dk.db.QueryContext(ctx, query, size, offset)
	if err != nil {
		err = errors.Wrapf(err, "failed to query %s", table)
		return
	}
	defer rows.Close()

	prds = []nt.Product{}
	for rows.Next() {
		var prd nt.Product
		prd, err = scanProduct(rows)
		if err != nil {
			return
		}
		prds = append(prds, prd)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrapf(err, "error iterating %s", table)
		return
	}

	err = dk.attach(ctx, prds)
	return
}

// Create inserts a product and returns its id.
// With opts.RestoreId set, the removed product of that id is re-inserted with the values given.
func (dk *Duck) Create(ctx context.Context, values nt.Values, opts mutation.CreateOptions) (id int64, err error) {

	err = Validate(values)
	if err != nil {
		return
	}

	dk.mu.Lock()
	defer dk.mu.Unlock()

	err = dk.inTx(ctx, func(tx *sql.Tx) (err error) {

		created := dk.now()

		if opts.RestoreId != 0 {
			id = opts.RestoreId

			var original sql.NullTime
			err = tx.QueryRowContext(ctx,
				"SELECT created_at FROM removed_products WHERE id = ?", id).Scan(&original)
			if errors.Is(err, sql.ErrNoRows) {
				err = errors.Wrapf(ErrNotFound, "removed product %d", id)
				return
			}
			if err != nil {
				err = errors.Wrapf(err, "failed to find removed product %d", id)
				return
			}
			if original.Valid {
				created = original.Time
			}

			_, err = tx.ExecContext(ctx, "DELETE FROM removed_products WHERE id = ?", id)
			if err != nil {
				err = errors.Wrapf(err, "failed to drop removed product %d", id)
				return
			}
		} else {
			id, err = nextId(ctx, tx)
			if err != nil {
				return
			}
		}

		prd := product(id, values)
		prd.CreatedAt = &created
		updated := dk.now()
		prd.UpdatedAt = &updated

		err = insertProduct(ctx, tx, productsTable, prd)
		if err != nil {
			return
		}
		err = replaceRelations(ctx, tx, id, values)
		return
	})
	if err != nil {
		return
	}

	dk.logger.Info(ctx, "product created", "product_id", id, "restored", opts.RestoreId != 0)
	return
}

// Update replaces the values of a listed product.
func (dk *Duck) Update(ctx context.Context, id int64, values nt.Values) (err error) {

	err = Validate(values)
	if err != nil {
		return
	}

	dk.mu.Lock()
	defer dk.mu.Unlock()

	err = dk.inTx(ctx, func(tx *sql.Tx) (err error) {

		err = mustExist(ctx, tx, productsTable, id)
		if err != nil {
			return
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE products
			SET title = ?, price = ?, count_in_stock = ?, description = ?, status = ?, brand = ?, updated_at = ?
			WHERE id = ?`,
			strings.TrimSpace(values.Title), values.Price, int(values.CountInStock), values.Description,
			string(values.Status), nullString(values.Brand), dk.now(), id)
		if err != nil {
			err = errors.Wrapf(err, "failed to update product %d", id)
			return
		}

		err = replaceRelations(ctx, tx, id, values)
		return
	})
	if err != nil {
		return
	}

	dk.logger.Info(ctx, "product updated", "product_id", id)
	return
}

// Delete moves a listed product to the removed list.
func (dk *Duck) Delete(ctx context.Context, id int64) (err error) {

	dk.mu.Lock()
	defer dk.mu.Unlock()

	err = dk.inTx(ctx, func(tx *sql.Tx) (err error) {

		err = mustExist(ctx, tx, productsTable, id)
		if err != nil {
			return
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO removed_products
				(id, title, price, count_in_stock, description, status, brand, created_at, updated_at, removed_at)
			SELECT id, title, price, count_in_stock, description, status, brand, created_at, updated_at, CAST(? AS TIMESTAMP)
			FROM products WHERE id = ?`, dk.now(), id)
		if err != nil {
			err = errors.Wrapf(err, "failed to copy product %d to removed", id)
			return
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
		err = errors.Wrapf(err, "failed to delete product %d", id)
		return
	})
	if err != nil {
		return
	}

	dk.logger.Info(ctx, "product removed", "product_id", id)
	return
}

// unexported

func (dk *Duck) createSchema() (err error) {

	ddl := []string{`
		CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			title VARCHAR NOT NULL,
			price DOUBLE NOT NULL,
			count_in_stock INTEGER NOT NULL,
			description VARCHAR NOT NULL,
			status VARCHAR NOT NULL,
			brand VARCHAR,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`, `
		CREATE TABLE IF NOT EXISTS removed_products (
			id BIGINT PRIMARY KEY,
			title VARCHAR NOT NULL,
			price DOUBLE NOT NULL,
			count_in_stock INTEGER NOT NULL,
			description VARCHAR NOT NULL,
			status VARCHAR NOT NULL,
			brand VARCHAR,
			created_at TIMESTAMP,
			updated_at TIMESTAMP,
			removed_at TIMESTAMP
		)`, `
		CREATE TABLE IF NOT EXISTS product_images (
			product_id BIGINT NOT NULL,
			position INTEGER NOT NULL,
			id BIGINT NOT NULL,
			src VARCHAR NOT NULL,
			alt VARCHAR NOT NULL
		)`, `
		CREATE TABLE IF NOT EXISTS product_categories (
			product_id BIGINT NOT NULL,
			position INTEGER NOT NULL,
			name VARCHAR NOT NULL
		)`,
	}

	for _, stmt := range ddl {
		_, err = dk.db.Exec(stmt)
		if err != nil {
			err = errors.Wrapf(err, "failed to create schema")
			return
		}
	}
	return
}

func (dk *Duck) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {

	tx, err := dk.db.BeginTx(ctx, nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to begin tx")
		return
	}

	err = fn(tx)
	if err != nil {
		tx.Rollback()
		return
	}

	err = tx.Commit()
	err = errors.Wrapf(err, "failed to commit")
	return
}

// attach fills images and categories of prds.
func (dk *Duck) attach(ctx context.Context, prds []nt.Product) (err error) {

	if len(prds) == 0 {
		return
	}

	byId := map[int64]int{}
	args := make([]any, len(prds))
	marks := make([]string, len(prds))
	for i, prd := range prds {
		byId[prd.Id] = i
		args[i] = prd.Id
		marks[i] = "?"
		prds[i].Images = []nt.ProductImage{}
		prds[i].Categories = []nt.CategoryRef{}
	}
	in := strings.Join(marks, ", ")

	rows, err := dk.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT product_id, id, src, alt FROM product_images
		WHERE product_id IN (%s) ORDER BY product_id, position`, in), args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query images")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var productId int64
		var img nt.Image
		err = rows.Scan(&productId, &img.Id, &img.Src, &img.Alt)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan image")
			return
		}
		idx := byId[productId]
		prds[idx].Images = append(prds[idx].Images, nt.ProductImage{Image: img})
	}
	err = rows.Err()
	if err != nil {
		err = errors.Wrapf(err, "error iterating images")
		return
	}

	cats, err := dk.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT product_id, name FROM product_categories
		WHERE product_id IN (%s) ORDER BY product_id, position`, in), args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query categories")
		return
	}
	defer cats.Close()

	for cats.Next() {
		var productId int64
		var cat nt.Category
		err = cats.Scan(&productId, &cat.Name)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan category")
			return
		}
		idx := byId[productId]
		prds[idx].Categories = append(prds[idx].Categories, nt.CategoryRef{Category: cat})
	}
	err = cats.Err()
	err = errors.Wrapf(err, "error iterating categories")
	return
}

// help

func tableFor(kind nt.ListKind) (string, error) {

	switch kind {
	case nt.MainList:
		return productsTable, nil
	case nt.RemovedList:
		return removedTable, nil
	}
	return "", errors.Errorf("unknown list kind %q", kind)
}

func scanProduct(rows *sql.Rows) (prd nt.Product, err error) {

	var brand sql.NullString
	var created, updated sql.NullTime

	err = rows.Scan(&prd.Id, &prd.Title, &prd.Price, &prd.CountInStock, &prd.Description,
		&prd.Status, &brand, &created, &updated)
	if err != nil {
		err = errors.Wrapf(err, "failed to scan product")
		return
	}

	if brand.Valid {
		prd.Brand = &nt.BrandRef{Brand: nt.Brand{Name: brand.String}}
	}
	if created.Valid {
		tm := created.Time
		prd.CreatedAt = &tm
	}
	if updated.Valid {
		tm := updated.Time
		prd.UpdatedAt = &tm
	}
	return
}

func nextId(ctx context.Context, tx *sql.Tx) (id int64, err error) {

	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(id), 0) + 1 FROM (
			SELECT id FROM products UNION ALL SELECT id FROM removed_products
		)`).Scan(&id)
	err = errors.Wrapf(err, "failed to find next product id")
	return
}

func mustExist(ctx context.Context, tx *sql.Tx, table string, id int64) (err error) {

	var count int
	err = tx.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id).Scan(&count)
	if err != nil {
		err = errors.Wrapf(err, "failed to look up product %d", id)
		return
	}
	if count == 0 {
		err = errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return
}

func insertProduct(ctx context.Context, tx *sql.Tx, table string, prd nt.Product) (err error) {

	var brand any
	if prd.Brand != nil {
		brand = prd.Brand.Brand.Name
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, title, price, count_in_stock, description, status, brand, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, table),
		prd.Id, prd.Title, prd.Price, prd.CountInStock, prd.Description, prd.Status, brand,
		nullTime(prd.CreatedAt), nullTime(prd.UpdatedAt))
	err = errors.Wrapf(err, "failed to insert product %d into %s", prd.Id, table)
	return
}

func insertImages(ctx context.Context, tx *sql.Tx, productId int64, images []nt.ProductImage) (err error) {

	for i, img := range images {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO product_images (product_id, position, id, src, alt) VALUES (?, ?, ?, ?, ?)",
			productId, i, img.Image.Id, img.Image.Src, img.Image.Alt)
		if err != nil {
			err = errors.Wrapf(err, "failed to insert image for product %d", productId)
			return
		}
	}
	return
}

func insertCategories(ctx context.Context, tx *sql.Tx, productId int64, cats []nt.CategoryRef) (err error) {

	for i, cat := range cats {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO product_categories (product_id, position, name) VALUES (?, ?, ?)",
			productId, i, cat.Category.Name)
		if err != nil {
			err = errors.Wrapf(err, "failed to insert category for product %d", productId)
			return
		}
	}
	return
}

// replaceRelations swaps the images and categories of a product for those in values.
// Alt text of an image whose source is kept carries over.
func replaceRelations(ctx context.Context, tx *sql.Tx, productId int64, values nt.Values) (err error) {

	alts, err := imageAlts(ctx, tx, productId)
	if err != nil {
		return
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM product_images WHERE product_id = ?", productId)
	if err != nil {
		err = errors.Wrapf(err, "failed to clear images of product %d", productId)
		return
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM product_categories WHERE product_id = ?", productId)
	if err != nil {
		err = errors.Wrapf(err, "failed to clear categories of product %d", productId)
		return
	}

	var nextImage int64
	err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM product_images").Scan(&nextImage)
	if err != nil {
		err = errors.Wrapf(err, "failed to find next image id")
		return
	}

	prd := product(productId, values)
	for i := range prd.Images {
		prd.Images[i].Image.Id = nextImage + int64(i)
		prd.Images[i].Image.Alt = alts[prd.Images[i].Image.Src]
	}

	err = insertImages(ctx, tx, productId, prd.Images)
	if err != nil {
		return
	}
	err = insertCategories(ctx, tx, productId, prd.Categories)
	return
}

// imageAlts maps the sources of a product's stored images to their alt text.
func imageAlts(ctx context.Context, tx *sql.Tx, productId int64) (alts map[string]string, err error) {

	rows, err := tx.QueryContext(ctx, "SELECT src, alt FROM product_images WHERE product_id = ?", productId)
	if err != nil {
		err = errors.Wrapf(err, "failed to query images of product %d", productId)
		return
	}
	defer rows.Close()

	alts = map[string]string{}
	for rows.Next() {
		var src, alt string
		err = rows.Scan(&src, &alt)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan image")
			return
		}
		if _, ok := alts[src]; !ok {
			alts[src] = alt
		}
	}
	err = rows.Err()
	err = errors.Wrapf(err, "error iterating images of product %d", productId)
	return
}

// product builds the product stored for values.
func product(id int64, values nt.Values) nt.Product {

	prd := nt.Product{
		Id:           id,
		Title:        strings.TrimSpace(values.Title),
		Price:        values.Price,
		CountInStock: int(values.CountInStock),
		Description:  values.Description,
		Status:       string(values.Status),
		Images:       []nt.ProductImage{},
		Categories:   []nt.CategoryRef{},
	}

	if name := strings.TrimSpace(values.Brand); name != "" {
		prd.Brand = &nt.BrandRef{Brand: nt.Brand{Name: name}}
	}
	for _, src := range values.Images {
		prd.Images = append(prd.Images, nt.ProductImage{Image: nt.Image{Src: src}})
	}
	for _, name := range values.Categories {
		prd.Categories = append(prd.Categories, nt.CategoryRef{Category: nt.Category{Name: name}})
	}
	return prd
}

func nullString(str string) any {

	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}
	return str
}

func nullTime(tm *time.Time) any {

	if tm == nil {
		return nil
	}
	return tm.UTC()
}

package duck

import (
	"context"
	"database/sql"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "shopkeep/entity"
)

// Seed is the yaml layout of a seed file.
type Seed struct {
	Products []nt.Product `yaml:"products"`
	Removed  []nt.Product `yaml:"removed"`
}

// LoadSeed reads a seed file.
func LoadSeed(path string) (seed Seed, err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read seed from %s", path)
		return
	}

	err = yaml.Unmarshal(data, &seed)
	err = errors.Wrapf(err, "failed to unmarshal seed")
	return
}

// Load inserts seed products as they are, ids and timestamps included.
func (dk *Duck) Load(ctx context.Context, seed Seed) (err error) {

	dk.mu.Lock()
	defer dk.mu.Unlock()

	err = dk.inTx(ctx, func(tx *sql.Tx) (err error) {

		lists := []struct {
			table string
			prds  []nt.Product
		}{
			{table: productsTable, prds: seed.Products},
			{table: removedTable, prds: seed.Removed},
		}

		for _, lst := range lists {
			for _, prd := range lst.prds {
				err = insertProduct(ctx, tx, lst.table, prd)
				if err != nil {
					return
				}
				err = insertImages(ctx, tx, prd.Id, prd.Images)
				if err != nil {
					return
				}
				err = insertCategories(ctx, tx, prd.Id, prd.Categories)
				if err != nil {
					return
				}
			}
		}
		return
	})
	if err != nil {
		return
	}

	dk.logger.Info(ctx, "seeded products", "products", len(seed.Products), "removed", len(seed.Removed))
	return
}

package seed

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type supplierSeed struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type colorSeed struct {
	Name string
	Hex  string
	Slug string
}

type productSeed struct {
	Slug        string
	Name        string
	Description string
	Price       string
	Supplier    int
	Colors      []colorSeed
}

var sizeNames = []string{"XS", "S", "M", "L", "XL", "XXL"}

var suppliers = []supplierSeed{
	{Name: "Supplier 1", Email: "supplier-1@example.com", Phone: "0000000000", Address: "1 Avenue de la République, 75011 Paris"},
	{Name: "Supplier 2", Email: "supplier-2@example.com", Phone: "0000000000", Address: "2 Avenue de la République, 75011 Paris"},
}

const descriptionTail = " est une nouvelle version honnête d'un classique. Ce tee-shirt est en coton super doux et pré-rétréci pour un vrai confort et une coupe fiable. Ils sont coupés et cousus à la main localement, avec une technique de teinture spéciale qui donne à chaque t-shirt son propre aspect."

var products = []productSeed{
	{
		Slug:        "t-shirt-simple",
		Name:        "T-shirt simple",
		Description: "Le tee-shirt simple" + descriptionTail,
		Price:       "32",
		Supplier:    0,
		Colors: []colorSeed{
			{Name: "Noir", Hex: "#000000", Slug: "t-shirt-simple-noir"},
			{Name: "Blanc", Hex: "#ffffff", Slug: "t-shirt-simple-blanc"},
		},
	},
	{
		Slug:        "t-shirt-a-motif-montagnes",
		Name:        "T-shirt à motif montagnes",
		Description: "Le tee-shirt à motif montagnes" + descriptionTail,
		Price:       "36",
		Supplier:    1,
		Colors:      []colorSeed{{Name: "Corail clair", Hex: "#ad6c6e"}},
	},
	{
		Slug:        "t-shirt-a-motif-points",
		Name:        "T-shirt à motif points",
		Description: "Le tee-shirt à motif points" + descriptionTail,
		Price:       "36",
		Supplier:    0,
		Colors:      []colorSeed{{Name: "Pêche", Hex: "#f8e7db"}},
	},
}

// stockFor gives M and L a fixed stock of 9 and XXL none, so the storefront
// always has a size to buy and a sold-out size to show.
func stockFor(index int, random func(n int) int) int {
	switch index {
	case 2, 3:
		return 9
	case 5:
		return 0
	default:
		return random(21)
	}
}

// Apply loads the demo catalog. Products that already exist are left as they
// are so re-running the seed does not reset stock or invalidate size ids held
// in carts.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	supplierIDs := make([]string, len(suppliers))
	for i, s := range suppliers {
		if supplierIDs[i], err = upsertSupplier(ctx, tx, s); err != nil {
			return fmt.Errorf("upsert supplier %s: %w", s.Name, err)
		}
	}

	for order, p := range products {
		id, inserted, err := upsertProduct(ctx, tx, p, supplierIDs[p.Supplier], order+1)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
		if !inserted {
			logger.Info("product already seeded", zap.String("slug", p.Slug))
			continue
		}
		if err := insertColors(ctx, tx, id, p.Colors, rand.IntN); err != nil {
			return fmt.Errorf("insert colors for %s: %w", p.Slug, err)
		}
		logger.Info("product seeded", zap.String("slug", p.Slug), zap.Int("colors", len(p.Colors)))
	}

	return tx.Commit(ctx)
}

func upsertSupplier(ctx context.Context, tx pgx.Tx, s supplierSeed) (string, error) {
	const q = `
INSERT INTO suppliers (name, email, phone, address)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO UPDATE
SET email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    address = EXCLUDED.address
RETURNING id::text
`
	var id string
	if err := tx.QueryRow(ctx, q, s.Name, s.Email, s.Phone, s.Address).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, tx pgx.Tx, p productSeed, supplierID string, order int) (string, bool, error) {
	const q = `
INSERT INTO products (slug, name, description, price, supplier_id, sort_order)
VALUES ($1, $2, $3, $4::numeric, $5, $6)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    sort_order = EXCLUDED.sort_order
RETURNING id::text, (xmax = 0) AS inserted
`
	var (
		id       string
		inserted bool
	)
	err := tx.QueryRow(ctx, q, p.Slug, p.Name, p.Description, p.Price, supplierID, order).Scan(&id, &inserted)
	return id, inserted, err
}

func insertColors(ctx context.Context, tx pgx.Tx, productID string, colors []colorSeed, random func(n int) int) error {
	for i, c := range colors {
		var colorID string
		err := tx.QueryRow(ctx, `
INSERT INTO colors (product_id, name, hex, slug, sort_order)
VALUES ($1, $2, $3, NULLIF($4, ''), $5)
RETURNING id::text
`, productID, c.Name, c.Hex, c.Slug, i+1).Scan(&colorID)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for j, name := range sizeNames {
			batch.Queue(`INSERT INTO sizes (color_id, name, amount, sort_order) VALUES ($1, $2, $3, $4)`,
				colorID, name, stockFor(j, random), j+1)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert sizes for %s: %w", c.Name, err)
		}
	}
	return nil
}

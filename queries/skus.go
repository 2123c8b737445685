package queries

import (
	"context"

	"github.com/mtgjson/mtgjson-sdk-go/db"
	"github.com/mtgjson/mtgjson-sdk-go/models"
)

// SkuQuery provides methods to query TCGPlayer SKU data.
// SKUs represent individual purchasable variants of a card.
type SkuQuery struct {
	conn *db.Connection
}

func NewSkuQuery(conn *db.Connection) *SkuQuery {
	return &SkuQuery{conn: conn}
}

func (q *SkuQuery) ensure(ctx context.Context) {
	_ = q.conn.EnsureViews(ctx, "tcgplayer_skus")
}

// Get returns all TCGPlayer SKUs for a card UUID.
func (q *SkuQuery) Get(ctx context.Context, uuid string) ([]models.TcgplayerSkus, error) {
	q.ensure(ctx)
	if !q.conn.HasView("tcgplayer_skus") {
		return nil, nil
	}
	b := db.NewSQLBuilder("tcgplayer_skus").WhereEq("uuid", uuid)
	sql, params := b.Build()
	var skus []models.TcgplayerSkus
	if err := q.conn.ExecuteInto(ctx, &skus, sql, params...); err != nil {
		return nil, err
	}
	return skus, nil
}

// FindBySkuID finds a SKU by its TCGPlayer SKU ID.
func (q *SkuQuery) FindBySkuID(ctx context.Context, skuID int) (map[string]any, error) {
	if skuID <= 0 {
		return nil, db.NewError(db.InvalidArgument, "skuID must be positive", nil)
	}
	q.ensure(ctx)
	if !q.conn.HasView("tcgplayer_skus") {
		return nil, nil
	}
	b := db.NewSQLBuilder("tcgplayer_skus").WhereEq("skuId", skuID)
	sql, params := b.Build()
	rows, err := q.conn.Execute(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FindByProductID finds all SKUs for a TCGPlayer product ID.
func (q *SkuQuery) FindByProductID(ctx context.Context, productID int) ([]map[string]any, error) {
	if productID <= 0 {
		return nil, db.NewError(db.InvalidArgument, "productID must be positive", nil)
	}
	q.ensure(ctx)
	if !q.conn.HasView("tcgplayer_skus") {
		return nil, nil
	}
	b := db.NewSQLBuilder("tcgplayer_skus").WhereEq("productId", productID)
	sql, params := b.Build()
	return q.conn.Execute(ctx, sql, params...)
}

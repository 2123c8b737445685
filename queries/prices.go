package queries

import (
	"context"
	"fmt"

	"github.com/mtgjson/mtgjson-sdk-go/db"
	"github.com/mtgjson/mtgjson-sdk-go/models"
)

// PriceQuery provides methods to query card price data.
// "Today" prices come from the ingested all_prices_today table, history
// from all_prices — both flattened from gzipped JSON dumps, not parquet.
type PriceQuery struct {
	conn *db.Connection
}

func NewPriceQuery(conn *db.Connection) *PriceQuery {
	return &PriceQuery{conn: conn}
}

func (q *PriceQuery) ensure(ctx context.Context) {
	_ = q.conn.EnsureViews(ctx, "all_prices_today")
}

func (q *PriceQuery) ensureHistory(ctx context.Context) {
	_ = q.conn.EnsureViews(ctx, "all_prices")
}

// Get returns full price data for a card UUID as a nested map.
// Returns nil if no price data exists.
func (q *PriceQuery) Get(ctx context.Context, uuid string) (map[string]any, error) {
	q.ensure(ctx)
	if !q.conn.HasView("all_prices_today") {
		return nil, nil
	}
	b := db.NewSQLBuilder("all_prices_today")
	b.WhereEq("uuid", uuid)
	b.OrderBy("source", "provider", "price_type", "finish", "date")
	sql, params := b.Build()

	rows, err := q.conn.Execute(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return reconstructNestedPrices(rows), nil
}

// reconstructNestedPrices rebuilds the source -> provider -> priceType ->
// finish -> date -> price shape MTGJSON ships, from the flat rows the
// ingested table stores.
func reconstructNestedPrices(rows []map[string]any) map[string]any {
	result := make(map[string]any)
	for _, r := range rows {
		src, _ := r["source"].(string)
		prov, _ := r["provider"].(string)
		priceType, _ := r["price_type"].(string)
		finish, _ := r["finish"].(string)
		date, _ := r["date"].(string)
		currency, _ := r["currency"].(string)
		if currency == "" {
			currency = "USD"
		}

		srcMap := ensureNestedMap(result, src)
		provMap := ensureNestedMap(srcMap, prov)
		provMap["currency"] = currency
		typeMap := ensureNestedMap(provMap, priceType)
		finishMap := ensureNestedMap(typeMap, finish)
		finishMap[date] = r["price"]
	}
	return result
}

// Today returns the latest prices for a card UUID.
func (q *PriceQuery) Today(ctx context.Context, uuid string, opts ...PriceFilterOption) ([]map[string]any, error) {
	q.ensure(ctx)
	if !q.conn.HasView("all_prices_today") {
		return nil, nil
	}
	cfg := &priceFilter{}
	for _, opt := range opts {
		opt(cfg)
	}

	b := db.NewSQLBuilder("all_prices_today")
	uuidIdx := b.AddParam(uuid)
	b.AddWhere(fmt.Sprintf("uuid = $%d", uuidIdx))
	b.AddWhere(fmt.Sprintf(
		"date = (SELECT MAX(p2.date) FROM all_prices_today p2 WHERE p2.uuid = $%d)", uuidIdx))
	applyPriceFilter(b, cfg)
	sql, params := b.Build()

	return q.conn.Execute(ctx, sql, params...)
}

// History returns price history for a card UUID.
func (q *PriceQuery) History(ctx context.Context, uuid string, opts ...PriceHistoryOption) ([]map[string]any, error) {
	q.ensureHistory(ctx)
	if !q.conn.HasView("all_prices") {
		return nil, nil
	}
	cfg := &priceHistoryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	b := db.NewSQLBuilder("all_prices")
	b.WhereEq("uuid", uuid)
	if cfg.provider != "" {
		b.WhereEq("provider", cfg.provider)
	}
	if cfg.finish != "" {
		b.WhereEq("finish", cfg.finish)
	}
	if cfg.priceType != "" {
		b.WhereEq("price_type", cfg.priceType)
	}
	if cfg.dateFrom != "" {
		idx := b.AddParam(cfg.dateFrom)
		b.AddWhere(fmt.Sprintf("date >= CAST($%d AS DATE)", idx))
	}
	if cfg.dateTo != "" {
		idx := b.AddParam(cfg.dateTo)
		b.AddWhere(fmt.Sprintf("date <= CAST($%d AS DATE)", idx))
	}
	b.OrderBy("date ASC")
	sql, params := b.Build()

	return q.conn.Execute(ctx, sql, params...)
}

// PriceTrend returns price trend statistics for a card.
func (q *PriceQuery) PriceTrend(ctx context.Context, uuid string, opts ...PriceFilterOption) (*models.PriceTrend, error) {
	q.ensureHistory(ctx)
	if !q.conn.HasView("all_prices") {
		return nil, nil
	}
	cfg := &priceFilter{priceType: "retail"}
	for _, opt := range opts {
		opt(cfg)
	}

	b := db.NewSQLBuilder("all_prices")
	b.Select(
		"MIN(price) AS min_price",
		"MAX(price) AS max_price",
		"ROUND(AVG(price), 2) AS avg_price",
		"MIN(date) AS first_date",
		"MAX(date) AS last_date",
		"COUNT(*) AS data_points",
	)
	b.WhereEq("uuid", uuid)
	b.WhereEq("price_type", cfg.priceType)
	if cfg.provider != "" {
		b.WhereEq("provider", cfg.provider)
	}
	if cfg.finish != "" {
		b.WhereEq("finish", cfg.finish)
	}
	sql, params := b.Build()

	rows, err := q.conn.Execute(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	dp := db.ScalarToInt(rows[0]["data_points"])
	if dp == 0 {
		return nil, nil
	}
	// Execute already normalizes date/datetime cells to ISO-8601 text, so
	// first_date/last_date arrive as plain strings here.
	firstDate, _ := rows[0]["first_date"].(string)
	lastDate, _ := rows[0]["last_date"].(string)
	return &models.PriceTrend{
		MinPrice:   db.ToFloat64(rows[0]["min_price"]),
		MaxPrice:   db.ToFloat64(rows[0]["max_price"]),
		AvgPrice:   db.ToFloat64(rows[0]["avg_price"]),
		FirstDate:  firstDate,
		LastDate:   lastDate,
		DataPoints: int64(dp),
	}, nil
}

// CheapestPrinting finds the cheapest printing of a card by name, as of
// that printing's own most recent price date.
func (q *PriceQuery) CheapestPrinting(ctx context.Context, name string, opts ...PriceFilterOption) (map[string]any, error) {
	q.ensure(ctx)
	if err := q.conn.EnsureViews(ctx, "cards"); err != nil {
		return nil, err
	}
	if !q.conn.HasView("all_prices_today") {
		return nil, nil
	}
	cfg := &priceFilter{provider: "tcgplayer", finish: "normal", priceType: "retail"}
	for _, opt := range opts {
		opt(cfg)
	}

	b := db.NewSQLBuilder("cards c")
	b.Select("c.uuid", "c.setCode", "c.number", "p.price", "p.date")
	b.Join("JOIN all_prices_today p ON c.uuid = p.uuid")
	nameIdx := b.AddParam(name)
	b.AddWhere(fmt.Sprintf("c.name = $%d", nameIdx))
	provIdx := b.AddParam(cfg.provider)
	b.AddWhere(fmt.Sprintf("p.provider = $%d", provIdx))
	finIdx := b.AddParam(cfg.finish)
	b.AddWhere(fmt.Sprintf("p.finish = $%d", finIdx))
	typeIdx := b.AddParam(cfg.priceType)
	b.AddWhere(fmt.Sprintf("p.price_type = $%d", typeIdx))
	b.AddWhere(fmt.Sprintf(
		"p.date = (SELECT MAX(p2.date) FROM all_prices_today p2 "+
			"WHERE p2.uuid = c.uuid AND p2.provider = $%d AND p2.finish = $%d AND p2.price_type = $%d)",
		provIdx, finIdx, typeIdx))
	b.OrderBy("p.price ASC")
	b.Limit(1)
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

// CheapestPrintings finds the cheapest available printing of each card,
// as of the single most recent price date across the whole table.
func (q *PriceQuery) CheapestPrintings(ctx context.Context, opts ...PriceListOption) ([]models.PricePrinting, error) {
	q.ensure(ctx)
	if err := q.conn.EnsureViews(ctx, "cards"); err != nil {
		return nil, err
	}
	if !q.conn.HasView("all_prices_today") {
		return nil, nil
	}
	cfg := &priceListConfig{provider: "tcgplayer", finish: "normal", priceType: "retail", limit: 100}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.limit < 0 || cfg.offset < 0 {
		return nil, db.NewError(db.InvalidArgument, "limit and offset must be non-negative", nil)
	}

	b := db.NewSQLBuilder("cards c")
	b.Select(
		"c.name",
		"arg_min(c.setCode, p.price) AS cheapest_set",
		"arg_min(c.number, p.price) AS cheapest_number",
		"arg_min(c.uuid, p.price) AS cheapest_uuid",
		"MIN(p.price) AS min_price",
	)
	b.Join("JOIN all_prices_today p ON c.uuid = p.uuid")
	b.WhereEq("p.provider", cfg.provider)
	b.WhereEq("p.finish", cfg.finish)
	b.WhereEq("p.price_type", cfg.priceType)
	b.AddWhere("p.date = (SELECT MAX(date) FROM all_prices_today)")
	b.GroupBy("c.name")
	b.OrderBy("min_price ASC")
	b.Limit(cfg.limit).Offset(cfg.offset)
	sql, params := b.Build()

	var result []models.PricePrinting
	if err := q.conn.ExecuteInto(ctx, &result, sql, params...); err != nil {
		return nil, err
	}
	return result, nil
}

// MostExpensivePrintings finds the most expensive printing of each card,
// as of the single most recent price date across the whole table.
func (q *PriceQuery) MostExpensivePrintings(ctx context.Context, opts ...PriceListOption) ([]models.ExpensivePrinting, error) {
	q.ensure(ctx)
	if err := q.conn.EnsureViews(ctx, "cards"); err != nil {
		return nil, err
	}
	if !q.conn.HasView("all_prices_today") {
		return nil, nil
	}
	cfg := &priceListConfig{provider: "tcgplayer", finish: "normal", priceType: "retail", limit: 100}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.limit < 0 || cfg.offset < 0 {
		return nil, db.NewError(db.InvalidArgument, "limit and offset must be non-negative", nil)
	}

	b := db.NewSQLBuilder("cards c")
	b.Select(
		"c.name",
		"arg_max(c.setCode, p.price) AS priciest_set",
		"arg_max(c.number, p.price) AS priciest_number",
		"arg_max(c.uuid, p.price) AS priciest_uuid",
		"MAX(p.price) AS max_price",
	)
	b.Join("JOIN all_prices_today p ON c.uuid = p.uuid")
	b.WhereEq("p.provider", cfg.provider)
	b.WhereEq("p.finish", cfg.finish)
	b.WhereEq("p.price_type", cfg.priceType)
	b.AddWhere("p.date = (SELECT MAX(date) FROM all_prices_today)")
	b.GroupBy("c.name")
	b.OrderBy("max_price DESC")
	b.Limit(cfg.limit).Offset(cfg.offset)
	sql, params := b.Build()

	var result []models.ExpensivePrinting
	if err := q.conn.ExecuteInto(ctx, &result, sql, params...); err != nil {
		return nil, err
	}
	return result, nil
}

// --- Functional option types ---

type priceFilter struct {
	provider  string
	finish    string
	priceType string
}

// PriceFilterOption configures price query filters.
type PriceFilterOption func(*priceFilter)

// WithPriceProvider filters by price provider (e.g. "tcgplayer", "cardmarket").
func WithPriceProvider(provider string) PriceFilterOption {
	return func(c *priceFilter) { c.provider = provider }
}

// WithPriceFinish filters by card finish (e.g. "normal", "foil", "etched").
func WithPriceFinish(finish string) PriceFilterOption {
	return func(c *priceFilter) { c.finish = finish }
}

// WithPriceType filters by price type ("retail" or "buylist").
func WithPriceType(priceType string) PriceFilterOption {
	return func(c *priceFilter) { c.priceType = priceType }
}

// applyPriceFilter adds the non-empty fields of cfg as equality filters.
func applyPriceFilter(b *db.SQLBuilder, cfg *priceFilter) {
	if cfg.provider != "" {
		b.WhereEq("provider", cfg.provider)
	}
	if cfg.finish != "" {
		b.WhereEq("finish", cfg.finish)
	}
	if cfg.priceType != "" {
		b.WhereEq("price_type", cfg.priceType)
	}
}

type priceHistoryConfig struct {
	provider  string
	finish    string
	priceType string
	dateFrom  string
	dateTo    string
}

// PriceHistoryOption configures price history query filters.
type PriceHistoryOption func(*priceHistoryConfig)

// WithHistoryProvider filters history by provider.
func WithHistoryProvider(provider string) PriceHistoryOption {
	return func(c *priceHistoryConfig) { c.provider = provider }
}

// WithHistoryFinish filters history by finish.
func WithHistoryFinish(finish string) PriceHistoryOption {
	return func(c *priceHistoryConfig) { c.finish = finish }
}

// WithHistoryPriceType filters history by price type.
func WithHistoryPriceType(priceType string) PriceHistoryOption {
	return func(c *priceHistoryConfig) { c.priceType = priceType }
}

// WithDateFrom sets the start date filter (inclusive, YYYY-MM-DD).
func WithDateFrom(date string) PriceHistoryOption {
	return func(c *priceHistoryConfig) { c.dateFrom = date }
}

// WithDateTo sets the end date filter (inclusive, YYYY-MM-DD).
func WithDateTo(date string) PriceHistoryOption {
	return func(c *priceHistoryConfig) { c.dateTo = date }
}

type priceListConfig struct {
	provider  string
	finish    string
	priceType string
	limit     int
	offset    int
}

// PriceListOption configures cheapest/most expensive printing queries.
type PriceListOption func(*priceListConfig)

// WithListProvider sets the provider for list queries.
func WithListProvider(provider string) PriceListOption {
	return func(c *priceListConfig) { c.provider = provider }
}

// WithListFinish sets the finish for list queries.
func WithListFinish(finish string) PriceListOption {
	return func(c *priceListConfig) { c.finish = finish }
}

// WithListPriceType sets the price type for list queries.
func WithListPriceType(priceType string) PriceListOption {
	return func(c *priceListConfig) { c.priceType = priceType }
}

// WithListLimit sets the max results for list queries.
func WithListLimit(limit int) PriceListOption {
	return func(c *priceListConfig) { c.limit = limit }
}

// WithListOffset sets the offset for list query pagination.
func WithListOffset(offset int) PriceListOption {
	return func(c *priceListConfig) { c.offset = offset }
}

// --- Helper ---

func ensureNestedMap(parent map[string]any, key string) map[string]any {
	if v, ok := parent[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	m := make(map[string]any)
	parent[key] = m
	return m
}

// Package mtgjson provides an embedded, read-only query engine over the
// MTGJSON card, set, price, and sealed-product data set. Data is fetched
// once from the MTGJSON CDN, cached on disk, and queried locally through
// an in-process DuckDB instance.
package mtgjson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mtgjson/mtgjson-sdk-go/booster"
	"github.com/mtgjson/mtgjson-sdk-go/db"
	"github.com/mtgjson/mtgjson-sdk-go/models"
	"github.com/mtgjson/mtgjson-sdk-go/queries"
)

// Client is the main entry point for querying MTGJSON card data.
// It auto-downloads Parquet and JSON data from the MTGJSON CDN and
// exposes a typed, queryable Go API over the full data set.
type Client struct {
	conn  *db.Connection
	cache *db.CacheManager

	cards       *queries.CardQuery
	sets        *queries.SetQuery
	tokens      *queries.TokenQuery
	legalities  *queries.LegalityQuery
	identifiers *queries.IdentifierQuery
	prices      *queries.PriceQuery
	decks       *queries.DeckQuery
	enums       *queries.EnumQuery
	skus        *queries.SkuQuery
	sealed      *queries.SealedQuery
	boosterSim  *booster.BoosterSimulator
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := db.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cache, err := db.NewCacheManager(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := db.NewConnection(cache)
	if err != nil {
		cache.Close()
		return nil, err
	}
	return &Client{
		conn:  conn,
		cache: cache,
	}, nil
}

// Close releases all resources (DuckDB connection and HTTP client).
func (c *Client) Close() error {
	c.cache.Close()
	return c.conn.Close()
}

// Cards returns the card query interface.
func (c *Client) Cards() *queries.CardQuery {
	if c.cards == nil {
		c.cards = queries.NewCardQuery(c.conn)
	}
	return c.cards
}

// Sets returns the set query interface.
func (c *Client) Sets() *queries.SetQuery {
	if c.sets == nil {
		c.sets = queries.NewSetQuery(c.conn)
	}
	return c.sets
}

// Tokens returns the token query interface.
func (c *Client) Tokens() *queries.TokenQuery {
	if c.tokens == nil {
		c.tokens = queries.NewTokenQuery(c.conn)
	}
	return c.tokens
}

// Legalities returns the legality query interface.
func (c *Client) Legalities() *queries.LegalityQuery {
	if c.legalities == nil {
		c.legalities = queries.NewLegalityQuery(c.conn)
	}
	return c.legalities
}

// Identifiers returns the identifier cross-reference query interface.
func (c *Client) Identifiers() *queries.IdentifierQuery {
	if c.identifiers == nil {
		c.identifiers = queries.NewIdentifierQuery(c.conn)
	}
	return c.identifiers
}

// Prices returns the price query interface.
func (c *Client) Prices() *queries.PriceQuery {
	if c.prices == nil {
		c.prices = queries.NewPriceQuery(c.conn)
	}
	return c.prices
}

// Decks returns the deck query interface.
func (c *Client) Decks() *queries.DeckQuery {
	if c.decks == nil {
		c.decks = queries.NewDeckQuery(c.cache)
	}
	return c.decks
}

// Enums returns the enum query interface (keywords, card types, enum values).
func (c *Client) Enums() *queries.EnumQuery {
	if c.enums == nil {
		c.enums = queries.NewEnumQuery(c.cache)
	}
	return c.enums
}

// Skus returns the TCGPlayer SKU query interface.
func (c *Client) Skus() *queries.SkuQuery {
	if c.skus == nil {
		c.skus = queries.NewSkuQuery(c.conn)
	}
	return c.skus
}

// Sealed returns the sealed product query interface.
func (c *Client) Sealed() *queries.SealedQuery {
	if c.sealed == nil {
		c.sealed = queries.NewSealedQuery(c.conn)
	}
	return c.sealed
}

// Booster returns the booster pack simulator interface.
func (c *Client) Booster() *booster.BoosterSimulator {
	if c.boosterSim == nil {
		c.boosterSim = booster.NewBoosterSimulator(c.conn)
	}
	return c.boosterSim
}

// Meta returns MTGJSON build metadata (version and date).
func (c *Client) Meta(ctx context.Context) (models.Meta, error) {
	data, err := c.cache.LoadJSON(ctx, "meta")
	if err != nil {
		return models.Meta{}, err
	}
	var meta models.Meta
	if d, ok := data["data"].(map[string]any); ok {
		if v, ok := d["version"].(string); ok {
			meta.Version = v
		}
		if v, ok := d["date"].(string); ok {
			meta.Date = v
		}
	}
	return meta, nil
}

// Views returns the names of all currently registered DuckDB views/tables.
func (c *Client) Views() []string {
	return c.conn.Views()
}

// SQL executes raw SQL against the embedded DuckDB database.
func (c *Client) SQL(ctx context.Context, query string, params ...any) ([]map[string]any, error) {
	return c.conn.Execute(ctx, query, params...)
}

// SQLFrame executes raw SQL and returns the result as an Arrow-backed
// columnar Frame, suitable for analytical/bulk consumption.
func (c *Client) SQLFrame(ctx context.Context, query string, params ...any) (*db.Frame, error) {
	return c.conn.ExecuteFrame(ctx, query, params...)
}

// Refresh checks for new MTGJSON data and resets internal state if stale.
// Returns true if data was stale and state was reset.
func (c *Client) Refresh(ctx context.Context) (bool, error) {
	if !c.cache.IsStale(ctx) {
		return false, nil
	}
	c.conn.ClearViews()
	c.cache.ResetRemoteVersion()
	c.cards = nil
	c.sets = nil
	c.tokens = nil
	c.legalities = nil
	c.identifiers = nil
	c.prices = nil
	c.decks = nil
	c.enums = nil
	c.skus = nil
	c.sealed = nil
	c.boosterSim = nil
	return true, nil
}

// ExportDB exports all loaded data to a persistent DuckDB file on disk.
func (c *Client) ExportDB(ctx context.Context, path string) error {
	pathStr := filepath.ToSlash(path)
	os.Remove(path)

	rawDB := c.conn.Raw()
	if _, err := rawDB.ExecContext(ctx, fmt.Sprintf("ATTACH '%s' AS export_db", pathStr)); err != nil {
		return fmt.Errorf("mtgjson: attach export db: %w", err)
	}
	defer rawDB.ExecContext(ctx, "DETACH export_db")

	for _, viewName := range c.Views() {
		if _, err := rawDB.ExecContext(ctx, fmt.Sprintf(
			"CREATE TABLE export_db.%s AS SELECT * FROM %s", viewName, viewName,
		)); err != nil {
			return fmt.Errorf("mtgjson: export table %s: %w", viewName, err)
		}
	}
	return nil
}

// Connection returns the underlying Connection for advanced usage.
func (c *Client) Connection() *db.Connection {
	return c.conn
}

// EnsureViews registers one or more views, downloading data if needed.
// This is useful before calling SQL() to guarantee the required tables exist.
func (c *Client) EnsureViews(ctx context.Context, names ...string) error {
	return c.conn.EnsureViews(ctx, names...)
}

// String returns a human-readable representation.
func (c *Client) String() string {
	return fmt.Sprintf("mtgjson.Client(cache_dir=%s)", c.cache.CacheDir)
}

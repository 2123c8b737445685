package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	_ "github.com/marcboeker/go-duckdb" // DuckDB driver registration
)

// staticListColumns are known list columns that don't follow the plural naming convention.
var staticListColumns = map[string]map[string]bool{
	"cards": {
		"artistIds": true, "attractionLights": true, "availability": true,
		"boosterTypes": true, "cardParts": true, "colorIdentity": true,
		"colorIndicator": true, "colors": true, "finishes": true,
		"frameEffects": true, "keywords": true, "originalPrintings": true,
		"otherFaceIds": true, "printings": true, "producedMana": true,
		"promoTypes": true, "rebalancedPrintings": true, "subsets": true,
		"subtypes": true, "supertypes": true, "types": true, "variations": true,
	},
	"tokens": {
		"artistIds": true, "availability": true, "boosterTypes": true,
		"colorIdentity": true, "colorIndicator": true, "colors": true,
		"finishes": true, "frameEffects": true, "keywords": true,
		"otherFaceIds": true, "producedMana": true, "promoTypes": true,
		"reverseRelated": true, "subtypes": true, "supertypes": true,
		"types": true,
	},
}

// ignoredColumns are VARCHAR columns that are NOT lists, even if they match the plural heuristic.
var ignoredColumns = map[string]bool{
	"text": true, "originalText": true, "flavorText": true, "printedText": true,
	"identifiers": true, "legalities": true, "leadershipSkills": true,
	"purchaseUrls": true, "relatedCards": true, "rulings": true,
	"sourceProducts": true, "foreignData": true, "translations": true,
	"toughness": true, "status": true, "format": true, "uris": true,
	"scryfallUri": true,
}

// jsonCastColumns are VARCHAR columns containing JSON strings to cast to DuckDB JSON type.
var jsonCastColumns = map[string]bool{
	"identifiers": true, "legalities": true, "leadershipSkills": true,
	"purchaseUrls": true, "relatedCards": true, "rulings": true,
	"sourceProducts": true, "foreignData": true, "translations": true,
}

// ingestedViews are views backed by a gzipped JSON dump that Connection
// stream-flattens into NDJSON and loads as a table, instead of registering
// directly from a parquet file with read_parquet.
var ingestedViews = map[string]bool{
	"all_prices_today": true,
	"all_prices":        true,
	"tcgplayer_skus":    true,
}

// Connection wraps a DuckDB database/sql connection and registers parquet
// files (or, for price/SKU data, ingested JSON dumps) as views.
type Connection struct {
	db              *sql.DB
	cache           *CacheManager
	registeredViews map[string]bool
	closed          bool
	mu              sync.RWMutex
}

// NewConnection creates a new in-memory DuckDB connection backed by the given cache.
func NewConnection(cache *CacheManager) (*Connection, error) {
	sqlDB, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, NewError(QueryError, "open DuckDB", err)
	}
	// Prevent connection caching issues with temp objects
	sqlDB.SetMaxIdleConns(0)
	return &Connection{
		db:              sqlDB,
		cache:           cache,
		registeredViews: make(map[string]bool),
	}, nil
}

// Close closes the underlying DuckDB connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// EnsureViews ensures one or more views are registered, downloading and
// registering data as needed. For price/SKU views this is a soft operation:
// if the underlying JSON dump has no usable rows, the view is simply left
// unregistered (callers check HasView) rather than returning an error.
func (c *Connection) EnsureViews(ctx context.Context, names ...string) error {
	if c.isClosed() {
		return ErrNotConnected
	}
	for _, name := range names {
		if err := c.ensureView(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connection) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Connection) ensureView(ctx context.Context, name string) error {
	c.mu.RLock()
	if c.registeredViews[name] {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.registeredViews[name] {
		return nil
	}

	if ingestedViews[name] {
		return c.ingestJSONView(ctx, name)
	}

	path, err := c.cache.EnsureParquet(ctx, name)
	if err != nil {
		return err
	}
	pathStr := filepath.ToSlash(path)

	if name == "card_legalities" {
		return c.registerLegalitiesView(ctx, pathStr)
	}

	replaceClause, err := c.buildCSVReplace(ctx, pathStr, name)
	if err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx, fmt.Sprintf(
		"CREATE OR REPLACE VIEW %s AS SELECT *%s FROM read_parquet('%s')",
		name, replaceClause, pathStr,
	))
	if err != nil {
		return NewError(QueryError, fmt.Sprintf("register view %s", name), err)
	}
	c.registeredViews[name] = true
	slog.Debug("Registered view", "name", name, "path", pathStr)
	return nil
}

// ingestJSONView downloads the gzipped JSON dump for name, stream-flattens
// its nested uuid-keyed structure into NDJSON, and loads it as a table with
// the same name the flat parquet views would have used. Called with c.mu
// already held for writing.
func (c *Connection) ingestJSONView(ctx context.Context, name string) error {
	path, err := c.cache.EnsureJSON(ctx, name)
	if err != nil {
		slog.Warn("price/SKU data not available", "view", name, "error", err)
		return nil
	}

	raw, err := readGzipJSON(path)
	if err != nil {
		return err
	}
	data, _ := raw["data"].(map[string]any)
	if data == nil {
		return nil
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("mtgquery_%s_%s.ndjson", name, uuid.NewString()))
	ndjson, err := os.Create(tmpPath)
	if err != nil {
		return NewError(QueryError, "create ingestion scratch file", err)
	}
	defer os.Remove(tmpPath)

	var count int
	switch name {
	case "all_prices_today", "all_prices":
		count = streamFlattenPrices(data, ndjson)
	case "tcgplayer_skus":
		count = streamFlattenSkus(data, ndjson)
	}
	ndjson.Close()

	if count == 0 {
		return nil
	}
	if err := c.registerTableFromNdjsonLocked(ctx, name, tmpPath); err != nil {
		return err
	}
	c.registeredViews[name] = true
	slog.Debug("Ingested JSON view", "name", name, "rows", count)
	return nil
}

func readGzipJSON(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(QueryError, "open ingestion file", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			os.Remove(path)
			return nil, NewError(CorruptCache, fmt.Sprintf("corrupt cache file %s", filepath.Base(path)), err)
		}
		defer gr.Close()
		reader = gr
	}

	var raw map[string]any
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		f.Close()
		os.Remove(path)
		return nil, NewError(CorruptCache, fmt.Sprintf("corrupt cache file %s", filepath.Base(path)), err)
	}
	return raw, nil
}

// streamFlattenPrices flattens the six-level uuid -> source -> provider ->
// (currency, category -> finish -> date -> price) price structure into flat
// NDJSON rows: {uuid, source, provider, currency, price_type, finish, date, price}.
func streamFlattenPrices(data map[string]any, w io.Writer) int {
	enc := json.NewEncoder(w)
	count := 0
	for uuid, formatsRaw := range data {
		formats, ok := formatsRaw.(map[string]any)
		if !ok {
			continue
		}
		for source, providersRaw := range formats { // paper, mtgo
			providers, ok := providersRaw.(map[string]any)
			if !ok {
				continue
			}
			for provider, priceDataRaw := range providers { // tcgplayer, cardmarket, etc.
				priceData, ok := priceDataRaw.(map[string]any)
				if !ok {
					continue
				}
				currency, _ := priceData["currency"].(string)
				if currency == "" {
					currency = "USD"
				}
				for _, priceType := range []string{"buylist", "retail"} {
					typeData, ok := priceData[priceType].(map[string]any)
					if !ok {
						continue
					}
					for finish, datePricesRaw := range typeData { // normal, foil, etched
						datePrices, ok := datePricesRaw.(map[string]any)
						if !ok {
							continue
						}
						for date, price := range datePrices {
							if price == nil {
								continue
							}
							enc.Encode(map[string]any{
								"uuid":       uuid,
								"source":     source,
								"provider":   provider,
								"currency":   currency,
								"price_type": priceType,
								"finish":     finish,
								"date":       date,
								"price":      ToFloat64(price),
							})
							count++
						}
					}
				}
			}
		}
	}
	return count
}

// streamFlattenSkus flattens the two-level uuid -> []sku structure into flat
// NDJSON rows, each sku object plus its owning uuid.
func streamFlattenSkus(data map[string]any, w io.Writer) int {
	enc := json.NewEncoder(w)
	count := 0
	for uuid, skusRaw := range data {
		skus, ok := skusRaw.([]any)
		if !ok {
			continue
		}
		for _, skuRaw := range skus {
			sku, ok := skuRaw.(map[string]any)
			if !ok {
				continue
			}
			row := make(map[string]any, len(sku)+1)
			for k, v := range sku {
				row[k] = v
			}
			row["uuid"] = uuid
			enc.Encode(row)
			count++
		}
	}
	return count
}

func (c *Connection) buildCSVReplace(ctx context.Context, pathStr, viewName string) (string, error) {
	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT column_name, column_type FROM (DESCRIBE SELECT * FROM read_parquet('%s'))", pathStr,
	))
	if err != nil {
		return "", NewError(QueryError, "describe parquet schema", err)
	}
	defer rows.Close()

	schema := make(map[string]string)
	for rows.Next() {
		var colName, colType string
		if err := rows.Scan(&colName, &colType); err != nil {
			return "", NewError(QueryError, "scan schema row", err)
		}
		schema[colName] = colType
	}

	// Build candidate set
	candidates := make(map[string]bool)

	// Layer 1: Static baseline
	if static, ok := staticListColumns[viewName]; ok {
		for col := range static {
			candidates[col] = true
		}
	}

	// Layer 2: Dynamic heuristic
	for col, dtype := range schema {
		if dtype != "VARCHAR" {
			continue
		}
		if ignoredColumns[col] {
			continue
		}
		if strings.HasSuffix(col, "s") {
			candidates[col] = true
		}
	}

	// Filter to columns that actually exist as VARCHAR
	var finalCols []string
	for col := range candidates {
		if schema[col] == "VARCHAR" {
			finalCols = append(finalCols, col)
		}
	}
	sort.Strings(finalCols)

	var exprs []string
	for _, col := range finalCols {
		exprs = append(exprs, fmt.Sprintf(
			`CASE WHEN "%s" IS NULL OR TRIM("%s") = '' THEN []::VARCHAR[] ELSE string_split("%s", ', ') END AS "%s"`,
			col, col, col, col,
		))
	}

	// Layer 4: JSON casting
	var jsonCols []string
	for col := range jsonCastColumns {
		jsonCols = append(jsonCols, col)
	}
	sort.Strings(jsonCols)
	for _, col := range jsonCols {
		if schema[col] == "VARCHAR" {
			exprs = append(exprs, fmt.Sprintf(`TRY_CAST("%s" AS JSON) AS "%s"`, col, col))
		}
	}

	if len(exprs) == 0 {
		return "", nil
	}
	return " REPLACE (" + strings.Join(exprs, ", ") + ")", nil
}

func (c *Connection) registerLegalitiesView(ctx context.Context, pathStr string) error {
	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT column_name FROM (DESCRIBE SELECT * FROM read_parquet('%s'))", pathStr,
	))
	if err != nil {
		return NewError(QueryError, "describe legalities schema", err)
	}
	defer rows.Close()

	var allCols []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return NewError(QueryError, "scan legalities schema row", err)
		}
		allCols = append(allCols, col)
	}

	staticCols := map[string]bool{"uuid": true}
	var formatCols []string
	for _, col := range allCols {
		if !staticCols[col] {
			formatCols = append(formatCols, col)
		}
	}

	if len(formatCols) == 0 {
		_, err = c.db.ExecContext(ctx, fmt.Sprintf(
			"CREATE OR REPLACE VIEW card_legalities AS SELECT * FROM read_parquet('%s')", pathStr,
		))
	} else {
		colsSQL := make([]string, len(formatCols))
		for i, col := range formatCols {
			colsSQL[i] = `"` + col + `"`
		}
		_, err = c.db.ExecContext(ctx, fmt.Sprintf(
			"CREATE OR REPLACE VIEW card_legalities AS "+
				"SELECT uuid, format, status FROM ("+
				"  UNPIVOT (SELECT * FROM read_parquet('%s'))"+
				"  ON %s"+
				"  INTO NAME format VALUE status"+
				") WHERE status IS NOT NULL",
			pathStr, strings.Join(colsSQL, ", "),
		))
	}
	if err != nil {
		return NewError(QueryError, "register legalities view", err)
	}
	c.registeredViews["card_legalities"] = true
	slog.Debug("Registered legalities view", "formats", len(formatCols), "path", pathStr)
	return nil
}

// RegisterTableFromData creates a DuckDB table from a slice of maps.
// Primarily used by unit tests with small sample data.
func (c *Connection) RegisterTableFromData(ctx context.Context, tableName string, data []map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	_, err := c.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tableName)
	if err != nil {
		return NewError(QueryError, "drop existing table", err)
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return NewError(QueryError, "marshal sample data", err)
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("mtgquery_%s_%s.json", tableName, uuid.NewString()))
	if err := os.WriteFile(tmpPath, jsonBytes, 0o644); err != nil {
		return NewError(QueryError, "write sample data file", err)
	}
	defer os.Remove(tmpPath)

	fwd := filepath.ToSlash(tmpPath)
	_, err = c.db.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE %s AS SELECT * FROM read_json_auto('%s')", tableName, fwd,
	))
	if err != nil {
		return NewError(QueryError, fmt.Sprintf("create table %s", tableName), err)
	}
	c.mu.Lock()
	c.registeredViews[tableName] = true
	c.mu.Unlock()
	return nil
}

// RegisterTableFromNdjson creates a DuckDB table from a newline-delimited JSON file.
func (c *Connection) RegisterTableFromNdjson(ctx context.Context, tableName, ndjsonPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.registerTableFromNdjsonLocked(ctx, tableName, ndjsonPath); err != nil {
		return err
	}
	c.registeredViews[tableName] = true
	return nil
}

func (c *Connection) registerTableFromNdjsonLocked(ctx context.Context, tableName, ndjsonPath string) error {
	_, err := c.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tableName)
	if err != nil {
		return NewError(QueryError, "drop existing table", err)
	}
	fwd := filepath.ToSlash(ndjsonPath)
	_, err = c.db.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE %s AS SELECT * FROM read_json_auto('%s', format='newline_delimited')",
		tableName, fwd,
	))
	if err != nil {
		return NewError(QueryError, fmt.Sprintf("create table %s", tableName), err)
	}
	return nil
}

// Execute runs SQL and returns results as []map[string]any. Date/datetime
// scalars, including ones nested inside struct or list cells, are
// normalized to ISO-8601 text via normalizeCell so callers always see one
// portable representation regardless of how DuckDB's driver surfaced the
// value.
func (c *Connection) Execute(ctx context.Context, query string, params ...any) ([]map[string]any, error) {
	if c.isClosed() {
		return nil, ErrNotConnected
	}
	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, NewError(QueryError, "execute query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, NewError(QueryError, "read result columns", err)
	}

	var result []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, NewError(QueryError, "scan result row", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = normalizeCell(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, NewError(QueryError, "iterate result rows", err)
	}
	return result, nil
}

// ExecuteJSON runs SQL wrapped in to_json(list(...)) and returns a raw JSON string.
func (c *Connection) ExecuteJSON(ctx context.Context, query string, params ...any) (string, error) {
	if c.isClosed() {
		return "[]", ErrNotConnected
	}
	wrapped := fmt.Sprintf("SELECT CAST(to_json(list(sub)) AS VARCHAR) FROM (%s) sub", query)
	row := c.db.QueryRowContext(ctx, wrapped, params...)
	var result sql.NullString
	if err := row.Scan(&result); err != nil {
		return "[]", NewError(QueryError, "execute query", err)
	}
	if !result.Valid || result.String == "" {
		return "[]", nil
	}
	return result.String, nil
}

// ExecuteInto runs SQL and JSON-unmarshals results into dst (must be a pointer to a slice).
func (c *Connection) ExecuteInto(ctx context.Context, dst any, query string, params ...any) error {
	jsonStr, err := c.ExecuteJSON(ctx, query, params...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonStr), dst); err != nil {
		return NewError(QueryError, "decode result JSON", err)
	}
	return nil
}

// ExecuteScalar runs SQL and returns a single scalar value.
func (c *Connection) ExecuteScalar(ctx context.Context, query string, params ...any) (any, error) {
	if c.isClosed() {
		return nil, ErrNotConnected
	}
	row := c.db.QueryRowContext(ctx, query, params...)
	var val any
	if err := row.Scan(&val); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, NewError(QueryError, "execute scalar query", err)
	}
	return val, nil
}

// Raw returns the underlying *sql.DB for advanced usage (e.g. ATTACH/ExportDB).
func (c *Connection) Raw() *sql.DB {
	return c.db
}

// ClearViews resets the registered views set (used by Refresh).
func (c *Connection) ClearViews() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registeredViews = make(map[string]bool)
}

// Views returns the names of all registered views.
func (c *Connection) Views() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.registeredViews))
	for name := range c.registeredViews {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasView checks if a view is registered.
func (c *Connection) HasView(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registeredViews[name]
}

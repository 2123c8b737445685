package booster

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/mtgjson/mtgjson-sdk-go/db"
	"github.com/mtgjson/mtgjson-sdk-go/models"
)

// BoosterSimulator simulates opening booster packs using set booster configuration data.
// Uses weighted random selection based on the booster field in set data.
// Requires the booster column (present in AllPrintings, but NOT in the flat sets.parquet from CDN).
//
// Random selection uses the package-level math/rand source rather than a
// per-simulator *rand.Rand: a BoosterSimulator has no goroutine-affinity
// requirement and callers may share one across goroutines, where a private
// source would need its own locking to stay safe.
type BoosterSimulator struct {
	conn *db.Connection
}

func NewBoosterSimulator(conn *db.Connection) *BoosterSimulator {
	return &BoosterSimulator{conn: conn}
}

func (bs *BoosterSimulator) ensure(ctx context.Context) error {
	return bs.conn.EnsureViews(ctx, "sets", "cards")
}

// getBoosterConfig returns the booster configuration for a set.
func (bs *BoosterSimulator) getBoosterConfig(ctx context.Context, setCode string) (map[string]any, error) {
	if err := bs.ensure(ctx); err != nil {
		return nil, err
	}
	b := db.NewSQLBuilder("sets").Select("booster").WhereEq("code", setCode)
	sql, params := b.Build()
	rows, err := bs.conn.Execute(ctx, sql, params...)
	if err != nil {
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}
	boosterRaw := rows[0]["booster"]
	if boosterRaw == nil {
		return nil, nil
	}
	// May be a string (JSON), map, or DuckDB struct
	return extractBoosterConfig(boosterRaw), nil
}

// AvailableTypes lists available booster types for a set.
func (bs *BoosterSimulator) AvailableTypes(ctx context.Context, setCode string) ([]string, error) {
	config, err := bs.getBoosterConfig(ctx, setCode)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, nil
	}
	types := make([]string, 0, len(config))
	for k := range config {
		types = append(types, k)
	}
	return types, nil
}

// OpenPack simulates opening a single booster pack.
func (bs *BoosterSimulator) OpenPack(ctx context.Context, setCode, boosterType string) ([]models.CardSet, error) {
	configs, err := bs.getBoosterConfig(ctx, setCode)
	if err != nil {
		return nil, err
	}
	if configs == nil {
		return nil, db.NewError(db.InvalidArgument, fmt.Sprintf("no booster config for set %q", setCode), nil)
	}
	configRaw, ok := configs[boosterType]
	if !ok {
		types := make([]string, 0, len(configs))
		for k := range configs {
			types = append(types, k)
		}
		return nil, db.NewError(db.InvalidArgument,
			fmt.Sprintf("no booster type %q for set %q; available: %v", boosterType, setCode, types), nil)
	}
	config, ok := configRaw.(map[string]any)
	if !ok {
		return nil, db.NewError(db.InvalidArgument,
			fmt.Sprintf("invalid booster config type for %q/%q", setCode, boosterType), nil)
	}

	boostersRaw, _ := config["boosters"].([]any)
	sheetsRaw, _ := config["sheets"].(map[string]any)

	// Pick a pack template
	packTemplate := pickPack(boostersRaw)
	if packTemplate == nil {
		return nil, nil
	}

	contents, _ := packTemplate["contents"].(map[string]any)
	var cardUUIDs []string
	for sheetName, countRaw := range contents {
		count := db.ToInt(countRaw)
		if count <= 0 {
			continue
		}
		sheetRaw, ok := sheetsRaw[sheetName]
		if !ok {
			continue
		}
		sheet, ok := sheetRaw.(map[string]any)
		if !ok {
			continue
		}
		picked := pickFromSheet(sheet, count)
		cardUUIDs = append(cardUUIDs, picked...)
	}

	if len(cardUUIDs) == 0 {
		return nil, nil
	}

	vals := make([]any, len(cardUUIDs))
	for i, u := range cardUUIDs {
		vals[i] = u
	}
	b := db.NewSQLBuilder("cards").WhereIn("uuid", vals)
	sql, params := b.Build()

	var cards []models.CardSet
	if err := bs.conn.ExecuteInto(ctx, &cards, sql, params...); err != nil {
		return nil, err
	}

	// Preserve pack order
	uuidToCard := make(map[string]models.CardSet, len(cards))
	for _, c := range cards {
		uuidToCard[c.UUID] = c
	}
	ordered := make([]models.CardSet, 0, len(cardUUIDs))
	for _, uuid := range cardUUIDs {
		if c, ok := uuidToCard[uuid]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// OpenBox simulates opening a booster box (multiple packs).
func (bs *BoosterSimulator) OpenBox(ctx context.Context, setCode, boosterType string, packs int) ([][]models.CardSet, error) {
	if packs <= 0 {
		packs = 36
	}
	box := make([][]models.CardSet, 0, packs)
	for i := 0; i < packs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pack, err := bs.OpenPack(ctx, setCode, boosterType)
		if err != nil {
			return nil, err
		}
		box = append(box, pack)
	}
	return box, nil
}

// SheetContents returns the card UUIDs and weights for a specific booster sheet.
func (bs *BoosterSimulator) SheetContents(ctx context.Context, setCode, boosterType, sheetName string) (map[string]int, error) {
	configs, err := bs.getBoosterConfig(ctx, setCode)
	if err != nil {
		return nil, err
	}
	if configs == nil {
		return nil, nil
	}
	configRaw, ok := configs[boosterType]
	if !ok {
		return nil, nil
	}
	config, ok := configRaw.(map[string]any)
	if !ok {
		return nil, nil
	}
	sheetsRaw, _ := config["sheets"].(map[string]any)
	sheetRaw, ok := sheetsRaw[sheetName]
	if !ok {
		return nil, nil
	}
	sheet, ok := sheetRaw.(map[string]any)
	if !ok {
		return nil, nil
	}
	cardsRaw, _ := sheet["cards"].(map[string]any)
	if cardsRaw == nil {
		return nil, nil
	}
	result := make(map[string]int, len(cardsRaw))
	for uuid, weightRaw := range cardsRaw {
		result[uuid] = db.ToInt(weightRaw)
	}
	return result, nil
}

// pickWeightedIndex does a single weighted-random draw over weights,
// returning the chosen index. Falls back to the last index if rounding
// error leaves the draw short of the cumulative total. Shared by pickPack,
// weightedChoicesWithReplacement and weightedChoicesWithoutReplacement so
// the cumulative-sum scan exists in exactly one place.
func pickWeightedIndex(weights []float64) int {
	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight <= 0 {
		return len(weights) - 1
	}
	r := rand.Float64() * totalWeight
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// pickPack does a weighted random selection of a pack template.
func pickPack(boosters []any) map[string]any {
	if len(boosters) == 0 {
		return nil
	}
	var packs []map[string]any
	var weights []float64
	for _, b := range boosters {
		m, ok := b.(map[string]any)
		if !ok {
			continue
		}
		w := db.ToFloat64(m["weight"])
		if w <= 0 {
			w = 1
		}
		packs = append(packs, m)
		weights = append(weights, w)
	}
	if len(packs) == 0 {
		return nil
	}
	return packs[pickWeightedIndex(weights)]
}

// pickFromSheet does weighted random selection of cards from a sheet.
func pickFromSheet(sheet map[string]any, count int) []string {
	cardsRaw, _ := sheet["cards"].(map[string]any)
	if cardsRaw == nil {
		return nil
	}
	allowDuplicates, _ := sheet["allowDuplicates"].(bool)

	uuids := make([]string, 0, len(cardsRaw))
	weights := make([]float64, 0, len(cardsRaw))
	for uuid, weightRaw := range cardsRaw {
		uuids = append(uuids, uuid)
		weights = append(weights, db.ToFloat64(weightRaw))
	}

	if allowDuplicates {
		return weightedChoicesWithReplacement(uuids, weights, count)
	}

	if count >= len(uuids) {
		result := make([]string, len(uuids))
		copy(result, uuids)
		rand.Shuffle(len(result), func(i, j int) { result[i], result[j] = result[j], result[i] })
		return result
	}

	return weightedChoicesWithoutReplacement(uuids, weights, count)
}

func weightedChoicesWithReplacement(items []string, weights []float64, count int) []string {
	result := make([]string, count)
	for i := 0; i < count; i++ {
		result[i] = items[pickWeightedIndex(weights)]
	}
	return result
}

func weightedChoicesWithoutReplacement(items []string, weights []float64, count int) []string {
	remaining := make([]string, len(items))
	copy(remaining, items)
	remainingWeights := make([]float64, len(weights))
	copy(remainingWeights, weights)

	picked := make([]string, 0, count)
	for i := 0; i < count && len(remaining) > 0; i++ {
		idx := pickWeightedIndex(remainingWeights)
		picked = append(picked, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		remainingWeights = append(remainingWeights[:idx], remainingWeights[idx+1:]...)
	}
	return picked
}

func extractBoosterConfig(v any) map[string]any {
	if v == nil {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	if s, ok := v.(string); ok {
		var m map[string]any
		if err := json.Unmarshal([]byte(s), &m); err == nil {
			return m
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

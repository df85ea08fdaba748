// Package geocode maps (city, province) pairs to coordinates for the
// distribution map. Lookup order: the kota_geo reference table, a built-in
// dictionary of major Indonesian cities, then (when enabled) an online
// geocoding service. Misses are not errors; unplottable pairs are simply
// left out of the map.
package geocode

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Coord is a WGS84 latitude/longitude pair.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key is a normalized (city, province) pair.
type Key struct {
	City     string
	Province string
}

// NormalizeKey trims and lowercases a city/province pair.
func NormalizeKey(city, province string) Key {
	return Key{
		City:     strings.ToLower(strings.TrimSpace(city)),
		Province: strings.ToLower(strings.TrimSpace(province)),
	}
}

// Geocoder is an online geocoding backend. A nil result with nil error means
// the service had no candidate.
type Geocoder interface {
	Geocode(ctx context.Context, city, province string) (*Coord, error)
}

// Resolver resolves coordinates through the three-tier chain and memoizes
// every outcome (hit or miss) per normalized pair for its lifetime, so the
// online service is asked at most once per distinct input.
type Resolver struct {
	ref    map[Key]Coord
	online Geocoder // nil when online geocoding is disabled
	logger zerolog.Logger

	mu    sync.Mutex
	cache map[Key]*Coord // nil value records a known miss
}

func NewResolver(ref map[Key]Coord, online Geocoder, logger zerolog.Logger) *Resolver {
	if ref == nil {
		ref = map[Key]Coord{}
	}
	return &Resolver{
		ref:    ref,
		online: online,
		logger: logger,
		cache:  make(map[Key]*Coord),
	}
}

// Resolve returns the coordinate for a city/province pair and whether one was
// found. Never returns an error: online failures degrade to a miss.
func (r *Resolver) Resolve(ctx context.Context, city, province string) (Coord, bool) {
	k := NormalizeKey(city, province)

	r.mu.Lock()
	if cached, ok := r.cache[k]; ok {
		r.mu.Unlock()
		if cached == nil {
			return Coord{}, false
		}
		return *cached, true
	}
	r.mu.Unlock()

	coord, ok := r.lookup(ctx, k, city, province)

	r.mu.Lock()
	if ok {
		c := coord
		r.cache[k] = &c
	} else {
		r.cache[k] = nil
	}
	r.mu.Unlock()

	return coord, ok
}

func (r *Resolver) lookup(ctx context.Context, k Key, city, province string) (Coord, bool) {
	// 1) dynamic reference table
	if c, ok := r.ref[k]; ok {
		return c, true
	}

	// 2) built-in dictionary
	if c, ok := staticCityCoords[k]; ok {
		return c, true
	}

	// 3) online geocoding, when enabled
	if r.online != nil {
		c, err := r.online.Geocode(ctx, city, province)
		if err != nil {
			r.logger.Warn().Err(err).
				Str("city", city).Str("province", province).
				Msg("online geocoding failed")
			return Coord{}, false
		}
		if c != nil {
			return *c, true
		}
	}

	return Coord{}, false
}

// LoadReference reads the kota_geo table into a lookup map. A missing table
// or query failure yields an empty map, never an error; the resolver then
// relies on the static dictionary and the online tier.
func LoadReference(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) map[Key]Coord {
	ref := make(map[Key]Coord)

	rows, err := pool.Query(ctx, `SELECT kota, propinsi, lat, lon FROM public.kota_geo`)
	if err != nil {
		logger.Warn().Err(err).Msg("kota_geo reference unavailable, using built-in coordinates only")
		return ref
	}
	defer rows.Close()

	for rows.Next() {
		var city, province string
		var lat, lon float64
		if err := rows.Scan(&city, &province, &lat, &lon); err != nil {
			logger.Warn().Err(err).Msg("skipping malformed kota_geo row")
			continue
		}
		ref[NormalizeKey(city, province)] = Coord{Lat: lat, Lon: lon}
	}
	if err := rows.Err(); err != nil {
		logger.Warn().Err(err).Msg("kota_geo read interrupted")
	}

	return ref
}

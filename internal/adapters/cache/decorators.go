package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/platform/obs"
	"medresilient-service/internal/ports"
	"time"

	"golang.org/x/sync/singleflight"
)

// Coordinates are rounded to ~11 m so nearby lookups share an entry.
func coordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// Bound on a shared upstream fetch once it is detached from the caller.
const sharedFetchTimeout = 30 * time.Second

// cached runs fetch through store, collapsing concurrent identical lookups.
// Cache errors are logged and never fail the lookup; fetch errors are returned uncached.
//
// The shared fetch is detached from the caller that started it, so one
// cancelled request never fails the others waiting on the same key. Each
// caller still returns as soon as its own ctx is done.
func cached[T any](
	ctx context.Context,
	store ports.LookupCache,
	group *singleflight.Group,
	ttl time.Duration,
	key string,
	fetch func(ctx context.Context) (T, error),
) (T, error) {
	var zero T

	if raw, ok, err := store.Get(ctx, key); err != nil {
		log.Printf("req_id=%s lookup cache read failed key=%s err=%v", obs.RequestID(ctx), key, err)
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		log.Printf("req_id=%s lookup cache entry corrupt key=%s", obs.RequestID(ctx), key)
	}

	ch := group.DoChan(key, func() (_ any, err error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		// DoChan re-panics on its own goroutine, which would take the process down.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("lookup %s panicked: %v", key, r)
			}
		}()

		v, err := fetch(fetchCtx)
		if err != nil {
			return zero, err
		}

		raw, err := json.Marshal(v)
		if err == nil {
			err = store.Set(fetchCtx, key, raw, ttl)
		}
		if err != nil {
			log.Printf("req_id=%s lookup cache write failed key=%s err=%v", obs.RequestID(ctx), key, err)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// CachedRouteProvider wraps a RouteProvider with a lookup cache.
type CachedRouteProvider struct {
	Next  ports.RouteProvider
	Store ports.LookupCache
	TTL   time.Duration
	group singleflight.Group
}

func NewCachedRouteProvider(next ports.RouteProvider, store ports.LookupCache, ttl time.Duration) *CachedRouteProvider {
	return &CachedRouteProvider{Next: next, Store: store, TTL: ttl}
}

func (c *CachedRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TransportMode,
) (ports.RouteResult, error) {
	key := "route:" + string(mode) + ":" + coordKey(origin) + "|" + coordKey(destination)
	return cached(ctx, c.Store, &c.group, c.TTL, key, func(ctx context.Context) (ports.RouteResult, error) {
		return c.Next.GetRoute(ctx, origin, destination, mode)
	})
}

// CachedFloodZoneProvider wraps a FloodZoneProvider with a lookup cache.
type CachedFloodZoneProvider struct {
	Next  ports.FloodZoneProvider
	Store ports.LookupCache
	TTL   time.Duration
	group singleflight.Group
}

func NewCachedFloodZoneProvider(next ports.FloodZoneProvider, store ports.LookupCache, ttl time.Duration) *CachedFloodZoneProvider {
	return &CachedFloodZoneProvider{Next: next, Store: store, TTL: ttl}
}

func (c *CachedFloodZoneProvider) LookupZone(ctx context.Context, loc domain.Coordinates) (string, error) {
	return cached(ctx, c.Store, &c.group, c.TTL, "zone:"+coordKey(loc), func(ctx context.Context) (string, error) {
		return c.Next.LookupZone(ctx, loc)
	})
}

// CachedTerrainProvider wraps a TerrainProvider with a lookup cache.
// Precipitation changes daily, so it is kept for at most PrecipitationTTL.
type CachedTerrainProvider struct {
	Next             ports.TerrainProvider
	Store            ports.LookupCache
	TTL              time.Duration
	PrecipitationTTL time.Duration
	group            singleflight.Group
}

func NewCachedTerrainProvider(next ports.TerrainProvider, store ports.LookupCache, ttl time.Duration) *CachedTerrainProvider {
	return &CachedTerrainProvider{
		Next:             next,
		Store:            store,
		TTL:              ttl,
		PrecipitationTTL: min(ttl, 6*time.Hour),
	}
}

func (c *CachedTerrainProvider) Elevation(ctx context.Context, loc domain.Coordinates) (float64, error) {
	return cached(ctx, c.Store, &c.group, c.TTL, "elevation:"+coordKey(loc), func(ctx context.Context) (float64, error) {
		return c.Next.Elevation(ctx, loc)
	})
}

func (c *CachedTerrainProvider) Precipitation30Day(ctx context.Context, loc domain.Coordinates) (float64, error) {
	return cached(ctx, c.Store, &c.group, c.PrecipitationTTL, "precip30:"+coordKey(loc), func(ctx context.Context) (float64, error) {
		return c.Next.Precipitation30Day(ctx, loc)
	})
}

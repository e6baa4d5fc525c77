package exercises

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const exerciseCacheExpire = 60 * 60 // seconds

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*Exercise, error)
}

// CachedCatalog serves exercise lookups from an in-memory cache.
// Catalog rows are never updated after insert, so entries only expire.
type CachedCatalog struct {
	source exerciseGetter
	cache  *freecache.Cache
}

func NewCachedCatalog(source exerciseGetter, sizeMB int) *CachedCatalog {
	megabyte := 1024 * 1024
	return &CachedCatalog{
		source: source,
		cache:  freecache.NewCache(sizeMB * megabyte),
	}
}

func (c *CachedCatalog) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	cacheKey := []byte(strconv.Itoa(id))
	if exBytes, err := c.cache.Get(cacheKey); err == nil {
		var ex Exercise
		unmarshalErr := json.Unmarshal(exBytes, &ex)
		if unmarshalErr == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return &ex, nil
		}
		log.Warnf("exercise cache: unmarshal %d: %s", id, unmarshalErr)
	}

	ex, err := c.source.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exBytes, err := json.Marshal(ex)
	if err != nil {
		log.Errorf("exercise cache: marshal %d: %s", id, err)
		return ex, nil
	}
	if err := c.cache.Set(cacheKey, exBytes, exerciseCacheExpire); err != nil {
		log.Errorf("exercise cache: set %d: %s", id, err)
	}

	return ex, nil
}

func (c *CachedCatalog) EntryCount() int64 {
	return c.cache.EntryCount()
}

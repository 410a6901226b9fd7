package aladhan

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

// Source serves daily records for a fixed location, fetching months from
// the API on cache misses.
type Source struct {
	client *Client
	cache  *Cache
	lat    float64
	lng    float64
	log    zerolog.Logger
}

// NewSource creates a record source for the given coordinates.
func NewSource(client *Client, cache *Cache, lat, lng float64, log zerolog.Logger) *Source {
	return &Source{client: client, cache: cache, lat: lat, lng: lng, log: log}
}

// Month returns all records for one Gregorian month, cache-first.
func (s *Source) Month(ctx context.Context, year, month int) ([]prayer.Record, error) {
	if records := s.cache.Load(year, month, s.lat, s.lng, s.client.Method); records != nil {
		s.log.Debug().Int("year", year).Int("month", month).Msg("calendar cache hit")
		return records, nil
	}

	s.log.Debug().Int("year", year).Int("month", month).Msg("fetching calendar")
	records, err := s.client.Calendar(ctx, year, month, s.lat, s.lng)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(year, month, s.lat, s.lng, s.client.Method, records); err != nil {
		// A failed cache write costs a refetch next run, nothing more.
		s.log.Warn().Err(err).Msg("saving calendar cache failed")
	}

	return records, nil
}

// Range returns records for every month overlapping [from, to], in
// chronological order.
func (s *Source) Range(ctx context.Context, from, to time.Time) ([]prayer.Record, error) {
	var records []prayer.Record

	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())

	for !cursor.After(end) {
		month, err := s.Month(ctx, cursor.Year(), int(cursor.Month()))
		if err != nil {
			return nil, err
		}
		records = append(records, month...)
		cursor = cursor.AddDate(0, 1, 0)
	}

	return records, nil
}

// Window returns records covering [now, now+days], the span the
// notification scheduler plans over.
func (s *Source) Window(ctx context.Context, now time.Time, days int) ([]prayer.Record, error) {
	return s.Range(ctx, now, now.AddDate(0, 0, days))
}

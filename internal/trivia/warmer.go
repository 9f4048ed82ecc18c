package trivia

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer periodically reloads the category listing into the cache so
// request paths rarely miss.
type CacheWarmer struct {
	service  *Service
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewCacheWarmer(service *Service, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = defaultCategoryCacheTTL / 2
	}
	return &CacheWarmer{
		service:  service,
		interval: interval,
		timeout:  4 * time.Second,
		logger:   logger.With().Str("component", "category_warmer").Logger(),
	}
}

// Run refreshes once immediately, then on every tick until ctx is canceled.
func (w *CacheWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("category warmer stopping")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CacheWarmer) refresh(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, w.timeout)
	defer cancel()

	n, err := w.service.RefreshCategoryCache(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	w.logger.Debug().Int("categories", n).Msg("category cache refreshed")
}

package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/phanxgames/lexisphere"
	"github.com/phanxgames/lexisphere/internal/cache"
	"github.com/phanxgames/lexisphere/internal/server"
	"github.com/phanxgames/lexisphere/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve term records over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		var source server.TermSource = st
		if cfg.Cache.Enabled {
			c := cache.New(cfg.Cache.Addr, st,
				cache.WithTTL(time.Duration(cfg.Cache.TTLSec)*time.Second),
				cache.WithLogger(logger))
			defer c.Close()
			source = &cachedSource{Store: st, cache: c}
		}

		var reg prometheus.Registerer
		if cfg.Server.Metrics {
			reg = prometheus.DefaultRegisterer
		}
		srv := server.New(source, reg, server.WithLogger(logger))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

// cachedSource routes reads by id through the Redis cache while keeping
// the store's write and search paths.
type cachedSource struct {
	*store.Store
	cache *cache.Cache
}

func (c *cachedSource) TermByID(ctx context.Context, id string) (*lexisphere.TermRecord, error) {
	rec, err := c.cache.LoadTermByID(ctx, id)
	if errors.Is(err, lexisphere.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	return rec, err
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

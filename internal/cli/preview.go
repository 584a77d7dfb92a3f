package cli

import (
	"github.com/spf13/cobra"

	"github.com/mlandt/labelator/internal/server"
	"github.com/mlandt/labelator/pkg/cache"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	addr      string // listen address
	sheetName string // sheet calibration name or TOML file path
	redisAddr string // redis address; empty selects the file cache
	noCache   bool   // disable render memoization
}

// newPreviewCmd creates the preview command, which serves a browser UI
// with a live sheet preview. Renders are memoized in the file cache by
// default; --redis switches to a Redis backend for shared deployments.
func newPreviewCmd() *cobra.Command {
	opts := previewOpts{addr: ":8787"}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve a live browser preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			sh, err := resolveSheet(opts.sheetName)
			if err != nil {
				return err
			}

			c, err := buildCache(cmd, &opts)
			if err != nil {
				return err
			}
			defer c.Close()

			printInfo("Preview at http://localhost%s", opts.addr)
			srv := server.New(server.Config{
				Addr:   opts.addr,
				Sheet:  sh,
				Cache:  c,
				Logger: logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.sheetName, "sheet", "s", "", "sheet calibration name or TOML file (default: flexilabels-260)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for shared render memoization (e.g. localhost:6379)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable render memoization")

	return cmd
}

// buildCache selects the memoization backend from the preview flags.
func buildCache(cmd *cobra.Command, opts *previewOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{Addr: opts.redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

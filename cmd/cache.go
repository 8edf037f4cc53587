package cmd

import (
	"context"
	"fmt"
	"time"

	"scpod/cache"
	"scpod/config"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Check the timestamp cache backend",
	Long:  `Connect to the configured cache backend and run a write/read/delete round trip. Useful for verifying REDIS_URL and REDIS_TOKEN before deploying.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if !cfg.CacheConfigured() {
			fmt.Println("No cache backend configured (REDIS_URL/REDIS_TOKEN missing); the server will run in no-backend mode.")
			return nil
		}

		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		const probeKey = "scpod:cache-probe"
		if err := client.Set(ctx, probeKey, time.Now().UTC().Format(time.RFC3339Nano), time.Minute).Err(); err != nil {
			return fmt.Errorf("probe write failed: %w", err)
		}
		if err := client.Get(ctx, probeKey).Err(); err != nil {
			return fmt.Errorf("probe read failed: %w", err)
		}
		if err := client.Del(ctx, probeKey).Err(); err != nil {
			return fmt.Errorf("probe delete failed: %w", err)
		}

		fmt.Println("Cache backend healthy.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}

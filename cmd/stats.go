package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minqi/vocadrill/internal/api"
	"github.com/minqi/vocadrill/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study queue counts without starting a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		client := api.NewClient(cfg.Backend.URL, api.WithToken(cfg.Backend.Token))
		ctx := context.Background()

		sum, err := client.Summary(ctx)
		if err != nil {
			return fmt.Errorf("fetch dashboard summary: %w", err)
		}
		review, err := client.ReviewWords(ctx)
		if err != nil {
			return fmt.Errorf("fetch review words: %w", err)
		}

		fmt.Printf("Tier:             %s\n", sum.Tier)
		fmt.Printf("Words to learn:   %d\n", len(sum.LearnQueue()))
		fmt.Printf("Teacher assigned: %d\n", len(sum.TeacherAssigned))
		fmt.Printf("Due for review:   %d\n", len(review))
		return nil
	},
}

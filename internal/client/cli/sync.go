package cli

import (
	"context"
	"fmt"

	"github.com/taskwire/taskwire/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	fmt.Println("=== Synchronization ===")
	fmt.Println()

	accessToken, err := c.authService.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("not authenticated, run 'taskwire login' first: %w", err)
	}

	fmt.Println("Uploading local data to server...")
	fmt.Println()

	unsubscribe := c.syncService.OnProgress(func(p sync.Progress) {
		switch p.Status {
		case sync.StatusPreparing:
			fmt.Printf("Preparing snapshot... (%d items)\n", p.TotalItems)
		case sync.StatusUploading:
			fmt.Printf("Uploading... %d%%\n", p.Percent())
		}
	})
	defer unsubscribe()

	result, err := c.syncService.Run(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Synchronization completed!")
	fmt.Println()
	fmt.Printf("Uploaded: %d items\n", result.TotalItems)
	if result.DuplicateBoards > 0 || result.DuplicateColumns > 0 || result.DuplicateCards > 0 {
		fmt.Printf("Duplicates skipped: %d boards, %d columns, %d cards\n",
			result.DuplicateBoards, result.DuplicateColumns, result.DuplicateCards)
	}
	if result.FailedItems > 0 {
		fmt.Printf("Failed items:       %d\n", result.FailedItems)
	}
	if result.Message != "" {
		fmt.Printf("Server message:     %s\n", result.Message)
	}

	return nil
}

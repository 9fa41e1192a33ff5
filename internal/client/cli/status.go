package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runStatus(ctx context.Context) error {
	authenticated, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !authenticated {
		fmt.Println("Not authenticated. Run 'taskwire login' first.")
		return nil
	}

	fmt.Println("Authenticated.")
	userID, err := c.authService.UserID(ctx)
	if err == nil && userID != "" {
		fmt.Printf("User ID: %s\n", userID)
	}

	return nil
}

package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("✓ Logged out")
	return nil
}

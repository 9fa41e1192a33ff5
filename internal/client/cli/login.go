package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	// Токен выдается облачным сервисом; вводим его как секрет
	token, err := readSecret("Access token: ")
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	auth, err := c.authService.Login(ctx, token)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("✓ Login successful!")
	if auth.UserID != "" {
		fmt.Printf("User ID: %s\n", auth.UserID)
	}
	if auth.ExpiresAt != 0 {
		fmt.Printf("Token expires at: %s\n", time.Unix(auth.ExpiresAt, 0).Format(time.RFC3339))
	}

	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
)

// Run выполняет команду и завершает процесс при ошибке
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "board":
		err = c.runBoard(ctx, args)
	case "column":
		err = c.runColumn(ctx, args)
	case "card":
		err = c.runCard(ctx, args)
	case "live":
		err = c.runLive(ctx, args)
	case "sync":
		err = c.runSync(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskwire/taskwire/internal/client/board"
	"github.com/taskwire/taskwire/internal/client/collab"
	"github.com/taskwire/taskwire/internal/models"
)

// runLive открывает коллаборацию для доски и печатает входящие события
// до прерывания (Ctrl+C)
func (c *Cli) runLive(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskwire live <board-id>")
	}
	boardID := args[0]

	state := board.NewState()

	// Локальная копия доски, если она есть, становится начальным состоянием
	if b, err := c.boltStorage.GetBoard(ctx, boardID); err == nil {
		boardColumns, err := c.boltStorage.ListColumns(ctx, boardID)
		if err != nil {
			return fmt.Errorf("failed to list columns: %w", err)
		}

		columns := make([]models.Column, 0, len(boardColumns))
		cards := []models.Card{}
		for _, column := range boardColumns {
			columns = append(columns, *column)
			columnCards, err := c.boltStorage.ListCards(ctx, column.ID)
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}
			for _, card := range columnCards {
				cards = append(cards, *card)
			}
		}

		state.SetBoard(*b, columns, cards)
	}

	controller := collab.NewController(c.relayURL, c.authService, state, c.logger)
	defer controller.Teardown()

	unsubscribe := controller.OnEvent(func(eventType string) {
		fmt.Printf("event: %s\n", eventType)
	})
	defer unsubscribe()

	if err := controller.Initialize(ctx, boardID); err != nil {
		return fmt.Errorf("failed to start collaboration: %w", err)
	}

	status := controller.Status()
	fmt.Printf("Collaboration status: %s\n", status)
	if status != collab.StatusInRoom {
		if err := controller.LastError(); err != nil {
			return err
		}
		return nil
	}

	fmt.Printf("Joined room for board %s. Watching for events, press Ctrl+C to stop.\n", boardID)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			fmt.Println()
			fmt.Println("Stopping.")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s := controller.Status(); s != status {
				status = s
				fmt.Printf("Collaboration status: %s\n", status)
			}
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskwire/taskwire/internal/models"
	"github.com/taskwire/taskwire/internal/validation"
)

func (c *Cli) runBoard(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: taskwire board <add|list>")
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: taskwire board add <name>")
		}
		return c.addBoard(ctx, args[1])
	case "list":
		return c.listBoards(ctx)
	default:
		return fmt.Errorf("unknown board subcommand: %s", args[0])
	}
}

func (c *Cli) addBoard(ctx context.Context, name string) error {
	if err := validation.ValidateName(name); err != nil {
		return fmt.Errorf("invalid board name: %w", err)
	}

	now := time.Now().Unix()
	board := &models.Board{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.boltStorage.SaveBoard(ctx, board); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	fmt.Printf("✓ Board created: %s\n", board.ID)
	return nil
}

func (c *Cli) listBoards(ctx context.Context) error {
	boards, err := c.boltStorage.ListBoards(ctx)
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}

	if len(boards) == 0 {
		fmt.Println("No boards yet. Run 'taskwire board add <name>'.")
		return nil
	}

	for _, board := range boards {
		fmt.Printf("%s  %s\n", board.ID, board.Name)

		columns, err := c.boltStorage.ListColumns(ctx, board.ID)
		if err != nil {
			return fmt.Errorf("failed to list columns: %w", err)
		}
		for _, column := range columns {
			fmt.Printf("  [%d] %s  %s\n", column.Position, column.ID, column.Name)

			cards, err := c.boltStorage.ListCards(ctx, column.ID)
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}
			for _, card := range cards {
				fmt.Printf("      - %s  %s\n", card.ID, card.Name)
			}
		}
	}

	return nil
}

func (c *Cli) runColumn(ctx context.Context, args []string) error {
	if len(args) < 3 || args[0] != "add" {
		return fmt.Errorf("usage: taskwire column add <board-id> <name>")
	}
	boardID, name := args[1], args[2]

	if err := validation.ValidateName(name); err != nil {
		return fmt.Errorf("invalid column name: %w", err)
	}

	// Проверяем что доска существует
	if _, err := c.boltStorage.GetBoard(ctx, boardID); err != nil {
		return fmt.Errorf("board %s: %w", boardID, err)
	}

	existing, err := c.boltStorage.ListColumns(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to list columns: %w", err)
	}

	now := time.Now().Unix()
	column := &models.Column{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Name:      name,
		Position:  len(existing),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.boltStorage.SaveColumn(ctx, column); err != nil {
		return fmt.Errorf("failed to save column: %w", err)
	}

	fmt.Printf("✓ Column created: %s\n", column.ID)
	return nil
}

func (c *Cli) runCard(ctx context.Context, args []string) error {
	if len(args) < 3 || args[0] != "add" {
		return fmt.Errorf("usage: taskwire card add <column-id> <name>")
	}
	columnID, name := args[1], args[2]

	if err := validation.ValidateName(name); err != nil {
		return fmt.Errorf("invalid card name: %w", err)
	}

	existing, err := c.boltStorage.ListCards(ctx, columnID)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	now := time.Now().Unix()
	card := &models.Card{
		ID:        uuid.New().String(),
		ColumnID:  columnID,
		Name:      name,
		Index:     len(existing),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.boltStorage.SaveCard(ctx, card); err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	fmt.Printf("✓ Card created: %s\n", card.ID)
	return nil
}

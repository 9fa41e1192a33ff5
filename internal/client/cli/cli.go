package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/taskwire/taskwire/internal/client/api"
	"github.com/taskwire/taskwire/internal/client/auth"
	"github.com/taskwire/taskwire/internal/client/storage/boltdb"
	"github.com/taskwire/taskwire/internal/client/sync"
)

// Cli объединяет зависимости консольных команд
type Cli struct {
	apiClient   *api.Client
	authService *auth.Service
	syncService sync.Service
	boltStorage *boltdb.Storage
	relayURL    string
	logger      *slog.Logger
}

// New создает CLI с готовыми сервисами
func New(
	apiClient *api.Client,
	authService *auth.Service,
	syncService sync.Service,
	boltStorage *boltdb.Storage,
	relayURL string,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		apiClient:   apiClient,
		authService: authService,
		syncService: syncService,
		boltStorage: boltStorage,
		relayURL:    relayURL,
		logger:      logger,
	}
}

func PrintUsage() {
	fmt.Println("Taskwire Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  taskwire [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Cloud sync server URL (default: http://localhost:8080)")
	fmt.Println("  --relay URL    Collaboration relay URL (default: ws://localhost:8081/ws)")
	fmt.Println("  --db PATH      Path to local database (default: taskwire-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login                    Save access token for cloud sync and collaboration")
	fmt.Println("  logout                   Remove saved access token")
	fmt.Println("  status                   Show authentication status")
	fmt.Println("  board add <name>         Create a board")
	fmt.Println("  board list               List boards with their columns and cards")
	fmt.Println("  column add <board-id> <name>   Add a column to a board")
	fmt.Println("  card add <column-id> <name>    Add a card to a column")
	fmt.Println("  live <board-id>          Join the board's collaboration room and watch events")
	fmt.Println("  sync                     Upload local data snapshot to the server")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  taskwire login")
	fmt.Println("  taskwire board add \"Sprint 42\"")
	fmt.Println("  taskwire --relay ws://relay.example.com/ws live b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  taskwire sync")
}

// readInput читает строку из stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readSecret читает токен без отображения на экране
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secretBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Переход на новую строку после ввода
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secretBytes)), nil
}

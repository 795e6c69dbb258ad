// Command walkthrough is the property inspection checklist CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/walkthrough/internal/adapters/driven/ai"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/config/file"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/idgen"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/storage/firestore"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/storage/local"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/cli"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/core/services"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// ephemeralEnv keeps settings and reports in memory for the process lifetime.
const ephemeralEnv = "WALKTHROUGH_EPHEMERAL"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx := context.Background()
	ephemeral := os.Getenv(ephemeralEnv) == "1"

	configStore, err := openConfigStore(ephemeral)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	localStore, err := openLocalStore(ephemeral, settings.LocalDir)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}

	remote, closeRemote := openRemote(ctx, settings.Remote)
	defer closeRemote()

	aiResult := ai.Init(&settings.LLM)
	defer aiResult.Close()
	for _, w := range aiResult.Warnings {
		logger.Warn("%s", w)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompts: %w", err)
	}

	ids := idgen.New()
	authService := services.NewAuthService(remote.users, configStore, ids)

	var remotes []driven.ReportStore
	if remote.reports != nil {
		remotes = append(remotes, remote.reports)
	}

	cli.SetServices(&cli.Services{
		Settings:   settingsService,
		Report:     services.NewReportService(localStore, ids, authService, remotes...),
		Inspection: services.NewInspectionService(ids),
		Generation: services.NewGenerationService(aiResult.LLMService, prompts, ids),
		Auth:       authService,
	})
	cli.SetVersion(version)

	return cli.Execute()
}

func openConfigStore(ephemeral bool) (driven.ConfigStore, error) {
	if ephemeral {
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore("")
}

func openLocalStore(ephemeral bool, dir string) (driven.ReportStore, error) {
	if ephemeral {
		return memory.NewReportStore("local"), nil
	}
	return local.NewStore(dir)
}

// remoteStores are the stores of the configured remote backend.
// Both are nil when no backend is usable.
type remoteStores struct {
	reports driven.ReportStore
	users   driven.UserStore
}

// openRemote opens the configured backend. A backend that cannot be opened
// is logged and reports stay on this device.
func openRemote(ctx context.Context, cfg domain.RemoteSettings) (remoteStores, func()) {
	noop := func() {}
	if !cfg.IsConfigured() {
		return remoteStores{}, noop
	}

	var (
		store interface {
			io.Closer
			ReportStore() driven.ReportStore
			UserStore() driven.UserStore
		}
		err error
	)
	switch cfg.Backend {
	case domain.RemoteBackendSQLite:
		store, err = sqlite.NewStore(cfg.SQLiteDir)
	case domain.RemoteBackendFirestore:
		store, err = firestore.NewStore(ctx, firestore.Config{
			ProjectID:       cfg.FirestoreProject,
			CredentialsFile: cfg.FirestoreCredentials,
			Collection:      cfg.FirestoreCollection,
		})
	default:
		return remoteStores{}, noop
	}
	if err != nil {
		logger.Warn("remote store %s unavailable, saving on this device only: %v", cfg.Backend, err)
		return remoteStores{}, noop
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Debug("closing remote store: %v", err)
		}
	}
	return remoteStores{reports: store.ReportStore(), users: store.UserStore()}, closeStore
}

package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"jobos-backend/internal/backup"
	"jobos-backend/internal/contacts"
	"jobos-backend/internal/jobs"
	"jobos-backend/internal/llm/openrouter"
	"jobos-backend/internal/profiles"
	"jobos-backend/internal/settings"
	"jobos-backend/internal/shared/config"
	"jobos-backend/internal/shared/server"
	"jobos-backend/internal/shared/storage/db"
	"jobos-backend/internal/studio"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	JobsService     *jobs.Service
	ProfilesService *profiles.Service
	ContactsService *contacts.Service
	SettingsService *settings.Service
	BackupService   *backup.Service
	StudioService   *studio.Service
}

// Build prepares shared dependencies and wires the router. With no
// DATABASE_URL everything runs on in-memory repositories, the zero-config
// local mode.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		JobsHandler:     jobs.NewHandler(app.JobsService),
		ProfilesHandler: profiles.NewHandler(app.ProfilesService),
		ContactsHandler: contacts.NewHandler(app.ContactsService),
		SettingsHandler: settings.NewHandler(app.SettingsService),
		BackupHandler:   backup.NewHandler(app.BackupService),
		StudioHandler:   studio.NewHandler(app.StudioService),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
		return nil, nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Env == "dev" || cfg.Env == "local" {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) error {
	var (
		jobRepo      jobs.Repo
		profileRepo  profiles.Repo
		contactRepo  contacts.Repo
		settingsRepo settings.Repo
	)
	if app.DB != nil {
		jobRepo = &jobs.PGRepo{DB: app.DB}
		profileRepo = &profiles.PGRepo{DB: app.DB}
		contactRepo = &contacts.PGRepo{DB: app.DB}
		settingsRepo = &settings.PGRepo{DB: app.DB}
	} else {
		jobRepo = jobs.NewMemoryRepo()
		profileRepo = profiles.NewMemoryRepo()
		contactRepo = contacts.NewMemoryRepo()
		settingsRepo = settings.NewMemoryRepo()
	}

	app.JobsService = jobs.NewService(jobRepo)
	app.ProfilesService = profiles.NewService(profileRepo)
	app.ContactsService = contacts.NewService(contactRepo)
	app.SettingsService = settings.NewService(settingsRepo)

	var wiper backup.Wiper
	if app.DB != nil {
		wiper = backup.NewPGWiper(app.DB)
	} else {
		wiper = backup.NewMemoryWiper(jobRepo, profileRepo, app.SettingsService)
	}
	app.BackupService = backup.NewService(app.JobsService, app.ProfilesService, app.SettingsService, wiper)

	llmClient, err := openrouter.NewClient(app.Config.OpenRouterURL, app.SettingsService)
	if err != nil {
		return err
	}
	app.StudioService = studio.NewService(llmClient, app.Config.LLMModel, app.JobsService, app.ProfilesService)
	return nil
}

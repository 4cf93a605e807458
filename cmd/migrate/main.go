package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/registry-pricing-service/internal/pkg/logging"
)

// target identifies the database migrations are applied to.
type target struct {
	projectID  string
	instanceID string
	databaseID string
	migrateDir string
}

func (t target) instanceName() string {
	return fmt.Sprintf("projects/%s/instances/%s", t.projectID, t.instanceID)
}

func (t target) databaseName() string {
	return fmt.Sprintf("%s/databases/%s", t.instanceName(), t.databaseID)
}

func main() {
	var t target
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Create the Spanner instance and database and apply schema migrations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Config{Level: "info", Format: "console", Output: "stderr"})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			// Check if using emulator
			if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
				logger.Info("using Spanner emulator", zap.String("host", emulatorHost))
			}

			if err := run(cmd.Context(), t, logger); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			logger.Info("migrations completed successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&t.projectID, "project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	cmd.Flags().StringVar(&t.instanceID, "instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	cmd.Flags().StringVar(&t.databaseID, "database", getEnvOrDefault("SPANNER_DATABASE_ID", "registry-pricing-db"), "Spanner database ID")
	cmd.Flags().StringVar(&t.migrateDir, "migrations", "migrations", "Directory containing migration SQL files")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, t target, logger *zap.Logger) error {
	if err := ensureInstance(ctx, t, logger); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := ensureDatabase(ctx, t, logger); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := applyMigrations(ctx, t, logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func ensureInstance(ctx context.Context, t target, logger *zap.Logger) error {
	logger.Info("ensuring instance exists", zap.String("instance", t.instanceID))

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: t.instanceName()})
	if err == nil {
		logger.Info("instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		logger.Warn("unexpected error checking instance", zap.Error(err))
		return nil
	}

	logger.Info("creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", t.projectID),
		InstanceId: t.instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", t.projectID),
			DisplayName: "Registry Pricing",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		logger.Info("instance already exists")
		return nil
	}

	// The emulator can complete immediately
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		logger.Warn("instance creation did not complete cleanly", zap.Error(err))
	}
	logger.Info("instance created")
	return nil
}

func ensureDatabase(ctx context.Context, t target, logger *zap.Logger) error {
	logger.Info("ensuring database exists", zap.String("database", t.databaseID))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: t.databaseName()})
	if err == nil {
		logger.Info("database already exists")
		return nil
	}

	if status.Code(err) == codes.NotFound {
		logger.Info("creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          t.instanceName(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", t.databaseID),
		})
		if err != nil {
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			logger.Info("database already exists")
			return nil
		}
		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}
		logger.Info("database created")
		return nil
	}

	// For other errors on emulator, just proceed - the DB might exist
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		logger.Warn("proceeding with database in emulator mode", zap.Error(err))
		return nil
	}
	return fmt.Errorf("failed to check database: %w", err)
}

func applyMigrations(ctx context.Context, t target, logger *zap.Logger) error {
	logger.Info("applying migrations", zap.String("dir", t.migrateDir))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(t.migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("no migration files found")
		return nil
	}

	for _, file := range files {
		migrationName := filepath.Base(file)
		logger.Info("applying migration", zap.String("file", migrationName))

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   t.databaseName(),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", migrationName, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", migrationName, err)
		}

		logger.Info("applied migration", zap.String("file", migrationName))
	}
	return nil
}

// splitDDLStatements drops comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

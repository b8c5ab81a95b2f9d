package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"item-matcher/core/config"
	"item-matcher/core/database"
	"item-matcher/core/logger"
	"item-matcher/feature/credential"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// apiKeysCmd is the parent command for credential management.
// It talks to the store directly, bypassing HTTP, for operator use.
var apiKeysCmd = &cobra.Command{
	Use:   "apikeys",
	Short: "Manage namespace API keys",
	Long: `Manage namespace-scoped API keys directly against the store.

Examples:
  # List all live keys
  item-matcher apikeys list

  # Create a key for a namespace
  item-matcher apikeys create --key secret123 --namespace team-a

  # Delete a key
  item-matcher apikeys delete --key secret123`,
}

var (
	apiKeyFlag       string
	apiNamespaceFlag string
)

func credentialService() (*credential.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	svc := credential.NewService(db, logg)
	if err := svc.Store().Migrate(); err != nil {
		return nil, nil, err
	}
	return svc, logg, nil
}

var apiKeysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all live API keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := credentialService()
		if err != nil {
			return err
		}

		creds, err := svc.List(context.Background())
		if err != nil {
			return err
		}

		if len(creds) == 0 {
			log.Println("No API keys found")
			return nil
		}
		for _, c := range creds {
			log.Printf("%s  namespace=%s  created=%s", c.ApiKey, c.Namespace, c.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var apiKeysCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an API key for a namespace",
	RunE: func(cmd *cobra.Command, args []string) error {
		if apiKeyFlag == "" || apiNamespaceFlag == "" {
			return fmt.Errorf("--key and --namespace are required")
		}

		svc, logg, err := credentialService()
		if err != nil {
			return err
		}

		err = svc.Create(context.Background(), apiKeyFlag, apiNamespaceFlag)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("API key already exists in namespace %s", apiNamespaceFlag)
		}
		if err != nil {
			return err
		}

		logg.Info("API key created", zap.String("namespace", apiNamespaceFlag))
		return nil
	},
}

var apiKeysDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if apiKeyFlag == "" {
			return fmt.Errorf("--key is required")
		}

		svc, logg, err := credentialService()
		if err != nil {
			return err
		}

		if err := svc.Delete(context.Background(), apiKeyFlag); err != nil {
			return err
		}

		logg.Info("API key deleted")
		return nil
	},
}

func init() {
	apiKeysCreateCmd.Flags().StringVar(&apiKeyFlag, "key", "", "API key value")
	apiKeysCreateCmd.Flags().StringVar(&apiNamespaceFlag, "namespace", "", "Namespace the key grants access to")
	apiKeysDeleteCmd.Flags().StringVar(&apiKeyFlag, "key", "", "API key value")

	apiKeysCmd.AddCommand(apiKeysListCmd)
	apiKeysCmd.AddCommand(apiKeysCreateCmd)
	apiKeysCmd.AddCommand(apiKeysDeleteCmd)
	RootCmd.AddCommand(apiKeysCmd)
}

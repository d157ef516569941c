package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/database"
)

// resetIndexCmd drops and recreates the vector index class. Destructive:
// every stored passage is lost.
var resetIndexCmd = &cobra.Command{
	Use:   "reset-index",
	Short: "Drop and recreate the vector index",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStore)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if err := weaviateDb.Clear(context.Background()); err != nil {
			log.Fatalf("Failed to reset index: %v", err)
		}
		log.Println("Vector index reset")
	},
}

func init() {
	rootCmd.AddCommand(resetIndexCmd)
	resetIndexCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}

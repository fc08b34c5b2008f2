package main

import (
	"context"
	"fmt"
	"os"

	"insights/database"
	"insights/internal/config"
)

// Provisionne la base configurée (schéma + jeu de démonstration) sans démarrer l'API.
// Idempotent: relancer la commande ne duplique aucune ligne.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Erreur configuration:", err)
		os.Exit(1)
	}
	log := cfg.NewLogger(os.Stderr)

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabaseOptions(log))
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	log.WithField("driver", cfg.Driver).Info("database connection established")

	if err := database.NewSchemaManager(db.Gorm, log).Provision(ctx); err != nil {
		log.WithError(err).Error("provisioning failed")
		db.Close()
		os.Exit(1)
	}

	fmt.Println("✅ Base prête")
	fmt.Println()
	fmt.Println("Démarrer l'API avec:")
	fmt.Println("  go run . serve")
	fmt.Println()
	fmt.Println("Et tester:")
	fmt.Println("  http://localhost" + cfg.HTTPAddr + "/api/report?start=2024-01-01&end=2024-02-28")
}

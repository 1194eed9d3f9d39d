// Command seed populates the backend catalog with a sample set of cupcake
// products through the public API. It authenticates with the admin account
// given in SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Vinicius-Leon/leons-cupcake/internal/api"
	"github.com/Vinicius-Leon/leons-cupcake/internal/app"
	"github.com/Vinicius-Leon/leons-cupcake/internal/config"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/logger"
)

var catalog = []api.ProductRequest{
	{Name: "Cupcake de Chocolate", Description: "Massa de cacau com cobertura de brigadeiro", Price: 8.50, Stock: 40},
	{Name: "Cupcake de Morango", Description: "Recheio de geleia de morango artesanal", Price: 9.00, Stock: 30},
	{Name: "Cupcake de Baunilha", Description: "Clássico com buttercream de baunilha", Price: 7.50, Stock: 50},
	{Name: "Cupcake Red Velvet", Description: "Cobertura de cream cheese", Price: 10.00, Stock: 25},
	{Name: "Cupcake de Limão", Description: "Curd de limão siciliano com merengue", Price: 9.50, Stock: 20},
	{Name: "Cupcake de Doce de Leite", Description: "Recheio e cobertura de doce de leite", Price: 9.00, Stock: 35},
	{Name: "Cupcake de Cenoura", Description: "Com calda de chocolate meio amargo", Price: 8.00, Stock: 30},
	{Name: "Cupcake de Coco", Description: "Massa de coco com beijinho", Price: 8.50, Stock: 25},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("seed", cfg.LogLevel)

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Error("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = application.Shutdown() }()

	ctx := context.Background()

	if _, err := application.API.Login(ctx, api.LoginRequest{Email: email, Password: password}); err != nil {
		log.Error("admin login failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	// Do not leave admin credentials in local storage after seeding.
	defer application.Session.Logout()

	created := 0
	for _, req := range catalog {
		product, err := application.API.CreateProduct(ctx, req)
		if err != nil {
			log.Error("failed to create product",
				slog.String("name", req.Name),
				slog.String("error", err.Error()),
			)
			continue
		}
		created++
		fmt.Printf("created %3d  %s (R$ %.2f)\n", product.ID, product.Name, product.Price)
	}

	log.Info("seed complete",
		slog.Int("created", created),
		slog.Int("total", len(catalog)),
	)
	if created < len(catalog) {
		os.Exit(1)
	}
}

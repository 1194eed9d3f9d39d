package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Vinicius-Leon/leons-cupcake/internal/api"
	"github.com/Vinicius-Leon/leons-cupcake/internal/app"
	"github.com/Vinicius-Leon/leons-cupcake/internal/config"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/logger"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger.
	log := logger.New("storefront", cfg.LogLevel)
	log.Info("starting storefront",
		slog.String("environment", cfg.Environment),
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	// Create the application with all dependencies wired.
	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = application.Shutdown() }()

	// Create a context that is canceled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repl(ctx, application)

	log.Info("storefront stopped")
}

// repl runs the interactive shell loop over the wired application.
func repl(ctx context.Context, a *app.App) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("storefront> ")
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			resp, err := a.API.Login(ctx, api.LoginRequest{Email: args[1], Password: args[2]})
			if err != nil {
				fmt.Println("Login failed:", err)
				continue
			}
			fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
		case "logout":
			a.Session.Logout()
			fmt.Println("Logged out")
		case "whoami":
			user, ok := a.Session.User()
			if !ok {
				fmt.Println("Not logged in")
				continue
			}
			fmt.Printf("%s <%s> role=%s logged_in=%v\n", user.Name, user.Email, user.Role, a.Session.IsLoggedIn())
		case "products":
			products, err := a.API.ListProducts(ctx)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			for _, p := range products {
				fmt.Printf("%3d  %-30s R$ %.2f  (stock %d)\n", p.ID, p.Name, p.Price, p.Stock)
			}
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <product-id> [quantity]")
				continue
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("Invalid product id")
				continue
			}
			qty := 1
			if len(args) > 2 {
				if qty, err = strconv.Atoi(args[2]); err != nil || qty < 1 {
					fmt.Println("Invalid quantity")
					continue
				}
			}
			product, err := a.API.GetProduct(ctx, id)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			a.Cart.AddItem(*product, qty)
			fmt.Printf("Added %dx %s\n", qty, product.Name)
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <product-id>")
				continue
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("Invalid product id")
				continue
			}
			a.Cart.RemoveItem(id)
		case "cart":
			if a.Cart.IsEmpty() {
				fmt.Println("Cart is empty")
				continue
			}
			for _, item := range a.Cart.Items() {
				fmt.Printf("%3d  %-30s %2d x R$ %.2f\n", item.ProductID, item.Name, item.Quantity, item.Price)
			}
			fmt.Printf("Total: R$ %.2f (%d items)\n", a.Cart.TotalValue(), a.Cart.TotalQuantity())
		case "clear":
			a.Cart.Clear()
			fmt.Println("Cart cleared")
		case "checkout":
			if len(args) < 3 {
				fmt.Println("Usage: checkout <address> <payment-method>")
				continue
			}
			user, ok := a.Session.User()
			if !ok {
				fmt.Println("Log in before checking out")
				continue
			}
			address := strings.Join(args[1:len(args)-1], " ")
			method := args[len(args)-1]
			order, err := a.API.PlaceOrder(ctx, api.NewOrderRequest(user.ID, a.Cart.OrderPayload(), address, method))
			if err != nil {
				fmt.Println("Checkout failed:", err)
				continue
			}
			a.Cart.Clear()
			fmt.Printf("Order %s placed (R$ %.2f)\n", order.Number, order.TotalValue)
		case "orders":
			orders, err := a.API.ListMyOrders(ctx)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			for _, o := range orders {
				fmt.Printf("%s  %-12s R$ %.2f  %s\n", o.PlacedAt, o.Status, o.TotalValue, o.Number)
			}
		case "status":
			report := a.Health.Run(ctx)
			fmt.Println("Overall:", report.Status)
			for name, check := range report.Checks {
				if check.Error != "" {
					fmt.Printf("  %-10s %s (%s)\n", name, check.Status, check.Error)
				} else {
					fmt.Printf("  %-10s %s\n", name, check.Status)
				}
			}
		case "exit", "quit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list.")
		}
	}
}

func printHelp() {
	fmt.Println(`Available commands:
  login <email> <password>       authenticate against the backend
  logout                         clear the session and cart
  whoami                         show the cached user and login state
  products                       list the catalog
  add <id> [qty]                 add a product to the cart
  remove <id>                    remove a product from the cart
  cart                           show cart contents and totals
  clear                          empty the cart
  checkout <address> <method>    place an order from the cart
  orders                         list your orders
  status                         check backend and storage health
  exit                           quit`)
}

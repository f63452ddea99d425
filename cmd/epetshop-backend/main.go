package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/api/handlers"
	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/config"
	"github.com/R-Agile/epetshop-backend/internal/health"
	"github.com/R-Agile/epetshop-backend/internal/metrics"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/telemetry"
	"github.com/R-Agile/epetshop-backend/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Init(context.Background(), &cfg.OTel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(ctx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	resetTokenRepo := repository.NewResetTokenRepo(redisClient, cfg)

	emailService := sendgrid.NewEmailService(&cfg.SendGrid)
	authorizer := authz.New()

	userService := service.NewUserService(repos.User, rateLimitRepo, resetTokenRepo, emailService, authorizer, cfg)
	userHandler := handlers.NewUserHandler(userService)
	categoryService := service.NewCategoryService(repos.Category, authorizer)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productService := service.NewProductService(repos.Product, repos.Category, authorizer)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.Product, authorizer)
	orderHandler := handlers.NewOrderHandler(orderService)
	wishlistService := service.NewWishlistService(repos.Wishlist, repos.Product)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	petService := service.NewPetService(repos.Pet, authorizer)
	petHandler := handlers.NewPetHandler(petService)
	adminService := service.NewAdminService(repos.Stats, authorizer)
	adminHandler := handlers.NewAdminHandler(adminService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Users & auth
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/users/forgot-password", userHandler.ForgotPassword())
	routerMux.HandleFunc("POST /api/v1/users/reset-password", userHandler.ResetPassword())
	routerMux.HandleFunc("GET /api/v1/users/me", authMiddleware.Authenticate(userHandler.Me()))
	routerMux.HandleFunc("POST /api/v1/users/change-password", authMiddleware.Authenticate(userHandler.ChangePassword()))
	routerMux.HandleFunc("GET /api/v1/users", authMiddleware.Authenticate(userHandler.ListUsers()))
	routerMux.HandleFunc("PUT /api/v1/users/{id}", authMiddleware.Authenticate(userHandler.UpdateUser()))
	routerMux.HandleFunc("DELETE /api/v1/users/{id}", authMiddleware.Authenticate(userHandler.DeleteUser()))

	// Catalog
	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("POST /api/v1/categories", authMiddleware.Authenticate(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", authMiddleware.Authenticate(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", authMiddleware.Authenticate(categoryHandler.DeleteCategory()))
	routerMux.HandleFunc("GET /api/v1/subcategories", categoryHandler.ListSubcategories())
	routerMux.HandleFunc("POST /api/v1/subcategories", authMiddleware.Authenticate(categoryHandler.CreateSubcategory()))
	routerMux.HandleFunc("PUT /api/v1/subcategories/{id}", authMiddleware.Authenticate(categoryHandler.UpdateSubcategory()))
	routerMux.HandleFunc("DELETE /api/v1/subcategories/{id}", authMiddleware.Authenticate(categoryHandler.DeleteSubcategory()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))

	// Cart
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("GET /api/v1/guest-cart/{guestID}", cartHandler.GetGuestCart())
	routerMux.HandleFunc("POST /api/v1/guest-cart/{guestID}", cartHandler.SyncGuestCart())
	routerMux.HandleFunc("DELETE /api/v1/guest-cart/{guestID}", cartHandler.ClearGuestCart())

	// Orders
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListMyOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/all", authMiddleware.Authenticate(orderHandler.ListAllOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}/items", authMiddleware.Authenticate(orderHandler.ListOrderItems()))
	routerMux.HandleFunc("PUT /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.UpdateOrder()))
	routerMux.HandleFunc("DELETE /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.DeleteOrder()))

	// Wishlist
	routerMux.HandleFunc("GET /api/v1/wishlist", authMiddleware.Authenticate(wishlistHandler.ListMine()))
	routerMux.HandleFunc("POST /api/v1/wishlist", authMiddleware.Authenticate(wishlistHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/v1/wishlist/{id}", authMiddleware.Authenticate(wishlistHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/wishlist/product/{productID}", authMiddleware.Authenticate(wishlistHandler.RemoveByProduct()))

	// Pets
	routerMux.HandleFunc("GET /api/v1/pets", petHandler.ListPets())
	routerMux.HandleFunc("POST /api/v1/pets", authMiddleware.Authenticate(petHandler.CreatePet()))
	routerMux.HandleFunc("PUT /api/v1/pets/{id}", authMiddleware.Authenticate(petHandler.UpdatePet()))
	routerMux.HandleFunc("DELETE /api/v1/pets/{id}", authMiddleware.Authenticate(petHandler.DeletePet()))
	routerMux.HandleFunc("GET /api/v1/my-pets", authMiddleware.Authenticate(petHandler.ListMyProfiles()))
	routerMux.HandleFunc("POST /api/v1/my-pets", authMiddleware.Authenticate(petHandler.CreateProfile()))
	routerMux.HandleFunc("PUT /api/v1/my-pets/{id}", authMiddleware.Authenticate(petHandler.UpdateProfile()))
	routerMux.HandleFunc("DELETE /api/v1/my-pets/{id}", authMiddleware.Authenticate(petHandler.DeleteProfile()))

	// Admin dashboard
	routerMux.HandleFunc("GET /api/v1/admin/dashboard", authMiddleware.Authenticate(adminHandler.Dashboard()))
	routerMux.HandleFunc("GET /api/v1/admin/dashboard/orders", authMiddleware.Authenticate(adminHandler.OrderStats()))
	routerMux.HandleFunc("GET /api/v1/admin/dashboard/users", authMiddleware.Authenticate(adminHandler.UserStats()))

	// Operational endpoints
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = otelhttp.NewHandler(handler, "http.server")
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}

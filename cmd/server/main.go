package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/akorbut/storefront/internal/app"
	"github.com/akorbut/storefront/internal/app/handlers"
	"github.com/akorbut/storefront/internal/config"
	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/lib/logger"
	"github.com/akorbut/storefront/internal/lib/logger/handlers/urllog"
	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/akorbut/storefront/internal/token/tokenmiddleware"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	application, err := app.NewApp(context.Background(), log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	userRepo := storage.NewUserRepository(application.DB)
	vendorRepo := storage.NewVendorRepository(application.DB)
	categoryRepo := storage.NewCategoryRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	addressRepo := storage.NewAddressRepository(application.DB)
	cardRepo := storage.NewCardRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	itemRepo := storage.NewOrderItemRepository(application.DB)
	uploadRepo := storage.NewUploadRepository(application.DB)
	errLogRepo := storage.NewErrorLogRepository(application.DB)

	authService := service.NewAuthService(application.Logger, userRepo, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	userService := service.NewUserService(application.Logger, userRepo)
	vendorService := service.NewVendorService(application.Logger, vendorRepo)
	categoryService := service.NewCategoryService(application.Logger, categoryRepo)
	productService := service.NewProductService(application.Logger, productRepo, vendorRepo, categoryRepo, application.Cache)
	addressService := service.NewAddressService(application.Logger, addressRepo)
	cardService := service.NewCardService(application.Logger, cardRepo)
	orderService := service.NewOrderService(application.Logger, application.DB,
		orderRepo, itemRepo, productRepo, addressRepo, cardRepo, errLogRepo, application.Cache)
	uploadService := service.NewUploadService(application.Logger, uploadRepo, application.Store)

	router.Post("/api/auth/signup", handlers.SignupHandler(application.Logger, authService))
	router.Post("/api/auth/signin", handlers.SigninHandler(application.Logger, authService))

	router.Group(func(r chi.Router) {
		r.Use(tokenmiddleware.NewTokenMiddleware())

		r.Get("/api/auth/user", handlers.CurrentUserHandler(application.Logger, authService))
		r.Put("/api/auth/changePassword", handlers.ChangePasswordHandler(application.Logger, authService))

		r.Get("/api/users", handlers.ListUsersHandler(application.Logger, userService))
		r.Get("/api/users/{id}", handlers.GetUserHandler(application.Logger, userService))
		// user administration is rejected even for admins
		r.With(tokenmiddleware.RequireRoles(models.RoleAdmin)).Post("/api/users", handlers.ForbiddenHandler(application.Logger))
		r.With(tokenmiddleware.RequireRoles(models.RoleAdmin)).Put("/api/users/{id}", handlers.ForbiddenHandler(application.Logger))
		r.With(tokenmiddleware.RequireRoles(models.RoleAdmin)).Delete("/api/users/{id}", handlers.ForbiddenHandler(application.Logger))

		r.Get("/api/vendors", handlers.ListVendorsHandler(application.Logger, vendorService))
		r.Get("/api/vendors/{id}", handlers.GetVendorHandler(application.Logger, vendorService))
		r.Group(func(r chi.Router) {
			r.Use(tokenmiddleware.RequireRoles(models.RoleAdmin, models.RoleMerchandiser))
			r.Post("/api/vendors", handlers.CreateVendorHandler(application.Logger, vendorService))
			r.Put("/api/vendors/{id}", handlers.UpdateVendorHandler(application.Logger, vendorService))
			r.Delete("/api/vendors/{id}", handlers.DeleteVendorHandler(application.Logger, vendorService))
		})

		r.Get("/api/product-categories", handlers.ListCategoriesHandler(application.Logger, categoryService))
		r.Get("/api/product-categories/{id}", handlers.GetCategoryHandler(application.Logger, categoryService))
		r.Group(func(r chi.Router) {
			r.Use(tokenmiddleware.RequireRoles(models.RoleAdmin))
			r.Post("/api/product-categories", handlers.CreateCategoryHandler(application.Logger, categoryService))
			r.Put("/api/product-categories/{id}", handlers.UpdateCategoryHandler(application.Logger, categoryService))
			r.Delete("/api/product-categories/{id}", handlers.DeleteCategoryHandler(application.Logger, categoryService))
		})

		r.Get("/api/products", handlers.ListProductsHandler(application.Logger, productService))
		r.Get("/api/products/{id}", handlers.GetProductHandler(application.Logger, productService))
		r.Group(func(r chi.Router) {
			r.Use(tokenmiddleware.RequireRoles(models.RoleMerchandiser))
			r.Post("/api/products", handlers.CreateProductHandler(application.Logger, productService))
			r.Put("/api/products/{id}", handlers.UpdateProductHandler(application.Logger, productService))
			r.Delete("/api/products/{id}", handlers.DeleteProductHandler(application.Logger, productService))
		})

		r.Get("/api/addresses", handlers.ListAddressesHandler(application.Logger, addressService))
		r.Get("/api/addresses/{id}", handlers.GetAddressHandler(application.Logger, addressService))
		r.Post("/api/addresses", handlers.CreateAddressHandler(application.Logger, addressService))
		r.Put("/api/addresses/{id}", handlers.UpdateAddressHandler(application.Logger, addressService))
		r.Delete("/api/addresses/{id}", handlers.DeleteAddressHandler(application.Logger, addressService))

		r.Get("/api/cards", handlers.ListCardsHandler(application.Logger, cardService))
		r.Get("/api/cards/{id}", handlers.GetCardHandler(application.Logger, cardService))
		r.Post("/api/cards", handlers.CreateCardHandler(application.Logger, cardService))
		r.Put("/api/cards/{id}", handlers.UpdateCardHandler(application.Logger, cardService))
		r.Delete("/api/cards/{id}", handlers.DeleteCardHandler(application.Logger, cardService))

		r.Get("/api/orders", handlers.ListOrdersHandler(application.Logger, orderService))
		r.Get("/api/orders/{id}", handlers.GetOrderHandler(application.Logger, orderService))
		r.Post("/api/orders", handlers.CreateOrderHandler(application.Logger, orderService))
		r.Put("/api/orders/{id}", handlers.UpdateOrderHandler(application.Logger, orderService))
		r.Delete("/api/orders/{id}", handlers.DeleteOrderHandler(application.Logger, orderService))

		r.Post("/api/uploads", handlers.CreateUploadHandler(application.Logger, uploadService))
		r.Get("/api/uploads/{id}", handlers.GetUploadHandler(application.Logger, uploadService))
		r.Get("/api/uploads/{id}/download", handlers.DownloadUploadHandler(application.Logger, uploadService))
		r.Delete("/api/uploads/{id}", handlers.DeleteUploadHandler(application.Logger, uploadService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}

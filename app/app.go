package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"fashionfusion-storefront/app/controller"
	"fashionfusion-storefront/app/router"
	"fashionfusion-storefront/config"
	"fashionfusion-storefront/db"
	"fashionfusion-storefront/events"
	"fashionfusion-storefront/metrics"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/pricing"
	"fashionfusion-storefront/repository"
	"fashionfusion-storefront/service"
)

// Initialize initializes the application and returns its HTTP handler.
// The returned cleanup closes the store and the event publisher.
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	// Initialize store connection
	store, err := db.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	publisher, err := events.FromConfig(cfg.Events)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to initialize order events: %w", err)
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Printf("⚠️  Error closing event publisher: %v", err)
		}
		if err := store.Close(); err != nil {
			log.Printf("⚠️  Error closing store: %v", err)
		}
	}

	handler, err := build(ctx, cfg, store, publisher)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return handler, cleanup, nil
}

func build(ctx context.Context, cfg *config.Config, store db.Store, publisher events.Publisher) (http.Handler, error) {
	promos := pricing.DefaultPromoCatalog()
	if cfg.PromoConfigPath != "" {
		loaded, err := pricing.LoadPromoCatalog(cfg.PromoConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load promo codes: %w", err)
		}
		promos = loaded
	}

	seed, err := seedProducts(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	products, err := repository.LoadCatalogRepository(ctx, store, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Initialize repositories
	carts := repository.NewCartRepository(store)
	orders := repository.NewOrderRepository(store)
	users := repository.NewUserRepository(store)
	addresses := repository.NewAddressRepository(store)
	wishlist := repository.NewWishlistRepository(store)
	contacts := repository.NewContactRepository(store)

	// Initialize services
	registry := metrics.NewRegistry()
	engine := pricing.NewEngine(promos)
	locks := service.NewSessionLocks()

	catalogService := service.NewCatalogService(products, registry, cfg.Catalog.PageSize)
	cartService := service.NewCartService(carts, products, engine, locks, registry)
	checkoutService := service.NewCheckoutService(carts, orders, users, products, engine, locks, publisher, registry)
	authService := service.NewAuthService(users, cfg.LoginAttemptsPerMinute, registry)
	profileService := service.NewProfileService(authService, users, orders, addresses, wishlist)
	orderService := service.NewOrderService(users, orders, products, cartService, publisher, registry)
	addressService := service.NewAddressService(users, addresses)
	wishlistService := service.NewWishlistService(users, wishlist, products)
	contactService := service.NewContactService(contacts)
	lookbookService := service.NewLookbookService(
		catalogService,
		service.NewImageOptimizer(cfg.ImageCacheDir, nil),
		cfg.BaseURL,
		cfg.ChromePath,
	)

	// Create controllers
	controllers := &router.Controllers{
		Product:  controller.NewProductController(catalogService),
		Cart:     controller.NewCartController(cartService),
		Checkout: controller.NewCheckoutController(checkoutService),
		Auth:     controller.NewAuthController(authService),
		Profile:  controller.NewProfileController(profileService, orderService, addressService, wishlistService),
		Lookbook: controller.NewLookbookController(lookbookService),
		Contact:  controller.NewContactController(contactService),
	}

	// Setup routes using standard http router
	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers, registry.Handler())
	return mux, nil
}

// seedProducts returns the products used when the store has no catalog yet
func seedProducts(cfg config.CatalogConfig) ([]models.Product, error) {
	if cfg.ProductsFile != "" {
		products, err := service.LoadProductsFile(cfg.ProductsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		return products, nil
	}
	log.Printf("🔍 Generating %d sample products (seed %d)", cfg.Size, cfg.Seed)
	return service.GenerateSampleCatalog(cfg.Seed, cfg.Size), nil
}

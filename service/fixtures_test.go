package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fashionfusion-storefront/db"
	"fashionfusion-storefront/events"
	"fashionfusion-storefront/metrics"
	"fashionfusion-storefront/models"
	"fashionfusion-storefront/pricing"
	"fashionfusion-storefront/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testProducts() []models.Product {
	was := d("99.99")
	return []models.Product{
		{ID: 1, Name: "Classic White T-Shirt", Price: d("29.99"), Category: models.CategoryMen, Brand: "FashionFusion",
			Sizes: []string{"S", "M"}, Colors: []string{"white"}, Rating: 4.5, InStock: true},
		{ID: 2, Name: "Denim Jacket", Price: d("79.99"), OriginalPrice: &was, Category: models.CategoryMen, Brand: "UrbanThreads",
			Sizes: []string{"M", "L"}, Colors: []string{"blue"}, Rating: 4.8, Badge: "Sale", InStock: true},
		{ID: 3, Name: "Summer Dress", Price: d("49.99"), Category: models.CategoryWomen, Brand: "StyleCraft",
			Sizes: []string{"S"}, Colors: []string{"red"}, Rating: 4.2, InStock: true},
		{ID: 5, Name: "Straw Hat", Price: d("15.00"), Category: models.CategoryAccessories, Brand: "EliteWear",
			Sizes: []string{"M"}, Colors: []string{"yellow"}, Rating: 5.0, InStock: false},
		{ID: 9, Name: "Socks", Price: d("10.00"), Category: models.CategoryAccessories, Brand: "EliteWear",
			Sizes: []string{"S", "M", "L"}, Colors: []string{"black"}, Rating: 4.0, InStock: true},
	}
}

// recordingPublisher keeps published events and fails with err when set
type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, ev events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.OrderEvent(nil), p.events...)
}

type testEnv struct {
	store     *db.MemoryStore
	metrics   *metrics.Registry
	publisher *recordingPublisher

	carts     *repository.CartRepository
	orderRepo *repository.OrderRepository
	users     *repository.UserRepository
	addrRepo  *repository.AddressRepository
	wishRepo  *repository.WishlistRepository
	products  *repository.CatalogRepository

	cart      *CartService
	checkout  *CheckoutService
	auth      *AuthService
	profile   *ProfileService
	addresses *AddressService
	wishlist  *WishlistService
	orders    *OrderService
	catalog   *CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     db.NewMemoryStore(),
		metrics:   metrics.NewRegistry(),
		publisher: &recordingPublisher{},
	}
	env.carts = repository.NewCartRepository(env.store)
	env.orderRepo = repository.NewOrderRepository(env.store)
	env.users = repository.NewUserRepository(env.store)
	env.addrRepo = repository.NewAddressRepository(env.store)
	env.wishRepo = repository.NewWishlistRepository(env.store)
	env.products = repository.NewCatalogRepository(testProducts())

	engine := pricing.NewEngine(nil)
	locks := NewSessionLocks()

	env.cart = NewCartService(env.carts, env.products, engine, locks, env.metrics)
	env.checkout = NewCheckoutService(env.carts, env.orderRepo, env.users, env.products, engine, locks, env.publisher, env.metrics)
	env.auth = NewAuthService(env.users, 100, env.metrics)
	env.auth.hashCost = bcrypt.MinCost
	env.profile = NewProfileService(env.auth, env.users, env.orderRepo, env.addrRepo, env.wishRepo)
	env.addresses = NewAddressService(env.users, env.addrRepo)
	env.wishlist = NewWishlistService(env.users, env.wishRepo, env.products)
	env.orders = NewOrderService(env.users, env.orderRepo, env.products, env.cart, env.publisher, env.metrics)
	env.catalog = NewCatalogService(env.products, env.metrics, 0)
	return env
}

const testPassword = "Secret123"

func registerRequest(email string) models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
		AcceptTerms:     true,
	}
}

// login registers jane@example.com on sessionID
func (env *testEnv) login(t *testing.T, sessionID string) *models.SessionUser {
	t.Helper()
	user, err := env.auth.Register(context.Background(), sessionID, registerRequest("jane@example.com"))
	require.NoError(t, err)
	return user
}

func repositoryFor(products []models.Product) *repository.CatalogRepository {
	return repository.NewCatalogRepository(products)
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionfusion-storefront/models"
)

func TestCatalogService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	page := env.catalog.List(ctx, models.ProductQuery{
		Criteria: models.FilterCriteria{Categories: []models.Category{models.CategoryMen, models.CategoryAccessories}},
		Sort:     "price-low",
		PageSize: 2,
		Page:     2,
	})

	assert.Equal(t, 4, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Items[0].ID)
	assert.Equal(t, 2, page.Items[1].ID)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.CatalogQueries))
}

func TestCatalogService_ListUsesDefaultPageSize(t *testing.T) {
	env := newTestEnv(t)
	env.catalog = NewCatalogService(env.products, env.metrics, 3)

	page := env.catalog.List(context.Background(), models.ProductQuery{})
	assert.Equal(t, 3, page.PageSize)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 2, page.TotalPages)
}

func TestCatalogService_GetProduct(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.catalog.GetProduct(3)
	require.NoError(t, err)
	assert.Equal(t, "Summer Dress", p.Name)

	_, err = env.catalog.GetProduct(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateSampleCatalog(t *testing.T) {
	a := GenerateSampleCatalog(42, 50)
	b := GenerateSampleCatalog(42, 50)
	require.Len(t, a, 50)
	assert.Equal(t, a, b, "same seed, same catalog")
	assert.NotEqual(t, a, GenerateSampleCatalog(7, 50))

	for i, p := range a {
		assert.Equal(t, i+1, p.ID)
		assert.True(t, p.Category.IsValid())
		assert.NotEmpty(t, p.Image)
		assert.GreaterOrEqual(t, len(p.Sizes), 1)
		assert.LessOrEqual(t, len(p.Sizes), 3)
		assert.GreaterOrEqual(t, len(p.Colors), 1)
		assert.LessOrEqual(t, len(p.Colors), 3)
		assert.GreaterOrEqual(t, p.Rating, 4.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.Less(t, p.Reviews, 100)

		if p.OriginalPrice != nil {
			assert.True(t, p.Price.LessThan(*p.OriginalPrice), "markdown lowers the price of %d", p.ID)
			assert.True(t, p.OriginalPrice.GreaterThanOrEqual(d("20")))
			assert.True(t, p.OriginalPrice.LessThanOrEqual(d("219")))
		} else {
			assert.True(t, p.Price.GreaterThanOrEqual(d("20")))
			assert.True(t, p.Price.LessThanOrEqual(d("219")))
		}
	}
}

func TestLoadProductsFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(good, []byte(`[
		{"id": 1, "name": "Linen Shirt", "price": "45.50", "category": "men", "sizes": ["M"], "colors": ["white"], "inStock": true},
		{"id": 2, "name": "Tote Bag", "price": 19.99, "originalPrice": "24.99", "category": "accessories", "inStock": false}
	]`), 0644))

	products, err := LoadProductsFile(good)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].Price.Equal(d("45.50")))
	require.NotNil(t, products[1].OriginalPrice)
	assert.True(t, products[1].OriginalPrice.Equal(d("24.99")))

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`[{"id": 1, "category": "men", "price": "1"}, {"id": 1, "category": "men", "price": "2"}]`), 0644))
	_, err = LoadProductsFile(dup)
	assert.ErrorContains(t, err, "duplicate product id 1")

	badCategory := filepath.Join(dir, "category.json")
	require.NoError(t, os.WriteFile(badCategory, []byte(`[{"id": 1, "category": "pets", "price": "1"}]`), 0644))
	_, err = LoadProductsFile(badCategory)
	assert.ErrorContains(t, err, "unknown category")

	_, err = LoadProductsFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeImage(t *testing.T) {
	raw := testPNG(t, 900, 600)

	thumb, err := OptimizeImage(raw, ImageSizeThumb)
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)

	small := testPNG(t, 120, 80)
	medium, err := OptimizeImage(small, ImageSizeMedium)
	require.NoError(t, err)
	cfg, _, err = image.DecodeConfig(bytes.NewReader(medium))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)

	_, err = OptimizeImage([]byte("not an image"), ImageSizeThumb)
	assert.Error(t, err)
}

func TestImageOptimizer_CachesThumbnails(t *testing.T) {
	raw := testPNG(t, 400, 400)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	opt := NewImageOptimizer(t.TempDir(), srv.Client())
	ctx := context.Background()

	first, err := opt.Thumbnail(ctx, 7, srv.URL+"/shirt.png", ImageSizeThumb)
	require.NoError(t, err)
	second, err := opt.Thumbnail(ctx, 7, srv.URL+"/shirt.png", ImageSizeThumb)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
	assert.FileExists(t, opt.CachePath(7, ImageSizeThumb))

	_, err = opt.Thumbnail(ctx, 8, srv.URL+"/missing.png", ImageSizeThumb)
	assert.ErrorContains(t, err, "status 404")
}

func newTestLookbook(t *testing.T, env *testEnv, client *http.Client) *LookbookService {
	t.Helper()
	lb := NewLookbookService(env.catalog, NewImageOptimizer(t.TempDir(), client), "http://localhost:8080/", "")
	lb.now = func() time.Time { return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) }
	return lb
}

func TestLookbookService_Items(t *testing.T) {
	env := newTestEnv(t)
	lb := newTestLookbook(t, env, nil)

	items := lb.Items(models.ProductQuery{
		Criteria: models.FilterCriteria{Categories: []models.Category{models.CategoryMen}},
		Sort:     "price-high",
	})
	require.Len(t, items, 2)
	assert.Equal(t, "Denim Jacket", items[0].Name)
	assert.Equal(t, "$79.99", items[0].Price)
	assert.Equal(t, "$99.99", items[0].WasPrice)
	assert.Equal(t, "Men", items[0].Category)
	assert.Equal(t, "M, L", items[0].Sizes)
	assert.Empty(t, items[1].WasPrice)
}

func TestLookbookService_RenderHTML(t *testing.T) {
	env := newTestEnv(t)
	lb := newTestLookbook(t, env, nil)
	ctx := context.Background()

	html, err := lb.RenderHTML(ctx, models.ProductQuery{Sort: "name"}, false)
	require.NoError(t, err)
	assert.Contains(t, html, "LOOKBOOK")
	assert.Contains(t, html, "All products")
	assert.Contains(t, html, "May 4, 2026")
	assert.Contains(t, html, "page 1 of 1")
	assert.Contains(t, html, "Classic White T-Shirt")
	assert.Less(t, strings.Index(html, "Classic White T-Shirt"), strings.Index(html, "Summer Dress"))

	maxPrice := d("20")
	html, err = lb.RenderHTML(ctx, models.ProductQuery{Criteria: models.FilterCriteria{Colors: []string{"purple"}, MaxPrice: &maxPrice}}, false)
	require.NoError(t, err)
	assert.Contains(t, html, "No products match these filters.")
}

func TestLookbookService_RenderHTMLEmbedsThumbnails(t *testing.T) {
	raw := testPNG(t, 64, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	env := newTestEnv(t)
	products := testProducts()
	for i := range products {
		products[i].Image = fmt.Sprintf("%s/product-%d.png", srv.URL, products[i].ID)
	}
	env.products = repositoryFor(products)
	env.catalog = NewCatalogService(env.products, env.metrics, 0)
	lb := newTestLookbook(t, env, srv.Client())

	html, err := lb.RenderHTML(context.Background(), models.ProductQuery{}, true)
	require.NoError(t, err)
	assert.Equal(t, len(products), strings.Count(html, "data:image/jpeg;base64,"))
}

func TestLookbookService_RenderURL(t *testing.T) {
	env := newTestEnv(t)
	lb := newTestLookbook(t, env, nil)

	assert.Equal(t, "http://localhost:8080/shop/lookbook/render", lb.RenderURL(""))
	assert.Equal(t, "http://localhost:8080/shop/lookbook/render?category=men&sort=price-low", lb.RenderURL("category=men&sort=price-low"))
}

func TestLookbookTitle(t *testing.T) {
	maxPrice := d("100")
	title := lookbookTitle(models.FilterCriteria{
		Categories: []models.Category{models.CategoryWomen},
		Sizes:      []string{"S", "M"},
		MaxPrice:   &maxPrice,
	})
	assert.Equal(t, "Women · Sizes S/M · Under $100.00", title)
	assert.Equal(t, "All products", lookbookTitle(models.FilterCriteria{}))
}

package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/shopspring/decimal"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/utils"
)

var (
	sampleSizes  = []string{"S", "M", "L", "XL"}
	sampleColors = []string{"black", "white", "blue", "red", "green", "yellow"}
	sampleBrands = []string{"FashionFusion", "StyleCraft", "UrbanThreads", "EliteWear"}
	sampleBadges = []string{"Bestseller", "New", "Sale", "Popular", "Limited"}

	sampleTypes = map[models.Category][]string{
		models.CategoryMen:         {"T-Shirt", "Shirt", "Jeans", "Jacket", "Shorts"},
		models.CategoryWomen:       {"Dress", "Blouse", "Skirt", "Jacket", "Pants"},
		models.CategoryKids:        {"T-Shirt", "Dress", "Shorts", "Sweater", "Pants"},
		models.CategoryAccessories: {"Hat", "Bag", "Belt", "Scarf", "Watch"},
	}

	sampleImages = map[models.Category][]string{
		models.CategoryMen: {
			"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=800&q=80",
			"https://images.unsplash.com/photo-1551028719-00167b16eac5?auto=format&fit=crop&w=800&q=80",
		},
		models.CategoryWomen: {
			"https://images.unsplash.com/photo-1595777457583-95e059d581b8?auto=format&fit=crop&w=800&q=80",
			"https://images.unsplash.com/photo-1485231183945-fffde7cb34f0?auto=format&fit=crop&w=800&q=80",
		},
		models.CategoryKids: {
			"https://images.unsplash.com/photo-1519457431-44ccd64a579b?auto=format&fit=crop&w=800&q=80",
		},
		models.CategoryAccessories: {
			"https://images.unsplash.com/photo-1549298916-b41d501d3772?auto=format&fit=crop&w=800&q=80",
		},
	}
)

// GenerateSampleCatalog builds count mock products. The same seed always yields the same catalog.
func GenerateSampleCatalog(seed int64, count int) []models.Product {
	rng := rand.New(rand.NewSource(seed))
	products := make([]models.Product, 0, count)

	for i := 0; i < count; i++ {
		category := models.Categories[rng.Intn(len(models.Categories))]
		types := sampleTypes[category]
		images := sampleImages[category]

		price := decimal.NewFromInt(int64(rng.Intn(200) + 20))
		product := models.Product{
			ID:       i + 1,
			Name:     fmt.Sprintf("%s %s %d", utils.CapitalizeWords(string(category)), types[rng.Intn(len(types))], i+1),
			Price:    price,
			Category: category,
			Brand:    sampleBrands[rng.Intn(len(sampleBrands))],
			Sizes:    pickSome(rng, sampleSizes),
			Colors:   pickSome(rng, sampleColors),
			Image:    images[i%len(images)],
			Rating:   math.Round((4+rng.Float64())*10) / 10,
			Reviews:  rng.Intn(100),
			InStock:  rng.Float64() > 0.1,
		}
		if rng.Float64() > 0.7 {
			original := price
			product.OriginalPrice = &original
			product.Price = utils.RoundCents(price.Mul(decimal.NewFromFloat(0.8)))
		}
		if rng.Float64() > 0.5 {
			product.Badge = sampleBadges[rng.Intn(len(sampleBadges))]
		}

		products = append(products, product)
	}

	return products
}

// pickSome returns between one and three distinct values from options in random order
func pickSome(rng *rand.Rand, options []string) []string {
	n := rng.Intn(3) + 1
	picked := make([]string, 0, n)
	for _, idx := range rng.Perm(len(options))[:n] {
		picked = append(picked, options[idx])
	}
	return picked
}

// LoadProductsFile reads a JSON array of products
func LoadProductsFile(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse products file %s: %w", path, err)
	}

	seen := make(map[int]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %d in %s", p.ID, path)
		}
		seen[p.ID] = true
		if !p.Category.IsValid() {
			return nil, fmt.Errorf("product %d has unknown category %q", p.ID, p.Category)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d has a negative price", p.ID)
		}
	}

	log.Printf("✅ LoadProductsFile: %d products read from %s", len(products), path)
	return products, nil
}

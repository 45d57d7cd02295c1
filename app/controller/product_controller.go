package controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"fashionfusion-storefront/service"
)

// ProductController handles HTTP requests for the shop catalog
type ProductController struct {
	catalog *service.CatalogService
}

// NewProductController creates a new ProductController
func NewProductController(catalog *service.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// ListProducts handles GET /products?category=men,women&size=M&color=blue&maxPrice=60&sort=price-low&page=1&pageSize=12
// Example response:
//
//	{
//	  "items": [{"id": 3, "name": "Summer Dress", "price": "49.99", ...}],
//	  "page": 1,
//	  "pageSize": 12,
//	  "totalItems": 1,
//	  "totalPages": 1,
//	  "hasPrev": false,
//	  "hasNext": false
//	}
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListProducts: Received %s request to %s", r.Method, r.URL.String())

	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "ListProducts")
		return
	}

	query, err := parseProductQuery(r)
	if err != nil {
		badRequest(w, "ListProducts", err.Error())
		return
	}

	page := c.catalog.List(r.Context(), query)
	writeJSON(w, http.StatusOK, page)
}

// GetProduct handles GET /products/{id}
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetProduct: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "GetProduct")
		return
	}

	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/products/"), "/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		badRequest(w, "GetProduct", "invalid product id parameter")
		return
	}

	product, err := c.catalog.GetProduct(id)
	if err != nil {
		writeError(w, "GetProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

package service

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fashionfusion-storefront/models"
	"fashionfusion-storefront/utils"
)

const (
	lookbookItemsPerPage  = 9
	lookbookMaxItems      = 90
	lookbookFetchParallel = 4
	lookbookRenderPath    = "/shop/lookbook/render"
)

//go:embed templates/lookbook.html
var lookbookTemplateSource string

var lookbookTemplate = template.Must(template.New("lookbook").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(lookbookTemplateSource))

// LookbookService renders the filtered shop listing as a printable lookbook
type LookbookService struct {
	catalog    *CatalogService
	images     *ImageOptimizer
	baseURL    string // Base URL headless Chrome navigates to (e.g., "http://localhost:8080")
	chromePath string
	now        func() time.Time
}

// NewLookbookService creates a new LookbookService
func NewLookbookService(catalog *CatalogService, images *ImageOptimizer, baseURL, chromePath string) *LookbookService {
	return &LookbookService{
		catalog:    catalog,
		images:     images,
		baseURL:    strings.TrimRight(baseURL, "/"),
		chromePath: chromePath,
		now:        time.Now,
	}
}

// detectChromePath returns the configured Chrome binary when it exists, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Items converts the products matching query into lookbook cards, capped at lookbookMaxItems
func (s *LookbookService) Items(query models.ProductQuery) []models.LookbookItem {
	products := s.catalog.Matching(query)
	if len(products) > lookbookMaxItems {
		products = products[:lookbookMaxItems]
	}

	items := make([]models.LookbookItem, 0, len(products))
	for _, p := range products {
		item := models.LookbookItem{
			ID:       p.ID,
			Name:     p.Name,
			Brand:    p.Brand,
			Category: utils.CapitalizeWords(string(p.Category)),
			Price:    utils.FormatUSD(p.Price),
			Badge:    p.Badge,
			Sizes:    strings.Join(p.Sizes, ", "),
			ImageURL: p.Image,
		}
		if p.OriginalPrice != nil {
			item.WasPrice = utils.FormatUSD(*p.OriginalPrice)
		}
		items = append(items, item)
	}
	return items
}

// embedThumbnails fills ImageBase64 for every item. A failed image leaves
// its card on the remote URL.
func (s *LookbookService) embedThumbnails(ctx context.Context, items []models.LookbookItem) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookbookFetchParallel)

	for i := range items {
		if items[i].ImageURL == "" {
			continue
		}
		item := &items[i]
		g.Go(func() error {
			data, err := s.images.Thumbnail(gctx, item.ID, item.ImageURL, ImageSizeThumb)
			if err != nil {
				log.Printf("⚠️  Warning: Failed to fetch image for product %d: %v", item.ID, err)
				return nil
			}
			item.ImageBase64 = base64.StdEncoding.EncodeToString(data)
			return nil
		})
	}
	_ = g.Wait()
}

// paginateLookbook splits items into printed pages
func paginateLookbook(items []models.LookbookItem) [][]models.LookbookItem {
	var pages [][]models.LookbookItem
	for i := 0; i < len(items); i += lookbookItemsPerPage {
		end := i + lookbookItemsPerPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}

// lookbookTitle summarizes the active filters for the page header
func lookbookTitle(criteria models.FilterCriteria) string {
	var parts []string
	for _, c := range criteria.Categories {
		parts = append(parts, utils.CapitalizeWords(string(c)))
	}
	if len(criteria.Sizes) > 0 {
		parts = append(parts, "Sizes "+strings.Join(criteria.Sizes, "/"))
	}
	if len(criteria.Colors) > 0 {
		parts = append(parts, utils.CapitalizeWords(strings.Join(criteria.Colors, "/")))
	}
	if criteria.MaxPrice != nil {
		parts = append(parts, "Under "+utils.FormatUSD(*criteria.MaxPrice))
	}
	if len(parts) == 0 {
		return "All products"
	}
	return strings.Join(parts, " · ")
}

// RenderHTML renders the lookbook page. With embedImages the thumbnails are
// inlined as base64 so the page renders without network access.
func (s *LookbookService) RenderHTML(ctx context.Context, query models.ProductQuery, embedImages bool) (string, error) {
	ctx, span := tracer.Start(ctx, "LookbookService.RenderHTML",
		trace.WithAttributes(attribute.Bool("lookbook.embed_images", embedImages)))
	defer span.End()

	items := s.Items(query)
	if embedImages {
		s.embedThumbnails(ctx, items)
	}
	span.SetAttributes(attribute.Int("lookbook.items", len(items)))

	data := struct {
		Title       string
		GeneratedAt string
		Pages       [][]models.LookbookItem
	}{
		Title:       lookbookTitle(query.Criteria),
		GeneratedAt: s.now().Format("January 2, 2006"),
		Pages:       paginateLookbook(items),
	}

	var buf bytes.Buffer
	if err := lookbookTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// RenderURL is the page headless Chrome prints for the given raw query string
func (s *LookbookService) RenderURL(rawQuery string) string {
	if rawQuery == "" {
		return s.baseURL + lookbookRenderPath
	}
	return s.baseURL + lookbookRenderPath + "?" + rawQuery
}

// GeneratePDF prints the render endpoint for rawQuery to an A4 PDF using headless Chrome
func (s *LookbookService) GeneratePDF(ctx context.Context, rawQuery string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "LookbookService.GeneratePDF")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.RenderURL(rawQuery)
	log.Printf("📄 GeneratePDF: rendering %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

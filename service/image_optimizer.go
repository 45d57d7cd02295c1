package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

const (
	ImageSizeThumb  = "thumb"
	ImageSizeMedium = "medium"

	qualityThumb  = 60
	qualityMedium = 75
	maxSizeThumb  = 300
	maxSizeMedium = 800

	maxImageBytes = 10 << 20
)

// ImageOptimizer downloads product images, shrinks them to JPEG and caches the result on disk
type ImageOptimizer struct {
	cacheDir string
	client   *http.Client
}

// NewImageOptimizer creates an ImageOptimizer caching under cacheDir
func NewImageOptimizer(cacheDir string, client *http.Client) *ImageOptimizer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &ImageOptimizer{cacheDir: cacheDir, client: client}
}

// CachePath returns the cache file path for a product image at the given size
func (o *ImageOptimizer) CachePath(productID int, size string) string {
	return filepath.Join(o.cacheDir, fmt.Sprintf("product_%d_%s.jpg", productID, size))
}

// Thumbnail returns the optimized image for a product, fetching imageURL on a cache miss
func (o *ImageOptimizer) Thumbnail(ctx context.Context, productID int, imageURL, size string) ([]byte, error) {
	cachePath := o.CachePath(productID, size)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	raw, err := o.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := saveToCache(cachePath, optimized); err != nil {
		// Serving the image matters more than caching it
		log.Printf("⚠️  Thumbnail: %v", err)
	}
	return optimized, nil
}

func (o *ImageOptimizer) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func saveToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeImage re-encodes raw image bytes as JPEG, scaled down to fit the size bucket.
// Images already inside the bucket keep their dimensions.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case ImageSizeThumb:
		maxDim, quality = maxSizeThumb, qualityThumb
	case ImageSizeMedium:
	default:
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 Resized %s image: %dx%d -> %dx%d", format, bounds.Dx(), bounds.Dy(), img.Bounds().Dx(), img.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

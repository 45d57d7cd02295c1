package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"fashionfusion-storefront/service"
)

// LookbookController exports the filtered shop listing as HTML or PDF
type LookbookController struct {
	lookbook *service.LookbookService
}

// NewLookbookController creates a new LookbookController
func NewLookbookController(lookbook *service.LookbookService) *LookbookController {
	return &LookbookController{lookbook: lookbook}
}

// GenerateLookbook handles GET /shop/lookbook?format=html|pdf plus the /products filter parameters
func (c *LookbookController) GenerateLookbook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GenerateLookbook: Received %s request to %s", r.Method, r.URL.String())

	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "GenerateLookbook")
		return
	}

	query, err := parseProductQuery(r)
	if err != nil {
		badRequest(w, "GenerateLookbook", err.Error())
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "", "html":
		html, err := c.lookbook.RenderHTML(r.Context(), query, true)
		if err != nil {
			writeError(w, "GenerateLookbook", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(html)); err != nil {
			log.Printf("❌ GenerateLookbook: Error writing HTML response: %v", err)
		}

	case "pdf":
		params := r.URL.Query()
		params.Del("format")
		pdfData, err := c.lookbook.GeneratePDF(r.Context(), params.Encode())
		if err != nil {
			writeError(w, "GenerateLookbook", err)
			return
		}

		filename := fmt.Sprintf("lookbook_%s.pdf", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ GenerateLookbook: Error writing PDF response: %v", err)
		}

	default:
		badRequest(w, "GenerateLookbook", "Invalid format. Valid formats: html, pdf")
	}
}

// RenderLookbook handles GET /shop/lookbook/render, the page headless Chrome prints
func (c *LookbookController) RenderLookbook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RenderLookbook: Received %s request to %s", r.Method, r.URL.String())

	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "RenderLookbook")
		return
	}

	query, err := parseProductQuery(r)
	if err != nil {
		badRequest(w, "RenderLookbook", err.Error())
		return
	}

	html, err := c.lookbook.RenderHTML(r.Context(), query, true)
	if err != nil {
		writeError(w, "RenderLookbook", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ RenderLookbook: Error writing HTML response: %v", err)
	}
}

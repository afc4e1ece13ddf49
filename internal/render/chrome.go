// Package render turns a payout request into a PNG screenshot: build the
// HTML page, load it in headless Chromium, capture the viewport.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"payshot/core/logger"
	"payshot/internal/payout"
)

// Options controls the headless browser and the scratch space for
// intermediate artifacts.
type Options struct {
	// ScratchDir is where HTML and PNG artifacts are written. Defaults to
	// the OS temp dir.
	ScratchDir string
	// BrowserPath overrides the Chromium binary. Empty lets chromedp find one.
	BrowserPath string
	// NavTimeout caps page navigation and capture.
	NavTimeout time.Duration
	// Settle is the fixed wait after navigation so fonts and layout finish.
	Settle time.Duration
	// ViewportWidth and ViewportHeight define the capture size.
	ViewportWidth  int
	ViewportHeight int
}

func (o *Options) normalize() {
	if o.ScratchDir == "" {
		o.ScratchDir = os.TempDir()
	}
	if o.NavTimeout <= 0 {
		o.NavTimeout = 30 * time.Second
	}
	if o.Settle < 0 {
		o.Settle = 0
	}
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = 1280
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = 800
	}
}

// Chrome renders payout pages with a headless Chromium instance. A fresh
// browser is launched per request; requests are independent and there is no
// shared profile to corrupt.
type Chrome struct {
	opts Options
	now  func() time.Time
}

// NewChrome builds a renderer with the given options.
func NewChrome(opts Options) *Chrome {
	opts.normalize()
	return &Chrome{opts: opts, now: time.Now}
}

// Render produces a PNG screenshot of the payout page for the request. The
// intermediate HTML file is always removed; the PNG is removed only on
// failure, otherwise the caller owns it and must delete it after delivery.
func (c *Chrome) Render(ctx context.Context, req payout.RenderRequest) (payout.Artifact, error) {
	started := c.now()

	html, err := BuildHTML(req, started)
	if err != nil {
		return payout.Artifact{}, err
	}

	jobID := uuid.NewString()
	htmlPath := filepath.Join(c.opts.ScratchDir, "payout_"+jobID+".html")
	pngPath := filepath.Join(c.opts.ScratchDir, "payout_"+jobID+".png")

	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return payout.Artifact{}, fmt.Errorf("write page: %w", err)
	}
	defer os.Remove(htmlPath)

	logger.Info(ctx, "render", "render.start",
		slog.String("job_id", jobID),
		slog.String("country", req.Country.Code),
		slog.String("kind", string(req.Kind)),
	)

	buf, err := c.capture(ctx, htmlPath)
	if err != nil {
		logger.Error(ctx, "render", "render.failed",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return payout.Artifact{}, err
	}

	if err := os.WriteFile(pngPath, buf, 0o600); err != nil {
		return payout.Artifact{}, fmt.Errorf("write screenshot: %w", err)
	}

	info, err := os.Stat(pngPath)
	if err != nil {
		os.Remove(pngPath)
		return payout.Artifact{}, fmt.Errorf("stat screenshot: %w", err)
	}

	logger.Info(ctx, "render", "render.done",
		slog.String("job_id", jobID),
		slog.Int64("file_size", info.Size()),
		slog.Duration("duration", time.Since(started)),
	)
	return payout.Artifact{Path: pngPath, Size: info.Size()}, nil
}

func (c *Chrome) capture(ctx context.Context, htmlPath string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
	)
	if c.opts.BrowserPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.BrowserPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, c.opts.NavTimeout)
	defer cancelRun()

	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(c.opts.ViewportWidth), int64(c.opts.ViewportHeight)),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.Sleep(c.opts.Settle),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

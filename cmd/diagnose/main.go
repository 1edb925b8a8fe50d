package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"booksearch/internal/books"
	"booksearch/internal/config"
	"booksearch/internal/web"
)

const (
	probeQuery = "dune"
	timeout    = 5 * time.Second
)

func main() {
	cfg := config.Get()
	logrus.SetLevel(logrus.WarnLevel)

	fmt.Println("=== STARTING COMPONENT DIAGNOSTICS ===")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := 0
	check := func(n int, title string, fn func(context.Context) (string, error)) {
		fmt.Printf("\n[%d] %s...\n", n, title)
		detail, err := fn(ctx)
		if err != nil {
			failed++
			fmt.Println(color.RedString("FAIL. %v", err))
			return
		}
		fmt.Println(color.GreenString("PASS. %s", detail))
	}

	check(1, fmt.Sprintf("Testing upstream (%s)", cfg.Books.Endpoint), func(ctx context.Context) (string, error) {
		return checkUpstream(ctx, cfg.Books)
	})
	check(2, fmt.Sprintf("Testing Web Adapter (%s)", cfg.WebAdapter.FullURL()), func(ctx context.Context) (string, error) {
		return checkWeb(ctx, cfg.WebAdapter.FullURL()+"/healthz")
	})
	check(3, fmt.Sprintf("Testing Web Adapter gRPC health (%s)", cfg.WebAdapter.GRPCAddress()), func(ctx context.Context) (string, error) {
		return checkGRPC(ctx, cfg.WebAdapter.GRPCAddress())
	})

	fmt.Println("\n=== DIAGNOSTICS COMPLETE ===")
	if failed > 0 {
		os.Exit(1)
	}
}

func checkUpstream(ctx context.Context, cfg config.BooksConfig) (string, error) {
	res, err := books.New(cfg, nil).Volumes(ctx, probeQuery)
	if err != nil {
		return "", fmt.Errorf("%s: %w", books.Classify(err), err)
	}
	return fmt.Sprintf("totalItems: %d, items: %d", res.TotalItems, len(res.Items)), nil
}

func checkWeb(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}
	var body struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || !body.OK {
		return "", fmt.Errorf("unexpected health body")
	}
	return fmt.Sprintf("HTTP Status: %d, Request ID: %s", resp.StatusCode, resp.Header.Get("X-Request-ID")), nil
}

func checkGRPC(ctx context.Context, addr string) (string, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return "", err
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: web.ServiceName})
	if err != nil {
		return "", err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return "", fmt.Errorf("status %s", resp.GetStatus())
	}
	return fmt.Sprintf("Status: %s", resp.GetStatus()), nil
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"booksearch/internal/books"
	"booksearch/internal/config"
	"booksearch/internal/logger"
	"booksearch/internal/messages"
	"booksearch/internal/render"
	"booksearch/internal/search"
	"booksearch/internal/view"
	"booksearch/internal/web"
)

func main() {
	cfg := config.Get()

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	if cfg.WebAdapter.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	policy, err := search.ParsePolicy(cfg.Search.Policy)
	if err != nil {
		log.Fatalf("search policy: %v", err)
	}

	msgs := messages.New()
	client := books.New(cfg.Books, log)
	page := view.NewPage()
	controller := search.NewController(
		search.NewService(client, msgs, cfg.Search.FieldAliases),
		page.Handles(),
		msgs,
		search.WithPolicy(policy),
	)

	srv := &web.Server{Log: log, Controller: controller, Page: page, HTML: render.NewHTML(msgs)}
	httpServer := &http.Server{
		Addr:              cfg.WebAdapter.Address(),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer, _ := web.NewHealthServer()
	lis, err := net.Listen("tcp", cfg.WebAdapter.GRPCAddress())
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.WebAdapter.GRPCAddress(), err)
	}
	go func() {
		log.Infof("gRPC health on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			log.WithError(err).Error("grpc.serve.failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithFields(logrus.Fields{
			"url":    cfg.WebAdapter.FullURL(),
			"policy": policy.String(),
		}).Info("web adapter started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start web server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	grpcServer.GracefulStop()
}

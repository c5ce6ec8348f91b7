package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"finadash/pkg/api/dashboard"
	"finadash/pkg/core/config"
	"finadash/pkg/core/engine"
	"finadash/pkg/core/fetch"
	"finadash/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	configPath := flag.String("config", "config/engine.yaml", "path to config file (.yaml or .hjson)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("[WARNING] %v, continuing with defaults\n", err)
	}

	orch := fetch.NewOrchestrator(cfg.OrchestratorOptions())
	eng := engine.New(orch, cfg.EngineSources())
	defer eng.Shutdown()

	// Optional refresh audit log; the engine runs fine without it.
	if cfg.DatabaseURL != "" {
		os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	}
	if os.Getenv("DATABASE_URL") != "" {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] audit database unavailable: %v\n", err)
		} else if repo, err := store.NewAuditRepo(ctx); err != nil {
			fmt.Printf("[WARNING] audit repo init failed: %v\n", err)
		} else {
			eng.SetAuditLog(repo)
			defer store.Close()
			fmt.Println("[STORE] refresh audit log enabled")
		}
	}

	handler := dashboard.NewHandler(eng, cfg)
	http.HandleFunc("/api/dashboard/refresh", handler.HandleRefresh)
	http.HandleFunc("/api/dashboard/banking", handler.HandleBanking)
	http.HandleFunc("/api/dashboard/hr", handler.HandleHR)
	http.HandleFunc("/api/dashboard/export", handler.HandleExport)

	fmt.Printf("API server starting on %s...\n", cfg.Listen)
	fmt.Println("  - POST /api/dashboard/refresh")
	fmt.Println("  - GET  /api/dashboard/banking")
	fmt.Println("  - GET  /api/dashboard/hr")
	fmt.Println("  - GET  /api/dashboard/export?domain=banking|hr&format=csv|xlsx")

	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

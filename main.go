// Command color-wars starts the Color Wars game server.
//
// It supports two modes:
//  1. "serve" (default) – runs the HTTP server exposing the REST API,
//     the WebSocket gameplay endpoint, metrics, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server against the same in-process rooms
//
// Flags control host/port, the static asset directory, debug logging,
// and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/lakshmikanth1222/color-wars/api"
	"github.com/lakshmikanth1222/color-wars/game/service"
	"github.com/lakshmikanth1222/color-wars/game/session"
	mcptransport "github.com/lakshmikanth1222/color-wars/transport/mcp"
	"github.com/lakshmikanth1222/color-wars/transport/websocket"
)

const (
	AppName = "Color Wars Server"
	Version = api.Version
)

// cleanupInterval is how often idle rooms are pruned.
const cleanupInterval = 1 * time.Hour

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := newRootCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "color-wars",
		Usage:   "multiplayer chain-reaction color war server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Value: "0.0.0.0",
				Usage: "HTTP server host",
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   10000,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:  "static-dir",
				Value: "./static/",
				Usage: "Directory with the browser client assets",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, cmd)
		},
		Commands: []*cli.Command{
			{
				Name:  "mcp",
				Usage: "Run an MCP stdio server with in-process rooms",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(cmd)
				},
			},
		},
	}
}

// newRoomsGauge builds the active-rooms gauge reading the given registry.
// Registration happens once in runServer so the gauge always tracks the
// registry that serves traffic.
func newRoomsGauge(registry *session.Manager) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "colorwars_rooms_active",
			Help: "Rooms currently held in the registry",
		},
		func() float64 { return float64(registry.Count()) },
	)
}

// initializeServices wires the room registry and game service and starts
// the idle-room cleanup routine.
func initializeServices(ctx context.Context) (service.GameService, *session.Manager) {
	registry := session.NewManager()

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := registry.CleanupExpired(session.DefaultMaxIdle); removed > 0 {
					log.Printf("Cleaned up %d idle room(s)", removed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return service.NewGameService(registry), registry
}

// runServer starts the HTTP server with the REST API, WebSocket hub, and
// an /mcp endpoint. If ngrok is enabled it also provisions a public tunnel.
func runServer(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	log.Printf("Starting %s v%s", AppName, Version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameService, registry := initializeServices(ctx)
	prometheus.MustRegister(newRoomsGauge(registry))

	hub := websocket.NewHub(gameService)
	apiServer := api.NewServer(gameService, hub, cmd.String("static-dir"))
	mcpServer := mcptransport.NewServer(gameService)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port")))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("Metrics: http://%s/metrics", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cmd, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// runNgrokTunnel serves the same router through a public ngrok endpoint.
func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler) {
	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain := cmd.String("ngrok-domain"); domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(authToken),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  Game UI (ngrok): %s/", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCP serves the MCP protocol over stdio. Rooms live only for
// the lifetime of this process.
func runStdioMCP(cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	// Keep stdout clean for the protocol.
	log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService, _ := initializeServices(ctx)
	srv := mcptransport.NewServer(gameService)

	log.Printf("%s v%s serving MCP on stdio", AppName, Version)
	return srv.ServeStdio()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/warpsnake/internal/games/snake"
	"github.com/vovakirdan/warpsnake/internal/platform/web"
)

var (
	flagHTTPAddr string
	flagWebRoot  string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser version",
	Long: `Start an HTTP server with the browser client and a WebSocket endpoint.
Each browser tab runs its own game on the server.

The page accepts the same settings as query parameters:
  /?variant=portal&tps=15&history=10&rewind=toggle

Examples:
  warpsnake web                    # Listen on :8000
  warpsnake web --http :9000
  warpsnake web --root ./assets    # Serve assets from disk`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8000", "HTTP server address (host:port)")
	webCmd.Flags().StringVar(&flagWebRoot, "root", "", "Serve static assets from this directory instead of the embedded ones")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg := web.ServerConfig{
		Address:   flagHTTPAddr,
		Root:      flagWebRoot,
		DBPath:    flagDBPath,
		FrameRate: flagFPS,
		Snake:     snake.Config(),
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Time-Warp Snake running on http://localhost%s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/cmd"
	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/server"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/watcher"
)

var (
	serveInputs cmd.Inputs
	serveAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve an interactive viewer to browsers",
	Long: `Start an HTTP server with a browser viewer. Every connected page gets its own
camera and copy of the grid over a websocket. With --watch, changes to the
file are pushed to every open page.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveInputs.Register(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(c *cobra.Command, args []string) {
	settings, src, err := serveInputs.Resolve(c, args)
	if err != nil {
		fail("resolving input: %v", err)
	}

	srv, err := server.New(settings, src)
	if err != nil {
		fail("loading grid: %v", err)
	}

	if serveInputs.Watch && src.Watchable() {
		fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
		if err != nil {
			fail("creating file watcher: %v", err)
		}
		defer fw.Close()

		if err := fw.Watch(src.Path); err != nil {
			fail("watching %s: %v", src.Path, err)
		}
		fw.Start()

		go func() {
			for path := range fw.Changes() {
				log.Printf("[SERVER] %s changed, reloading", path)
				if err := srv.Reload(); err != nil {
					log.Printf("[SERVER] reload failed: %v", err)
				}
			}
		}()
		go func() {
			for err := range fw.Errors() {
				log.Printf("[SERVER] watcher error: %v", err)
			}
		}()
	}

	log.Printf("[SERVER] serving %s on http://%s/", src.Describe(), serveAddr)
	httpServer := &http.Server{
		Addr:              serveAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		fail("serving: %v", err)
	}
}

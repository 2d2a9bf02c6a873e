package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cvforge/cvforge/internal/api"
	"github.com/cvforge/cvforge/internal/config"
	"github.com/cvforge/cvforge/internal/filter"
	"github.com/cvforge/cvforge/internal/resume"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live Markdown preview over HTTP",
	Long: `Serve the rendered resume over HTTP on localhost. The source file is
re-read on every request, so edits show up on refresh.

Endpoints:
  GET /resume.md?include=a,b&exclude=c&mode=any|all
  GET /tags
  GET /health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		port, _ := cmd.Flags().GetInt("port")
		return runServe(in, port)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the renderer as MCP tools on stdio",
	Long: `Run an MCP server on stdio exposing render_resume and list_tags, so
an agent can tailor the resume to a job description by picking tag filters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		return runMCP(in)
	},
}

func init() {
	serveCmd.Flags().String("in", "", "input YAML file")
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
	serveCmd.MarkFlagRequired("in")

	mcpCmd.Flags().String("in", "", "input YAML file")
	mcpCmd.MarkFlagRequired("in")
}

func runServe(in string, port int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}
	mode, err := filter.ParseMode(cfg.Build.Mode)
	if err != nil {
		return err
	}

	// Render once up front so a broken file fails at startup, not on the
	// first request.
	if err := checkSource(in); err != nil {
		return err
	}

	handler := api.NewHandler(api.Deps{Source: in, DefaultMode: mode})

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Fprintf(os.Stderr, "cvforge preview on http://%s/resume.md\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runMCP(in string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	mode, err := filter.ParseMode(cfg.Build.Mode)
	if err != nil {
		return err
	}

	if err := checkSource(in); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mcpSrv := api.NewMCPServer(api.MCPDeps{Source: in, DefaultMode: mode})
	stdioSrv := server.NewStdioServer(mcpSrv)

	fmt.Fprintln(os.Stderr, "cvforge MCP server started (stdio transport)")
	if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

// checkSource verifies the resume file loads before a server starts.
func checkSource(in string) error {
	_, err := resume.Load(in)
	return err
}

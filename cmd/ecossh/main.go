// Package main implements the SSH server that serves the EcoBazaar TUI.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	gossh "golang.org/x/crypto/ssh"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/auth"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/cache"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/cart"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/config"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	if err := ensureHostKey(cfg.SSHHostKeyPath); err != nil {
		log.Fatal("Failed to ensure host key", "error", err)
	}

	var allowlist *auth.Allowlist
	if cfg.SSHAuthMode == config.AuthModeAllowlist {
		allowlist, err = auth.Load(cfg.AllowlistPath)
		if err != nil {
			if errors.Is(err, auth.ErrAllowlistNotFound) {
				log.Info("Creating empty allowlist", "path", cfg.AllowlistPath)
				if err := auth.CreateEmpty(cfg.AllowlistPath); err != nil {
					log.Fatal("Failed to create allowlist", "error", err)
				}
				log.Info("Add your SSH public key to the allowlist and restart")
				os.Exit(1)
			}
			log.Fatal("Failed to load allowlist", "error", err)
		}
		if allowlist.Len() == 0 {
			log.Warn("Allowlist is empty, no connections will be accepted", "path", cfg.AllowlistPath)
		}
		log.Info("Loaded allowlist", "keys", allowlist.Len())
	} else {
		log.Warn("Running in PUBLIC mode, anyone can connect")
	}

	// One API client and listing cache shared across SSH sessions. The
	// bearer token lives inside the client, so each session gets its own.
	listingCache := cache.New[tui.ListingCacheKey, *eco.ProductPage](cfg.CacheTTL)

	// Expired pages are also dropped lazily on Get; the ticker keeps pages
	// nobody asks for again from lingering in memory.
	pruneStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.CacheTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				listingCache.Prune()
			case <-pruneStop:
				return
			}
		}
	}()

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				ecoClient := eco.NewClient(cfg.APIBaseURL)
				cartSession := cart.NewSession(ecoClient)
				model := tui.NewModel(ecoClient, cartSession, listingCache, cfg.PageSize)
				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	}

	if cfg.SSHAuthMode == config.AuthModeAllowlist {
		opts = append(opts, wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return allowlist.Allows(key)
		}))
	} else {
		opts = append(opts, wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		}))
	}

	// Password auth stays off in both modes.
	opts = append(opts, wish.WithPasswordAuth(func(ctx ssh.Context, password string) bool {
		return false
	}))

	server, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("Failed to create SSH server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting SSH server", "addr", cfg.SSHAddr)
	log.Info("EcoBazaar API", "url", cfg.APIBaseURL)
	log.Info("Auth mode", "mode", cfg.SSHAuthMode)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("Server error", "error", err)
		}
	}()

	<-done
	log.Info("Shutting down...")
	close(pruneStop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error", "error", err)
	}
}

// ensureHostKey generates an ED25519 host key if it doesn't exist.
func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Info("Generating new ED25519 host key", "path", path)

	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	sshPrivKey, err := gossh.MarshalPrivateKey(privKey, "")
	if err != nil {
		return fmt.Errorf("marshaling private key: %w", err)
	}

	if err := os.WriteFile(path, pem.EncodeToMemory(sshPrivKey), 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	sshPubKey, err := gossh.NewPublicKey(pubKey)
	if err != nil {
		return fmt.Errorf("creating public key: %w", err)
	}

	if err := os.WriteFile(path+".pub", gossh.MarshalAuthorizedKey(sshPubKey), 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	return nil
}

package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/policyauth/policy-auth-api/internal/authz"
	"github.com/policyauth/policy-auth-api/internal/db"
	"github.com/policyauth/policy-auth-api/internal/domain"
	apihttp "github.com/policyauth/policy-auth-api/internal/http"
	"github.com/policyauth/policy-auth-api/internal/password"
	"github.com/policyauth/policy-auth-api/internal/token"
)

type Config struct {
	Port         string
	DSN          string
	JWTKey       string
	JWTIssuer    string
	JWTAudience  string
	TokenTTL     time.Duration
	AllowedRoles []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func LoadConfig() Config {
	cfg := Config{
		DSN:          os.Getenv("DB_CONN"),
		Port:         os.Getenv("PORT"),
		JWTKey:       os.Getenv("JWT_KEY"),
		JWTIssuer:    os.Getenv("JWT_ISSUER"),
		JWTAudience:  os.Getenv("JWT_AUDIENCE"),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	if cfg.DSN == "" {
		log.Fatal("missing required environment variable: DB_CONN")
	}
	if cfg.JWTKey == "" {
		log.Fatal("missing required environment variable: JWT_KEY")
	}
	if cfg.JWTIssuer == "" {
		log.Fatal("missing required environment variable: JWT_ISSUER")
	}
	if cfg.JWTAudience == "" {
		log.Fatal("missing required environment variable: JWT_AUDIENCE")
	}
	if cfg.Port == "" {
		cfg.Port = "4040"
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("invalid TOKEN_TTL %q: %v", ttl, err)
		}
		cfg.TokenTTL = parsed
	}

	if roles := os.Getenv("ALLOWED_ROLES"); roles != "" {
		for _, role := range strings.Split(roles, ",") {
			if role = strings.TrimSpace(role); role != "" {
				cfg.AllowedRoles = append(cfg.AllowedRoles, role)
			}
		}
	}

	return cfg
}

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}

func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.Default()

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	tokenCfg := token.Config{
		Key:      []byte(cfg.JWTKey),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenTTL,
	}

	store := db.NewUserStore(pool)
	hasher := password.NewHasher(password.DefaultArgon)
	accounts := domain.NewLoggingAccountService(logger, domain.NewAccountService(
		store,
		hasher,
		password.DefaultPolicy,
		token.NewIssuer(tokenCfg),
		cfg.AllowedRoles,
		nil,
	))
	gate := authz.NewGate(token.NewAuthenticator(tokenCfg), authz.NewRegistry(), nil)

	api := apihttp.NewAPI(logger, pool, accounts, gate)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("serving api", "addr", listener.Addr().String(), "issuer", cfg.JWTIssuer, "audience", cfg.JWTAudience)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve failed", "err", err.Error())
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/policyauth/policy-auth-api/internal/authz"
	"github.com/policyauth/policy-auth-api/internal/domain"
)

type API struct {
	Logger   *slog.Logger
	DB       *pgxpool.Pool
	Accounts domain.AccountService
	Gate     *authz.Gate
}

func NewAPI(logger *slog.Logger, db *pgxpool.Pool, accounts domain.AccountService, gate *authz.Gate) *API {
	return &API{
		Logger:   logger,
		DB:       db,
		Accounts: accounts,
		Gate:     gate,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.HandleFunc("POST /account/create", a.handleCreateAccount)
	mux.HandleFunc("POST /account/login", a.handleLogin)
	mux.Handle("GET /list", a.requirePolicy(authz.PolicyAdminManager, a.handleList))
	mux.Handle("GET /single", a.requirePolicy(authz.PolicyAdminUser, a.handleSingle))
	mux.Handle("GET /home", a.requirePolicy(authz.PolicyAdminManagerUser, a.handleHome))
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	_ "github.com/policyauth/policy-auth-api/docs"
	"github.com/policyauth/policy-auth-api/internal/app"
)

//	@title			Policy Auth API
//	@version		1.0
//	@description	Issues signed bearer tokens and authorizes requests against named policies.

//	@host		localhost:4040
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := app.LoadConfig()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

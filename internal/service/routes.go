package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/middleware"
	"github.com/mmynk/budgetbuddy/pkg/api/apiconnect"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{
	apiconnect.AuthServiceRegisterProcedure,
	apiconnect.AuthServiceLoginProcedure,
}

// Mount registers the three services on mux behind the logging and auth
// interceptors.
func Mount(mux *http.ServeMux, authSvc *AuthService, ledgerSvc *LedgerService, insightSvc *InsightService, jwtManager *auth.JWTManager) {
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager, PublicProcedures...),
	)

	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, interceptors))
	mux.Handle(apiconnect.NewLedgerServiceHandler(ledgerSvc, interceptors))
	mux.Handle(apiconnect.NewInsightServiceHandler(insightSvc, interceptors))
}

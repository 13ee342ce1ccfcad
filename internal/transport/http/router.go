package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"mines-casino/internal/app/account"
	"mines-casino/internal/config"
	"mines-casino/internal/game"
	"mines-casino/internal/store"
)

type Deps struct {
	Store            store.Store
	Engine           *game.Engine
	Accounts         *account.Service
	Server           config.ServerConfig
	DefaultMineCount int
}

func NewRouter(d Deps) *chi.Mux {
	sessionHandlers := NewSessionHandlers(d.Engine, d.DefaultMineCount)
	accountHandlers := NewAccountHandlers(d.Accounts)
	adminHandlers := NewAdminHandlers(d.Store, d.Accounts)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(CORSMiddleware(d.Server.CORSAllowedOrigins))

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Post("/accounts", accountHandlers.Create())
		r.Get("/accounts/{account_id}", accountHandlers.Get())
		r.Post("/accounts/{account_id}/points", accountHandlers.AddPoints())
		r.Post("/accounts/{account_id}/wallet/deposit", accountHandlers.Deposit())
		r.Post("/accounts/{account_id}/wallet/withdraw", accountHandlers.Withdraw())
		r.Get("/accounts/{account_id}/sessions", sessionHandlers.ListByAccount())

		r.Post("/sessions", sessionHandlers.Start())
		r.Get("/sessions/{session_id}", sessionHandlers.Get())
		r.Post("/sessions/{session_id}/reveal", sessionHandlers.Reveal())
		r.Post("/sessions/{session_id}/cashout", sessionHandlers.CashOut())

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(d.Server.AdminAPIKey))
			r.Get("/ledger", adminHandlers.Ledger())
			r.Route("/debug", func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(4096))
				r.Get("/vars", expvar.Handler().ServeHTTP)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteHTTPError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/providerid/internal/federation/service"
	"github.com/aussiebroadwan/providerid/internal/federation/store"
	"github.com/aussiebroadwan/providerid/pkg/healthsdk"
	"github.com/aussiebroadwan/providerid/pkg/httpx"
	"github.com/aussiebroadwan/providerid/pkg/jwtx"
	"github.com/aussiebroadwan/providerid/pkg/slogx"

	_ "github.com/aussiebroadwan/providerid/api/federation" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	// SessionCookieName carries the sealed profile between the callback and
	// the profile read.
	SessionCookieName = "provider_id_profile"

	// StateCookieName carries the signed state binding between the
	// authorize redirect and the callback.
	StateCookieName = "provider_id_state"

	CallbackPath = "/v1/provider-id/callback"
)

// Options are the request-independent settings the handlers need.
type Options struct {
	BuildVersion string

	HealthClientID string

	// RedirectURI overrides the callback URL derived from the request.
	RedirectURI string

	// LandingPath is where the browser is sent after the callback.
	LandingPath string

	SecureCookies bool
	SessionMaxAge time.Duration

	DebugExchange bool
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	opts      Options
	startTime time.Time
	logger    *slog.Logger
	store     store.Store

	Client          *healthsdk.Client
	StateBinder     *jwtx.StateBinder // nil disables state binding
	CallbackService *service.CallbackService
	SessionService  *service.SessionService
}

func NewRouter(opts Options, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		opts:      opts,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerProviderID()
	r.registerHealthID()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Provider ID Federation Service API
//	@version		0.1.0
//	@description	Signs users in through Health ID, exchanges the Health ID token for a Provider ID token and hands the
//	@description	Provider ID profile to the browser once, inside an AES-256-GCM sealed httpOnly cookie.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/providerid
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerProviderID() {
	flow := flowSettings{
		redirectURI:   r.opts.RedirectURI,
		landingPath:   r.opts.LandingPath,
		secureCookies: r.opts.SecureCookies,
	}

	authorizeHandler := &AuthorizeHandler{
		flowSettings: flow,
		Client:       r.Client,
		ClientID:     r.opts.HealthClientID,
		StateBinder:  r.StateBinder,
	}
	r.Mux.Handle("GET /v1/provider-id/authorize",
		httpx.Chain(authorizeHandler,
			httpx.RateLimitByIP(httpx.SessionLimit),
		),
	)

	// Every callback costs three upstream calls.
	callbackHandler := &CallbackHandler{
		flowSettings:    flow,
		CallbackService: r.CallbackService,
		SessionMaxAge:   r.opts.SessionMaxAge,
	}
	r.Mux.Handle("GET "+CallbackPath,
		httpx.Chain(callbackHandler,
			httpx.RateLimitByIP(httpx.ExchangeLimit),
		),
	)

	profileHandler := &ProfileHandler{
		SessionService: r.SessionService,
		SecureCookies:  r.opts.SecureCookies,
	}
	r.Mux.Handle("GET /v1/provider-id/profile",
		httpx.Chain(profileHandler,
			httpx.RateLimitByIP(httpx.SessionLimit),
		),
	)

	if r.opts.DebugExchange {
		debugHandler := &DebugHandler{flowSettings: flow, CallbackService: r.CallbackService}
		r.Mux.Handle("GET /v1/provider-id/debug",
			httpx.Chain(debugHandler,
				httpx.RateLimitByIP(httpx.ExchangeLimit),
			),
		)
	}
}

func (r *Router) registerHealthID() {
	tokenHandler := &TokenProxyHandler{Client: r.Client}
	r.Mux.Handle("POST /v1/health-id/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.ExchangeLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.opts.BuildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.opts.BuildVersion, r.store, r.CallbackService),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

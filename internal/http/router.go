package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jotmail/jotmail/internal/service"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/pkg/httpx"
	"github.com/jotmail/jotmail/pkg/jwtx"
	"github.com/jotmail/jotmail/pkg/slogx"

	_ "github.com/jotmail/jotmail/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	NoteService *service.NoteService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerNotes()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Jotmail API
//	@version		0.1.0
//	@description	Email-based passwordless note service. Signup and login both run as a two-step
//	@description	flow: request a one-time code by email, then exchange it for a Bearer session token.
//	@description	Codes are single-use, expire after ten minutes, and are replaced on resend.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signup := &SignupHandler{AuthService: r.AuthService}
	login := &LoginHandler{AuthService: r.AuthService}
	me := &MeHandler{AuthService: r.AuthService}

	// The four OTP endpoints get the strict limit: request handlers to
	// stop email flooding, completion handlers to stop code brute force.
	// A 6-digit code space survives 5 guesses/min for its 10min life.
	r.Mux.Handle("POST /auth/request-signup-otp",
		httpx.Chain(http.HandlerFunc(signup.HandleRequestOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(signup.HandleComplete),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/request-otp",
		httpx.Chain(http.HandlerFunc(login.HandleRequestOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(login.HandleComplete),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Authenticated identity endpoint - lenient rate limit by account
	r.Mux.Handle("GET /auth/me",
		httpx.Chain(http.HandlerFunc(me.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByAccount(httpx.LenientLimit),
	)
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /notes", securedCreate)
	r.Mux.Handle("GET /notes", securedList)
	r.Mux.Handle("DELETE /notes/{id}", securedDelete)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

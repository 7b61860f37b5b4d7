package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/jwtx"
	"github.com/studyhall/studyhall/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	secureCookie bool

	store          store.Store
	AuthService    *service.AuthService
	GoogleService  *service.GoogleOAuthService
	UserService    *service.UserService
	CourseService  *service.CourseService
	QuizService    *service.QuizService
	AttemptService *service.AttemptService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	secureCookie bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		secureCookie: secureCookie,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerCourses()
	r.registerEnrollment()
	r.registerContent()
	r.registerAttempts()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware
// chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps a handler with bearer authentication and a per-user rate
// limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	auth := &AuthHandler{AuthService: r.AuthService, SecureCookie: r.secureCookie}
	oauth := &OAuthHandler{Google: r.GoogleService, Auth: auth}

	// Credential endpoints get the strict IP limit: they are the brute
	// force surface.
	r.Mux.Handle("POST /api/auth/register/{$}",
		httpx.Chain(http.HandlerFunc(auth.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login/{$}",
		httpx.Chain(http.HandlerFunc(auth.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/token/refresh/{$}",
		httpx.Chain(http.HandlerFunc(auth.HandleRefresh),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/logout/{$}",
		httpx.Chain(http.HandlerFunc(auth.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/oauth/google/{$}",
		httpx.Chain(http.HandlerFunc(oauth.HandleGoogle),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/oauth/microsoft/{$}",
		httpx.Chain(http.HandlerFunc(oauth.HandleMicrosoft),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/auth/profile/{$}", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/auth/profile/{$}", r.secured(h.HandleUpdate, httpx.ModerateLimit))
}

func (r *Router) registerCourses() {
	h := &CoursesHandler{CourseService: r.CourseService}

	r.Mux.Handle("POST /api/courses/{$}", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/courses/{$}", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /api/courses/{id}/{$}", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/courses/{id}/{$}", r.secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/courses/{id}/{$}", r.secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/courses/{id}/status/{$}",
		r.secured(h.HandleSetStatus, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/courses/{id}/join-code/{$}",
		r.secured(h.HandleSetJoinCode, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/courses/{id}/join-code/rotate/{$}",
		r.secured(h.HandleRotateJoinCode, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/courses/{id}/members/{$}",
		r.secured(h.HandleListMembers, httpx.LenientLimit))
	r.Mux.Handle("POST /api/courses/{id}/members/{$}",
		r.secured(h.HandleAddMember, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/courses/{id}/members/{userID}/{$}",
		r.secured(h.HandleRemoveMember, httpx.ModerateLimit))
}

func (r *Router) registerEnrollment() {
	h := &EnrollmentHandler{CourseService: r.CourseService}

	// Join codes are guessable by design, so joining gets the strict
	// limit.
	r.Mux.Handle("POST /api/enrollment/join/{$}",
		r.secured(h.HandleJoin, httpx.StrictLimit))
}

func (r *Router) registerContent() {
	h := &ContentHandler{QuizService: r.QuizService}

	r.Mux.Handle("POST /api/courses/{id}/chapters/{$}",
		r.secured(h.HandleCreateChapter, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/courses/{id}/chapters/{$}",
		r.secured(h.HandleListChapters, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/chapters/{id}/{$}",
		r.secured(h.HandleUpdateChapter, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/chapters/{id}/{$}",
		r.secured(h.HandleDeleteChapter, httpx.ModerateLimit))

	r.Mux.Handle("POST /api/chapters/{id}/questions/{$}",
		r.secured(h.HandleCreateQuestion, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/chapters/{id}/questions/{$}",
		r.secured(h.HandleListQuestions, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/questions/{id}/{$}",
		r.secured(h.HandleUpdateQuestion, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/questions/{id}/{$}",
		r.secured(h.HandleDeleteQuestion, httpx.ModerateLimit))

	r.Mux.Handle("POST /api/chapters/{id}/quizzes/{$}",
		r.secured(h.HandleCreateQuiz, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/chapters/{id}/quizzes/{$}",
		r.secured(h.HandleListQuizzes, httpx.LenientLimit))
	r.Mux.Handle("GET /api/quizzes/{$}",
		r.secured(h.HandleListAvailable, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/quizzes/{id}/{$}",
		r.secured(h.HandleUpdateQuiz, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/quizzes/{id}/{$}",
		r.secured(h.HandleDeleteQuiz, httpx.ModerateLimit))
}

func (r *Router) registerAttempts() {
	h := &AttemptsHandler{AttemptService: r.AttemptService}

	r.Mux.Handle("POST /api/quizzes/{id}/attempts/{$}",
		r.secured(h.HandleStart, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/attempts/{id}/{$}",
		r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("POST /api/attempts/{id}/answer/{$}",
		r.secured(h.HandleAnswer, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
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

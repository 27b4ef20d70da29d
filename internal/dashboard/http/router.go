package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/httpx"
	"github.com/yamatodev/dashboard/pkg/slogx"

	_ "github.com/yamatodev/dashboard/api/dashboard" // Swagger docs
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AuthService     *service.AuthService
	UserService     *service.UserService
	CategoryService *service.CategoryService
	TagService      *service.TagService
	PostService     *service.PostService
	ProjectService  *service.ProjectService
	TaskService     *service.TaskService
}

func NewRouter(
	buildVersion string,
	corsOrigins []string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerBlog()
	r.registerProjects()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Dashboard API
//	@version		0.1.0
//	@description	Backend for a personal dashboard: blog publishing plus project and task tracking,
//	@description	guarded by bearer token authentication.
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /api/auth/register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			AuthnMiddleware(r.AuthService),
		),
	)
	r.Mux.Handle("POST /api/auth/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			AuthnMiddleware(r.AuthService),
		),
	)
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			AuthnMiddleware(r.AuthService),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			AuthnMiddleware(r.AuthService),
		),
	)
	r.Mux.Handle("GET /api/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			AuthnMiddleware(r.AuthService),
		),
	)
}

func (r *Router) registerBlog() {
	categories := &CategoriesHandler{CategoryService: r.CategoryService}
	tags := &TagsHandler{TagService: r.TagService}
	posts := &PostsHandler{PostService: r.PostService}

	// Reads are public; the frontend renders the blog without a session.
	r.Mux.Handle("GET /api/blog/categories", http.HandlerFunc(categories.HandleList))
	r.Mux.Handle("GET /api/blog/tags", http.HandlerFunc(tags.HandleList))
	r.Mux.Handle("GET /api/blog/posts", http.HandlerFunc(posts.HandleList))
	r.Mux.Handle("GET /api/blog/posts/{id}", http.HandlerFunc(posts.HandleGet))

	guard := AuthnMiddleware(r.AuthService)

	r.Mux.Handle("POST /api/blog/categories",
		httpx.Chain(http.HandlerFunc(categories.HandleCreate), guard))
	r.Mux.Handle("PUT /api/blog/categories/{id}",
		httpx.Chain(http.HandlerFunc(categories.HandleUpdate), guard))
	r.Mux.Handle("DELETE /api/blog/categories/{id}",
		httpx.Chain(http.HandlerFunc(categories.HandleDelete), guard))

	r.Mux.Handle("POST /api/blog/tags",
		httpx.Chain(http.HandlerFunc(tags.HandleCreate), guard))
	r.Mux.Handle("DELETE /api/blog/tags/{id}",
		httpx.Chain(http.HandlerFunc(tags.HandleDelete), guard))

	r.Mux.Handle("POST /api/blog/posts",
		httpx.Chain(http.HandlerFunc(posts.HandleCreate), guard))
	r.Mux.Handle("PUT /api/blog/posts/{id}",
		httpx.Chain(http.HandlerFunc(posts.HandleUpdate), guard))
	r.Mux.Handle("DELETE /api/blog/posts/{id}",
		httpx.Chain(http.HandlerFunc(posts.HandleDelete), guard))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}
	guard := AuthnMiddleware(r.AuthService)

	r.Mux.Handle("GET /api/projects", httpx.Chain(http.HandlerFunc(h.HandleList), guard))
	r.Mux.Handle("POST /api/projects", httpx.Chain(http.HandlerFunc(h.HandleCreate), guard))
	r.Mux.Handle("GET /api/projects/{id}", httpx.Chain(http.HandlerFunc(h.HandleGet), guard))
	r.Mux.Handle("PUT /api/projects/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), guard))
	r.Mux.Handle("DELETE /api/projects/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), guard))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}
	guard := AuthnMiddleware(r.AuthService)

	r.Mux.Handle("GET /api/tasks", httpx.Chain(http.HandlerFunc(h.HandleList), guard))
	r.Mux.Handle("POST /api/tasks", httpx.Chain(http.HandlerFunc(h.HandleCreate), guard))
	r.Mux.Handle("GET /api/tasks/{id}", httpx.Chain(http.HandlerFunc(h.HandleGet), guard))
	r.Mux.Handle("PUT /api/tasks/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), guard))
	r.Mux.Handle("DELETE /api/tasks/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), guard))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /api/health", HealthHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /{$}", RootHandler(r.buildVersion))
}

/*
Package handler provides the HTTP handlers and routing setup for the Learnly
server.

This file defines the main Router, applying middleware like logging, CORS, and
IP-based rate limiting before delegating requests to specific handlers (API and
WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"learnly/internal/pkg/auth/jwt"
	"learnly/internal/pkg/limiter"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/resp"
)

const (
	// WriteRate limits content-creating endpoints (posts, groups, plans).
	WriteRate  = 0.5
	WriteBurst = 5

	// ConnectRate limits WebSocket upgrade attempts.
	ConnectRate  = 0.2
	ConnectBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	writeLimiter := limiter.NewIPRateLimiter(rate.Limit(WriteRate), WriteBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Learnly Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Get("/{provider}/login", HandleOAuthLogin(deps))
			auth.Get("/{provider}/callback", HandleOAuthCallback(deps))
		})

		api.Route("/users", func(users chi.Router) {
			users.Get("/me", HandleGetCurrentUser(deps))
			users.Patch("/me", HandleUpdateProfile(deps))
			users.Delete("/me", HandleDeleteAccount(deps))
			users.Get("/me/saved-posts", HandleListSavedPosts(deps))
			users.Post("/me/saved-posts/{postId}", HandleSavePost(deps))
			users.Delete("/me/saved-posts/{postId}", HandleUnsavePost(deps))

			users.Get("/search", HandleSearchUsers(deps))
			users.Get("/{id}", HandleGetUser(deps))
			users.Get("/{id}/followers", HandleListFollowers(deps))
			users.Get("/{id}/following", HandleListFollowing(deps))
			users.Post("/{id}/follow", HandleFollowUser(deps))
			users.Delete("/{id}/follow", HandleUnfollowUser(deps))
		})

		api.Route("/posts", func(posts chi.Router) {
			posts.With(writeLimiter.Middleware).Post("/", HandleCreatePost(deps))
			posts.Get("/", HandleListPosts(deps))
			posts.Get("/{id}", HandleGetPost(deps))
			posts.Patch("/{id}", HandleUpdatePost(deps))
			posts.Delete("/{id}", HandleDeletePost(deps))

			posts.Post("/{id}/comments", HandleCreateComment(deps))
			posts.Get("/{id}/comments", HandleListComments(deps))

			posts.Post("/{id}/likes", HandleLikePost(deps))
			posts.Delete("/{id}/likes", HandleUnlikePost(deps))
			posts.Get("/{id}/likes", HandleGetLikes(deps))
		})

		api.Patch("/comments/{commentId}", HandleUpdateComment(deps))
		api.Delete("/comments/{commentId}", HandleDeleteComment(deps))

		api.Route("/plans", func(plans chi.Router) {
			plans.With(writeLimiter.Middleware).Post("/", HandleCreatePlan(deps))
			plans.Get("/", HandleListMyPlans(deps))
			plans.Get("/public", HandleListPublicPlans(deps))
			plans.Get("/{id}", HandleGetPlan(deps))
			plans.Patch("/{id}", HandleUpdatePlan(deps))
			plans.Delete("/{id}", HandleDeletePlan(deps))
			plans.Post("/{id}/import", HandleImportPlan(deps))
			plans.Post("/{id}/follow", HandleFollowPlan(deps))
			plans.Delete("/{id}/follow", HandleUnfollowPlan(deps))
		})

		api.Route("/progress", func(prog chi.Router) {
			prog.Post("/", HandleCreateProgress(deps))
			prog.Get("/", HandleListProgress(deps))
			prog.Patch("/{id}", HandleUpdateProgress(deps))
			prog.Delete("/{id}", HandleDeleteProgress(deps))
		})

		api.Route("/groups", func(groups chi.Router) {
			groups.With(writeLimiter.Middleware).Post("/", HandleCreateGroup(deps))
			groups.Get("/", HandleListGroups(deps))
			groups.Get("/{id}", HandleGetGroup(deps))
			groups.Post("/{id}/join", HandleJoinGroup(deps))
			groups.Get("/{id}/messages", HandleGroupMessages(deps))
			groups.Post("/{id}/messages", HandleSendGroupMessage(deps))
		})

		api.Post("/media/presign-upload", HandlePresignUpload(deps))
		api.Get("/media/presign-download", HandlePresignDownload(deps))
	})

	r.With(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret)).
		Get("/ws", HandleWebSocket(deps, wsUpgrader, connectLimiter))

	return r
}

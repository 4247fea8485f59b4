// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/dalemusser/grouphub/internal/app/features/accounts"
	authgooglefeature "github.com/dalemusser/grouphub/internal/app/features/authgoogle"
	commentsfeature "github.com/dalemusser/grouphub/internal/app/features/comments"
	coursesfeature "github.com/dalemusser/grouphub/internal/app/features/courses"
	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	groupsfeature "github.com/dalemusser/grouphub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/grouphub/internal/app/features/health"
	joinrequestsfeature "github.com/dalemusser/grouphub/internal/app/features/joinrequests"
	labelsfeature "github.com/dalemusser/grouphub/internal/app/features/labels"
	materialsfeature "github.com/dalemusser/grouphub/internal/app/features/materials"
	membersfeature "github.com/dalemusser/grouphub/internal/app/features/members"
	"github.com/dalemusser/grouphub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/dalemusser/grouphub/internal/app/system/storage"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// GroupHub is a JSON API. The router mounts account and OAuth endpoints at
// the root, then the group hierarchy: /groups owns the nested member,
// join-request, course, and label subrouters, /courses owns materials, and
// /materials owns the per-material comment listing. The nested routers are
// built by their features and composed here so each feature keeps a single
// dependency container.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	files, err := storage.NewLocal(appCfg.StorageLocalPath)
	if err != nil {
		logger.Error("material storage init failed", zap.Error(err))
		return nil, err
	}

	// Create error logger for handlers.
	errLog := apierrors.NewErrorLogger(logger)

	db := deps.GroupHubMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.GroupHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account registration, login, logout
	accountsHandler := accountsfeature.NewHandler(db, sessionMgr, errLog, logger)
	r.Mount("/", accountsfeature.Routes(accountsHandler))

	// Google OAuth sign-in
	googleHandler := authgooglefeature.NewHandler(
		userstore.New(db), sessionMgr, errLog, oauthstate.New(db),
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Feature handlers for the group hierarchy
	groupsHandler := groupsfeature.NewHandler(db, errLog, logger)
	membersHandler := membersfeature.NewHandler(db, errLog, logger)
	joinReqHandler := joinrequestsfeature.NewHandler(db, errLog, logger)
	coursesHandler := coursesfeature.NewHandler(db, errLog, logger)
	labelsHandler := labelsfeature.NewHandler(db, errLog, logger)
	materialsHandler := materialsfeature.NewHandler(db, files, int64(appCfg.MaxUploadMB)<<20, errLog, logger)
	commentsHandler := commentsfeature.NewHandler(db, errLog, logger)

	// Groups and everything nested under /groups/{groupID}
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr,
		membersfeature.Routes(membersHandler),
		joinrequestsfeature.GroupRoutes(joinReqHandler),
		coursesfeature.GroupRoutes(coursesHandler),
		labelsfeature.Routes(labelsHandler)))

	// The signed-in user's own groups (owned plus joined)
	r.Group(func(pr chi.Router) {
		pr.Use(sessionMgr.RequireSignedIn)
		pr.Get("/user/groups", groupsHandler.ServeUserGroups)
	})

	// Responding to a join request addresses the request directly
	r.Mount("/join-requests", joinrequestsfeature.Routes(joinReqHandler, sessionMgr))

	// Courses and their materials
	r.Mount("/courses", coursesfeature.Routes(coursesHandler, sessionMgr,
		materialsfeature.CourseRoutes(materialsHandler)))

	// Materials addressed directly, with the per-material comment listing
	r.Mount("/materials", materialsfeature.Routes(materialsHandler, sessionMgr,
		commentsHandler.ServeListByMaterial))

	// Comment creation and editing
	r.Mount("/comments", commentsfeature.Routes(commentsHandler, sessionMgr))

	return r, nil
}

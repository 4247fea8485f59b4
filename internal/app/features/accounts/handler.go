// internal/app/features/accounts/handler.go
package accounts

import (
	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the accounts feature:
// password registration, login, and logout.
type Handler struct {
	DB       *mongo.Database
	Sessions *auth.SessionManager
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Sessions: sm,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// internal/app/features/materials/handler.go
package materials

import (
	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/system/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the materials feature:
// posting, reading, editing, labeling, and downloading course materials.
type Handler struct {
	DB       *mongo.Database
	Files    *storage.Local
	MaxBytes int64
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, files *storage.Local, maxBytes int64, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Files:    files,
		MaxBytes: maxBytes,
		ErrLog:   errLog,
		Log:      logger,
	}
}

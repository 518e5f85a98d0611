// Package activity records audit events for timeline views. Recording is
// best-effort: the triggering mutation is already committed, so a failed
// append is logged and swallowed, never surfaced to the caller.
package activity

import (
	"context"
	"encoding/json"

	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Notifier struct {
	repo   repository.ActivityRepositoryInterface
	logger *zap.Logger
}

func NewNotifier(repo repository.ActivityRepositoryInterface, logger *zap.Logger) *Notifier {
	return &Notifier{repo: repo, logger: logger}
}

// Record appends an activity entry. Errors are logged operationally and
// never returned.
func (n *Notifier) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]interface{}) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		n.logger.Warn("activity metadata marshal failed",
			zap.String("action", action),
			zap.Error(err))
		raw = []byte("{}")
	}

	entry := &model.ActivityLog{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   raw,
	}

	if err := n.repo.Create(ctx, entry); err != nil {
		n.logger.Warn("activity log append failed",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
	}
}

package services

import (
	"context"
	"log/slog"

	"github.com/anonto42/socially/internal/metrics"
	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/repositories"
)

// RelationKind names a toggleable edge.
type RelationKind string

const (
	RelationFollow RelationKind = "follow"
	RelationLike   RelationKind = "like"
)

// ToggleState is what a toggle did to the edge.
type ToggleState string

const (
	StateAdded   ToggleState = "added"
	StateRemoved ToggleState = "removed"
	// StateAlready means a concurrent request moved the edge into the state
	// this toggle was heading for; nothing was written.
	StateAlready ToggleState = "already_in_target_state"
)

// Outcome is the discriminated result of a toggle. Active is whether the
// edge exists afterwards; Notified is whether a notification row was written.
type Outcome struct {
	State    ToggleState `json:"state"`
	Active   bool        `json:"active"`
	Notified bool        `json:"notified"`
}

// Relation describes one kind of existence-based edge between an actor and a target.
type Relation interface {
	Kind() RelationKind
	NotificationType() models.NotificationType
	// Check rejects actor/target pairs the relation forbids.
	Check(actorID, targetID uint) error
	// Owner returns whose inbox is notified about the edge, or NotFound.
	Owner(ctx context.Context, s *repositories.Store, targetID uint) (uint, error)
	Exists(ctx context.Context, s *repositories.Store, actorID, targetID uint) (bool, error)
	Insert(ctx context.Context, s *repositories.Store, actorID, targetID uint) error
	Remove(ctx context.Context, s *repositories.Store, actorID, targetID uint) (bool, error)
	// PostRef is the post a notification about this edge points at, if any.
	PostRef(targetID uint) *uint
}

// ToggleEngine flips relation edges and emits the derived notification on creation.
type ToggleEngine struct {
	store  *repositories.Store
	logger *slog.Logger
}

func NewToggleEngine(store *repositories.Store, logger *slog.Logger) *ToggleEngine {
	return &ToggleEngine{store: store, logger: logger}
}

// Toggle removes the (actor, target) edge if it exists, otherwise inserts it
// together with a notification to the target's owner unless the owner is the
// actor. Insertion and notification commit or roll back together. Removal
// never writes a notification.
func (e *ToggleEngine) Toggle(ctx context.Context, actorID, targetID uint, rel Relation) (Outcome, error) {
	if err := rel.Check(actorID, targetID); err != nil {
		return Outcome{}, err
	}

	ownerID, err := rel.Owner(ctx, e.store, targetID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return Outcome{}, models.NewNotFoundError(targetName(rel.Kind()), targetID)
		}
		return Outcome{}, storageErr("toggle "+string(rel.Kind()), err)
	}

	exists, err := rel.Exists(ctx, e.store, actorID, targetID)
	if err != nil {
		return Outcome{}, storageErr("toggle "+string(rel.Kind()), err)
	}

	var out Outcome
	if exists {
		out, err = e.remove(ctx, actorID, targetID, rel)
	} else {
		out, err = e.add(ctx, actorID, targetID, ownerID, rel)
	}
	if err != nil {
		return Outcome{}, err
	}

	metrics.RelationToggles.WithLabelValues(string(rel.Kind()), string(out.State)).Inc()
	if out.Notified {
		metrics.NotificationsCreated.WithLabelValues(string(rel.NotificationType())).Inc()
	}
	e.logger.DebugContext(ctx, "relation toggled",
		slog.String("relation", string(rel.Kind())),
		slog.String("state", string(out.State)),
		idAttr("actor_id", actorID),
		idAttr("target_id", targetID),
	)
	return out, nil
}

func (e *ToggleEngine) remove(ctx context.Context, actorID, targetID uint, rel Relation) (Outcome, error) {
	removed, err := rel.Remove(ctx, e.store, actorID, targetID)
	if err != nil {
		return Outcome{}, storageErr("toggle "+string(rel.Kind()), err)
	}
	if !removed {
		return Outcome{State: StateAlready, Active: false}, nil
	}
	return Outcome{State: StateRemoved, Active: false}, nil
}

func (e *ToggleEngine) add(ctx context.Context, actorID, targetID, ownerID uint, rel Relation) (Outcome, error) {
	notify := ownerID != actorID
	err := e.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := rel.Insert(ctx, tx, actorID, targetID); err != nil {
			return err
		}
		if !notify {
			return nil
		}
		return tx.Notifications.CreateNotification(ctx, &models.Notification{
			UserID:    ownerID,
			CreatorID: actorID,
			Type:      rel.NotificationType(),
			PostID:    rel.PostRef(targetID),
		})
	})
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return Outcome{State: StateAlready, Active: true}, nil
		}
		return Outcome{}, storageErr("toggle "+string(rel.Kind()), err)
	}
	return Outcome{State: StateAdded, Active: true, Notified: notify}, nil
}

func targetName(kind RelationKind) string {
	if kind == RelationLike {
		return "Post"
	}
	return "User"
}

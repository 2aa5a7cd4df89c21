package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	gocache "github.com/patrickmn/go-cache"
	"github.com/openhoa/openhoa/internal/domain/notification"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/notify"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/samber/lo"
)

// CreateNotificationRequest fans a message out to a resolved recipient
// set: explicit user IDs plus the active holders of the named roles.
type CreateNotificationRequest struct {
	Title    string                     `json:"title" validate:"required"`
	Message  string                     `json:"message" validate:"required"`
	Level    types.NotificationLevel    `json:"level" validate:"required"`
	Category types.NotificationCategory `json:"category,omitempty"`
	Link     string                     `json:"link,omitempty"`
	UserIDs  []string                   `json:"user_ids,omitempty"`
	Roles    []types.Role               `json:"roles,omitempty"`
}

// NotificationService resolves recipients, persists one row per
// recipient, and pushes the message onto the live bus. Bus delivery is
// fire-and-forget relative to persistence.
type NotificationService interface {
	Create(ctx context.Context, req CreateNotificationRequest) ([]*notification.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*notification.Notification, error)
	MarkRead(ctx context.Context, id string) (*notification.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) error
}

type notificationService struct {
	ServiceParams
	roleCache *gocache.Cache
}

// NewNotificationService creates a new notification service
func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{
		ServiceParams: params,
		roleCache:     gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *notificationService) Create(ctx context.Context, req CreateNotificationRequest) ([]*notification.Notification, error) {
	if err := req.Level.Validate(); err != nil {
		return nil, err
	}
	if req.Title == "" || req.Message == "" {
		return nil, ierr.NewError("missing notification content").
			WithHint("Title and message are required").
			Mark(ierr.ErrValidation)
	}

	recipientIDs, err := s.resolveRecipients(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(recipientIDs) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	notifications := make([]*notification.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		n := &notification.Notification{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION),
			RecipientID: recipientID,
			Title:       req.Title,
			Message:     req.Message,
			Level:       req.Level,
			Category:    req.Category,
			Link:        req.Link,
			CreatedAt:   now,
		}
		if err := s.NotificationRepo.Create(ctx, n); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to persist notification").
				Mark(ierr.ErrDatabase)
		}
		notifications = append(notifications, n)
	}

	s.publish(ctx, notifications, req)

	return notifications, nil
}

// resolveRecipients merges explicit user IDs with active role holders
func (s *notificationService) resolveRecipients(ctx context.Context, req CreateNotificationRequest) ([]string, error) {
	recipientIDs := append([]string{}, req.UserIDs...)

	if len(req.Roles) > 0 {
		cacheKey := "roles:" + joinRoles(req.Roles)
		if cached, found := s.roleCache.Get(cacheKey); found {
			recipientIDs = append(recipientIDs, cached.([]string)...)
		} else {
			users, err := s.UserRepo.ListByRoles(ctx, req.Roles)
			if err != nil {
				return nil, ierr.WithError(err).
					WithHint("Failed to resolve role recipients").
					Mark(ierr.ErrDatabase)
			}
			roleIDs := make([]string, 0, len(users))
			for _, u := range users {
				if u.IsActive() {
					roleIDs = append(roleIDs, u.ID)
				}
			}
			s.roleCache.Set(cacheKey, roleIDs, gocache.DefaultExpiration)
			recipientIDs = append(recipientIDs, roleIDs...)
		}
	}

	return lo.Uniq(recipientIDs), nil
}

// publish pushes one envelope per recipient to the live bus, each
// carrying that recipient's own notification row ID. A publish failure
// is logged and swallowed: persistence already succeeded.
func (s *notificationService) publish(ctx context.Context, notifications []*notification.Notification, req CreateNotificationRequest) {
	for _, n := range notifications {
		envelope := notify.Envelope{
			NotificationID: n.ID,
			RecipientID:    n.RecipientID,
			Title:          req.Title,
			Message:        req.Message,
			Level:          string(req.Level),
			Category:       string(req.Category),
			Link:           req.Link,
		}

		payload, err := json.Marshal(envelope)
		if err != nil {
			s.Logger.Errorw("failed to encode notification envelope", "error", err)
			continue
		}

		msg := message.NewMessage(n.ID, payload)
		if err := s.PubSub.Publish(ctx, s.Config.Notification.Topic, msg); err != nil {
			s.Logger.Errorw("failed to publish notification to live bus",
				"error", err,
				"notification_id", n.ID,
			)
		}
	}
}

func (s *notificationService) ListByRecipient(ctx context.Context, recipientID string) ([]*notification.Notification, error) {
	return s.NotificationRepo.ListByRecipient(ctx, recipientID)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) (*notification.Notification, error) {
	n, err := s.NotificationRepo.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Notification not found").
			Mark(ierr.ErrNotFound)
	}

	// read_at is set at most once
	if n.IsRead() {
		return n, nil
	}

	now := time.Now().UTC()
	n.ReadAt = &now
	if err := s.NotificationRepo.Update(ctx, n); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to mark notification read").
			Mark(ierr.ErrDatabase)
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.NotificationRepo.MarkAllRead(ctx, recipientID)
}

func joinRoles(roles []types.Role) string {
	out := ""
	for _, r := range roles {
		out += string(r) + ","
	}
	return out
}

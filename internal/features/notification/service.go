package notification

import (
	"context"
	"fmt"

	"github.com/yahya12213/SiteManagement-sub007/internal/features/audit"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/request"

	"go.uber.org/zap"
)

type NotificationService interface {
	// TransitionRecorded receives a copy of every ApprovalEvent after its
	// transaction commits. Best-effort by contract: failures are logged, never
	// returned to the transition.
	TransitionRecorded(ctx context.Context, req *request.Request, event audit.ApprovalEvent, nextEligible []string)

	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string, userID string) error
}

type NotificationServiceImpl struct {
	Repo   NotificationRepository
	Hub    *Hub
	Logger *zap.Logger
}

func NewNotificationService(repo NotificationRepository, hub *Hub, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		Repo:   repo,
		Hub:    hub,
		Logger: logger,
	}
}

func (s *NotificationServiceImpl) TransitionRecorded(ctx context.Context, req *request.Request, event audit.ApprovalEvent, nextEligible []string) {
	notifType, title, message := describe(req, event)

	recipients := nextEligible
	if req.Status.Terminal() {
		// Terminal outcomes go back to the requester.
		recipients = []string{req.EmployeeID}
	}

	for _, userID := range recipients {
		n := Notification{
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      notifType,
			RequestID: req.ID,
			CreatedAt: event.OccurredAt,
		}
		if err := s.Repo.Create(ctx, n); err != nil {
			s.Logger.Warn("failed to persist notification",
				zap.String("user", userID),
				zap.String("request", req.ID.Hex()),
				zap.Error(err))
			continue
		}
		s.Hub.Push(userID, n)
	}
}

func describe(req *request.Request, event audit.ApprovalEvent) (NotificationType, string, string) {
	switch event.Decision {
	case audit.DecisionRejected:
		return NotificationTypeRejected,
			fmt.Sprintf("%s request rejected", req.RequestType),
			fmt.Sprintf("Your %s request was rejected at rank %d: %s", req.RequestType, event.Rank, event.Reason)
	case audit.DecisionCancelled:
		return NotificationTypeCancelled,
			fmt.Sprintf("%s request cancelled", req.RequestType),
			fmt.Sprintf("Your approved %s request was cancelled: %s", req.RequestType, event.Reason)
	case audit.DecisionApproved, audit.DecisionAutoApproved:
		if req.Status.Terminal() {
			return NotificationTypeApproved,
				fmt.Sprintf("%s request approved", req.RequestType),
				fmt.Sprintf("Your %s request is fully approved", req.RequestType)
		}
		return NotificationTypeDecisionNeeded,
			fmt.Sprintf("%s request awaiting your decision", req.RequestType),
			fmt.Sprintf("A %s request for %s needs a rank-%d decision", req.RequestType, req.EmployeeID, req.CurrentRank)
	default:
		return NotificationTypeDecisionNeeded,
			fmt.Sprintf("%s request submitted", req.RequestType),
			fmt.Sprintf("A %s request for %s needs a rank-%d decision", req.RequestType, req.EmployeeID, req.CurrentRank)
	}
}

func (s *NotificationServiceImpl) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	return s.Repo.ListByUser(ctx, userID, unreadOnly, 100)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string, userID string) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

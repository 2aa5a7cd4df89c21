package service

import (
	"encoding/json"
	"testing"

	"github.com/openhoa/openhoa/internal/domain/user"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/notify"
	"github.com/openhoa/openhoa/internal/testutil"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service NotificationService
}

func TestNotificationService(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewNotificationService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *NotificationServiceSuite) seedUser(id string, active bool, roles ...types.Role) {
	status := types.StatusActive
	if !active {
		status = types.StatusArchived
	}
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), &user.User{
		ID:    id,
		Email: id + "@example.com",
		Name:  "User " + id,
		Roles: roles,
		BaseModel: types.BaseModel{
			Status: status,
		},
	}))
}

func (s *NotificationServiceSuite) TestCreateResolvesRolesAndDeduplicates() {
	s.seedUser("user_board", true, types.RoleBoard)
	s.seedUser("user_treasurer", true, types.RoleTreasurer)
	s.seedUser("user_inactive", false, types.RoleBoard)

	// user_board appears both explicitly and via role; one row results
	created, err := s.service.Create(s.GetContext(), CreateNotificationRequest{
		Title:   "Budget approved",
		Message: "The 2026 operating budget was approved.",
		Level:   types.NotificationLevelInfo,
		UserIDs: []string{"user_board"},
		Roles:   []types.Role{types.RoleBoard, types.RoleTreasurer},
	})
	s.NoError(err)
	s.Len(created, 2)

	recipients := map[string]bool{}
	for _, n := range created {
		recipients[n.RecipientID] = true
	}
	s.True(recipients["user_board"])
	s.True(recipients["user_treasurer"])
	s.False(recipients["user_inactive"])
}

func (s *NotificationServiceSuite) TestCreatePublishesToLiveBus() {
	s.seedUser("user_board", true, types.RoleBoard)

	_, err := s.service.Create(s.GetContext(), CreateNotificationRequest{
		Title:   "Hearing scheduled",
		Message: "A violation hearing was scheduled.",
		Level:   types.NotificationLevelWarning,
		Roles:   []types.Role{types.RoleBoard},
	})
	s.NoError(err)

	published := s.GetPubSub().Messages(s.GetConfig().Notification.Topic)
	s.Len(published, 1)
}

func (s *NotificationServiceSuite) TestCreatePublishesPerRecipientEnvelopes() {
	s.seedUser("user_board", true, types.RoleBoard)
	s.seedUser("user_treasurer", true, types.RoleTreasurer)

	created, err := s.service.Create(s.GetContext(), CreateNotificationRequest{
		Title:   "Budget approved",
		Message: "The 2026 operating budget was approved.",
		Level:   types.NotificationLevelInfo,
		Roles:   []types.Role{types.RoleBoard, types.RoleTreasurer},
	})
	s.NoError(err)
	s.Len(created, 2)

	rowByRecipient := map[string]string{}
	for _, n := range created {
		rowByRecipient[n.RecipientID] = n.ID
	}

	// Each recipient's envelope names their own persisted row, so a
	// client can mark it read straight from the push
	published := s.GetPubSub().Messages(s.GetConfig().Notification.Topic)
	s.Len(published, 2)
	for _, msg := range published {
		var envelope notify.Envelope
		s.NoError(json.Unmarshal(msg.Payload, &envelope))
		s.Equal(rowByRecipient[envelope.RecipientID], envelope.NotificationID)
	}
}

func (s *NotificationServiceSuite) TestCreateValidatesContent() {
	_, err := s.service.Create(s.GetContext(), CreateNotificationRequest{
		Title: "missing message",
		Level: types.NotificationLevelInfo,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.Create(s.GetContext(), CreateNotificationRequest{
		Title:   "bad level",
		Message: "body",
		Level:   types.NotificationLevel("SHOUTING"),
	})
	s.Error(err)
}

func (s *NotificationServiceSuite) TestCreateWithNoRecipientsIsNoOp() {
	created, err := s.service.Create(s.GetContext(), CreateNotificationRequest{
		Title:   "nobody home",
		Message: "no recipients resolve",
		Level:   types.NotificationLevelInfo,
		Roles:   []types.Role{types.RoleAttorney},
	})
	s.NoError(err)
	s.Empty(created)
	s.Equal(0, s.GetStores().NotificationRepo.Count())
	s.Empty(s.GetPubSub().Messages(s.GetConfig().Notification.Topic))
}

func (s *NotificationServiceSuite) TestMarkReadIsSetOnce() {
	created, err := s.service.Create(s.GetContext(), CreateNotificationRequest{
		Title:   "Fine assessed",
		Message: "A fine was assessed.",
		Level:   types.NotificationLevelCritical,
		UserIDs: []string{"user_1"},
	})
	s.NoError(err)
	s.Len(created, 1)

	read, err := s.service.MarkRead(s.GetContext(), created[0].ID)
	s.NoError(err)
	s.NotNil(read.ReadAt)
	firstRead := *read.ReadAt

	again, err := s.service.MarkRead(s.GetContext(), created[0].ID)
	s.NoError(err)
	s.True(again.ReadAt.Equal(firstRead))
}

func (s *NotificationServiceSuite) TestMarkAllRead() {
	for i := 0; i < 3; i++ {
		_, err := s.service.Create(s.GetContext(), CreateNotificationRequest{
			Title:   "Update",
			Message: "status changed",
			Level:   types.NotificationLevelInfo,
			UserIDs: []string{"user_1"},
		})
		s.NoError(err)
	}

	s.NoError(s.service.MarkAllRead(s.GetContext(), "user_1"))

	rows, err := s.service.ListByRecipient(s.GetContext(), "user_1")
	s.NoError(err)
	s.Len(rows, 3)
	for _, n := range rows {
		s.True(n.IsRead())
	}
}

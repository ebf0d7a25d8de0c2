package services

import (
	"testing"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConversationFixture(t *testing.T) (*gorm.DB, *ConversationService, *capturePublisher) {
	db := testutil.NewTestDB(t)
	publisher := &capturePublisher{}
	service := NewConversationService(
		repositories.NewPostgresConversationRepository(db),
		repositories.NewPostgresMessageRepository(db),
		repositories.NewPostgresUserRepository(db),
		publisher,
	)
	return db, service, publisher
}

func privateRequest(otherID uint) models.CreateConversationRequest {
	return models.CreateConversationRequest{
		Type:           models.ConversationTypePrivate,
		ParticipantIDs: []uint{otherID},
	}
}

func TestCreatePrivateConversation(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	conv, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)
	assert.Equal(t, models.ConversationTypePrivate, conv.Type)
	assert.Equal(t, alice.ID, conv.CreatorID)
	require.Len(t, conv.Participants, 2)

	roles := map[uint]string{}
	for _, p := range conv.Participants {
		assert.True(t, p.IsActive)
		roles[p.UserID] = p.Role
	}
	assert.Equal(t, models.ParticipantRoleAdmin, roles[alice.ID])
	assert.Equal(t, models.ParticipantRoleMember, roles[bob.ID])
}

func TestCreatePrivateConversationIsIdempotentPerPair(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	first, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)

	// Same pair again, same side
	again, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// Same pair, other side
	fromBob, err := service.Create(bob.ID, privateRequest(alice.ID))
	require.NoError(t, err)
	assert.Equal(t, first.ID, fromBob.ID)

	var total int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestCreatePrivateConversationParticipantCount(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	_, err := service.Create(alice.ID, models.CreateConversationRequest{
		Type:           models.ConversationTypePrivate,
		ParticipantIDs: []uint{bob.ID, carol.ID},
	})
	assert.ErrorIs(t, err, ErrPrivateParticipantCount)

	_, err = service.Create(alice.ID, models.CreateConversationRequest{
		Type:           models.ConversationTypePrivate,
		ParticipantIDs: []uint{alice.ID},
	})
	assert.ErrorIs(t, err, ErrCannotConverseSelf)
}

func TestCreateConversationUnknownParticipantRejected(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	_, err := service.Create(alice.ID, privateRequest(424242))
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	_, err = service.Create(alice.ID, models.CreateConversationRequest{
		Type:           models.ConversationTypeGroup,
		Name:           "ghosts welcome",
		ParticipantIDs: []uint{bob.ID, 424242},
	})
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	var total int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestCreateGroupConversation(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	_, err := service.Create(alice.ID, models.CreateConversationRequest{
		Type:           models.ConversationTypeGroup,
		ParticipantIDs: []uint{bob.ID, carol.ID},
	})
	assert.ErrorIs(t, err, ErrGroupNameRequired)

	conv, err := service.Create(alice.ID, models.CreateConversationRequest{
		Type:           models.ConversationTypeGroup,
		Name:           "weekend plans",
		ParticipantIDs: []uint{bob.ID, carol.ID, alice.ID, bob.ID}, // creator and dup are skipped
	})
	require.NoError(t, err)
	assert.Equal(t, "weekend plans", conv.Name)
	assert.Len(t, conv.Participants, 3)
}

func TestLeaveThenCreateMakesFreshConversation(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	first, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)

	require.NoError(t, service.Leave(first.ID, bob.ID))

	// The old row survives with the leave markers
	var left models.ConversationParticipant
	require.NoError(t, db.Where("conversation_id = ? AND user_id = ?", first.ID, bob.ID).First(&left).Error)
	assert.False(t, left.IsActive)
	assert.NotNil(t, left.LeftAt)

	// A new create for the same pair does not resurrect the abandoned one
	fresh, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fresh.ID)
}

func TestLeaveRequiresActiveMembership(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	conv, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)

	assert.ErrorIs(t, service.Leave(conv.ID, carol.ID), ErrNotParticipant)

	require.NoError(t, service.Leave(conv.ID, bob.ID))
	// Leaving twice is also forbidden: the row is no longer active
	assert.ErrorIs(t, service.Leave(conv.ID, bob.ID), ErrNotParticipant)

	assert.ErrorIs(t, service.Leave(9999, alice.ID), ErrConversationNotFound)
}

func TestGetRequiresMembership(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	conv, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)

	_, err = service.Get(conv.ID, carol.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = service.Get(9999, alice.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	got, err := service.Get(conv.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)
}

func TestListConversations(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	first, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)
	_, err = service.Create(bob.ID, privateRequest(carol.ID))
	require.NoError(t, err)

	convs, err := service.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, first.ID, convs[0].ID)

	// A left conversation drops out of the listing
	require.NoError(t, service.Leave(first.ID, alice.ID))
	convs, err = service.List(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestSendMessageNotifiesOtherParticipants(t *testing.T) {
	db, service, publisher := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	conv, err := service.Create(alice.ID, models.CreateConversationRequest{
		Type:           models.ConversationTypeGroup,
		Name:           "plans",
		ParticipantIDs: []uint{bob.ID, carol.ID},
	})
	require.NoError(t, err)

	msg, err := service.SendMessage(alice.ID, conv.ID, "hello all")
	require.NoError(t, err)
	assert.Equal(t, "hello all", msg.Body)

	require.Len(t, publisher.messageEvents, 2)
	recipients := map[uint]bool{}
	for _, e := range publisher.messageEvents {
		assert.Equal(t, alice.ID, e.ActorID)
		assert.Equal(t, conv.ID, e.ConversationID)
		recipients[e.RecipientID] = true
	}
	assert.True(t, recipients[bob.ID])
	assert.True(t, recipients[carol.ID])

	// Outsiders cannot post
	dave := testutil.CreateUser(t, db, "dave")
	_, err = service.SendMessage(dave.ID, conv.ID, "let me in")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestListMessages(t *testing.T) {
	db, service, _ := newConversationFixture(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	conv, err := service.Create(alice.ID, privateRequest(bob.ID))
	require.NoError(t, err)

	for _, body := range []string{"one", "two", "three"} {
		_, err := service.SendMessage(alice.ID, conv.ID, body)
		require.NoError(t, err)
	}

	messages, total, err := service.ListMessages(bob.ID, conv.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, messages, 2)

	carol := testutil.CreateUser(t, db, "carol")
	_, _, err = service.ListMessages(carol.ID, conv.ID, 1, 10)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

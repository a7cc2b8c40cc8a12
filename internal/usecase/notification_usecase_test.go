package usecase

import (
	"context"
	"testing"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

func seedNotification(t *testing.T, env *testEnv, userID uuid.UUID, read bool) *entity.Notification {
	t.Helper()
	notification := &entity.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    entity.NotificationSystem,
		Title:   "Test",
		Message: "test message",
		Read:    read,
	}
	if err := env.db.Create(notification).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return notification
}

func TestNotificationUnreadViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	other := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	first := seedNotification(t, env, patient.ID, false)
	second := seedNotification(t, env, patient.ID, false)
	seedNotification(t, env, patient.ID, true)
	seedNotification(t, env, other.ID, false)

	unread, err := env.notifications.FindUnread(ctx, patient.ID)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if unread.Total != 2 {
		t.Fatalf("unread list: got %d notifications, want 2", unread.Total)
	}
	for _, n := range unread.Notifications {
		if n.Read {
			t.Errorf("unread list contains read notification %s", n.ID)
		}
	}

	count, err := env.notifications.UnreadCount(ctx, patient.ID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count.Unread != 2 {
		t.Fatalf("unread count: got %d, want 2", count.Unread)
	}

	// Marking one read shrinks both views; the other user is untouched.
	if err := env.notifications.MarkRead(ctx, patient.ID, []uuid.UUID{first.ID}); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	count, err = env.notifications.UnreadCount(ctx, patient.ID)
	if err != nil {
		t.Fatalf("unread count after mark: %v", err)
	}
	if count.Unread != 1 {
		t.Fatalf("unread count after mark: got %d, want 1", count.Unread)
	}
	unread, err = env.notifications.FindUnread(ctx, patient.ID)
	if err != nil {
		t.Fatalf("list unread after mark: %v", err)
	}
	if unread.Total != 1 || unread.Notifications[0].ID != second.ID {
		t.Fatalf("unread list after mark: got %d notifications, want only the remaining one", unread.Total)
	}

	otherCount, err := env.notifications.UnreadCount(ctx, other.ID)
	if err != nil {
		t.Fatalf("other user unread count: %v", err)
	}
	if otherCount.Unread != 1 {
		t.Fatalf("other user unread count: got %d, want 1", otherCount.Unread)
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	for i := 0; i < 3; i++ {
		seedNotification(t, env, patient.ID, false)
	}

	if err := env.notifications.MarkAllRead(ctx, patient.ID); err != nil {
		t.Fatalf("mark all read: %v", err)
	}

	count, err := env.notifications.UnreadCount(ctx, patient.ID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count.Unread != 0 {
		t.Fatalf("unread count after mark all: got %d, want 0", count.Unread)
	}
}

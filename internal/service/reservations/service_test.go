package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	profileRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/profile"
	reservationRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/reservation"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation

	updatedStatus    *domain.ReservationStatus
	approvedBy       *int64
	cancelledStatus  *domain.ReservationStatus
	cancelledReason  string
	bulkCancelledIDs []int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetWithFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0, len(f.reservations))
	for _, r := range f.reservations {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeReservationRepo) Approve(_ context.Context, _ int64, approverID int64) error {
	f.approvedBy = &approverID
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, _ int64, status domain.ReservationStatus, reason string) error {
	f.cancelledStatus = &status
	f.cancelledReason = reason
	return nil
}

func (f *fakeReservationRepo) CancelAllActiveForProfile(_ context.Context, _ int64, _ string) ([]int64, error) {
	return f.bulkCancelledIDs, nil
}

type fakeProfileRepo struct {
	profiles map[int64]*domain.MemberProfile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id int64) (*domain.MemberProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

type fakeNotifyClient struct {
	sent []notifyservice.Notification
}

func (f *fakeNotifyClient) Notify(_ context.Context, n notifyservice.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка тестовых данных

func testReservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           100,
		ProfileID:    10,
		MembershipID: 1,
		BookedByID:   10,
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("10:00"),
		EndTime:      types.TimeString("10:45"),
		Status:       status,
		ServiceName:  "Masaje relajante",
	}
}

func familyProfiles() map[int64]*domain.MemberProfile {
	return map[int64]*domain.MemberProfile{
		1: {
			ID: 1, MembershipID: 1, Role: domain.RoleTitular, IsActive: true,
			FirstName: "Jorge", LastName: "Rivas",
			Permissions: domain.DefaultPermissions(domain.RoleTitular, false),
		},
		10: {
			ID: 10, MembershipID: 1, Role: domain.RoleHijo, IsMinor: true, IsActive: true,
			FirstName: "Diego", LastName: "Rivas",
			Permissions: domain.DefaultPermissions(domain.RoleHijo, true),
		},
		50: {
			ID: 50, MembershipID: 2, Role: domain.RoleTitular, IsActive: true,
			FirstName: "Marta", LastName: "Solís",
			Permissions: domain.DefaultPermissions(domain.RoleTitular, false),
		},
	}
}

func newTestService(repo *fakeReservationRepo, notify *fakeNotifyClient) *Service {
	return NewService(repo, &fakeProfileRepo{profiles: familyProfiles()}, notify, nopLogger{})
}

// Тесты

func TestGetByID_OwnerAccess(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	resp, err := svc.GetByID(context.Background(), 100, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "confirmada", resp.Status)
}

func TestGetByID_TitularSameMembership(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	_, err := svc.GetByID(context.Background(), 100, 1)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	_, err := svc.GetByID(context.Background(), 100, 50)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_Confirmed(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Cancel(context.Background(), 100, &models.CancelReservationRequest{
		ActorID: 10,
		Reason:  "cambio de planes",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.cancelledStatus)
	assert.Equal(t, domain.StatusCancelled, *repo.cancelledStatus)
	assert.Equal(t, "cambio de planes", repo.cancelledReason)
}

func TestCancel_TerminalStatusRejected(t *testing.T) {
	for _, status := range domain.TerminalStatuses {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
				100: testReservation(status),
			}}
			svc := newTestService(repo, &fakeNotifyClient{})

			err := svc.Cancel(context.Background(), 100, &models.CancelReservationRequest{ActorID: 10})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			// Репозиторий не трогаем
			assert.Nil(t, repo.cancelledStatus)
		})
	}
}

func TestCancel_ByTitularNotifiesOwner(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusConfirmed),
	}}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	err := svc.Cancel(context.Background(), 100, &models.CancelReservationRequest{ActorID: 1})

	require.NoError(t, err)
	require.Len(t, notify.sent, 1)
	assert.Equal(t, int64(10), notify.sent[0].ProfileID)
	assert.Equal(t, notifyservice.KindReservationCanceled, notify.sent[0].Kind)
}

func TestApprove_PendingByTitular(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusPendingApproval),
	}}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	err := svc.Approve(context.Background(), 100, 1)

	require.NoError(t, err)
	require.NotNil(t, repo.approvedBy)
	assert.Equal(t, int64(1), *repo.approvedBy)
	require.Len(t, notify.sent, 1)
	assert.Equal(t, notifyservice.KindReservationApproved, notify.sent[0].Kind)
}

func TestApprove_MinorWithoutPermissionDenied(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusPendingApproval),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	// Профиль 10 - несовершеннолетний без can_approve_reservations
	err := svc.Approve(context.Background(), 100, 10)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestApprove_ConfirmedRejected(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Approve(context.Background(), 100, 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject_Pending(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusPendingApproval),
	}}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	err := svc.Reject(context.Background(), 100, &models.RejectReservationRequest{
		ActorID: 1,
		Reason:  "muy tarde",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.cancelledStatus)
	assert.Equal(t, domain.StatusRejected, *repo.cancelledStatus)
	require.Len(t, notify.sent, 1)
	assert.Equal(t, notifyservice.KindReservationRejected, notify.sent[0].Kind)
}

func TestComplete_Confirmed(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Complete(context.Background(), 100)

	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.updatedStatus)
}

func TestComplete_CancelledRejected(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		100: testReservation(domain.StatusCancelled),
	}}
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Complete(context.Background(), 100)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelAllForProfile(t *testing.T) {
	repo := &fakeReservationRepo{bulkCancelledIDs: []int64{100, 101, 102}}
	svc := newTestService(repo, &fakeNotifyClient{})

	count, err := svc.CancelAllForProfile(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
	svc := newTestService(repo, &fakeNotifyClient{})

	_, err := svc.GetByID(context.Background(), 999, 10)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

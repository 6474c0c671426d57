package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	profileRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/profile"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/memberservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
	"github.com/clubaltavista/CDA-ReservationService/pkg/ptr"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	staffReservations   []*domain.Reservation
	serviceReservations []*domain.Reservation
	created             *domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	res.ID = 100
	res.CreatedAt = time.Now()
	f.created = res
	return res, nil
}

func (f *fakeReservationRepo) GetWithFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	if filter.ServiceID != nil {
		return f.serviceReservations, nil
	}
	return f.staffReservations, nil
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

func (f *fakeProfileRepo) GetByMembershipID(_ context.Context, membershipID int64) ([]*domain.MemberProfile, error) {
	var out []*domain.MemberProfile
	for _, p := range f.profiles {
		if p.MembershipID == membershipID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCatalogClient struct {
	service  *catalogservice.Service
	resource *catalogservice.Resource
	hours    *catalogservice.UnitHours
}

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	if f.service == nil {
		return nil, catalogservice.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeCatalogClient) GetResource(_ context.Context, _ int64) (*catalogservice.Resource, error) {
	if f.resource == nil {
		return nil, catalogservice.ErrResourceNotFound
	}
	return f.resource, nil
}

func (f *fakeCatalogClient) GetUnitOperatingHours(_ context.Context, _ int64, _ time.Time) (*catalogservice.UnitHours, error) {
	return f.hours, nil
}

type fakeStaffClient struct {
	schedule *staffservice.StaffSchedule
}

func (f *fakeStaffClient) GetSchedule(_ context.Context, _ int64, _ time.Time) (*staffservice.StaffSchedule, error) {
	return f.schedule, nil
}

type fakeMemberClient struct {
	membership *memberservice.Membership
}

func (f *fakeMemberClient) GetMembership(_ context.Context, _ int64) (*memberservice.Membership, error) {
	if f.membership == nil {
		return nil, memberservice.ErrMembershipNotFound
	}
	return f.membership, nil
}

type fakeNotifyClient struct {
	sent []notifyservice.Notification
}

func (f *fakeNotifyClient) Notify(_ context.Context, n notifyservice.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type fakePermissionEvaluator struct {
	requiresApproval bool
	err              error
}

func (f *fakePermissionEvaluator) Execute(_ context.Context, _ *evaluate_permission.Request) (*evaluate_permission.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &evaluate_permission.Response{Allowed: true, RequiresApproval: f.requiresApproval}, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка тестовых данных

type testDeps struct {
	reservations *fakeReservationRepo
	profiles     *fakeProfileRepo
	catalog      *fakeCatalogClient
	staff        *fakeStaffClient
	members      *fakeMemberClient
	notify       *fakeNotifyClient
	evaluator    *fakePermissionEvaluator
}

func defaultDeps() *testDeps {
	week := domain.WeekSchedule{}
	for i := range week {
		week[i] = &domain.DayWindow{Start: "09:00", End: "18:00"}
	}

	return &testDeps{
		reservations: &fakeReservationRepo{},
		profiles: &fakeProfileRepo{profiles: map[int64]*domain.MemberProfile{
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
		}},
		catalog: &fakeCatalogClient{
			service: &catalogservice.Service{
				ID:              5,
				UnitID:          1,
				Name:            "Masaje relajante",
				Category:        "spa",
				DurationMinutes: 45,
				Price:           ptr.Ptr(1500.0),
				IsActive:        true,
				StaffIDs:        []int64{20},
			},
		},
		staff:     &fakeStaffClient{schedule: &staffservice.StaffSchedule{Template: week}},
		members:   &fakeMemberClient{membership: &memberservice.Membership{ID: 1, Status: memberservice.MembershipActive}},
		notify:    &fakeNotifyClient{},
		evaluator: &fakePermissionEvaluator{},
	}
}

func newTestUseCase(d *testDeps) *UseCase {
	uc := NewUseCase(d.reservations, d.profiles, d.catalog, d.staff, d.members,
		d.notify, d.evaluator, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)}
	return uc
}

func serviceRequest() *Request {
	return &Request{
		BookedByID: 1,
		ProfileID:  1,
		ServiceID:  ptr.Ptr(int64(5)),
		StaffID:    ptr.Ptr(int64(20)),
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

// Тесты

func TestExecute_ConfirmedReservation(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	resp, err := uc.Execute(context.Background(), serviceRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	assert.False(t, resp.RequiresApproval)
	assert.Equal(t, "Masaje relajante", resp.ServiceName)
	assert.InDelta(t, 1500.0, resp.ServicePrice, 0.001)
	assert.Empty(t, deps.notify.sent)
}

func TestExecute_PendingApprovalNotifiesApprovers(t *testing.T) {
	deps := defaultDeps()
	deps.evaluator.requiresApproval = true
	uc := newTestUseCase(deps)

	req := serviceRequest()
	req.BookedByID = 10
	req.ProfileID = 10
	deps.catalog.service.Category = "deportes"

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingApproval), resp.Status)
	assert.True(t, resp.RequiresApproval)

	// Уведомлён титуляр, но не сам владелец
	require.Len(t, deps.notify.sent, 1)
	assert.Equal(t, int64(1), deps.notify.sent[0].ProfileID)
	assert.Equal(t, notifyservice.KindApprovalRequested, deps.notify.sent[0].Kind)
}

func TestExecute_ConflictAtWriteTime(t *testing.T) {
	deps := defaultDeps()
	// Существующая резервация 10:30-11:15 пересекает блок 10:00-10:55
	deps.reservations.staffReservations = []*domain.Reservation{
		{ID: 99, StartTime: "10:30", EndTime: "11:15", Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), serviceRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, deps.reservations.created)
}

func TestExecute_BufferConflictAtWriteTime(t *testing.T) {
	deps := defaultDeps()
	// Резервация 10:50-11:35 не пересекает сам слот 10:00-10:45,
	// но попадает в его буфер подготовки (блок до 10:55)
	deps.reservations.staffReservations = []*domain.Reservation{
		{ID: 99, StartTime: "10:50", EndTime: "11:35", Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), serviceRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CapacityCeilingAtWriteTime(t *testing.T) {
	deps := defaultDeps()
	deps.catalog.service.MaxConcurrent = ptr.Ptr(1)
	// Другой сотрудник уже занят этой услугой в пересекающемся интервале
	deps.reservations.serviceReservations = []*domain.Reservation{
		{ID: 98, StartTime: "10:00", EndTime: "10:45", Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), serviceRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, deps.reservations.created)
}

func TestExecute_MinorCannotBookForOthers(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	req := serviceRequest()
	req.BookedByID = 10 // hijo бронирует за титуляра
	req.ProfileID = 1

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestExecute_TitularBooksForMinor(t *testing.T) {
	deps := defaultDeps()
	deps.catalog.service.Category = "deportes"
	uc := newTestUseCase(deps)

	req := serviceRequest()
	req.BookedByID = 1
	req.ProfileID = 10

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ProfileID)
	assert.Equal(t, int64(1), resp.BookedByID)
}

func TestExecute_SuspendedMembership(t *testing.T) {
	deps := defaultDeps()
	deps.members.membership.Status = memberservice.MembershipSuspended
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), serviceRequest())

	assert.ErrorIs(t, err, ErrMembershipNotActive)
}

func TestExecute_StaffNotAssigned(t *testing.T) {
	deps := defaultDeps()
	deps.catalog.service.StaffIDs = []int64{21}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), serviceRequest())

	assert.ErrorIs(t, err, ErrStaffNotAssigned)
}

func TestExecute_OutsideStaffWindow(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	// Окно сотрудника до 18:00, блок 17:30+55 не помещается
	req := serviceRequest()
	req.StartTime = types.TimeString("17:30")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrStaffNotWorking)
}

func TestExecute_StaffOnVacation(t *testing.T) {
	deps := defaultDeps()
	deps.staff.schedule.Override = &domain.ScheduleOverride{Kind: domain.OverrideVacation}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), serviceRequest())

	assert.ErrorIs(t, err, ErrStaffNotWorking)
}

func TestExecute_PastDate(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	req := serviceRequest()
	req.Date = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PermissionDenialPassedThrough(t *testing.T) {
	deps := defaultDeps()
	deps.evaluator.err = evaluate_permission.ErrSpendingLimitExceeded
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), serviceRequest())

	assert.ErrorIs(t, err, evaluate_permission.ErrSpendingLimitExceeded)
	assert.Nil(t, deps.reservations.created)
}

func TestExecute_ResourceReservation(t *testing.T) {
	deps := defaultDeps()
	deps.catalog.resource = &catalogservice.Resource{
		ID:       7,
		UnitID:   1,
		Code:     "CANCHA-02",
		Name:     "Cancha de tenis 2",
		Category: "deportes",
		IsActive: true,
	}
	uc := newTestUseCase(deps)

	req := &Request{
		BookedByID: 1,
		ProfileID:  1,
		ResourceID: ptr.Ptr(int64(7)),
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, domain.ResourceSlotMinutes, resp.DurationMinutes)
	assert.Zero(t, resp.ServicePrice)
}

func TestExecute_ValidationRejectsBothTargets(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	req := serviceRequest()
	req.ResourceID = ptr.Ptr(int64(7))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

package generate_settlements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
	"github.com/clubaltavista/CDA-ReservationService/pkg/ptr"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	completed map[int64][]*domain.Reservation
	err       error
}

func (f *fakeReservationRepo) GetCompletedByStaffInPeriod(_ context.Context, staffID int64, _, _ time.Time) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.completed[staffID], nil
}

type fakeSettlementRepo struct {
	existing map[int64]bool
	created  []*domain.StaffSettlement
	nextID   int64
}

func (f *fakeSettlementRepo) Create(_ context.Context, s *domain.StaffSettlement) (*domain.StaffSettlement, error) {
	f.nextID++
	s.ID = f.nextID
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeSettlementRepo) ExistsForStaffAndPeriod(_ context.Context, staffID int64, _, _ time.Time) (bool, error) {
	return f.existing[staffID], nil
}

type fakeStaffClient struct {
	staff []staffservice.StaffMember
	err   error
}

func (f *fakeStaffClient) ListIndependentStaff(_ context.Context, _ int64) ([]staffservice.StaffMember, error) {
	return f.staff, f.err
}

type fakePaymentClient struct {
	paid map[int64]float64
	err  error
}

func (f *fakePaymentClient) GetPaidAmounts(_ context.Context, _ []int64) (map[int64]float64, error) {
	return f.paid, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRequest() *Request {
	return &Request{
		UnitID:      1,
		PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func completedReservation(id int64) *domain.Reservation {
	return &domain.Reservation{ID: id, Status: domain.StatusCompleted}
}

func TestExecute_CommissionScheme(t *testing.T) {
	reservations := &fakeReservationRepo{
		completed: map[int64][]*domain.Reservation{
			20: {completedReservation(1), completedReservation(2), completedReservation(3)},
		},
	}
	settlements := &fakeSettlementRepo{existing: map[int64]bool{}}
	staff := &fakeStaffClient{
		staff: []staffservice.StaffMember{
			{ID: 20, EmploymentType: staffservice.EmploymentIndependent, CommissionRate: ptr.Ptr(0.7)},
		},
	}
	// Резервация 3 без оплаченного платежа - в расчёт не входит
	payments := &fakePaymentClient{paid: map[int64]float64{1: 800, 2: 1200}}

	uc := NewUseCase(reservations, settlements, staff, payments, nopLogger{})
	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	assert.Equal(t, 0, resp.Skipped)

	s := resp.Created[0]
	assert.Equal(t, domain.SettlementCommission, s.Type)
	assert.Equal(t, 2, s.TotalServices)
	assert.InDelta(t, 2000.0, s.GrossRevenue, 0.001)
	assert.InDelta(t, 1400.0, s.StaffPayout, 0.001)    // 2000 * 0.7
	assert.InDelta(t, 600.0, s.ClubCommission, 0.001)  // 2000 - 1400
	assert.Equal(t, domain.SettlementPending, s.Status)
}

func TestExecute_FixedRentScheme(t *testing.T) {
	reservations := &fakeReservationRepo{}
	settlements := &fakeSettlementRepo{existing: map[int64]bool{}}
	staff := &fakeStaffClient{
		staff: []staffservice.StaffMember{
			{ID: 30, EmploymentType: staffservice.EmploymentIndependent, FixedRent: ptr.Ptr(5000.0)},
		},
	}
	payments := &fakePaymentClient{}

	uc := NewUseCase(reservations, settlements, staff, payments, nopLogger{})
	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, resp.Created, 1)

	s := resp.Created[0]
	assert.Equal(t, domain.SettlementFixedRent, s.Type)
	assert.Equal(t, 0, s.TotalServices)
	assert.Zero(t, s.GrossRevenue)
	assert.InDelta(t, 5000.0, s.ClubCommission, 0.001)
	assert.Zero(t, s.StaffPayout)
}

func TestExecute_IdempotentSkip(t *testing.T) {
	reservations := &fakeReservationRepo{
		completed: map[int64][]*domain.Reservation{20: {completedReservation(1)}},
	}
	settlements := &fakeSettlementRepo{existing: map[int64]bool{20: true}}
	staff := &fakeStaffClient{
		staff: []staffservice.StaffMember{
			{ID: 20, CommissionRate: ptr.Ptr(0.7)},
		},
	}
	payments := &fakePaymentClient{paid: map[int64]float64{1: 800}}

	uc := NewUseCase(reservations, settlements, staff, payments, nopLogger{})
	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
}

func TestExecute_NoRevenueSkipped(t *testing.T) {
	reservations := &fakeReservationRepo{completed: map[int64][]*domain.Reservation{}}
	settlements := &fakeSettlementRepo{existing: map[int64]bool{}}
	staff := &fakeStaffClient{
		staff: []staffservice.StaffMember{
			{ID: 20, CommissionRate: ptr.Ptr(0.7)},
		},
	}
	payments := &fakePaymentClient{}

	uc := NewUseCase(reservations, settlements, staff, payments, nopLogger{})
	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
}

func TestExecute_NoSchemeSkipped(t *testing.T) {
	reservations := &fakeReservationRepo{}
	settlements := &fakeSettlementRepo{existing: map[int64]bool{}}
	staff := &fakeStaffClient{
		staff: []staffservice.StaffMember{{ID: 40}},
	}
	payments := &fakePaymentClient{}

	uc := NewUseCase(reservations, settlements, staff, payments, nopLogger{})
	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
}

func TestExecute_PerStaffErrorDoesNotAbortBatch(t *testing.T) {
	reservations := &fakeReservationRepo{
		completed: map[int64][]*domain.Reservation{
			20: {completedReservation(1)},
		},
	}
	settlements := &fakeSettlementRepo{existing: map[int64]bool{}}
	staff := &fakeStaffClient{
		staff: []staffservice.StaffMember{
			{ID: 20, CommissionRate: ptr.Ptr(0.7)},
			{ID: 30, FixedRent: ptr.Ptr(5000.0)},
		},
	}
	// Платёжный сервис падает - комиссионный сотрудник пропущен,
	// сотрудник на ренте (платежи не нужны) рассчитан
	payments := &fakePaymentClient{err: errors.New("payment ledger unavailable")}

	uc := NewUseCase(reservations, settlements, staff, payments, nopLogger{})
	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	assert.Equal(t, int64(30), resp.Created[0].StaffID)
	assert.Equal(t, 1, resp.Skipped)
}

func TestExecute_InvalidPeriod(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeSettlementRepo{}, &fakeStaffClient{}, &fakePaymentClient{}, nopLogger{})

	req := testRequest()
	req.PeriodStart, req.PeriodEnd = req.PeriodEnd, req.PeriodStart

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

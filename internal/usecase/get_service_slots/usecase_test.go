package get_service_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
	"github.com/clubaltavista/CDA-ReservationService/pkg/ptr"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	staffReservations   map[int64][]*domain.Reservation
	serviceReservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetWithFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	if filter.StaffID != nil {
		return f.staffReservations[*filter.StaffID], nil
	}
	return f.serviceReservations, nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	hours   *catalogservice.UnitHours
	err     error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return f.service, f.err
}

func (f *fakeCatalogClient) GetUnitOperatingHours(_ context.Context, _ int64, _ time.Time) (*catalogservice.UnitHours, error) {
	return f.hours, nil
}

type fakeStaffClient struct {
	members   map[int64]*staffservice.StaffMember
	schedules map[int64]*staffservice.StaffSchedule
}

func (f *fakeStaffClient) GetStaffMember(_ context.Context, staffID int64) (*staffservice.StaffMember, error) {
	member, ok := f.members[staffID]
	if !ok {
		return nil, staffservice.ErrStaffNotFound
	}
	return member, nil
}

func (f *fakeStaffClient) GetSchedule(_ context.Context, staffID int64, _ time.Time) (*staffservice.StaffSchedule, error) {
	return f.schedules[staffID], nil
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

// Вспомогательная сборка

func fullWeekSchedule(start, end string) *staffservice.StaffSchedule {
	var template domain.WeekSchedule
	for i := range template {
		template[i] = &domain.DayWindow{
			Start: types.TimeString(start),
			End:   types.TimeString(end),
		}
	}
	return &staffservice.StaffSchedule{Template: template}
}

func testService(staffIDs ...int64) *catalogservice.Service {
	return &catalogservice.Service{
		ID:              5,
		UnitID:          1,
		Name:            "Masaje relajante",
		Category:        "spa",
		DurationMinutes: 45,
		IsActive:        true,
		StaffIDs:        staffIDs,
	}
}

func newTestUseCase(repo *fakeReservationRepo, catalog *fakeCatalogClient, staff *fakeStaffClient) *UseCase {
	uc := NewUseCase(repo, catalog, staff, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)}
	return uc
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestExecute_GridWithBuffer(t *testing.T) {
	// Услуга 45 минут, буфер 10 => шаг 55. Окно юнита 09:00-11:00:
	// кандидаты 09:00 (конец 09:55) и 09:55 (конец 10:50), 10:50 уже не влезает
	repo := &fakeReservationRepo{staffReservations: map[int64][]*domain.Reservation{}}
	catalog := &fakeCatalogClient{
		service: testService(20),
		hours:   &catalogservice.UnitHours{Open: "09:00", Close: "11:00"},
	}
	staff := &fakeStaffClient{
		members: map[int64]*staffservice.StaffMember{
			20: {ID: 20, FullName: "Carlos Jiménez", IsActive: true},
		},
		schedules: map[int64]*staffservice.StaffSchedule{
			20: fullWeekSchedule("07:00", "22:00"),
		},
	}

	uc := newTestUseCase(repo, catalog, staff)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(20), resp.Staff[0].StaffID)
	assert.Equal(t, "Carlos Jiménez", resp.Staff[0].StaffName)
	assert.Equal(t, []string{"09:00", "09:55"}, slotStrings(resp.Staff[0].Slots))
	assert.Equal(t, 45, resp.DurationMinutes)
}

func TestExecute_StaffConflictIncludesBuffer(t *testing.T) {
	// Резервация сотрудника 09:00-09:45 блокирует кандидата 09:00:
	// интервал кандидата с буфером [09:00, 09:55) пересекается
	repo := &fakeReservationRepo{
		staffReservations: map[int64][]*domain.Reservation{
			20: {
				{
					StaffID:   ptr.Ptr(int64(20)),
					StartTime: types.TimeString("09:00"),
					EndTime:   types.TimeString("09:45"),
					Status:    domain.StatusConfirmed,
				},
			},
		},
	}
	catalog := &fakeCatalogClient{
		service: testService(20),
		hours:   &catalogservice.UnitHours{Open: "09:00", Close: "11:00"},
	}
	staff := &fakeStaffClient{
		members: map[int64]*staffservice.StaffMember{
			20: {ID: 20, FullName: "Carlos Jiménez", IsActive: true},
		},
		schedules: map[int64]*staffservice.StaffSchedule{
			20: fullWeekSchedule("07:00", "22:00"),
		},
	}

	uc := newTestUseCase(repo, catalog, staff)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, []string{"09:55"}, slotStrings(resp.Staff[0].Slots))
}

func TestExecute_StaffWindowIntersection(t *testing.T) {
	// Юнит 07:00-22:00 по умолчанию, сотрудник работает с 10:00:
	// сетка начинается с 10:00
	repo := &fakeReservationRepo{staffReservations: map[int64][]*domain.Reservation{}}
	catalog := &fakeCatalogClient{service: testService(20)}
	staff := &fakeStaffClient{
		members: map[int64]*staffservice.StaffMember{
			20: {ID: 20, FullName: "Carlos Jiménez", IsActive: true},
		},
		schedules: map[int64]*staffservice.StaffSchedule{
			20: fullWeekSchedule("10:00", "12:00"),
		},
	}

	uc := newTestUseCase(repo, catalog, staff)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, []string{"10:00", "10:55"}, slotStrings(resp.Staff[0].Slots))
}

func TestExecute_FullyBookedStaffOmitted(t *testing.T) {
	// Сотрудник 21 полностью занят - в ответе только сотрудник 20
	repo := &fakeReservationRepo{
		staffReservations: map[int64][]*domain.Reservation{
			21: {
				{
					StaffID:   ptr.Ptr(int64(21)),
					StartTime: types.TimeString("09:00"),
					EndTime:   types.TimeString("11:00"),
					Status:    domain.StatusConfirmed,
				},
			},
		},
	}
	catalog := &fakeCatalogClient{
		service: testService(20, 21),
		hours:   &catalogservice.UnitHours{Open: "09:00", Close: "11:00"},
	}
	staff := &fakeStaffClient{
		members: map[int64]*staffservice.StaffMember{
			20: {ID: 20, FullName: "Carlos Jiménez", IsActive: true},
			21: {ID: 21, FullName: "Lucía Peña", IsActive: true},
		},
		schedules: map[int64]*staffservice.StaffSchedule{
			20: fullWeekSchedule("07:00", "22:00"),
			21: fullWeekSchedule("07:00", "22:00"),
		},
	}

	uc := newTestUseCase(repo, catalog, staff)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(20), resp.Staff[0].StaffID)
}

func TestExecute_DeactivatedStaffSkipped(t *testing.T) {
	// Сотрудник 99 не найден в StaffService - пропускаем без ошибки
	repo := &fakeReservationRepo{staffReservations: map[int64][]*domain.Reservation{}}
	catalog := &fakeCatalogClient{
		service: testService(20, 99),
		hours:   &catalogservice.UnitHours{Open: "09:00", Close: "11:00"},
	}
	staff := &fakeStaffClient{
		members: map[int64]*staffservice.StaffMember{
			20: {ID: 20, FullName: "Carlos Jiménez", IsActive: true},
		},
		schedules: map[int64]*staffservice.StaffSchedule{
			20: fullWeekSchedule("07:00", "22:00"),
		},
	}

	uc := newTestUseCase(repo, catalog, staff)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(20), resp.Staff[0].StaffID)
}

func TestExecute_CapacityCeiling(t *testing.T) {
	// max_concurrent=1: слот 09:00 занят другой записью на эту же услугу
	// у другого сотрудника
	repo := &fakeReservationRepo{
		staffReservations: map[int64][]*domain.Reservation{},
		serviceReservations: []*domain.Reservation{
			{
				ServiceID: ptr.Ptr(int64(5)),
				StaffID:   ptr.Ptr(int64(21)),
				StartTime: types.TimeString("09:00"),
				EndTime:   types.TimeString("09:45"),
				Status:    domain.StatusConfirmed,
			},
		},
	}
	service := testService(20)
	service.MaxConcurrent = ptr.Ptr(1)
	catalog := &fakeCatalogClient{
		service: service,
		hours:   &catalogservice.UnitHours{Open: "09:00", Close: "11:00"},
	}
	staff := &fakeStaffClient{
		members: map[int64]*staffservice.StaffMember{
			20: {ID: 20, FullName: "Carlos Jiménez", IsActive: true},
		},
		schedules: map[int64]*staffservice.StaffSchedule{
			20: fullWeekSchedule("07:00", "22:00"),
		},
	}

	uc := newTestUseCase(repo, catalog, staff)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, []string{"09:55"}, slotStrings(resp.Staff[0].Slots))
}

func TestExecute_ServiceNotFound(t *testing.T) {
	repo := &fakeReservationRepo{}
	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}
	staff := &fakeStaffClient{}

	uc := newTestUseCase(repo, catalog, staff)
	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCatalogClient{}, &fakeStaffClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PastSlotsFilteredToday(t *testing.T) {
	repo := &fakeReservationRepo{staffReservations: map[int64][]*domain.Reservation{}}
	catalog := &fakeCatalogClient{
		service: testService(20),
		hours:   &catalogservice.UnitHours{Open: "07:00", Close: "11:00"},
	}
	staff := &fakeStaffClient{
		members: map[int64]*staffservice.StaffMember{
			20: {ID: 20, FullName: "Carlos Jiménez", IsActive: true},
		},
		schedules: map[int64]*staffservice.StaffSchedule{
			20: fullWeekSchedule("07:00", "22:00"),
		},
	}

	uc := newTestUseCase(repo, catalog, staff)
	// Сегодня 2026-09-14, сейчас 08:00: кандидаты 07:00 и 07:55 в прошлом
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, []string{"08:50", "09:45"}, slotStrings(resp.Staff[0].Slots))
}

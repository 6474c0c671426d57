package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

func TestDefaultPermissions_Titular(t *testing.T) {
	perms := DefaultPermissions(RoleTitular, false)

	assert.True(t, perms.CanBookSpa)
	assert.True(t, perms.CanBookBarberia)
	assert.True(t, perms.CanBookDeportes)
	assert.True(t, perms.CanBookAlberca)
	assert.True(t, perms.CanMakePayments)
	assert.True(t, perms.CanManageBeneficiaries)
	assert.True(t, perms.CanApproveReservations)
	assert.False(t, perms.RequiresApproval)
	assert.Nil(t, perms.MaxActiveReservations)
	assert.Nil(t, perms.SpendingLimitMonthly)
	assert.Nil(t, perms.AllowedHoursStart)
}

func TestDefaultPermissions_MinorHijo(t *testing.T) {
	perms := DefaultPermissions(RoleHijo, true)

	assert.False(t, perms.CanBookSpa)
	assert.False(t, perms.CanBookBarberia)
	assert.True(t, perms.CanBookDeportes)
	assert.True(t, perms.CanBookAlberca)
	assert.False(t, perms.CanApproveReservations)
	assert.True(t, perms.RequiresApproval)

	require.NotNil(t, perms.MaxActiveReservations)
	assert.Equal(t, 2, *perms.MaxActiveReservations)
	require.NotNil(t, perms.SpendingLimitMonthly)
	assert.Equal(t, 2000.0, *perms.SpendingLimitMonthly)
	require.NotNil(t, perms.AllowedHoursStart)
	assert.Equal(t, types.TimeString("07:00"), *perms.AllowedHoursStart)
	require.NotNil(t, perms.AllowedHoursEnd)
	assert.Equal(t, types.TimeString("20:00"), *perms.AllowedHoursEnd)
}

func TestDefaultPermissions_Conyugue(t *testing.T) {
	perms := DefaultPermissions(RoleConyugue, false)

	assert.True(t, perms.CanBookSpa)
	assert.True(t, perms.CanApproveReservations)
	assert.False(t, perms.CanMakePayments)
	assert.False(t, perms.CanManageBeneficiaries)
	assert.False(t, perms.RequiresApproval)
}

func TestDefaultPermissions_AdultHijo(t *testing.T) {
	perms := DefaultPermissions(RoleHijo, false)

	assert.True(t, perms.CanBookSpa)
	assert.False(t, perms.RequiresApproval)
	assert.Nil(t, perms.MaxActiveReservations)
}

func TestPermissionSet_AllowsCategory(t *testing.T) {
	perms := PermissionSet{CanBookDeportes: true, CanBookAlberca: true}

	assert.True(t, perms.AllowsCategory(CategoryDeportes))
	assert.True(t, perms.AllowsCategory(CategoryAlberca))
	assert.False(t, perms.AllowsCategory(CategorySpa))
	assert.False(t, perms.AllowsCategory(CategoryBarberia))
	assert.False(t, perms.AllowsCategory(ServiceCategory("gimnasio")))
}

func TestPermissionSet_AllowsStartHour(t *testing.T) {
	start := types.TimeString("07:00")
	end := types.TimeString("20:00")
	perms := PermissionSet{
		AllowedHoursStart: &start,
		AllowedHoursEnd:   &end,
	}

	tests := []struct {
		startTime string
		want      bool
	}{
		{"07:00", true},
		{"12:30", true},
		{"19:59", true}, // сравнение по часам: 19 < 20
		{"20:00", false},
		{"20:30", false},
		{"06:59", false},
	}

	for _, tt := range tests {
		t.Run(tt.startTime, func(t *testing.T) {
			allowed, err := perms.AllowsStartHour(types.TimeString(tt.startTime))
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestPermissionSet_AllowsStartHour_NoWindow(t *testing.T) {
	perms := PermissionSet{}

	allowed, err := perms.AllowsStartHour(types.TimeString("23:00"))
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestPermissionSet_Validate(t *testing.T) {
	start := types.TimeString("07:00")
	end := types.TimeString("20:00")
	badEnd := types.TimeString("06:00")
	negative := -1
	negativeLimit := -100.0

	tests := []struct {
		name    string
		perms   PermissionSet
		wantErr bool
	}{
		{"empty set", PermissionSet{}, false},
		{"full window", PermissionSet{AllowedHoursStart: &start, AllowedHoursEnd: &end}, false},
		{"half window", PermissionSet{AllowedHoursStart: &start}, true},
		{"inverted window", PermissionSet{AllowedHoursStart: &start, AllowedHoursEnd: &badEnd}, true},
		{"negative cap", PermissionSet{MaxActiveReservations: &negative}, true},
		{"negative limit", PermissionSet{SpendingLimitMonthly: &negativeLimit}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.perms.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

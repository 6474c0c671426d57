package domain

import "time"

// ProfileRole роль члена семьи в членстве
type ProfileRole string

const (
	RoleTitular  ProfileRole = "titular"
	RoleConyugue ProfileRole = "conyugue"
	RoleHijo     ProfileRole = "hijo"
)

// MemberProfile профиль члена семьи
type MemberProfile struct {
	ID           int64
	MembershipID int64
	FirstName    string
	LastName     string
	Role         ProfileRole
	DateOfBirth  time.Time
	IsMinor      bool
	IsActive     bool
	Permissions  PermissionSet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanActForFamily возвращает true для ролей, которым делегированы семейные
// действия (аппробация, отмена чужих резерваций)
func (p *MemberProfile) CanActForFamily() bool {
	return p.Role == RoleTitular || p.Role == RoleConyugue
}

// FullName возвращает полное имя профиля
func (p *MemberProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}

package constants

import "fmt"

// ==========================
// ✅ Roles & enums
// ==========================
const (
	RoleNormal = "normal"
	RoleAdmin  = "admin"
	RoleBan    = "ban"

	UserTypeStudent = "student"
	UserTypeFaculty = "faculty"

	GenderMale   = "male"
	GenderFemale = "female"

	// slot restriction wildcard
	RestrictionAny = "any"
)

const (
	BookingStatusBooked     = "booked"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
)

const (
	NotificationGeneral     = "general"
	NotificationMaintenance = "maintenance"
	NotificationUrgent      = "urgent"
)

// Error message templates for role gates
const (
	ErrOnlyAdminsCanAccess = "❌ Only admins may access the %s feature."
	ErrBannedAccount       = "Your account has been banned. Contact the sports office."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleNormal,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

package user

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanIssueVouchers reports whether the role may issue vouchers or weekly points.
func (r Role) CanIssueVouchers() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// CanApproveFor reports whether the role may approve or reject a student's
// voucher. Teachers only act on their own assigned students; admins on anyone.
func (r Role) CanApproveFor(assigned bool) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleTeacher:
		return assigned
	default:
		return false
	}
}

// CanManageOrders reports whether the role may change order status.
func (r Role) CanManageOrders() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// CanManageCatalog reports whether the role may mutate the product catalog.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

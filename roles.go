package adminkit

// AdminRole is the role column on an admin record. The schema permits
// arbitrary values; only one is assigned by this module, and existing values
// are preserved when an admin is re-provisioned.
type AdminRole = string

// RoleGlobalAdmin is the role every newly provisioned admin receives.
const RoleGlobalAdmin AdminRole = "global_admin"

// ResolveAdminRole picks the role to persist during provisioning: the
// existing record's role when one is set, otherwise the default.
func ResolveAdminRole(existing *Admin) AdminRole {
	if existing != nil && existing.Role != "" {
		return existing.Role
	}
	return RoleGlobalAdmin
}

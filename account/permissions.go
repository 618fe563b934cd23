package account

// PermissionsForRole derives the capability set for a role. The mapping is
// pure: same role in, same permissions out. Every role gets AI tutor access;
// premium flags always start false and are flipped by billing, never here.
func PermissionsForRole(role Role) Permissions {
	return Permissions{
		CanCreateCourses:     role == RoleCreator || role == RoleInstitution,
		CanManageInstitution: role == RoleInstitution,
		CanAccessAITutor:     true,
		HasPremiumAI:         false,
		HasUnlimitedCourses:  false,
	}
}

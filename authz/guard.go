// Package authz is the ownership guard consulted before every operation
// on an existing resource. Creates take their owner from the session
// token and are gated by route roles alone. Role and ownership checks
// live here, in one rule table, instead of being scattered across route
// handlers.
package authz

import "github.com/rojgarihub/rojgarihub-backend/models"

type Action string

const (
	ActionViewJob             Action = "job.view" // non-ACTIVE statuses only
	ActionUpdateJob           Action = "job.update"
	ActionDeleteJob           Action = "job.delete"
	ActionViewJobApplications Action = "job.applications.view"
	ActionReviewApplication   Action = "application.review"
	ActionWithdrawApplication Action = "application.withdraw"
	ActionCreateBoost         Action = "boost.create"
	ActionSaveJob             Action = "savedjob.manage"
	ActionUpdateProfile       Action = "profile.update"
	ActionManageCompany       Action = "company.manage"
)

// Principal is the acting user as carried by the session token.
type Principal struct {
	ID   string
	Role models.Role
}

// Resource carries the ownership fields of the target. Only the field the
// rule for the action looks at needs to be set.
type Resource struct {
	// OwnerEmployerID owns jobs, boosts and companies. For application
	// review it is the owner of the application's job.
	OwnerEmployerID string
	// JobSeekerID owns applications, saved jobs and seeker profiles.
	JobSeekerID string
}

type owner int

const (
	ownedByEmployer owner = iota
	ownedByJobSeeker
)

type rule struct {
	role  models.Role
	owner owner
}

// rules is evaluated after the admin bypass; first (only) match wins.
var rules = map[Action]rule{
	ActionViewJob:             {models.RoleEmployer, ownedByEmployer},
	ActionUpdateJob:           {models.RoleEmployer, ownedByEmployer},
	ActionDeleteJob:           {models.RoleEmployer, ownedByEmployer},
	ActionViewJobApplications: {models.RoleEmployer, ownedByEmployer},
	ActionReviewApplication:   {models.RoleEmployer, ownedByEmployer},
	ActionCreateBoost:         {models.RoleEmployer, ownedByEmployer},
	ActionManageCompany:       {models.RoleEmployer, ownedByEmployer},
	ActionWithdrawApplication: {models.RoleJobSeeker, ownedByJobSeeker},
	ActionSaveJob:             {models.RoleJobSeeker, ownedByJobSeeker},
	ActionUpdateProfile:       {models.RoleJobSeeker, ownedByJobSeeker},
}

// Can reports whether the principal may perform the action on the
// resource. Admins bypass ownership; everyone else must hold the acting
// role for the action and own the resource.
func Can(p Principal, a Action, r Resource) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	ru, ok := rules[a]
	if !ok || p.Role != ru.role || p.ID == "" {
		return false
	}
	switch ru.owner {
	case ownedByEmployer:
		return r.OwnerEmployerID == p.ID
	case ownedByJobSeeker:
		return r.JobSeekerID == p.ID
	}
	return false
}

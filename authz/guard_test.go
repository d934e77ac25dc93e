package authz_test

import (
	"testing"

	"github.com/rojgarihub/rojgarihub-backend/authz"
	"github.com/rojgarihub/rojgarihub-backend/models"
)

var (
	admin     = authz.Principal{ID: "a1", Role: models.RoleAdmin}
	employer  = authz.Principal{ID: "e1", Role: models.RoleEmployer}
	employer2 = authz.Principal{ID: "e2", Role: models.RoleEmployer}
	seeker    = authz.Principal{ID: "s1", Role: models.RoleJobSeeker}
	seeker2   = authz.Principal{ID: "s2", Role: models.RoleJobSeeker}
)

var allActions = []authz.Action{
	authz.ActionViewJob,
	authz.ActionUpdateJob,
	authz.ActionDeleteJob,
	authz.ActionViewJobApplications,
	authz.ActionReviewApplication,
	authz.ActionWithdrawApplication,
	authz.ActionCreateBoost,
	authz.ActionSaveJob,
	authz.ActionUpdateProfile,
	authz.ActionManageCompany,
}

func TestAdminBypassesOwnership(t *testing.T) {
	r := authz.Resource{OwnerEmployerID: "someone-else", JobSeekerID: "someone-else"}
	for _, a := range allActions {
		if !authz.Can(admin, a, r) {
			t.Errorf("Can(admin, %s) should be true", a)
		}
	}
}

func TestEmployerOwnsTheirJobs(t *testing.T) {
	owned := authz.Resource{OwnerEmployerID: "e1"}
	foreign := authz.Resource{OwnerEmployerID: "e2"}

	for _, a := range []authz.Action{
		authz.ActionViewJob, authz.ActionUpdateJob, authz.ActionDeleteJob,
		authz.ActionViewJobApplications, authz.ActionReviewApplication,
		authz.ActionCreateBoost, authz.ActionManageCompany,
	} {
		if !authz.Can(employer, a, owned) {
			t.Errorf("Can(owner, %s, own resource) should be true", a)
		}
		if authz.Can(employer, a, foreign) {
			t.Errorf("Can(owner, %s, foreign resource) should be false", a)
		}
		if authz.Can(employer2, a, owned) {
			t.Errorf("Can(other employer, %s) should be false", a)
		}
	}
}

func TestJobSeekerOwnsTheirRecords(t *testing.T) {
	owned := authz.Resource{JobSeekerID: "s1"}
	foreign := authz.Resource{JobSeekerID: "s2"}

	for _, a := range []authz.Action{
		authz.ActionWithdrawApplication, authz.ActionSaveJob, authz.ActionUpdateProfile,
	} {
		if !authz.Can(seeker, a, owned) {
			t.Errorf("Can(seeker, %s, own resource) should be true", a)
		}
		if authz.Can(seeker, a, foreign) {
			t.Errorf("Can(seeker, %s, foreign resource) should be false", a)
		}
		if authz.Can(seeker2, a, owned) {
			t.Errorf("Can(other seeker, %s) should be false", a)
		}
	}
}

// A role never crosses into the other role's actions, even when the
// ownership ids happen to line up.
func TestRoleConfusionDenied(t *testing.T) {
	employerActions := []authz.Action{
		authz.ActionViewJob, authz.ActionUpdateJob, authz.ActionDeleteJob,
		authz.ActionViewJobApplications, authz.ActionReviewApplication,
		authz.ActionCreateBoost, authz.ActionManageCompany,
	}
	seekerActions := []authz.Action{
		authz.ActionWithdrawApplication, authz.ActionSaveJob, authz.ActionUpdateProfile,
	}

	for _, a := range employerActions {
		r := authz.Resource{OwnerEmployerID: "s1"} // same id as the seeker
		if authz.Can(seeker, a, r) {
			t.Errorf("Can(seeker, %s) should be false", a)
		}
	}
	for _, a := range seekerActions {
		r := authz.Resource{JobSeekerID: "e1"} // same id as the employer
		if authz.Can(employer, a, r) {
			t.Errorf("Can(employer, %s) should be false", a)
		}
	}
}

// A draft or inactive job's detail resolves for its owner and for
// admins, and for no one else — job seekers and other employers get the
// same denial as for any foreign resource.
func TestNonActiveJobDetailVisibility(t *testing.T) {
	draft := authz.Resource{OwnerEmployerID: "e1"}

	if !authz.Can(employer, authz.ActionViewJob, draft) {
		t.Error("owner should see their own non-active job")
	}
	if !authz.Can(admin, authz.ActionViewJob, draft) {
		t.Error("admin should see any non-active job")
	}
	if authz.Can(employer2, authz.ActionViewJob, draft) {
		t.Error("another employer should not see the job")
	}
	if authz.Can(seeker, authz.ActionViewJob, draft) {
		t.Error("a job seeker should not see a non-active job")
	}
}

func TestUnknownActionDenied(t *testing.T) {
	r := authz.Resource{OwnerEmployerID: "e1", JobSeekerID: "s1"}
	if authz.Can(employer, authz.Action("job.nuke"), r) {
		t.Error("unknown action should be denied for non-admins")
	}
	if authz.Can(seeker, authz.Action(""), r) {
		t.Error("empty action should be denied for non-admins")
	}
}

func TestEmptyPrincipalIDDenied(t *testing.T) {
	anonymous := authz.Principal{ID: "", Role: models.RoleEmployer}
	r := authz.Resource{OwnerEmployerID: ""}
	if authz.Can(anonymous, authz.ActionUpdateJob, r) {
		t.Error("empty principal id must never match an empty owner id")
	}
}

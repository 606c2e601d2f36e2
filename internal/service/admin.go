package service

import (
	"context"

	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// AdminService aggregates the counts shown on the admin dashboard
type AdminService struct {
	sessionRepo      SessionRepository
	registrationRepo RegistrationRepository
	submissionRepo   SubmissionRepository
}

// NewAdminService creates a new admin service
func NewAdminService(sessionRepo SessionRepository, registrationRepo RegistrationRepository, submissionRepo SubmissionRepository) *AdminService {
	return &AdminService{
		sessionRepo:      sessionRepo,
		registrationRepo: registrationRepo,
		submissionRepo:   submissionRepo,
	}
}

// DashboardStats summarizes the state of the conference for admins
type DashboardStats struct {
	TotalSessions       int `json:"total_sessions"`
	TotalRegistrations  int `json:"total_registrations"`
	TotalSubmissions    int `json:"total_submissions"`
	PendingSubmissions  int `json:"pending_submissions"`
	ApprovedSubmissions int `json:"approved_submissions"`
	RejectedSubmissions int `json:"rejected_submissions"`
	RevisionSubmissions int `json:"needs_revision_submissions"`
}

// Dashboard returns the admin dashboard counts
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalSessions, err = s.sessionRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRegistrations, err = s.registrationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSubmissions, err = s.submissionRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingSubmissions, err = s.submissionRepo.CountByStatus(ctx, model.SubmissionStatusPending); err != nil {
		return nil, err
	}
	if stats.ApprovedSubmissions, err = s.submissionRepo.CountByStatus(ctx, model.SubmissionStatusApproved); err != nil {
		return nil, err
	}
	if stats.RejectedSubmissions, err = s.submissionRepo.CountByStatus(ctx, model.SubmissionStatusRejected); err != nil {
		return nil, err
	}
	if stats.RevisionSubmissions, err = s.submissionRepo.CountByStatus(ctx, model.SubmissionStatusNeedsRevision); err != nil {
		return nil, err
	}

	return stats, nil
}

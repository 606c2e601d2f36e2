package service

import (
	"context"
	"errors"
	"time"

	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// SubmissionRepository defines the interface for submission storage
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.SessionSubmission) error
	GetByID(ctx context.Context, id string) (*model.SessionSubmission, error)
	Review(ctx context.Context, submissionID, reviewerID string, status model.SubmissionStatus, comments *string) (*model.SessionSubmission, error)
	Approve(ctx context.Context, submissionID, reviewerID string, comments *string, sessionDate time.Time, room string, maxAttendees int) (string, error)
	List(ctx context.Context, filters *model.SubmissionFilters) ([]*model.SubmissionWithSubmitter, error)
	ListBySubmitter(ctx context.Context, submitterID string) ([]*model.SessionSubmission, error)
	CountByStatus(ctx context.Context, status model.SubmissionStatus) (int, error)
	Count(ctx context.Context) (int, error)
}

// SubmissionService runs the talk proposal workflow. Proposals start
// pending and a reviewer moves each one exactly once to approved,
// rejected or needs-revision. Approval creates the scheduled session;
// the storage layer makes that transition and the session creation a
// single atomic step.
type SubmissionService struct {
	submissionRepo SubmissionRepository
	sessionRepo    SessionRepository
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(submissionRepo SubmissionRepository, sessionRepo SessionRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		sessionRepo:    sessionRepo,
	}
}

// Submit files a new talk proposal for the submitter
func (s *SubmissionService) Submit(ctx context.Context, submitterID string, req *model.SubmitSessionRequest) (*model.SessionSubmission, error) {
	sub := &model.SessionSubmission{
		Title:               req.Title,
		Description:         req.Description,
		SpeakerName:         req.SpeakerName,
		SpeakerEmail:        req.SpeakerEmail,
		SpeakerBio:          req.SpeakerBio,
		Technology:          req.Technology,
		PreferredDuration:   req.PreferredDuration,
		Level:               req.Level,
		Format:              req.Format,
		RoomPreference:      req.RoomPreference,
		SpecialRequirements: req.SpecialRequirements,
		AdditionalNotes:     req.AdditionalNotes,
		SubmitterID:         submitterID,
	}

	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Get retrieves a submission. Submitters may only see their own;
// admins may see any.
func (s *SubmissionService) Get(ctx context.Context, submissionID, actorID string, actorIsAdmin bool) (*model.SessionSubmission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	if !actorIsAdmin && sub.SubmitterID != actorID {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

// ListMine returns the submitter's own proposals, newest first
func (s *SubmissionService) ListMine(ctx context.Context, submitterID string) ([]*model.SessionSubmission, error) {
	return s.submissionRepo.ListBySubmitter(ctx, submitterID)
}

// List returns all proposals with submitter details, optionally filtered
// by status. Admin only, enforced by the caller.
func (s *SubmissionService) List(ctx context.Context, filters *model.SubmissionFilters) ([]*model.SubmissionWithSubmitter, error) {
	return s.submissionRepo.List(ctx, filters)
}

// ApproveResult carries the outcome of an approval: the reviewed
// submission and the session it produced.
type ApproveResult struct {
	Submission *model.SessionSubmission
	Session    *model.Session
}

// Approve accepts a pending proposal and schedules it as a session.
// The reviewer supplies the date, room and capacity; everything else is
// copied from the proposal. A proposal that has already been reviewed is
// rejected with ErrSubmissionReviewed, never reviewed twice.
func (s *SubmissionService) Approve(ctx context.Context, submissionID, reviewerID string, req *model.ApproveSubmissionRequest) (*ApproveResult, error) {
	maxAttendees := req.MaxAttendees
	if maxAttendees == 0 {
		maxAttendees = model.DefaultSessionAttendees
	}

	sessionID, err := s.submissionRepo.Approve(ctx, submissionID, reviewerID, req.ReviewComments, req.SessionDate, req.Room, maxAttendees)
	if err != nil {
		return nil, mapWorkflowError(err)
	}

	sub, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &ApproveResult{Submission: sub, Session: sess}, nil
}

// Reject declines a pending proposal with the reviewer's comments.
// No session is created and the decision is final.
func (s *SubmissionService) Reject(ctx context.Context, submissionID, reviewerID string, comments string) (*model.SessionSubmission, error) {
	sub, err := s.submissionRepo.Review(ctx, submissionID, reviewerID, model.SubmissionStatusRejected, &comments)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	return sub, nil
}

// RequestRevision sends a pending proposal back to the submitter with
// comments describing what needs to change. The submitter files a new
// proposal; the reviewed one is not reopened.
func (s *SubmissionService) RequestRevision(ctx context.Context, submissionID, reviewerID string, comments string) (*model.SessionSubmission, error) {
	sub, err := s.submissionRepo.Review(ctx, submissionID, reviewerID, model.SubmissionStatusNeedsRevision, &comments)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	return sub, nil
}

// CountByStatus returns the number of proposals with the given status
func (s *SubmissionService) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int, error) {
	return s.submissionRepo.CountByStatus(ctx, status)
}

func mapWorkflowError(err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return ErrSubmissionNotFound
	case errors.Is(err, database.ErrPrecondition):
		return ErrSubmissionReviewed
	}
	return err
}

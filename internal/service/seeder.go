package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prbeegala/pbconferenceapp/internal/model"
)

// SeederService populates a development database with a demo admin
// account and a starter session schedule. Seeding is idempotent: it
// checks for existing data and does nothing when found.
type SeederService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	logger      *slog.Logger
}

// NewSeederService creates a new seeder service
func NewSeederService(userRepo UserRepository, sessionRepo SessionRepository, logger *slog.Logger) *SeederService {
	return &SeederService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	UsersCreated    int `json:"users_created"`
	SessionsCreated int `json:"sessions_created"`
}

const (
	demoAdminEmail    = "admin@pbconference.dev"
	demoAdminPassword = "Admin123!"
)

// Seed creates the demo admin and starter sessions if they do not exist
func (s *SeederService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	admin, err := s.userRepo.GetByEmail(ctx, demoAdminEmail)
	if err != nil {
		return nil, fmt.Errorf("seed admin lookup: %w", err)
	}
	if admin == nil {
		hash, err := hashPassword(demoAdminPassword)
		if err != nil {
			return nil, err
		}
		admin = &model.User{
			Email:     demoAdminEmail,
			Hash:      &hash,
			FirstName: "Demo",
			LastName:  "Admin",
			Role:      model.UserRoleAdmin,
		}
		if err := s.userRepo.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		result.UsersCreated++
		s.logger.Info("seeded demo admin", "email", demoAdminEmail)
	}

	count, err := s.sessionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed session count: %w", err)
	}
	if count > 0 {
		return result, nil
	}

	for _, sess := range starterSessions() {
		if err := s.sessionRepo.Create(ctx, sess); err != nil {
			return nil, fmt.Errorf("seed session %q: %w", sess.Title, err)
		}
		result.SessionsCreated++
	}
	s.logger.Info("seeded starter sessions", "count", result.SessionsCreated)

	return result, nil
}

func starterSessions() []*model.Session {
	baseDate := time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC)

	return []*model.Session{
		{
			Title:           "Building Cloud-Native Applications with Kubernetes",
			Description:     "Learn how to design, deploy and operate containerized applications at scale. Covers pods, services, ingress and production readiness checklists.",
			SpeakerName:     "Sarah Chen",
			SpeakerBio:      "Platform engineer with a decade of container orchestration experience.",
			Technology:      "Kubernetes",
			SessionDate:     baseDate,
			DurationMinutes: 60,
			Room:            "Main Hall",
			MaxAttendees:    100,
			Level:           model.SessionLevelIntermediate,
		},
		{
			Title:           "Introduction to Machine Learning with Python",
			Description:     "A gentle introduction to supervised learning. Build and evaluate your first models with scikit-learn, no prior ML experience required.",
			SpeakerName:     "Marcus Johnson",
			SpeakerBio:      "Data scientist and educator, author of two books on applied ML.",
			Technology:      "Python",
			SessionDate:     baseDate.Add(2 * time.Hour),
			DurationMinutes: 90,
			Room:            "Room A",
			MaxAttendees:    50,
			Level:           model.SessionLevelBeginner,
		},
		{
			Title:           "Advanced React Patterns and Performance",
			Description:     "Render props, compound components, concurrent features and profiling. What actually makes React apps slow and how to fix it.",
			SpeakerName:     "Elena Rodriguez",
			SpeakerBio:      "Frontend architect at a large e-commerce company.",
			Technology:      "React",
			SessionDate:     baseDate.Add(4 * time.Hour),
			DurationMinutes: 60,
			Room:            "Room B",
			MaxAttendees:    75,
			Level:           model.SessionLevelAdvanced,
		},
		{
			Title:           "Microservices Architecture: Lessons from the Trenches",
			Description:     "War stories from decomposing a monolith. Service boundaries, data ownership, distributed tracing and when a monolith is the better answer.",
			SpeakerName:     "David Kim",
			SpeakerBio:      "Staff engineer, previously led a three-year monolith migration.",
			Technology:      "Architecture",
			SessionDate:     baseDate.Add(24 * time.Hour),
			DurationMinutes: 60,
			Room:            "Main Hall",
			MaxAttendees:    100,
			Level:           model.SessionLevelIntermediate,
		},
		{
			Title:           "Getting Started with Rust",
			Description:     "Ownership, borrowing and lifetimes explained without fear. Write your first safe and fast systems program by the end of the session.",
			SpeakerName:     "Priya Patel",
			SpeakerBio:      "Systems programmer and open source contributor.",
			Technology:      "Rust",
			SessionDate:     baseDate.Add(26 * time.Hour),
			DurationMinutes: 90,
			Room:            "Room A",
			MaxAttendees:    40,
			Level:           model.SessionLevelBeginner,
		},
		{
			Title:           "Securing Your Web Applications",
			Description:     "OWASP top ten in practice. Live demos of injection, XSS and broken auth, plus the defenses that actually hold up.",
			SpeakerName:     "James Wilson",
			SpeakerBio:      "Security consultant and penetration tester.",
			Technology:      "Security",
			SessionDate:     baseDate.Add(28 * time.Hour),
			DurationMinutes: 60,
			Room:            "Room B",
			MaxAttendees:    60,
			Level:           model.SessionLevelIntermediate,
		},
		{
			Title:           "GraphQL Federation at Scale",
			Description:     "Composing a single graph from dozens of services. Schema design, gateway performance and the operational pitfalls nobody warns you about.",
			SpeakerName:     "Aisha Okafor",
			SpeakerBio:      "API platform lead for a federated graph serving millions of requests.",
			Technology:      "GraphQL",
			SessionDate:     baseDate.Add(48 * time.Hour),
			DurationMinutes: 60,
			Room:            "Main Hall",
			MaxAttendees:    80,
			Level:           model.SessionLevelExpert,
		},
		{
			Title:           "Observability-Driven Development",
			Description:     "Traces, metrics and structured logs as first-class development tools. Instrument as you build and debug production like a local process.",
			SpeakerName:     "Tom Baker",
			SpeakerBio:      "SRE turned developer advocate.",
			Technology:      "DevOps",
			SessionDate:     baseDate.Add(50 * time.Hour),
			DurationMinutes: 45,
			Room:            "Room A",
			MaxAttendees:    50,
			Level:           model.SessionLevelIntermediate,
		},
		{
			Title:           "SQL Performance Tuning Deep Dive",
			Description:     "Read a query plan like a database engineer. Indexing strategies, join algorithms and the statistics that drive the optimizer.",
			SpeakerName:     "Maria Santos",
			SpeakerBio:      "Database administrator for twenty years across four engines.",
			Technology:      "SQL",
			SessionDate:     baseDate.Add(52 * time.Hour),
			DurationMinutes: 90,
			Room:            "Room B",
			MaxAttendees:    45,
			Level:           model.SessionLevelAdvanced,
		},
		{
			Title:           "The Art of Code Review",
			Description:     "Reviews that teach instead of gatekeep. Practical habits for authors and reviewers that keep quality high and morale higher.",
			SpeakerName:     "Chris Taylor",
			SpeakerBio:      "Engineering manager and conference regular.",
			Technology:      "Practices",
			SessionDate:     baseDate.Add(54 * time.Hour),
			DurationMinutes: 45,
			Room:            "Main Hall",
			MaxAttendees:    120,
			Level:           model.SessionLevelBeginner,
		},
	}
}

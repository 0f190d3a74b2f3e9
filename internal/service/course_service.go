package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"app/internal/apperr"
	"app/internal/config"
	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TranscriptQueue enqueues transcript backfill jobs. Satisfied by the
// pgmq client.
type TranscriptQueue interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

// BackfillJob is the payload enqueued for lectures whose transcript
// could not be fetched during enrichment.
type BackfillJob struct {
	LectureID string `json:"lecture_id"`
	VideoID   string `json:"video_id"`
}

// CourseService runs the course generation pipeline and serves course
// reads for a user.
type CourseService interface {
	// GenerateCourse returns an existing course matching the topic when
	// one exists (joining the user to it if needed), otherwise generates
	// and persists a new one. The bool reports whether the course
	// already existed, so callers can tell a dedup hit from a fresh
	// generation.
	GenerateCourse(ctx context.Context, userID, topic string) (*model.Course, bool, error)
	// GetCourse returns one course with the user's progress.
	GetCourse(ctx context.Context, userID, courseID string) (*model.Course, *model.CourseProgress, error)
	// ListCourses returns every course the user is a member of, keyed
	// with the user's per-course progress.
	ListCourses(ctx context.Context, userID string) ([]model.Course, map[string]*model.CourseProgress, error)
}

type courseService struct {
	courseRepo   repository.CourseRepository
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	generation   GenerationService
	enrichment   EnrichmentService
	docs         DocumentationService
	queue        TranscriptQueue
	publisher    pubsub.Publisher
	queueName    string
	eventsTopic  string
	courseLogger zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	generation GenerationService,
	enrichment EnrichmentService,
	docs DocumentationService,
	queue TranscriptQueue,
	publisher pubsub.Publisher,
	cfg *config.Config,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		courseRepo:   courseRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		generation:   generation,
		enrichment:   enrichment,
		docs:         docs,
		queue:        queue,
		publisher:    publisher,
		queueName:    cfg.TranscriptQueueName,
		eventsTopic:  cfg.CourseEventsTopic,
		courseLogger: logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) GenerateCourse(ctx context.Context, userID, topic string) (*model.Course, bool, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, false, fmt.Errorf("topic must not be empty")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	if user == nil {
		return nil, false, &apperr.NotFoundError{Resource: "user", ID: userID}
	}

	if course, err := s.findExisting(ctx, userID, topic); err != nil || course != nil {
		return course, course != nil, err
	}

	s.courseLogger.Info().Str("topic", topic).Str("userId", userID).Msg("Generating new course")

	draft, err := s.buildDraft(ctx, topic)
	if err != nil {
		return nil, false, err
	}

	course, err := s.courseRepo.CreateCourse(ctx, draft, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to persist course for %q: %w", topic, err)
	}

	s.enqueueBackfills(ctx, course, draft)
	s.publishGenerated(ctx, course, userID)

	return course, false, nil
}

// findExisting checks the user's own courses first, then all courses.
// A global hit links the user before returning.
func (s *courseService) findExisting(ctx context.Context, userID, topic string) (*model.Course, error) {
	owned, err := s.courseRepo.FindForUserByTopic(ctx, topic, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing courses: %w", err)
	}
	if owned != nil {
		s.courseLogger.Info().Str("courseId", owned.CourseID).Msg("Returning course the user already has")
		return s.courseRepo.GetCourseWithContent(ctx, owned.CourseID)
	}

	global, err := s.courseRepo.FindGlobalByTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to check global courses: %w", err)
	}
	if global == nil {
		return nil, nil
	}

	if err := s.courseRepo.AddMember(ctx, userID, global.CourseID); err != nil {
		return nil, fmt.Errorf("failed to join course %s: %w", global.CourseID, err)
	}
	s.courseLogger.Info().Str("courseId", global.CourseID).Str("userId", userID).Msg("Joined user to existing course")
	return s.courseRepo.GetCourseWithContent(ctx, global.CourseID)
}

// buildDraft runs primary generation, lecture enrichment and the
// documentation search concurrently, then merges the generated seed
// section and normalizes the result.
func (s *courseService) buildDraft(ctx context.Context, topic string) (*model.CourseDraft, error) {
	var (
		content     *CourseContent
		lectures    []model.LectureDraft
		docSections []model.DocumentationDraft
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		content, err = s.generation.GenerateCourseContent(gctx, topic)
		return err
	})
	g.Go(func() error {
		var err error
		lectures, err = s.enrichment.BuildLectures(gctx, topic)
		return err
	})
	g.Go(func() error {
		docSections = s.docs.SearchDocumentation(gctx, topic)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	draft := &model.CourseDraft{
		Topic:         topic,
		Title:         content.Title,
		Description:   content.Description,
		Lectures:      lectures,
		Documentation: s.docs.MergeSeed(topic, content.DocumentationSeed, docSections),
	}
	if len(content.Quiz.Questions) > 0 {
		quiz := content.Quiz
		draft.Quiz = &quiz
	} else {
		s.courseLogger.Warn().Str("topic", topic).Msg("Course generated without a quiz, all questions were dropped")
	}

	normalizeDraft(draft)
	return draft, nil
}

// normalizeDraft enforces draft invariants before persistence: lecture
// titles are never empty and positions are strictly 1..n in slice order.
func normalizeDraft(draft *model.CourseDraft) {
	for i := range draft.Lectures {
		if strings.TrimSpace(draft.Lectures[i].Title) == "" {
			draft.Lectures[i].Title = fmt.Sprintf("Lecture %d", i+1)
		}
		draft.Lectures[i].Position = i + 1
	}
	for i := range draft.Documentation {
		draft.Documentation[i].Position = i + 1
	}
	if draft.Quiz != nil {
		draft.Quiz.Questions = sanitizeQuestions(draft.Quiz.Questions)
		if len(draft.Quiz.Questions) == 0 {
			draft.Quiz = nil
		}
	}
}

// enqueueBackfills queues a job per lecture whose transcript is still
// missing. Queue failures only log; the course is already persisted.
func (s *courseService) enqueueBackfills(ctx context.Context, course *model.Course, draft *model.CourseDraft) {
	if s.queue == nil {
		return
	}
	for i, lecture := range draft.Lectures {
		if !lecture.TranscriptMissing || i >= len(course.Lectures) {
			continue
		}
		job := BackfillJob{LectureID: course.Lectures[i].ID, VideoID: lecture.Content.VideoID}
		payload, err := json.Marshal(job)
		if err != nil {
			s.courseLogger.Error().Err(err).Msg("Failed to marshal backfill job")
			continue
		}
		if err := s.queue.Send(ctx, s.queueName, payload); err != nil {
			s.courseLogger.Error().Err(err).Str("lectureId", job.LectureID).Msg("Failed to enqueue transcript backfill")
			continue
		}
		s.courseLogger.Info().Str("lectureId", job.LectureID).Str("videoId", job.VideoID).Msg("Enqueued transcript backfill")
	}
}

func (s *courseService) publishGenerated(ctx context.Context, course *model.Course, userID string) {
	event := map[string]interface{}{
		"event":        "course.generated",
		"courseId":     course.CourseID,
		"userId":       userID,
		"topic":        course.Topic,
		"lectureCount": len(course.Lectures),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to marshal course event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.eventsTopic, payload); err != nil {
		s.courseLogger.Warn().Err(err).Str("courseId", course.CourseID).Msg("Failed to publish course event")
	}
}

func (s *courseService) GetCourse(ctx context.Context, userID, courseID string) (*model.Course, *model.CourseProgress, error) {
	course, err := s.courseRepo.GetCourseWithContent(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load course %s: %w", courseID, err)
	}
	if course == nil {
		return nil, nil, &apperr.NotFoundError{Resource: "course", ID: courseID}
	}
	progress, err := s.progressRepo.GetProgress(ctx, userID, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load progress for course %s: %w", courseID, err)
	}
	return course, progress, nil
}

func (s *courseService) ListCourses(ctx context.Context, userID string) ([]model.Course, map[string]*model.CourseProgress, error) {
	courses, err := s.courseRepo.GetCoursesByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list courses for user %s: %w", userID, err)
	}
	progressByCourse := make(map[string]*model.CourseProgress, len(courses))
	for _, course := range courses {
		progress, err := s.progressRepo.GetProgress(ctx, userID, course.CourseID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load progress for course %s: %w", course.CourseID, err)
		}
		progressByCourse[course.CourseID] = progress
	}
	return courses, progressByCourse, nil
}

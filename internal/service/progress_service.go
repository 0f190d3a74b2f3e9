package service

import (
	"context"
	"fmt"

	"app/internal/apperr"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ProgressService records and reads per-user course progress.
type ProgressService interface {
	CompleteLecture(ctx context.Context, userID, courseID, lectureID string) (*model.CourseProgress, error)
	CompleteQuiz(ctx context.Context, userID, courseID, quizID string, score float64) (*model.CourseProgress, error)
	GetProgress(ctx context.Context, userID, courseID string) (*model.CourseProgress, error)
	// ListProgress returns the user's progress across every course they
	// have touched.
	ListProgress(ctx context.Context, userID string) ([]model.CourseProgress, error)
}

type progressService struct {
	progressRepo   repository.ProgressRepository
	courseRepo     repository.CourseRepository
	progressLogger zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progressRepo repository.ProgressRepository, courseRepo repository.CourseRepository, logger zerolog.Logger) ProgressService {
	return &progressService{
		progressRepo:   progressRepo,
		courseRepo:     courseRepo,
		progressLogger: logger.With().Str("service", "ProgressService").Logger(),
	}
}

func (s *progressService) CompleteLecture(ctx context.Context, userID, courseID, lectureID string) (*model.CourseProgress, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.progressRepo.MarkLectureComplete(ctx, userID, courseID, lectureID); err != nil {
		return nil, fmt.Errorf("failed to mark lecture %s complete: %w", lectureID, err)
	}
	s.progressLogger.Debug().Str("userId", userID).Str("lectureId", lectureID).Msg("Lecture marked complete")
	return s.progressRepo.GetProgress(ctx, userID, courseID)
}

func (s *progressService) CompleteQuiz(ctx context.Context, userID, courseID, quizID string, score float64) (*model.CourseProgress, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.progressRepo.MarkQuizComplete(ctx, userID, courseID, quizID, score); err != nil {
		return nil, fmt.Errorf("failed to mark quiz %s complete: %w", quizID, err)
	}
	s.progressLogger.Debug().Str("userId", userID).Str("quizId", quizID).Msg("Quiz marked complete")
	return s.progressRepo.GetProgress(ctx, userID, courseID)
}

func (s *progressService) GetProgress(ctx context.Context, userID, courseID string) (*model.CourseProgress, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetProgress(ctx, userID, courseID)
}

func (s *progressService) ListProgress(ctx context.Context, userID string) ([]model.CourseProgress, error) {
	progress, err := s.progressRepo.GetProgressByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress for user %s: %w", userID, err)
	}
	return progress, nil
}

func (s *progressService) requireCourse(ctx context.Context, courseID string) error {
	course, err := s.courseRepo.GetCourseWithContent(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to load course %s: %w", courseID, err)
	}
	if course == nil {
		return &apperr.NotFoundError{Resource: "course", ID: courseID}
	}
	return nil
}

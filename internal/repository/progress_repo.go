package repository

import (
	"context"
	"database/sql"
	"fmt"

	"app/internal/model"
)

// ProgressRepository tracks per-user completion state, separate from the
// shared course body.
type ProgressRepository interface {
	// MarkLectureComplete records a completed lecture. Repeating the call
	// is a no-op.
	MarkLectureComplete(ctx context.Context, userID, courseID, lectureID string) error
	// MarkQuizComplete records a completed quiz with its score. The first
	// recorded score wins.
	MarkQuizComplete(ctx context.Context, userID, courseID, quizID string, score float64) error
	// GetProgress returns the user's progress for one course (never nil).
	GetProgress(ctx context.Context, userID, courseID string) (*model.CourseProgress, error)
	// GetProgressByUserID returns the user's progress across all courses.
	GetProgressByUserID(ctx context.Context, userID string) ([]model.CourseProgress, error)
}

type progressRepo struct {
	db *sql.DB
}

func NewProgressRepo(db *sql.DB) ProgressRepository {
	return &progressRepo{db: db}
}

func (r *progressRepo) MarkLectureComplete(ctx context.Context, userID, courseID, lectureID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lecture_progress (user_id, course_id, lecture_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, userID, courseID, lectureID)
	if err != nil {
		return fmt.Errorf("marking lecture %s complete: %w", lectureID, err)
	}
	return nil
}

func (r *progressRepo) MarkQuizComplete(ctx context.Context, userID, courseID, quizID string, score float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quiz_progress (user_id, course_id, quiz_id, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, userID, courseID, quizID, score)
	if err != nil {
		return fmt.Errorf("marking quiz %s complete: %w", quizID, err)
	}
	return nil
}

func (r *progressRepo) GetProgress(ctx context.Context, userID, courseID string) (*model.CourseProgress, error) {
	prog := &model.CourseProgress{UserID: userID, CourseID: courseID}

	rows, err := r.db.QueryContext(ctx, `
		SELECT lecture_id FROM lecture_progress
		WHERE user_id = $1 AND course_id = $2
	`, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying lecture progress: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning lecture progress row: %w", err)
		}
		prog.CompletedLectureIDs = append(prog.CompletedLectureIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lecture progress rows: %w", err)
	}

	quizRows, err := r.db.QueryContext(ctx, `
		SELECT quiz_id, score, completed_at FROM quiz_progress
		WHERE user_id = $1 AND course_id = $2
	`, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying quiz progress: %w", err)
	}
	defer quizRows.Close()
	for quizRows.Next() {
		q := model.QuizProgress{UserID: userID, CourseID: courseID}
		if err := quizRows.Scan(&q.QuizID, &q.Score, &q.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning quiz progress row: %w", err)
		}
		prog.CompletedQuizzes = append(prog.CompletedQuizzes, q)
	}
	if err := quizRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quiz progress rows: %w", err)
	}

	return prog, nil
}

func (r *progressRepo) GetProgressByUserID(ctx context.Context, userID string) ([]model.CourseProgress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT course_id FROM (
			SELECT course_id FROM lecture_progress WHERE user_id = $1
			UNION
			SELECT course_id FROM quiz_progress WHERE user_id = $1
		) AS touched
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying progress course ids: %w", err)
	}
	defer rows.Close()

	var courseIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning progress course id: %w", err)
		}
		courseIDs = append(courseIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress course ids: %w", err)
	}

	progress := make([]model.CourseProgress, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		p, err := r.GetProgress(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		progress = append(progress, *p)
	}
	return progress, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"app/internal/model"
)

// CourseRepository defines the interface for interacting with course data.
type CourseRepository interface {
	// FindForUserByTopic matches the topic against title or description of
	// courses the user is already a member of.
	FindForUserByTopic(ctx context.Context, topic, userID string) (*model.Course, error)
	// FindGlobalByTopic matches the topic against all courses.
	FindGlobalByTopic(ctx context.Context, topic string) (*model.Course, error)
	// CreateCourse persists a draft and its nested collections in one
	// transaction and links the requester.
	CreateCourse(ctx context.Context, draft *model.CourseDraft, userID string) (*model.Course, error)
	// AddMember links a user to a course. Repeating the call never
	// creates a duplicate link.
	AddMember(ctx context.Context, userID, courseID string) error
	// GetCourseWithContent returns a course hydrated with its lectures,
	// quizzes and documentation.
	GetCourseWithContent(ctx context.Context, courseID string) (*model.Course, error)
	// GetCoursesByUserID returns all hydrated courses the user is linked to.
	GetCoursesByUserID(ctx context.Context, userID string) ([]model.Course, error)
	// GetLectureContent returns the raw content blob of one lecture.
	GetLectureContent(ctx context.Context, lectureID string) (string, error)
	// UpdateLectureContent replaces the content blob of one lecture.
	UpdateLectureContent(ctx context.Context, lectureID, content string) error
}

type courseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepository.
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &courseRepo{db: db}
}

// topicPattern builds a case-insensitive word-boundary regex for the
// Postgres ~* operator. Boundary anchors are only valid next to word
// characters, so topics like "C++" or "C#" anchor one side only.
func topicPattern(topic string) string {
	pattern := regexp.QuoteMeta(topic)
	if first, _ := utf8.DecodeRuneInString(topic); isWordRune(first) {
		pattern = `\m` + pattern
	}
	if last, _ := utf8.DecodeLastRuneInString(topic); isWordRune(last) {
		pattern += `\M`
	}
	return pattern
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (r *courseRepo) FindForUserByTopic(ctx context.Context, topic, userID string) (*model.Course, error) {
	query := `
		SELECT c.id, c.topic, c.title, c.description, c.created_at, c.updated_at
		FROM courses c
		JOIN course_members m ON m.course_id = c.id
		WHERE m.user_id = $1 AND (c.title ~* $2 OR c.description ~* $2)
		ORDER BY c.created_at ASC
		LIMIT 1
	`
	return r.findOne(ctx, query, userID, topicPattern(topic))
}

func (r *courseRepo) FindGlobalByTopic(ctx context.Context, topic string) (*model.Course, error) {
	query := `
		SELECT id, topic, title, description, created_at, updated_at
		FROM courses
		WHERE title ~* $1 OR description ~* $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	return r.findOne(ctx, query, topicPattern(topic))
}

func (r *courseRepo) findOne(ctx context.Context, query string, args ...interface{}) (*model.Course, error) {
	var c model.Course
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.CourseID,
		&c.Topic,
		&c.Title,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("matching course by topic: %w", err)
	}
	return &c, nil
}

// CreateCourse inserts the course, its lectures, quiz, questions and
// documentation in a single transaction, then links the requester.
func (r *courseRepo) CreateCourse(ctx context.Context, draft *model.CourseDraft, userID string) (*model.Course, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting course transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	course := &model.Course{
		Topic:       draft.Topic,
		Title:       draft.Title,
		Description: draft.Description,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO courses (topic, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, draft.Topic, draft.Title, draft.Description).
		Scan(&course.CourseID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}

	for _, ld := range draft.Lectures {
		content, err := ld.Content.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding lecture content: %w", err)
		}
		lecture := model.Lecture{
			CourseID: course.CourseID,
			Title:    ld.Title,
			Content:  content,
			Duration: ld.Duration,
			Position: ld.Position,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO lectures (course_id, title, content, duration, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, course.CourseID, ld.Title, content, ld.Duration, ld.Position).Scan(&lecture.ID)
		if err != nil {
			return nil, fmt.Errorf("creating lecture %d: %w", ld.Position, err)
		}
		course.Lectures = append(course.Lectures, lecture)
	}

	if draft.Quiz != nil {
		quiz := model.Quiz{
			CourseID: course.CourseID,
			Title:    draft.Quiz.Title,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO quizzes (course_id, title)
			VALUES ($1, $2)
			RETURNING id
		`, course.CourseID, draft.Quiz.Title).Scan(&quiz.ID)
		if err != nil {
			return nil, fmt.Errorf("creating quiz: %w", err)
		}
		for i, qd := range draft.Quiz.Questions {
			options, err := json.Marshal(qd.Options)
			if err != nil {
				return nil, fmt.Errorf("encoding question options: %w", err)
			}
			question := model.Question{
				QuizID:        quiz.ID,
				Text:          qd.Text,
				Options:       qd.Options,
				CorrectAnswer: qd.CorrectAnswer,
				Explanation:   qd.Explanation,
			}
			err = tx.QueryRowContext(ctx, `
				INSERT INTO questions (quiz_id, question, options, correct_answer, explanation, position)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id
			`, quiz.ID, qd.Text, options, qd.CorrectAnswer, qd.Explanation, i+1).Scan(&question.ID)
			if err != nil {
				return nil, fmt.Errorf("creating question %d: %w", i+1, err)
			}
			quiz.Questions = append(quiz.Questions, question)
		}
		course.Quizzes = append(course.Quizzes, quiz)
	}

	for _, dd := range draft.Documentation {
		doc := model.Documentation{
			CourseID: course.CourseID,
			Title:    dd.Title,
			Category: dd.Category,
			Position: dd.Position,
			Content:  dd.Content,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO documentation (course_id, title, category, position, content)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, course.CourseID, dd.Title, dd.Category, dd.Position, dd.Content).Scan(&doc.ID)
		if err != nil {
			return nil, fmt.Errorf("creating documentation %d: %w", dd.Position, err)
		}
		course.Documentation = append(course.Documentation, doc)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO course_members (user_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, course.CourseID)
	if err != nil {
		return nil, fmt.Errorf("linking user to course: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing course transaction: %w", err)
	}
	return course, nil
}

func (r *courseRepo) AddMember(ctx context.Context, userID, courseID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO course_members (user_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, courseID)
	if err != nil {
		return fmt.Errorf("linking user %s to course %s: %w", userID, courseID, err)
	}
	return nil
}

func (r *courseRepo) GetLectureContent(ctx context.Context, lectureID string) (string, error) {
	var content string
	err := r.db.QueryRowContext(ctx, `SELECT content FROM lectures WHERE id = $1`, lectureID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("lecture %s not found", lectureID)
	}
	if err != nil {
		return "", fmt.Errorf("loading lecture %s content: %w", lectureID, err)
	}
	return content, nil
}

func (r *courseRepo) UpdateLectureContent(ctx context.Context, lectureID, content string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE lectures SET content = $1, updated_at = NOW() WHERE id = $2
	`, content, lectureID)
	if err != nil {
		return fmt.Errorf("updating lecture %s content: %w", lectureID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("lecture %s not found", lectureID)
	}
	return nil
}

func (r *courseRepo) GetCourseWithContent(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := r.findOne(ctx, `
		SELECT id, topic, title, description, created_at, updated_at
		FROM courses
		WHERE id = $1
	`, courseID)
	if err != nil || course == nil {
		return course, err
	}
	if err := r.loadContent(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) GetCoursesByUserID(ctx context.Context, userID string) ([]model.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.topic, c.title, c.description, c.created_at, c.updated_at
		FROM courses c
		JOIN course_members m ON m.course_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying courses for user %s: %w", userID, err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.CourseID, &c.Topic, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course rows: %w", err)
	}

	for i := range courses {
		if err := r.loadContent(ctx, &courses[i]); err != nil {
			return nil, err
		}
	}

	// If no courses found, return an empty slice, not nil
	if len(courses) == 0 {
		return []model.Course{}, nil
	}
	return courses, nil
}

// loadContent hydrates lectures, quizzes (with questions) and
// documentation for one course.
func (r *courseRepo) loadContent(ctx context.Context, c *model.Course) error {
	lectureRows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, title, content, duration, position
		FROM lectures
		WHERE course_id = $1
		ORDER BY position ASC
	`, c.CourseID)
	if err != nil {
		return fmt.Errorf("querying lectures for course %s: %w", c.CourseID, err)
	}
	defer lectureRows.Close()
	for lectureRows.Next() {
		var l model.Lecture
		if err := lectureRows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Content, &l.Duration, &l.Position); err != nil {
			return fmt.Errorf("scanning lecture row: %w", err)
		}
		c.Lectures = append(c.Lectures, l)
	}
	if err := lectureRows.Err(); err != nil {
		return fmt.Errorf("iterating lecture rows: %w", err)
	}

	quizRows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, title
		FROM quizzes
		WHERE course_id = $1
		ORDER BY id ASC
	`, c.CourseID)
	if err != nil {
		return fmt.Errorf("querying quizzes for course %s: %w", c.CourseID, err)
	}
	defer quizRows.Close()
	for quizRows.Next() {
		var q model.Quiz
		if err := quizRows.Scan(&q.ID, &q.CourseID, &q.Title); err != nil {
			return fmt.Errorf("scanning quiz row: %w", err)
		}
		c.Quizzes = append(c.Quizzes, q)
	}
	if err := quizRows.Err(); err != nil {
		return fmt.Errorf("iterating quiz rows: %w", err)
	}

	for i := range c.Quizzes {
		questionRows, err := r.db.QueryContext(ctx, `
			SELECT id, quiz_id, question, options, correct_answer, explanation
			FROM questions
			WHERE quiz_id = $1
			ORDER BY position ASC
		`, c.Quizzes[i].ID)
		if err != nil {
			return fmt.Errorf("querying questions for quiz %s: %w", c.Quizzes[i].ID, err)
		}
		for questionRows.Next() {
			var q model.Question
			var options []byte
			if err := questionRows.Scan(&q.ID, &q.QuizID, &q.Text, &options, &q.CorrectAnswer, &q.Explanation); err != nil {
				questionRows.Close()
				return fmt.Errorf("scanning question row: %w", err)
			}
			if err := json.Unmarshal(options, &q.Options); err != nil {
				questionRows.Close()
				return fmt.Errorf("decoding question options: %w", err)
			}
			c.Quizzes[i].Questions = append(c.Quizzes[i].Questions, q)
		}
		if err := questionRows.Err(); err != nil {
			questionRows.Close()
			return fmt.Errorf("iterating question rows: %w", err)
		}
		questionRows.Close()
	}

	docRows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, title, category, position, content
		FROM documentation
		WHERE course_id = $1
		ORDER BY position ASC
	`, c.CourseID)
	if err != nil {
		return fmt.Errorf("querying documentation for course %s: %w", c.CourseID, err)
	}
	defer docRows.Close()
	for docRows.Next() {
		var d model.Documentation
		if err := docRows.Scan(&d.ID, &d.CourseID, &d.Title, &d.Category, &d.Position, &d.Content); err != nil {
			return fmt.Errorf("scanning documentation row: %w", err)
		}
		c.Documentation = append(c.Documentation, d)
	}
	if err := docRows.Err(); err != nil {
		return fmt.Errorf("iterating documentation rows: %w", err)
	}
	return nil
}

package model

import (
	"encoding/json"
	"time"
)

// Documentation categories accepted from the generative provider.
const (
	CategoryReference  = "Reference"
	CategoryGuidelines = "Guidelines"
)

// Course is the shared, persisted course body. Per-user completion state
// lives in the progress tables, never here.
type Course struct {
	CourseID    string    `db:"id" json:"id"`
	Topic       string    `db:"topic" json:"topic"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	Lectures      []Lecture       `json:"lectures"`
	Quizzes       []Quiz          `json:"quizzes"`
	Documentation []Documentation `json:"documentation"`
}

// Lecture is one ordered unit of a course. Content is an opaque JSON
// payload (LectureContent) so the presentation layer can unpack the
// video reference, transcript and embedded quiz together.
type Lecture struct {
	ID       string `db:"id" json:"id"`
	CourseID string `db:"course_id" json:"course_id"`
	Title    string `db:"title" json:"title"`
	Content  string `db:"content" json:"content"`
	Duration string `db:"duration" json:"duration"`
	Position int    `db:"position" json:"order"`
}

// LectureContent is the payload serialized into Lecture.Content.
type LectureContent struct {
	VideoID      string          `json:"videoId"`
	VideoURL     string          `json:"videoUrl"`
	Transcript   string          `json:"transcript"`
	EmbeddedQuiz []QuestionDraft `json:"embeddedQuiz,omitempty"`
}

// Encode serializes a lecture payload for storage.
func (c LectureContent) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeLectureContent parses a stored lecture payload. An empty blob
// decodes to the zero value.
func DecodeLectureContent(s string) (LectureContent, error) {
	var c LectureContent
	if s == "" {
		return c, nil
	}
	err := json.Unmarshal([]byte(s), &c)
	return c, err
}

// Quiz is the course-level quiz.
type Quiz struct {
	ID        string     `db:"id" json:"id"`
	CourseID  string     `db:"course_id" json:"course_id"`
	Title     string     `db:"title" json:"title"`
	Questions []Question `json:"questions"`
}

// Question is a single 4-option multiple-choice question.
type Question struct {
	ID            string   `db:"id" json:"id"`
	QuizID        string   `db:"quiz_id" json:"quiz_id"`
	Text          string   `db:"question" json:"question"`
	Options       []string `db:"options" json:"options"`
	CorrectAnswer int      `db:"correct_answer" json:"correctAnswer"`
	Explanation   string   `db:"explanation" json:"explanation"`
}

// Documentation is one markdown section of the course documentation digest.
type Documentation struct {
	ID       string `db:"id" json:"id"`
	CourseID string `db:"course_id" json:"course_id"`
	Title    string `db:"title" json:"title"`
	Category string `db:"category" json:"category"`
	Position int    `db:"position" json:"order"`
	Content  string `db:"content" json:"content"`
}

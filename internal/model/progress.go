package model

import "time"

// LectureProgress marks a lecture as completed by a user.
type LectureProgress struct {
	UserID      string    `db:"user_id" json:"user_id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	LectureID   string    `db:"lecture_id" json:"lecture_id"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// QuizProgress records a user's completed quiz attempt.
type QuizProgress struct {
	UserID      string    `db:"user_id" json:"user_id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	QuizID      string    `db:"quiz_id" json:"quiz_id"`
	Score       float64   `db:"score" json:"score"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// CourseProgress aggregates a user's completion state for one course.
type CourseProgress struct {
	UserID              string         `json:"user_id"`
	CourseID            string         `json:"course_id"`
	CompletedLectureIDs []string       `json:"completed_lectures"`
	CompletedQuizzes    []QuizProgress `json:"completed_quizzes"`
}

// LectureDone reports whether the lecture is completed in this progress view.
func (p *CourseProgress) LectureDone(lectureID string) bool {
	if p == nil {
		return false
	}
	for _, id := range p.CompletedLectureIDs {
		if id == lectureID {
			return true
		}
	}
	return false
}

// QuizScore returns the recorded score and whether the quiz was completed.
func (p *CourseProgress) QuizScore(quizID string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	for _, q := range p.CompletedQuizzes {
		if q.QuizID == quizID {
			return q.Score, true
		}
	}
	return 0, false
}

package dto

import (
	"math"
	"time"

	"app/internal/model"
)

// GenerateCourseDTO is used for incoming course generation requests
type GenerateCourseDTO struct {
	Topic string `json:"topic" validate:"required,min=2,max=200"`
}

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	CourseID      string                     `json:"course_id"`
	Topic         string                     `json:"topic"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description"`
	Lectures      []LectureResponseDTO       `json:"lectures"`
	Quizzes       []QuizResponseDTO          `json:"quizzes"`
	Documentation []DocumentationResponseDTO `json:"documentation"`
	Progress      float64                    `json:"progress"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// GenerateCourseResponseDTO wraps the course payload with a flag
// telling the caller whether an existing course was returned instead
// of a freshly generated one.
type GenerateCourseResponseDTO struct {
	CourseResponseDTO
	AlreadyExists bool `json:"already_exists"`
}

// CourseSummaryDTO is the list-view shape without nested content.
type CourseSummaryDTO struct {
	CourseID    string    `json:"course_id"`
	Topic       string    `json:"topic"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Progress    float64   `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

type LectureResponseDTO struct {
	LectureID    string                `json:"lecture_id"`
	Title        string                `json:"title"`
	Duration     string                `json:"duration"`
	Order        int                   `json:"order"`
	VideoID      string                `json:"video_id"`
	VideoURL     string                `json:"video_url"`
	Transcript   string                `json:"transcript"`
	EmbeddedQuiz []QuestionResponseDTO `json:"embedded_quiz,omitempty"`
	Completed    bool                  `json:"completed"`
}

type QuizResponseDTO struct {
	QuizID    string                `json:"quiz_id"`
	Title     string                `json:"title"`
	Questions []QuestionResponseDTO `json:"questions"`
	Completed bool                  `json:"completed"`
	Score     float64               `json:"score"`
}

type QuestionResponseDTO struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type DocumentationResponseDTO struct {
	DocumentationID string `json:"documentation_id"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	Order           int    `json:"order"`
	Content         string `json:"content"`
}

// NewCourseResponse maps a hydrated course plus the user's progress to
// the response shape. Progress is the completed share of lectures and
// quizzes as a percentage, rounded to two decimals.
func NewCourseResponse(course *model.Course, progress *model.CourseProgress) CourseResponseDTO {
	resp := CourseResponseDTO{
		CourseID:      course.CourseID,
		Topic:         course.Topic,
		Title:         course.Title,
		Description:   course.Description,
		Lectures:      make([]LectureResponseDTO, 0, len(course.Lectures)),
		Quizzes:       make([]QuizResponseDTO, 0, len(course.Quizzes)),
		Documentation: make([]DocumentationResponseDTO, 0, len(course.Documentation)),
		Progress:      progressPercent(course, progress),
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
	}

	for _, lecture := range course.Lectures {
		item := LectureResponseDTO{
			LectureID: lecture.ID,
			Title:     lecture.Title,
			Duration:  lecture.Duration,
			Order:     lecture.Position,
			Completed: progress.LectureDone(lecture.ID),
		}
		if content, err := model.DecodeLectureContent(lecture.Content); err == nil {
			item.VideoID = content.VideoID
			item.VideoURL = content.VideoURL
			item.Transcript = content.Transcript
			for _, q := range content.EmbeddedQuiz {
				item.EmbeddedQuiz = append(item.EmbeddedQuiz, QuestionResponseDTO{
					Question:      q.Text,
					Options:       q.Options,
					CorrectAnswer: q.CorrectAnswer,
					Explanation:   q.Explanation,
				})
			}
		}
		resp.Lectures = append(resp.Lectures, item)
	}

	for _, quiz := range course.Quizzes {
		score, done := progress.QuizScore(quiz.ID)
		item := QuizResponseDTO{
			QuizID:    quiz.ID,
			Title:     quiz.Title,
			Questions: make([]QuestionResponseDTO, 0, len(quiz.Questions)),
			Completed: done,
			Score:     score,
		}
		for _, q := range quiz.Questions {
			item.Questions = append(item.Questions, QuestionResponseDTO{
				Question:      q.Text,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
			})
		}
		resp.Quizzes = append(resp.Quizzes, item)
	}

	for _, doc := range course.Documentation {
		resp.Documentation = append(resp.Documentation, DocumentationResponseDTO{
			DocumentationID: doc.ID,
			Title:           doc.Title,
			Category:        doc.Category,
			Order:           doc.Position,
			Content:         doc.Content,
		})
	}

	return resp
}

// NewCourseSummary maps a course to its list-view shape.
func NewCourseSummary(course *model.Course, progress *model.CourseProgress) CourseSummaryDTO {
	return CourseSummaryDTO{
		CourseID:    course.CourseID,
		Topic:       course.Topic,
		Title:       course.Title,
		Description: course.Description,
		Progress:    progressPercent(course, progress),
		CreatedAt:   course.CreatedAt,
	}
}

func progressPercent(course *model.Course, progress *model.CourseProgress) float64 {
	total := len(course.Lectures) + len(course.Quizzes)
	if total == 0 {
		return 0
	}
	done := 0
	for _, lecture := range course.Lectures {
		if progress.LectureDone(lecture.ID) {
			done++
		}
	}
	for _, quiz := range course.Quizzes {
		if _, ok := progress.QuizScore(quiz.ID); ok {
			done++
		}
	}
	return math.Round(float64(done)/float64(total)*100*100) / 100
}

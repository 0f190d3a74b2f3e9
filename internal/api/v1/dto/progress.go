package dto

import "app/internal/model"

// CompleteQuizDTO is used for incoming quiz completion requests
type CompleteQuizDTO struct {
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

// ProgressResponseDTO is returned after progress updates and reads
type ProgressResponseDTO struct {
	CourseID            string                    `json:"course_id"`
	CompletedLectureIDs []string                  `json:"completed_lecture_ids"`
	CompletedQuizzes    []QuizProgressResponseDTO `json:"completed_quizzes"`
}

type QuizProgressResponseDTO struct {
	QuizID string  `json:"quiz_id"`
	Score  float64 `json:"score"`
}

func NewProgressResponse(p *model.CourseProgress) ProgressResponseDTO {
	resp := ProgressResponseDTO{
		CourseID:            p.CourseID,
		CompletedLectureIDs: p.CompletedLectureIDs,
		CompletedQuizzes:    make([]QuizProgressResponseDTO, 0, len(p.CompletedQuizzes)),
	}
	if resp.CompletedLectureIDs == nil {
		resp.CompletedLectureIDs = []string{}
	}
	for _, q := range p.CompletedQuizzes {
		resp.CompletedQuizzes = append(resp.CompletedQuizzes, QuizProgressResponseDTO{QuizID: q.QuizID, Score: q.Score})
	}
	return resp
}

package model

// Drafts are in-memory candidate entities produced by the generation
// pipeline. They are assembled fresh per request and never mutated after
// being handed to persistence.

// CourseDraft is the fully merged output of the generation branches.
type CourseDraft struct {
	Topic         string
	Title         string
	Description   string
	Lectures      []LectureDraft
	Quiz          *QuizDraft
	Documentation []DocumentationDraft
}

// LectureDraft is a not-yet-persisted lecture. TranscriptMissing marks
// lectures whose transcript fetch degraded to the sentinel so a backfill
// job can be enqueued after the lecture gets its identifier.
type LectureDraft struct {
	Title             string
	Content           LectureContent
	Duration          string
	Position          int
	TranscriptMissing bool
}

// QuizDraft mirrors the quiz shape requested from the generative provider.
type QuizDraft struct {
	Title     string          `json:"title"`
	Questions []QuestionDraft `json:"questions"`
}

// QuestionDraft is an unvalidated candidate question from the provider.
type QuestionDraft struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// DocumentationDraft is a not-yet-persisted documentation section.
type DocumentationDraft struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Position int    `json:"order"`
	Content  string `json:"content"`
}

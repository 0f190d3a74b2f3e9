package model

import "testing"

func TestCourseProgressNilSafe(t *testing.T) {
	var p *CourseProgress
	if p.LectureDone("lec-1") {
		t.Error("nil progress reported a completed lecture")
	}
	if _, ok := p.QuizScore("quiz-1"); ok {
		t.Error("nil progress reported a completed quiz")
	}
}

func TestCourseProgressLookups(t *testing.T) {
	p := &CourseProgress{
		CompletedLectureIDs: []string{"lec-1", "lec-3"},
		CompletedQuizzes:    []QuizProgress{{QuizID: "quiz-1", Score: 80}},
	}
	if !p.LectureDone("lec-3") {
		t.Error("lec-3 should be done")
	}
	if p.LectureDone("lec-2") {
		t.Error("lec-2 should not be done")
	}
	score, ok := p.QuizScore("quiz-1")
	if !ok || score != 80 {
		t.Errorf("QuizScore = %v, %v", score, ok)
	}
	if _, ok := p.QuizScore("quiz-2"); ok {
		t.Error("quiz-2 should not be done")
	}
}

func TestLectureContentRoundTrip(t *testing.T) {
	content := LectureContent{
		VideoID:    "abc123",
		VideoURL:   "https://www.youtube.com/watch?v=abc123",
		Transcript: "hello world",
	}
	encoded, err := content.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodeLectureContent(encoded)
	if err != nil {
		t.Fatalf("DecodeLectureContent: %v", err)
	}
	if decoded.VideoID != content.VideoID || decoded.Transcript != content.Transcript {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}

func TestDecodeLectureContentEmpty(t *testing.T) {
	content, err := DecodeLectureContent("")
	if err != nil {
		t.Fatalf("empty content should decode to the zero value: %v", err)
	}
	if content.VideoID != "" {
		t.Errorf("unexpected content %+v", content)
	}
}

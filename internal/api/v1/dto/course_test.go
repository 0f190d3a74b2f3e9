package dto

import (
	"testing"

	"app/internal/model"
)

func TestProgressPercentRounding(t *testing.T) {
	course := &model.Course{
		Lectures: []model.Lecture{{ID: "l1"}, {ID: "l2"}, {ID: "l3"}},
	}
	progress := &model.CourseProgress{CompletedLectureIDs: []string{"l1"}}

	if got := progressPercent(course, progress); got != 33.33 {
		t.Errorf("progressPercent = %v, want 33.33", got)
	}
	if got := progressPercent(&model.Course{}, progress); got != 0 {
		t.Errorf("progress for empty course = %v, want 0", got)
	}
}

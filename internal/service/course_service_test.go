package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"app/internal/apperr"
	"app/internal/config"
	"app/internal/model"
	"app/internal/pubsub"

	"github.com/rs/zerolog"
)

type fakeCourseRepo struct {
	owned     *model.Course
	global    *model.Course
	created   *model.CourseDraft
	hydrated  map[string]*model.Course
	members   []string
	createErr error
}

func (f *fakeCourseRepo) FindForUserByTopic(ctx context.Context, topic, userID string) (*model.Course, error) {
	return f.owned, nil
}

func (f *fakeCourseRepo) FindGlobalByTopic(ctx context.Context, topic string) (*model.Course, error) {
	return f.global, nil
}

func (f *fakeCourseRepo) CreateCourse(ctx context.Context, draft *model.CourseDraft, userID string) (*model.Course, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = draft
	course := &model.Course{CourseID: "course-new", Topic: draft.Topic, Title: draft.Title}
	for i := range draft.Lectures {
		course.Lectures = append(course.Lectures, model.Lecture{ID: "lec-" + draft.Lectures[i].Content.VideoID, CourseID: course.CourseID})
	}
	f.owned = course
	if f.hydrated == nil {
		f.hydrated = map[string]*model.Course{}
	}
	f.hydrated[course.CourseID] = course
	return course, nil
}

func (f *fakeCourseRepo) AddMember(ctx context.Context, userID, courseID string) error {
	f.members = append(f.members, userID+":"+courseID)
	return nil
}

func (f *fakeCourseRepo) GetCourseWithContent(ctx context.Context, courseID string) (*model.Course, error) {
	return f.hydrated[courseID], nil
}

func (f *fakeCourseRepo) GetCoursesByUserID(ctx context.Context, userID string) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.hydrated {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseRepo) GetLectureContent(ctx context.Context, lectureID string) (string, error) {
	return "", nil
}

func (f *fakeCourseRepo) UpdateLectureContent(ctx context.Context, lectureID, content string) error {
	return nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *model.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type fakeProgressRepo struct{}

func (fakeProgressRepo) MarkLectureComplete(ctx context.Context, userID, courseID, lectureID string) error {
	return nil
}

func (fakeProgressRepo) MarkQuizComplete(ctx context.Context, userID, courseID, quizID string, score float64) error {
	return nil
}

func (fakeProgressRepo) GetProgress(ctx context.Context, userID, courseID string) (*model.CourseProgress, error) {
	return &model.CourseProgress{UserID: userID, CourseID: courseID}, nil
}

func (fakeProgressRepo) GetProgressByUserID(ctx context.Context, userID string) ([]model.CourseProgress, error) {
	return nil, nil
}

type fakeGeneration struct {
	content *CourseContent
	err     error
	calls   int
}

func (f *fakeGeneration) GenerateCourseContent(ctx context.Context, topic string) (*CourseContent, error) {
	f.calls++
	return f.content, f.err
}

func (f *fakeGeneration) GenerateEmbeddedQuiz(ctx context.Context, videoTitle string) ([]model.QuestionDraft, error) {
	return nil, nil
}

type fakeEnrichment struct {
	lectures []model.LectureDraft
	err      error
}

func (f *fakeEnrichment) BuildLectures(ctx context.Context, topic string) ([]model.LectureDraft, error) {
	return f.lectures, f.err
}

type fakeDocs struct{}

func (fakeDocs) SearchDocumentation(ctx context.Context, topic string) []model.DocumentationDraft {
	return []model.DocumentationDraft{{Title: "Docs", Category: model.CategoryReference, Position: 1, Content: "c"}}
}

func (fakeDocs) MergeSeed(topic, seed string, sections []model.DocumentationDraft) []model.DocumentationDraft {
	if seed == "" {
		return sections
	}
	merged := []model.DocumentationDraft{{Title: "Seed", Category: model.CategoryGuidelines, Content: seed}}
	return append(merged, sections...)
}

type recordingQueue struct {
	payloads [][]byte
	queues   []string
}

func (r *recordingQueue) Send(ctx context.Context, queue string, payload []byte) error {
	r.queues = append(r.queues, queue)
	r.payloads = append(r.payloads, payload)
	return nil
}

type recordingPublisher struct {
	topics   []string
	payloads [][]byte
}

func (r *recordingPublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	r.topics = append(r.topics, topic)
	r.payloads = append(r.payloads, payload)
	return "msg-1", nil
}

func pipelineConfig() *config.Config {
	return &config.Config{
		TranscriptQueueName: "transcript_backfill",
		CourseEventsTopic:   "course-events",
	}
}

func validContent() *CourseContent {
	return &CourseContent{
		Title:       "Python for Beginners",
		Description: "A beginner-friendly Python course.",
		Quiz: model.QuizDraft{
			Title: "Python Quiz",
			Questions: []model.QuestionDraft{
				{Text: "What is a list?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Explanation: "x"},
			},
		},
		DocumentationSeed: "See docs.python.org.",
	}
}

func pipelineService(repo *fakeCourseRepo, gen *fakeGeneration, enrich *fakeEnrichment, queue *recordingQueue, pub pubsub.Publisher) CourseService {
	users := &fakeUserRepo{users: map[string]*model.User{
		"user-1": {UserID: "user-1", Username: "alice"},
	}}
	return NewCourseService(repo, users, fakeProgressRepo{}, gen, enrich, fakeDocs{}, queue, pub, pipelineConfig(), zerolog.Nop())
}

func TestGenerateCourseReturnsOwnedCourse(t *testing.T) {
	existing := &model.Course{CourseID: "course-1", Topic: "Python"}
	repo := &fakeCourseRepo{
		owned:    existing,
		hydrated: map[string]*model.Course{"course-1": existing},
	}
	gen := &fakeGeneration{content: validContent()}
	svc := pipelineService(repo, gen, &fakeEnrichment{}, &recordingQueue{}, &recordingPublisher{})

	course, alreadyExists, err := svc.GenerateCourse(context.Background(), "user-1", "Python")
	if err != nil {
		t.Fatalf("GenerateCourse returned error: %v", err)
	}
	if course.CourseID != "course-1" {
		t.Errorf("expected existing course, got %q", course.CourseID)
	}
	if !alreadyExists {
		t.Error("dedup hit not reported as already existing")
	}
	if gen.calls != 0 {
		t.Errorf("generation ran despite existing course: %d calls", gen.calls)
	}
	if len(repo.members) != 0 {
		t.Errorf("owned course should not re-add membership: %v", repo.members)
	}
}

func TestGenerateCourseJoinsGlobalCourse(t *testing.T) {
	shared := &model.Course{CourseID: "course-9", Topic: "Python"}
	repo := &fakeCourseRepo{
		global:   shared,
		hydrated: map[string]*model.Course{"course-9": shared},
	}
	gen := &fakeGeneration{content: validContent()}
	svc := pipelineService(repo, gen, &fakeEnrichment{}, &recordingQueue{}, &recordingPublisher{})

	course, alreadyExists, err := svc.GenerateCourse(context.Background(), "user-1", "Python")
	if err != nil {
		t.Fatalf("GenerateCourse returned error: %v", err)
	}
	if course.CourseID != "course-9" {
		t.Errorf("expected shared course, got %q", course.CourseID)
	}
	if !alreadyExists {
		t.Error("global match not reported as already existing")
	}
	if len(repo.members) != 1 || repo.members[0] != "user-1:course-9" {
		t.Errorf("membership not recorded: %v", repo.members)
	}
	if gen.calls != 0 {
		t.Errorf("generation ran despite global match: %d calls", gen.calls)
	}
}

func TestGenerateCourseNewCourse(t *testing.T) {
	repo := &fakeCourseRepo{hydrated: map[string]*model.Course{}}
	gen := &fakeGeneration{content: validContent()}
	enrich := &fakeEnrichment{lectures: []model.LectureDraft{
		{Title: "Intro", Content: model.LectureContent{VideoID: "v1"}, Position: 1},
		{Title: "", Content: model.LectureContent{VideoID: "v2"}, Position: 7, TranscriptMissing: true},
	}}
	queue := &recordingQueue{}
	pub := &recordingPublisher{}
	svc := pipelineService(repo, gen, enrich, queue, pub)

	course, alreadyExists, err := svc.GenerateCourse(context.Background(), "user-1", "Python for Beginners")
	if err != nil {
		t.Fatalf("GenerateCourse returned error: %v", err)
	}
	if course.CourseID != "course-new" {
		t.Errorf("expected new course, got %q", course.CourseID)
	}
	if alreadyExists {
		t.Error("fresh generation reported as already existing")
	}

	if repo.created == nil {
		t.Fatal("CreateCourse was not called")
	}
	// Draft normalization: default titles, positions reset to 1..n.
	if repo.created.Lectures[1].Title != "Lecture 2" {
		t.Errorf("expected default title, got %q", repo.created.Lectures[1].Title)
	}
	if repo.created.Lectures[1].Position != 2 {
		t.Errorf("expected position 2, got %d", repo.created.Lectures[1].Position)
	}
	if repo.created.Quiz == nil || len(repo.created.Quiz.Questions) != 1 {
		t.Errorf("quiz not carried into draft: %+v", repo.created.Quiz)
	}
	if len(repo.created.Documentation) != 2 {
		t.Fatalf("expected seed + search documentation, got %d", len(repo.created.Documentation))
	}
	if repo.created.Documentation[0].Category != model.CategoryGuidelines {
		t.Errorf("seed section not merged first: %+v", repo.created.Documentation[0])
	}

	// Only the lecture with a missing transcript gets a backfill job.
	if len(queue.payloads) != 1 {
		t.Fatalf("expected 1 backfill job, got %d", len(queue.payloads))
	}
	var job BackfillJob
	if err := json.Unmarshal(queue.payloads[0], &job); err != nil {
		t.Fatalf("bad job payload: %v", err)
	}
	if job.VideoID != "v2" || job.LectureID != "lec-v2" {
		t.Errorf("unexpected backfill job: %+v", job)
	}
	if queue.queues[0] != "transcript_backfill" {
		t.Errorf("job sent to wrong queue %q", queue.queues[0])
	}

	if len(pub.topics) != 1 || pub.topics[0] != "course-events" {
		t.Errorf("course event not published: %v", pub.topics)
	}
}

func TestGenerateCourseSecondRequestAlreadyExists(t *testing.T) {
	repo := &fakeCourseRepo{hydrated: map[string]*model.Course{}}
	gen := &fakeGeneration{content: validContent()}
	enrich := &fakeEnrichment{lectures: []model.LectureDraft{
		{Title: "Intro", Content: model.LectureContent{VideoID: "v1"}},
	}}
	svc := pipelineService(repo, gen, enrich, &recordingQueue{}, &recordingPublisher{})

	first, alreadyExists, err := svc.GenerateCourse(context.Background(), "user-1", "Python")
	if err != nil {
		t.Fatalf("first GenerateCourse returned error: %v", err)
	}
	if alreadyExists {
		t.Error("first request reported as already existing")
	}

	second, alreadyExists, err := svc.GenerateCourse(context.Background(), "user-1", "Python")
	if err != nil {
		t.Fatalf("second GenerateCourse returned error: %v", err)
	}
	if !alreadyExists {
		t.Error("second identical request not reported as already existing")
	}
	if second.CourseID != first.CourseID {
		t.Errorf("second request returned a different course: %q vs %q", second.CourseID, first.CourseID)
	}
	if gen.calls != 1 {
		t.Errorf("generation should run exactly once, ran %d times", gen.calls)
	}
}

func TestGenerateCourseUnknownUser(t *testing.T) {
	repo := &fakeCourseRepo{hydrated: map[string]*model.Course{}}
	svc := pipelineService(repo, &fakeGeneration{content: validContent()}, &fakeEnrichment{}, &recordingQueue{}, &recordingPublisher{})

	_, _, err := svc.GenerateCourse(context.Background(), "ghost", "Python")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGenerateCourseGenerationFailure(t *testing.T) {
	repo := &fakeCourseRepo{hydrated: map[string]*model.Course{}}
	gen := &fakeGeneration{err: &apperr.ExhaustedRetriesError{Attempts: 3, Err: errors.New("503")}}
	enrich := &fakeEnrichment{lectures: []model.LectureDraft{{Title: "Intro"}}}
	svc := pipelineService(repo, gen, enrich, &recordingQueue{}, &recordingPublisher{})

	_, _, err := svc.GenerateCourse(context.Background(), "user-1", "Python")
	var exhausted *apperr.ExhaustedRetriesError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedRetriesError, got %v", err)
	}
	if repo.created != nil {
		t.Error("course was persisted despite generation failure")
	}
}

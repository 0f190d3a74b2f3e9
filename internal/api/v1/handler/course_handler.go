package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

// CourseHandler handles course generation, reads and progress endpoints
type CourseHandler struct {
	courseService   service.CourseService
	progressService service.ProgressService
	validate        *validator.Validate
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, progressService service.ProgressService, validate *validator.Validate) *CourseHandler {
	return &CourseHandler{courseService: courseService, progressService: progressService, validate: validate}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/courses", authMw(http.HandlerFunc(h.listCourses)))
	mux.Handle("/courses/generate", authMw(http.HandlerFunc(h.generateCourse)))
	mux.Handle("/courses/", authMw(http.HandlerFunc(h.handleCourse)))
	mux.Handle("/progress", authMw(http.HandlerFunc(h.listProgress)))
}

// generateCourse godoc
// @Summary Generate a course for a topic
// @Description Returns an existing course matching the topic, or generates a new one from the generative provider, a video playlist and documentation search.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.GenerateCourseDTO true "Course generation request"
// @Success 200 {object} dto.GenerateCourseResponseDTO "Existing course, already_exists is true"
// @Success 201 {object} dto.GenerateCourseResponseDTO "Freshly generated course"
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "User not found"
// @Failure 429 {string} string "Provider rate limit exceeded"
// @Failure 502 {string} string "Course generation failed"
// @Router /courses/generate [post]
func (h *CourseHandler) generateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.GenerateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	course, alreadyExists, err := h.courseService.GenerateCourse(r.Context(), userID, req.Topic)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	progress, err := h.progressService.GetProgress(r.Context(), userID, course.CourseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if !alreadyExists {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(dto.GenerateCourseResponseDTO{
		CourseResponseDTO: dto.NewCourseResponse(course, progress),
		AlreadyExists:     alreadyExists,
	})
}

// listCourses godoc
// @Summary List the user's courses
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseSummaryDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to list courses"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != "/courses" {
		http.NotFound(w, r)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	courses, progressByCourse, err := h.courseService.ListCourses(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]dto.CourseSummaryDTO, 0, len(courses))
	for i := range courses {
		resp = append(resp, dto.NewCourseSummary(&courses[i], progressByCourse[courses[i].CourseID]))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// listProgress godoc
// @Summary List the user's progress across all courses
// @Tags progress
// @Produce json
// @Success 200 {array} dto.ProgressResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to list progress"
// @Router /progress [get]
func (h *CourseHandler) listProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	progress, err := h.progressService.ListProgress(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]dto.ProgressResponseDTO, 0, len(progress))
	for i := range progress {
		resp = append(resp, dto.NewProgressResponse(&progress[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleCourse routes /courses/{courseId}[/...] by trailing segments.
func (h *CourseHandler) handleCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/courses/"), "/"), "/")
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getCourse(w, r, userID, parts[0])
	case len(parts) == 2 && parts[1] == "progress" && r.Method == http.MethodGet:
		h.getProgress(w, r, userID, parts[0])
	case len(parts) == 4 && parts[1] == "lectures" && parts[3] == "complete" && r.Method == http.MethodPost:
		h.completeLecture(w, r, userID, parts[0], parts[2])
	case len(parts) == 4 && parts[1] == "quizzes" && parts[3] == "complete" && r.Method == http.MethodPost:
		h.completeQuiz(w, r, userID, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a course with lectures, quizzes, documentation and the user's progress.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Course not found"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request, userID, courseID string) {
	course, progress, err := h.courseService.GetCourse(r.Context(), userID, courseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseResponse(course, progress))
}

// getProgress godoc
// @Summary Get the user's progress for a course
// @Tags progress
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.ProgressResponseDTO
// @Failure 404 {string} string "Course not found"
// @Router /courses/{courseId}/progress [get]
func (h *CourseHandler) getProgress(w http.ResponseWriter, r *http.Request, userID, courseID string) {
	progress, err := h.progressService.GetProgress(r.Context(), userID, courseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewProgressResponse(progress))
}

// completeLecture godoc
// @Summary Mark a lecture as completed
// @Tags progress
// @Produce json
// @Param courseId path string true "Course ID"
// @Param lectureId path string true "Lecture ID"
// @Success 200 {object} dto.ProgressResponseDTO
// @Failure 404 {string} string "Course not found"
// @Router /courses/{courseId}/lectures/{lectureId}/complete [post]
func (h *CourseHandler) completeLecture(w http.ResponseWriter, r *http.Request, userID, courseID, lectureID string) {
	progress, err := h.progressService.CompleteLecture(r.Context(), userID, courseID, lectureID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewProgressResponse(progress))
}

// completeQuiz godoc
// @Summary Record a quiz completion with its score
// @Tags progress
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param quizId path string true "Quiz ID"
// @Param result body dto.CompleteQuizDTO true "Quiz result"
// @Success 200 {object} dto.ProgressResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Course not found"
// @Router /courses/{courseId}/quizzes/{quizId}/complete [post]
func (h *CourseHandler) completeQuiz(w http.ResponseWriter, r *http.Request, userID, courseID, quizID string) {
	var req dto.CompleteQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	progress, err := h.progressService.CompleteQuiz(r.Context(), userID, courseID, quizID, req.Score)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewProgressResponse(progress))
}

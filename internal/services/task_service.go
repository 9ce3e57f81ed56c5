package services

import (
	"context"
	"errors"
	"log"
	"time"

	"capstone-collab-api/internal/models"
	"capstone-collab-api/internal/objstore"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService is the task CRUD mediator and the task lifecycle state
// machine. Status and final_score only change through Grade and SetStatus;
// EditTask deliberately cannot touch them.
//
// Staff-only operations (Create, Edit, Delete, Grade, SetStatus) assume an
// already-authorized caller; the capability check lives at the route layer.
type TaskService struct {
	db    *gorm.DB
	store objstore.Store
}

func NewTaskService(db *gorm.DB, store objstore.Store) *TaskService {
	return &TaskService{db: db, store: store}
}

// NewTask carries the fields a staff member supplies at creation time.
// Status is not among them: a task always starts pending.
type NewTask struct {
	Title       string
	Description string
	CreatorID   string
	GroupID     string
	Priority    models.TaskPriority
	DueDate     *time.Time
	MaxScore    float64
}

func (s *TaskService) CreateTask(nt NewTask) (*models.Task, error) {
	priority := nt.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	maxScore := nt.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       nt.Title,
		Description: nt.Description,
		CreatorID:   nt.CreatorID,
		GroupID:     nt.GroupID,
		Priority:    priority,
		Status:      models.StatusPending,
		DueDate:     nt.DueDate,
		MaxScore:    maxScore,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns a group's tasks, newest first.
func (s *TaskService) ListTasks(groupID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("group_id = ?", groupID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) GetTask(taskID string) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// TaskEdit is the set of fields a direct edit may change. Everything else
// on a task is fixed at creation or owned by the lifecycle machine.
type TaskEdit struct {
	Priority *models.TaskPriority
	DueDate  *time.Time
}

func (s *TaskService) EditTask(taskID string, edit TaskEdit) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if edit.Priority != nil {
		if !validPriority(*edit.Priority) {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *edit.Priority
		task.Priority = *edit.Priority
	}
	if edit.DueDate != nil {
		updates["due_date"] = *edit.DueDate
		task.DueDate = edit.DueDate
	}
	if len(updates) == 0 {
		return task, nil
	}

	if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Grade finalizes one submission attempt. It writes feedback/acceptance to
// the submission, then status/final_score to the owning task: accepted
// completes the task, rejected demotes it to in-progress (also from
// completed, modeling "returned for revision"). A nil score clears
// final_score.
//
// The two writes are not atomic. When only the submission write lands the
// caller gets a PartialGradeError and must retry the task write.
func (s *TaskService) Grade(ctx context.Context, submissionID string, isAccepted bool, feedback string, score *float64) (*models.Task, error) {
	var sub models.Submission
	if err := s.db.First(&sub, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	task, err := s.GetTask(sub.TaskID)
	if err != nil {
		return nil, err
	}
	if score != nil && (*score < 0 || *score > task.MaxScore) {
		return nil, ErrScoreOutOfRange
	}

	subUpdates := map[string]any{
		"overall_feedback": feedback,
		"is_accepted":      isAccepted,
	}
	if err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ?", submissionID).
		Updates(subUpdates).Error; err != nil {
		return nil, err
	}

	status := models.StatusInProgress
	if isAccepted {
		status = models.StatusCompleted
	}
	taskUpdates := map[string]any{
		"status":      status,
		"final_score": score,
	}
	if err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(taskUpdates).Error; err != nil {
		return nil, &PartialGradeError{SubmissionID: submissionID, Err: err}
	}

	task.Status = status
	task.FinalScore = score
	return task, nil
}

// SetStatus is the manual status override for non-grading edits. It never
// touches final_score, and a task that has left pending cannot re-enter it.
func (s *TaskService) SetStatus(taskID string, status models.TaskStatus) (*models.Task, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if status == models.StatusPending && task.Status != models.StatusPending {
		return nil, ErrInvalidStatus
	}

	if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	task.Status = status
	return task, nil
}

// DeleteTask removes a task and everything hanging off it. Stored objects
// are bulk-deleted first (best-effort: the database does not cascade into
// the object store); the task row delete then cascades to submissions,
// attachments and notes.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.GetTask(taskID); err != nil {
		return err
	}

	var subIDs []string
	if err := s.db.Model(&models.Submission{}).
		Where("task_id = ?", taskID).
		Pluck("id", &subIDs).Error; err != nil {
		return err
	}

	if len(subIDs) > 0 {
		var paths []string
		if err := s.db.Model(&models.Attachment{}).
			Where("submission_id IN ?", subIDs).
			Pluck("file_url", &paths).Error; err != nil {
			return err
		}
		if len(paths) > 0 {
			if err := s.store.Remove(ctx, paths); err != nil {
				// Orphaned objects beat an undeletable task.
				log.Printf("task %s: failed to delete some stored files: %v", taskID, err)
			}
		}
	}

	return s.db.Delete(&models.Task{}, "id = ?", taskID).Error
}

func validPriority(p models.TaskPriority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

func validStatus(st models.TaskStatus) bool {
	switch st {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
		return true
	}
	return false
}

package services

import (
	"context"
	"strings"
	"testing"

	"capstone-collab-api/internal/models"
	"capstone-collab-api/internal/objstore"
	"capstone-collab-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSubmissionTest(t *testing.T) (*gorm.DB, *objstore.MemoryStore, *SubmissionService) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	store := objstore.NewMemoryStore()
	return db, store, NewSubmissionService(db, store)
}

func seedTask(t *testing.T, db *gorm.DB) models.Task {
	t.Helper()
	task := models.Task{
		ID:        uuid.NewString(),
		Title:     "Capstone report",
		CreatorID: "adviser-1",
		GroupID:   "group-1",
		Priority:  models.PriorityMedium,
		Status:    models.StatusPending,
		MaxScore:  100,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func upload(name, content string) FileUpload {
	return FileUpload{Name: name, Content: strings.NewReader(content)}
}

func TestSubmit_EmptyFiles(t *testing.T) {
	db, _, svc := setupSubmissionTest(t)
	task := seedTask(t, db)

	_, err := svc.Submit(context.Background(), task.ID, "student-1", nil)
	require.ErrorIs(t, err, ErrEmptyFiles)

	subs, err := svc.ListSubmissions(task.ID)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestSubmit_TaskNotFound(t *testing.T) {
	_, _, svc := setupSubmissionTest(t)

	_, err := svc.Submit(context.Background(), "missing-task", "student-1", []FileUpload{upload("a.pdf", "x")})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSubmit_VersionsAreMonotonic(t *testing.T) {
	db, store, svc := setupSubmissionTest(t)
	task := seedTask(t, db)
	ctx := context.Background()

	first, err := svc.Submit(ctx, task.ID, "student-7", []FileUpload{upload("draft.pdf", "v1")})
	require.NoError(t, err)
	require.Equal(t, 1, first.VersionNumber)

	second, err := svc.Submit(ctx, task.ID, "student-7", []FileUpload{upload("draft.pdf", "v2"), upload("notes.txt", "extra")})
	require.NoError(t, err)
	require.Equal(t, 2, second.VersionNumber)
	require.Len(t, second.Attachments, 2)

	// Every attachment row points at a stored object.
	require.Equal(t, 3, store.Len())
	for _, att := range second.Attachments {
		require.True(t, store.Has(att.FileURL))
	}

	subs, err := svc.ListSubmissions(task.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, 2, subs[0].VersionNumber) // most recent first
	require.Equal(t, 1, subs[1].VersionNumber)
	require.Len(t, subs[0].Attachments, 2)
	require.Len(t, subs[1].Attachments, 1)
}

func TestSubmit_UploadFailureRollsBack(t *testing.T) {
	db, store, svc := setupSubmissionTest(t)
	task := seedTask(t, db)
	store.FailPattern = "fileB"

	_, err := svc.Submit(context.Background(), task.ID, "student-42",
		[]FileUpload{upload("fileA.pdf", "ok"), upload("fileB.pdf", "bad")})

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	require.Equal(t, "fileB.pdf", uploadErr.FileName)

	// The attempt's submission row is gone from the ledger.
	subs, listErr := svc.ListSubmissions(task.ID)
	require.NoError(t, listErr)
	require.Empty(t, subs)

	// No attachment row survived either.
	var attCount int64
	require.NoError(t, db.Model(&models.Attachment{}).Count(&attCount).Error)
	require.Zero(t, attCount)

	// fileA's object may remain as an accepted orphan.
	require.Equal(t, 1, store.Len())
}

func TestSubmit_LinkFailureRollsBack(t *testing.T) {
	db, _, svc := setupSubmissionTest(t)
	task := seedTask(t, db)

	// Force the batch attachment insert to fail after uploads succeed.
	require.NoError(t, db.Exec(`
		CREATE TRIGGER reject_attachments BEFORE INSERT ON attachments
		BEGIN SELECT RAISE(ABORT, 'link failure injected'); END;
	`).Error)

	_, err := svc.Submit(context.Background(), task.ID, "student-1", []FileUpload{upload("a.pdf", "x")})

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)

	subs, listErr := svc.ListSubmissions(task.ID)
	require.NoError(t, listErr)
	require.Empty(t, subs)
}

func TestSubmit_FreshVersionAfterFailedAttempt(t *testing.T) {
	db, store, svc := setupSubmissionTest(t)
	task := seedTask(t, db)
	ctx := context.Background()

	store.FailPattern = "broken"
	_, err := svc.Submit(ctx, task.ID, "student-1", []FileUpload{upload("broken.pdf", "x")})
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)

	// The caller re-invokes submit and gets a working version number.
	store.FailPattern = ""
	sub, err := svc.Submit(ctx, task.ID, "student-1", []FileUpload{upload("fixed.pdf", "x")})
	require.NoError(t, err)
	require.Equal(t, 1, sub.VersionNumber)
}

func TestListSubmissions_Idempotent(t *testing.T) {
	db, _, svc := setupSubmissionTest(t)
	task := seedTask(t, db)

	_, err := svc.Submit(context.Background(), task.ID, "student-1", []FileUpload{upload("a.pdf", "x")})
	require.NoError(t, err)

	first, err := svc.ListSubmissions(task.ID)
	require.NoError(t, err)
	second, err := svc.ListSubmissions(task.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestNextVersion_StartsAtOne(t *testing.T) {
	db, _, svc := setupSubmissionTest(t)
	task := seedTask(t, db)

	v, err := svc.NextVersion(task.ID)
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

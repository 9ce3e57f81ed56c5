package services

import (
	"testing"

	"capstone-collab-api/internal/models"
	"capstone-collab-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNoteTest(t *testing.T) (*gorm.DB, *NoteService) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return db, NewNoteService(db)
}

func TestCreateNote_RequiresContentAndTask(t *testing.T) {
	db, svc := setupNoteTest(t)
	task := seedTask(t, db)

	_, err := svc.CreateNote(task.ID, "student-1", "   ")
	require.Error(t, err)

	_, err = svc.CreateNote("missing-task", "student-1", "hello")
	require.ErrorIs(t, err, ErrTaskNotFound)

	note, err := svc.CreateNote(task.ID, "student-1", "draft uploaded")
	require.NoError(t, err)
	require.Equal(t, "draft uploaded", note.Content)
	require.Equal(t, "student-1", note.AuthorID)
}

func TestDeleteNote_AuthorAndStaffOnly(t *testing.T) {
	db, svc := setupNoteTest(t)
	task := seedTask(t, db)

	note, err := svc.CreateNote(task.ID, "student-1", "my note")
	require.NoError(t, err)

	// Another student may not delete it.
	err = svc.DeleteNote(note.ID, "student-2", models.RoleStudent)
	require.ErrorIs(t, err, ErrNotePermission)

	// The author may.
	require.NoError(t, svc.DeleteNote(note.ID, "student-1", models.RoleStudent))
	require.ErrorIs(t, svc.DeleteNote(note.ID, "student-1", models.RoleStudent), ErrNoteNotFound)

	// Staff may delete anyone's note.
	note, err = svc.CreateNote(task.ID, "student-1", "another note")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteNote(note.ID, "adviser-1", models.RoleStaff))
}

func TestListNotes_NewestFirst(t *testing.T) {
	db, svc := setupNoteTest(t)
	task := seedTask(t, db)

	first, err := svc.CreateNote(task.ID, "student-1", "first")
	require.NoError(t, err)
	second, err := svc.CreateNote(task.ID, "adviser-1", "second")
	require.NoError(t, err)

	notes, err := svc.ListNotes(task.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.ElementsMatch(t, []string{first.ID, second.ID}, []string{notes[0].ID, notes[1].ID})
}

package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/school"
)

func TestOpen(t *testing.T) {
	db, err := Open(Options{})
	require.NoError(t, err)
	assert.Len(t, db.user.rows, 3)
	assert.Len(t, db.school.rows, 2)
	assert.Len(t, db.staff.rows, 3)
	assert.Len(t, db.lga.rows, 5)
	assert.Len(t, db.gradingScheme.rows, 2)
	assert.Len(t, db.maintenance.rows, 2)
	assert.NotEmpty(t, db.trends)

	for _, gs := range db.gradingScheme.all(nil) {
		assert.NoError(t, exam.ValidateRanges(gs.GradeRanges), gs.Name)
	}

	empty, err := Open(Options{Empty: true})
	require.NoError(t, err)
	assert.Empty(t, empty.school.rows)
	assert.Empty(t, empty.trends)
}

func TestDB_wait(t *testing.T) {
	db, err := Open(Options{Latency: 20 * time.Millisecond, Empty: true})
	require.NoError(t, err)
	repo := NewSchoolRepository(db)

	start := time.Now()
	_, err = repo.QueryAllSchools(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int64(time.Since(start)), int64(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.CreateSchool(ctx, school.School{Name: "Never"})
	assert.Equal(t, context.Canceled, err)
	assert.Empty(t, db.school.rows)
}

func TestTable(t *testing.T) {
	tbl := newTable[string]()
	tbl.insert("b", "second")
	tbl.insert("a", "first")
	tbl.insert("c", "third")
	tbl.insert("b", "second again")
	assert.Equal(t, []string{"second again", "first", "third"}, tbl.all(nil), "insertion order kept on replace")

	assert.True(t, tbl.remove("a"))
	assert.False(t, tbl.remove("a"))
	assert.Equal(t, []string{"second again", "third"}, tbl.all(nil))
	assert.Equal(t, []string{"third"}, tbl.all(func(s string) bool { return s == "third" }))

	got, ok := tbl.get("c")
	assert.True(t, ok)
	assert.Equal(t, "third", got)
	_, ok = tbl.get("a")
	assert.False(t, ok)
}

func TestExamRepository_DeleteResult(t *testing.T) {
	ctx := context.Background()
	db, err := Open(Options{Empty: true})
	require.NoError(t, err)
	repo := NewExamRepository(db)

	res, err := repo.CreateResult(ctx, exam.Result{SchoolID: "1", ExamID: "1"})
	require.NoError(t, err)
	other, err := repo.CreateResult(ctx, exam.Result{SchoolID: "2", ExamID: "1"})
	require.NoError(t, err)
	for _, id := range []string{res.ID, res.ID, other.ID} {
		_, err := repo.CreateSubjectResult(ctx, exam.SubjectResult{ResultID: id, SubjectName: "Mathematics"})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteResult(ctx, res.ID))
	subs, err := repo.QuerySubjectResults(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, other.ID, subs[0].ResultID)

	err = repo.DeleteResult(ctx, res.ID)
	assert.True(t, core.IsNotFound(err))
}

func TestSchoolRepository(t *testing.T) {
	ctx := context.Background()
	db, err := Open(Options{})
	require.NoError(t, err)
	repo := NewSchoolRepository(db)

	created, err := repo.CreateSchool(ctx, school.School{Name: "Unity Primary", State: "Ogun"})
	require.NoError(t, err)
	assert.Len(t, created.ID, 36, "uuid")

	found, err := repo.FilterSchools(ctx, school.Filter{State: "ogun"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	created.Name = "Unity Model Primary"
	_, err = repo.UpdateSchool(ctx, created)
	require.NoError(t, err)
	got, err := repo.GetSchoolByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unity Model Primary", got.Name)

	_, err = repo.UpdateSchool(ctx, school.School{ID: "404"})
	assert.Equal(t, school.ErrNotFound, err)
}

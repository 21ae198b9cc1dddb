package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
)

// ── helpers ──

func newTestRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Map{},
		&model.Semester{},
		&model.Class{},
		&model.Course{},
		&model.Requirement{},
	))

	return repository.NewRepository(db), db
}

func seedMap(t *testing.T, repo *repository.Repository) (*model.Map, *model.Semester) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{Email: "student@example.edu", Name: "Student", PasswordHash: "x"}
	require.NoError(t, repo.User.Create(ctx, user))

	m := &model.Map{UserID: user.UserID, Name: "CS Plan", StartTerm: model.TermFall, StartYear: 2024}
	require.NoError(t, repo.Map.Create(ctx, m))

	sem := &model.Semester{MapID: m.MapID, Term: model.TermFall, Year: 2024}
	require.NoError(t, repo.Semester.Create(ctx, sem))
	return m, sem
}

// ── users ──

func TestUserRepo_CreateAndLookup(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	u := &model.User{Email: "a@example.edu", Name: "A", PasswordHash: "hash"}
	require.NoError(t, repo.User.Create(ctx, u))
	assert.NotEmpty(t, u.UserID)

	got, err := repo.User.GetByEmail(ctx, "a@example.edu")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, got.UserID)
	assert.Equal(t, model.RoleStudent, got.Role)

	dup := &model.User{Email: "a@example.edu", Name: "B", PasswordHash: "hash"}
	assert.ErrorIs(t, repo.User.Create(ctx, dup), gorm.ErrDuplicatedKey)

	_, err = repo.User.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepo_UpdateKeepsEmail(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	u := &model.User{Email: "a@example.edu", Name: "A", PasswordHash: "hash"}
	require.NoError(t, repo.User.Create(ctx, u))

	u.Name = "Alex"
	u.Role = model.RoleAdmin
	u.Email = "changed@example.edu"
	require.NoError(t, repo.User.Update(ctx, u))

	got, err := repo.User.GetByEmail(ctx, "A@Example.edu")
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

// ── maps ──

func TestMapRepo_DetailIsOrdered(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, fall := seedMap(t, repo)

	spring := &model.Semester{MapID: m.MapID, Term: model.TermSpring, Year: 2025, Position: 1}
	require.NoError(t, repo.Semester.Create(ctx, spring))

	for i, name := range []string{"Second", "First"} {
		require.NoError(t, repo.Class.Create(ctx, &model.Class{
			MapID: m.MapID, SemesterID: fall.SemesterID,
			Subject: "CSE", Number: name, Name: name, Credits: 3, Position: 1 - i,
		}))
	}
	require.NoError(t, repo.Requirement.Create(ctx, &model.Requirement{
		MapID: m.MapID, Name: "Major", Tag: "MAJOR", Type: model.RequirementCreditHours, Goal: 45,
	}))

	got, err := repo.Map.GetDetail(ctx, m.MapID)
	require.NoError(t, err)
	require.Len(t, got.Semesters, 2)
	assert.Equal(t, fall.SemesterID, got.Semesters[0].SemesterID)
	require.Len(t, got.Semesters[0].Classes, 2)
	assert.Equal(t, "First", got.Semesters[0].Classes[0].Name)
	assert.Len(t, got.Requirements, 1)
}

func TestMapRepo_ListByUserFiltersStatus(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, _ := seedMap(t, repo)

	archived := &model.Map{UserID: m.UserID, Name: "Old", StartTerm: model.TermSpring, StartYear: 2020, Status: model.MapStatusArchived}
	require.NoError(t, repo.Map.Create(ctx, archived))

	all, err := repo.Map.ListByUser(ctx, m.UserID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.Map.ListByUser(ctx, m.UserID, model.MapStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, m.MapID, active[0].MapID)
}

func TestMapRepo_DeleteCascades(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	m, sem := seedMap(t, repo)

	require.NoError(t, repo.Class.Create(ctx, &model.Class{MapID: m.MapID, SemesterID: sem.SemesterID, Subject: "CSE", Number: "110", Name: "Intro", Credits: 3}))
	require.NoError(t, repo.Requirement.Create(ctx, &model.Requirement{MapID: m.MapID, Name: "Major", Tag: "MAJOR", Type: model.RequirementClassCount, Goal: 2}))

	require.NoError(t, repo.Map.Delete(ctx, m.MapID))

	for _, table := range []interface{}{&model.Map{}, &model.Semester{}, &model.Class{}, &model.Requirement{}} {
		var n int64
		require.NoError(t, db.Model(table).Count(&n).Error)
		assert.Zero(t, n, "%T rows left after cascade", table)
	}
}

func TestMapRepo_UpdateTotalCredits(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, _ := seedMap(t, repo)

	require.NoError(t, repo.Map.UpdateTotalCredits(ctx, m.MapID, 42))
	got, err := repo.Map.GetByID(ctx, m.MapID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.TotalCredits)
}

// ── semesters ──

func TestSemesterRepo_UniqueTermYear(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, _ := seedMap(t, repo)

	err := repo.Semester.Create(ctx, &model.Semester{MapID: m.MapID, Term: model.TermFall, Year: 2024})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	got, err := repo.Semester.GetByTermYear(ctx, m.MapID, model.TermFall, 2024)
	require.NoError(t, err)
	assert.Equal(t, m.MapID, got.MapID)
}

func TestSemesterRepo_BatchCreateAndPositions(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, first := seedMap(t, repo)

	require.NoError(t, repo.Semester.BatchCreate(ctx, []model.Semester{
		{MapID: m.MapID, Term: model.TermSpring, Year: 2025, Position: 1},
		{MapID: m.MapID, Term: model.TermFall, Year: 2025, Position: 2},
	}))
	require.NoError(t, repo.Semester.UpdatePosition(ctx, first.SemesterID, 9))

	list, err := repo.Semester.ListByMap(ctx, m.MapID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.SemesterID, list[2].SemesterID)
}

// ── classes ──

func TestClassRepo_TagsRoundTripAndCount(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, sem := seedMap(t, repo)

	c := &model.Class{
		MapID: m.MapID, SemesterID: sem.SemesterID,
		Subject: "CSE", Number: "110", Name: "Intro", Credits: 3,
		Tags: model.StringArray{"MAJOR", "GEN_ED"},
	}
	require.NoError(t, repo.Class.Create(ctx, c))

	n, err := repo.Class.CountBySemester(ctx, sem.SemesterID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, repo.Class.UpdateTags(ctx, c.ClassID, model.StringArray{"GEN_ED"}))

	list, err := repo.Class.ListByMap(ctx, m.MapID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.StringArray{"GEN_ED"}, list[0].Tags)
	assert.Equal(t, model.ClassStatusPlanned, list[0].Status)

	require.NoError(t, repo.Class.Delete(ctx, c.ClassID))
	_, err = repo.Class.GetByID(ctx, c.ClassID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// ── requirements ──

func TestRequirementRepo_TagUniquePerMap(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, _ := seedMap(t, repo)

	r := &model.Requirement{MapID: m.MapID, Name: "Gen Ed", Tag: "GEN_ED", Type: model.RequirementCreditHours, Goal: 30}
	require.NoError(t, repo.Requirement.Create(ctx, r))

	dup := &model.Requirement{MapID: m.MapID, Name: "Again", Tag: "GEN_ED", Type: model.RequirementClassCount, Goal: 1}
	assert.ErrorIs(t, repo.Requirement.Create(ctx, dup), gorm.ErrDuplicatedKey)

	other := &model.Map{UserID: m.UserID, Name: "Other", StartTerm: model.TermFall, StartYear: 2024}
	require.NoError(t, repo.Map.Create(ctx, other))
	assert.NoError(t, repo.Requirement.Create(ctx, &model.Requirement{MapID: other.MapID, Name: "Gen Ed", Tag: "GEN_ED", Type: model.RequirementCreditHours, Goal: 30}))

	require.NoError(t, repo.Requirement.UpdateCurrent(ctx, r.RequirementID, 12))
	got, err := repo.Requirement.GetByTag(ctx, m.MapID, "GEN_ED")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Current)
	assert.False(t, got.IsCustom)
}

// ── courses ──

func TestCourseRepo_SearchAndUpsert(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, c := range []model.Course{
		{Subject: "CSE", Number: "110", Code: "CSE 110", Name: "Principles of Programming", Credits: 3, Tags: model.StringArray{"MAJOR"}},
		{Subject: "CSE", Number: "205", Code: "CSE 205", Name: "Object-Oriented Programming", Credits: 3},
		{Subject: "MAT", Number: "265", Code: "MAT 265", Name: "Calculus I", Credits: 3, Tags: model.StringArray{"MATH"}},
	} {
		c := c
		require.NoError(t, repo.Course.Create(ctx, &c))
	}

	list, total, err := repo.Course.Search(ctx, repository.CourseFilter{Query: "programming", Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 1)
	assert.Equal(t, "CSE 110", list[0].Code)

	_, total, err = repo.Course.Search(ctx, repository.CourseFilter{Subject: "mat", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	list, _, err = repo.Course.Search(ctx, repository.CourseFilter{Tag: "MAJOR", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CSE 110", list[0].Code)

	require.NoError(t, repo.Course.Upsert(ctx, &model.Course{
		Subject: "CSE", Number: "110", Code: "CSE 110", Name: "Intro to Programming", Credits: 4,
	}))
	got, err := repo.Course.GetByCode(ctx, "CSE 110")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Programming", got.Name)
	assert.Equal(t, 4, got.Credits)

	_, total, err = repo.Course.Search(ctx, repository.CourseFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

// ── transactions ──

func TestRepository_TransactionRollsBack(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, _ := seedMap(t, repo)

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Map.UpdateTotalCredits(ctx, m.MapID, 99); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Map.GetByID(ctx, m.MapID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalCredits)
}

func TestRepository_BeginTxCommit(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	m, _ := seedMap(t, repo)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.WithTx(tx).Map.UpdateTotalCredits(ctx, m.MapID, 15))
	require.NoError(t, tx.Commit().Error)

	got, err := repo.Map.GetByID(ctx, m.MapID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.TotalCredits)
}

func TestRepository_TransactionWithoutDB(t *testing.T) {
	repo := &repository.Repository{}
	called := false
	err := repo.Transaction(context.Background(), func(tx *repository.Repository) error {
		called = tx == repo
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
	"github.com/Vihaan004/Map-My-Major-sub000/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("mapmymajor_test"),
		tcpostgres.WithUsername("mapmymajor"),
		tcpostgres.WithPassword("mapmymajor"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	code := func() int {
		defer func() { _ = testcontainers.TerminateContainer(container) }()

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
			return 1
		}

		pgDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
			return 1
		}

		sqlDB, err := pgDB.DB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get sql.DB: %v\n", err)
			return 1
		}
		if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
			fmt.Fprintf(os.Stderr, "migrations failed: %v\n", err)
			return 1
		}

		return m.Run()
	}()

	os.Exit(code)
}

func seedPostgresMap(t *testing.T, repo *repository.Repository) (*model.Map, *model.Semester) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{
		Email:        fmt.Sprintf("it-%d@example.edu", time.Now().UnixNano()),
		Name:         "Integration",
		PasswordHash: "x",
	}
	require.NoError(t, repo.User.Create(ctx, user))

	m := &model.Map{UserID: user.UserID, Name: "IT Plan", StartTerm: model.TermFall, StartYear: 2024}
	require.NoError(t, repo.Map.Create(ctx, m))

	sem := &model.Semester{MapID: m.MapID, Term: model.TermFall, Year: 2024}
	require.NoError(t, repo.Semester.Create(ctx, sem))

	t.Cleanup(func() { _ = repo.Map.Delete(context.Background(), m.MapID) })
	return m, sem
}

// ═══════════════════════════════════════════════════════════
// text[] columns
// ═══════════════════════════════════════════════════════════

func TestPostgres_StringArrayColumns(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	m, sem := seedPostgresMap(t, repo)

	c := &model.Class{
		MapID: m.MapID, SemesterID: sem.SemesterID,
		Subject: "CSE", Number: "110", Name: "Intro", Credits: 3,
		Tags:          model.StringArray{"MAJOR", `odd "tag", here`},
		Prerequisites: model.StringArray{},
	}
	require.NoError(t, repo.Class.Create(ctx, c))

	got, err := repo.Class.GetByID(ctx, c.ClassID)
	require.NoError(t, err)
	assert.Equal(t, c.Tags, got.Tags)
	assert.Empty(t, got.Prerequisites)
	assert.Empty(t, got.Corequisites)
}

func TestPostgres_CourseTagSearch(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	code := fmt.Sprintf("ZZZ %d", time.Now().UnixNano()%100000)
	course := &model.Course{Subject: "ZZZ", Number: code[4:], Code: code, Name: "Tagged", Credits: 3, Tags: model.StringArray{"IT_ONLY"}}
	require.NoError(t, repo.Course.Create(ctx, course))
	t.Cleanup(func() { _ = repo.Course.Delete(context.Background(), course.CourseID) })

	list, total, err := repo.Course.Search(ctx, repository.CourseFilter{Tag: "IT_ONLY", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, code, list[0].Code)
}

// ═══════════════════════════════════════════════════════════
// constraints and transactions
// ═══════════════════════════════════════════════════════════

func TestPostgres_UniqueConstraints(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	m, _ := seedPostgresMap(t, repo)

	err := repo.Semester.Create(ctx, &model.Semester{MapID: m.MapID, Term: model.TermFall, Year: 2024})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.Requirement.Create(ctx, &model.Requirement{MapID: m.MapID, Name: "Major", Tag: "MAJOR", Type: model.RequirementCreditHours, Goal: 45}))
	err = repo.Requirement.Create(ctx, &model.Requirement{MapID: m.MapID, Name: "Dup", Tag: "MAJOR", Type: model.RequirementClassCount, Goal: 1})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPostgres_TransactionRollback(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	m, _ := seedPostgresMap(t, repo)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.WithTx(tx).Map.UpdateTotalCredits(ctx, m.MapID, 30))
	require.NoError(t, tx.Rollback().Error)

	got, err := repo.Map.GetByID(ctx, m.MapID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalCredits)
}

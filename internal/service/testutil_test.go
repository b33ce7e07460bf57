package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/repository/postgres"
)

func testLogger() *logger.Logger { return logger.NewNop() }

// fakeStorage records calls instead of talking to an object store.
type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) Upload(_ context.Context, objectKey string, _ string, _ io.Reader, _ int64) (string, error) {
	f.uploaded = append(f.uploaded, objectKey)
	return objectKey, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

type testEnv struct {
	db    *gorm.DB
	store *postgres.Store

	exercises ExerciseService
	methods   MethodService
	groups    GroupService
	sheets    SheetService

	storage *fakeStorage
}

var dbSeq struct {
	sync.Mutex
	n int
}

// newTestEnv wires the full engine over an isolated in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbSeq.Lock()
	dbSeq.n++
	name := fmt.Sprintf("svc_test_%d", dbSeq.n)
	dbSeq.Unlock()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.AutoMigrateAll(db))

	store := postgres.NewStore(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	methodRepo := postgres.NewMethodRepository(db)
	groupRepo := postgres.NewExerciseGroupRepository(db)
	sheetRepo := postgres.NewTrainingSheetRepository(db)

	fs := &fakeStorage{}

	return &testEnv{
		db:        db,
		store:     store,
		exercises: NewExerciseService(exerciseRepo),
		methods:   NewMethodService(methodRepo),
		groups:    NewGroupService(store, groupRepo, categoryRepo, exerciseRepo, methodRepo),
		sheets:    NewSheetService(store, sheetRepo, groupRepo, fs, testLogger()),
		storage:   fs,
	}
}

func (e *testEnv) seedCategory(t *testing.T, name string) domain.ExerciseGroupCategory {
	t.Helper()
	cat := domain.ExerciseGroupCategory{Name: name}
	require.NoError(t, e.db.Create(&cat).Error)
	return cat
}

func (e *testEnv) seedExercise(t *testing.T, description string) domain.Exercise {
	t.Helper()
	ex, err := e.exercises.CreateExercise(context.Background(), CreateExerciseInput{Description: description})
	require.NoError(t, err)
	return *ex
}

func (e *testEnv) seedMethod(t *testing.T, name string) domain.Method {
	t.Helper()
	m, err := e.methods.CreateMethod(context.Background(), CreateMethodInput{Name: name, Description: name + " description"})
	require.NoError(t, err)
	return *m
}

func strPtr(s string) *string { return &s }

func uintPtr(n uint) *uint { return &n }

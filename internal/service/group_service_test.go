package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pagination"
)

func firstPage() pagination.Params {
	return pagination.Params{Page: 1, PageSize: 10, Skip: 0}
}

func (e *testEnv) createGroup(t *testing.T, input CreateGroupInput) *domain.ExerciseGroup {
	t.Helper()
	group, err := e.groups.CreateGroup(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, group)
	return group
}

func TestCreateGroup_PreservesSlotOrderAndConfigurations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Upper body")
	squat := env.seedExercise(t, "Barbell back squat")
	lunge := env.seedExercise(t, "Walking lunge")
	dropset := env.seedMethod(t, "Drop set")

	group := env.createGroup(t, CreateGroupInput{
		Name:       "Leg day A",
		PublicName: strPtr("Legs"),
		CategoryID: cat.ID,
		ExerciseMethods: []ExerciseMethodInput{
			{
				Rest: strPtr("90s"),
				ExerciseConfigurations: []ExerciseConfigurationInput{
					{ExerciseID: squat.ID, MethodID: &dropset.ID, Series: "4", Reps: "8"},
					{ExerciseID: lunge.ID, Series: "3", Reps: "12"},
				},
			},
			{
				Observations: strPtr("light weight"),
				ExerciseConfigurations: []ExerciseConfigurationInput{
					{ExerciseID: lunge.ID, Series: "2", Reps: "20"},
				},
			},
			{},
		},
	})

	require.NotNil(t, group.Category)
	assert.Equal(t, "Upper body", group.Category.Name)

	require.Len(t, group.ExerciseMethods, 3)
	assert.Equal(t, 1, group.ExerciseMethods[0].Order)
	assert.Equal(t, 2, group.ExerciseMethods[1].Order)
	assert.Equal(t, 3, group.ExerciseMethods[2].Order)

	first := group.ExerciseMethods[0]
	assert.Equal(t, "90s", first.Rest)
	assert.Equal(t, "", first.Observations)
	require.Len(t, first.ExerciseConfigurations, 2)
	assert.Equal(t, squat.ID, first.ExerciseConfigurations[0].ExerciseID)
	require.NotNil(t, first.ExerciseConfigurations[0].MethodID)
	assert.Equal(t, dropset.ID, *first.ExerciseConfigurations[0].MethodID)
	assert.Equal(t, "4", first.ExerciseConfigurations[0].Series)
	assert.Equal(t, "8", first.ExerciseConfigurations[0].Reps)
	require.NotNil(t, first.ExerciseConfigurations[0].Exercise)
	assert.Equal(t, "Barbell back squat", first.ExerciseConfigurations[0].Exercise.Description)
	require.NotNil(t, first.ExerciseConfigurations[0].Method)
	assert.Equal(t, "Drop set", first.ExerciseConfigurations[0].Method.Name)
	assert.Nil(t, first.ExerciseConfigurations[1].MethodID)

	second := group.ExerciseMethods[1]
	assert.Equal(t, "60s", second.Rest)
	assert.Equal(t, "light weight", second.Observations)

	third := group.ExerciseMethods[2]
	assert.Equal(t, "60s", third.Rest)
	assert.Empty(t, third.ExerciseConfigurations)

	// the read path serves the same graph
	fetched, err := env.groups.GetGroupFull(ctx, group.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Len(t, fetched.ExerciseMethods, 3)
	assert.Equal(t, group.ExerciseMethods[0].ID, fetched.ExerciseMethods[0].ID)
}

func TestCreateGroup_UnknownCategoryPersistsNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.groups.CreateGroup(context.Background(), CreateGroupInput{
		Name:       "Orphan",
		CategoryID: 999,
	})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "category", refErr.Entity)

	var count int64
	require.NoError(t, env.db.Model(&domain.ExerciseGroup{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateGroup_UnknownExerciseRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)

	cat := env.seedCategory(t, "Lower body")
	ex := env.seedExercise(t, "Deadlift")

	_, err := env.groups.CreateGroup(context.Background(), CreateGroupInput{
		Name:       "Pull day",
		CategoryID: cat.ID,
		ExerciseMethods: []ExerciseMethodInput{
			{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: ex.ID, Series: "3", Reps: "5"},
			}},
			{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: 12345, Series: "3", Reps: "5"},
			}},
		},
	})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "exercise", refErr.Entity)

	var groups, methods, configs int64
	require.NoError(t, env.db.Model(&domain.ExerciseGroup{}).Count(&groups).Error)
	require.NoError(t, env.db.Model(&domain.ExerciseMethod{}).Count(&methods).Error)
	require.NoError(t, env.db.Model(&domain.ExerciseConfiguration{}).Count(&configs).Error)
	assert.Zero(t, groups)
	assert.Zero(t, methods)
	assert.Zero(t, configs)
}

func TestCreateGroup_ValidatesShape(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "Cardio")

	cases := []struct {
		name  string
		input CreateGroupInput
		field string
	}{
		{"blank name", CreateGroupInput{Name: "   ", CategoryID: cat.ID}, "name"},
		{"zero category", CreateGroupInput{Name: "x", CategoryID: 0}, "categoryId"},
		{"zero exercise id", CreateGroupInput{
			Name: "x", CategoryID: cat.ID,
			ExerciseMethods: []ExerciseMethodInput{{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: 0, Series: "3", Reps: "10"},
			}}},
		}, "exerciseMethods.exerciseId"},
		{"blank series", CreateGroupInput{
			Name: "x", CategoryID: cat.ID,
			ExerciseMethods: []ExerciseMethodInput{{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: 1, Series: " ", Reps: "10"},
			}}},
		}, "exerciseMethods.series"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.groups.CreateGroup(context.Background(), tc.input)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tc.field, valErr.Field)
		})
	}
}

func TestUpdateGroup_TouchesMetadataOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Full body")
	ex := env.seedExercise(t, "Push up")

	group := env.createGroup(t, CreateGroupInput{
		Name:       "Old name",
		CategoryID: cat.ID,
		ExerciseMethods: []ExerciseMethodInput{
			{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: ex.ID, Series: "3", Reps: "15"},
			}},
		},
	})
	slotID := group.ExerciseMethods[0].ID
	cfgID := group.ExerciseMethods[0].ExerciseConfigurations[0].ID

	updated, err := env.groups.UpdateGroup(ctx, group.ID, UpdateGroupInput{
		Name:       strPtr("New name"),
		PublicName: strPtr("Public"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	require.NotNil(t, updated.PublicName)
	assert.Equal(t, "Public", *updated.PublicName)

	require.Len(t, updated.ExerciseMethods, 1)
	assert.Equal(t, slotID, updated.ExerciseMethods[0].ID)
	require.Len(t, updated.ExerciseMethods[0].ExerciseConfigurations, 1)
	assert.Equal(t, cfgID, updated.ExerciseMethods[0].ExerciseConfigurations[0].ID)
}

func TestUpdateGroup_Missing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.groups.UpdateGroup(context.Background(), 404, UpdateGroupInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestDeleteGroup_CascadesToDescendants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Mobility")
	ex := env.seedExercise(t, "Hip hinge drill")

	group := env.createGroup(t, CreateGroupInput{
		Name:       "Warmup",
		CategoryID: cat.ID,
		ExerciseMethods: []ExerciseMethodInput{
			{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: ex.ID, Series: "2", Reps: "10"},
				{ExerciseID: ex.ID, Series: "1", Reps: "20"},
			}},
			{},
		},
	})

	require.NoError(t, env.groups.DeleteGroup(ctx, group.ID))

	var groups, methods, configs, exercises int64
	require.NoError(t, env.db.Model(&domain.ExerciseGroup{}).Count(&groups).Error)
	require.NoError(t, env.db.Model(&domain.ExerciseMethod{}).Count(&methods).Error)
	require.NoError(t, env.db.Model(&domain.ExerciseConfiguration{}).Count(&configs).Error)
	require.NoError(t, env.db.Model(&domain.Exercise{}).Count(&exercises).Error)
	assert.Zero(t, groups)
	assert.Zero(t, methods)
	assert.Zero(t, configs)
	assert.EqualValues(t, 1, exercises, "catalog rows survive group deletion")

	assert.ErrorIs(t, env.groups.DeleteGroup(ctx, group.ID), ErrGroupNotFound)
}

func TestDeleteGroup_BlockedWhileReferencedBySheet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Upper body")
	group := env.createGroup(t, CreateGroupInput{Name: "Push", CategoryID: cat.ID})

	sheet, err := env.sheets.CreateSheet(ctx, CreateSheetInput{
		Name:         "Program A",
		TrainingDays: []TrainingDayInput{{ExerciseGroupID: group.ID}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, env.groups.DeleteGroup(ctx, group.ID), ErrGroupInUse)

	require.NoError(t, env.sheets.DeleteSheet(ctx, sheet.ID))
	require.NoError(t, env.groups.DeleteGroup(ctx, group.ID))
}

func TestGetGroupFull_AbsentReturnsNil(t *testing.T) {
	env := newTestEnv(t)

	group, err := env.groups.GetGroupFull(context.Background(), 777)
	require.NoError(t, err)
	assert.Nil(t, group)
}

func TestListGroups_FiltersByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	upper := env.seedCategory(t, "Upper body")
	lower := env.seedCategory(t, "Lower body")
	env.createGroup(t, CreateGroupInput{Name: "Push", CategoryID: upper.ID})
	env.createGroup(t, CreateGroupInput{Name: "Pull", CategoryID: upper.ID})
	env.createGroup(t, CreateGroupInput{Name: "Legs", CategoryID: lower.ID})

	all, total, err := env.groups.ListGroups(ctx, firstPage(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	filtered, total, err := env.groups.ListGroups(ctx, firstPage(), uintPtr(upper.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, filtered, 2)
	for _, g := range filtered {
		assert.Equal(t, upper.ID, g.CategoryID)
	}

	empty, total, err := env.groups.ListGroups(ctx, firstPage(), uintPtr(lower.ID+100))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, empty)
}

func TestAddExerciseMethod_AppendsAfterHighestOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Full body")
	ex := env.seedExercise(t, "Burpee")

	group := env.createGroup(t, CreateGroupInput{
		Name:            "Circuit",
		CategoryID:      cat.ID,
		ExerciseMethods: []ExerciseMethodInput{{}, {}},
	})

	updated, err := env.groups.AddExerciseMethod(ctx, group.ID, ExerciseMethodInput{
		Rest: strPtr("30s"),
		ExerciseConfigurations: []ExerciseConfigurationInput{
			{ExerciseID: ex.ID, Series: "5", Reps: "10"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.ExerciseMethods, 3)
	last := updated.ExerciseMethods[2]
	assert.Equal(t, 3, last.Order)
	assert.Equal(t, "30s", last.Rest)
	require.Len(t, last.ExerciseConfigurations, 1)

	// existing slots keep their ranks after a sibling is removed
	require.NoError(t, env.groups.DeleteExerciseMethod(ctx, updated.ExerciseMethods[1].ID))
	appended, err := env.groups.AddExerciseMethod(ctx, group.ID, ExerciseMethodInput{})
	require.NoError(t, err)
	require.Len(t, appended.ExerciseMethods, 3)
	assert.Equal(t, 1, appended.ExerciseMethods[0].Order)
	assert.Equal(t, 3, appended.ExerciseMethods[1].Order)
	assert.Equal(t, 4, appended.ExerciseMethods[2].Order)
}

func TestAddExerciseMethod_UnknownGroup(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.groups.AddExerciseMethod(context.Background(), 42, ExerciseMethodInput{})
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestDeleteExerciseMethod_RemovesConfigurations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Upper body")
	ex := env.seedExercise(t, "Bench press")

	group := env.createGroup(t, CreateGroupInput{
		Name:       "Push",
		CategoryID: cat.ID,
		ExerciseMethods: []ExerciseMethodInput{
			{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: ex.ID, Series: "5", Reps: "5"},
			}},
		},
	})

	require.NoError(t, env.groups.DeleteExerciseMethod(ctx, group.ExerciseMethods[0].ID))

	var configs int64
	require.NoError(t, env.db.Model(&domain.ExerciseConfiguration{}).Count(&configs).Error)
	assert.Zero(t, configs)

	assert.ErrorIs(t, env.groups.DeleteExerciseMethod(ctx, group.ExerciseMethods[0].ID), ErrExerciseMethodNotFound)
}

func TestUpdateConfiguration_PartialAndClearMethod(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Lower body")
	squat := env.seedExercise(t, "Squat")
	press := env.seedExercise(t, "Leg press")
	rest := env.seedMethod(t, "Rest pause")

	group := env.createGroup(t, CreateGroupInput{
		Name:       "Legs",
		CategoryID: cat.ID,
		ExerciseMethods: []ExerciseMethodInput{
			{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: squat.ID, MethodID: &rest.ID, Series: "4", Reps: "6"},
			}},
		},
	})
	cfgID := group.ExerciseMethods[0].ExerciseConfigurations[0].ID

	updated, err := env.groups.UpdateConfiguration(ctx, cfgID, UpdateConfigurationInput{
		ExerciseID: &press.ID,
		Series:     strPtr("3"),
	})
	require.NoError(t, err)
	assert.Equal(t, press.ID, updated.ExerciseID)
	assert.Equal(t, "3", updated.Series)
	assert.Equal(t, "6", updated.Reps)
	require.NotNil(t, updated.MethodID)
	assert.Equal(t, rest.ID, *updated.MethodID)
	require.NotNil(t, updated.Exercise)
	assert.Equal(t, "Leg press", updated.Exercise.Description)

	cleared, err := env.groups.UpdateConfiguration(ctx, cfgID, UpdateConfigurationInput{ClearMethod: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.MethodID)
	assert.Nil(t, cleared.Method)

	_, err = env.groups.UpdateConfiguration(ctx, cfgID, UpdateConfigurationInput{ExerciseID: uintPtr(9999)})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "exercise", refErr.Entity)

	// the failed update left the row unchanged
	after, err := env.groups.GetConfigurationFull(ctx, cfgID)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, press.ID, after.ExerciseID)
}

func TestDeleteConfiguration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat := env.seedCategory(t, "Upper body")
	ex := env.seedExercise(t, "Row")

	group := env.createGroup(t, CreateGroupInput{
		Name:       "Pull",
		CategoryID: cat.ID,
		ExerciseMethods: []ExerciseMethodInput{
			{ExerciseConfigurations: []ExerciseConfigurationInput{
				{ExerciseID: ex.ID, Series: "3", Reps: "10"},
			}},
		},
	})
	cfgID := group.ExerciseMethods[0].ExerciseConfigurations[0].ID

	require.NoError(t, env.groups.DeleteConfiguration(ctx, cfgID))
	assert.ErrorIs(t, env.groups.DeleteConfiguration(ctx, cfgID), ErrConfigurationNotFound)

	gone, err := env.groups.GetConfigurationFull(ctx, cfgID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// the slot itself survives
	fetched, err := env.groups.GetGroupFull(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, fetched.ExerciseMethods, 1)
	assert.Empty(t, fetched.ExerciseMethods[0].ExerciseConfigurations)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	env.seedCategory(t, "Cardio")
	env.seedCategory(t, "Mobility")

	cats, err := env.groups.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

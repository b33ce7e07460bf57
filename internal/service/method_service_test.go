package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMethod_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.methods.CreateMethod(ctx, CreateMethodInput{
		Name:        "  Drop set  ",
		Description: "Reduce the load and continue after failure",
	})
	require.NoError(t, err)
	assert.Equal(t, "Drop set", m.Name)

	var valErr *ValidationError
	_, err = env.methods.CreateMethod(ctx, CreateMethodInput{Name: " ", Description: "x"})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "name", valErr.Field)

	_, err = env.methods.CreateMethod(ctx, CreateMethodInput{Name: "x", Description: " "})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "description", valErr.Field)
}

func TestMethodCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.seedMethod(t, "Rest pause")

	fetched, err := env.methods.GetMethodByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rest pause", fetched.Name)

	updated, err := env.methods.UpdateMethod(ctx, created.ID, UpdateMethodInput{
		Description: strPtr("Short intra-set rests after reaching failure"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rest pause", updated.Name)
	assert.Equal(t, "Short intra-set rests after reaching failure", updated.Description)

	require.NoError(t, env.methods.DeleteMethod(ctx, created.ID))
	assert.ErrorIs(t, env.methods.DeleteMethod(ctx, created.ID), ErrMethodNotFound)

	_, err = env.methods.GetMethodByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

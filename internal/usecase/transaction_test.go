package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_RollsBackCompletedSteps(t *testing.T) {
	var calls []string
	step := func(name string, err error) func(context.Context) error {
		return func(context.Context) error {
			calls = append(calls, name)
			return err
		}
	}

	tx := NewTransaction()
	tx.AddOperation("first", step("first", nil))
	tx.AddCompensation("undo first", step("undo first", nil))
	tx.AddOperation("second", step("second", nil))
	tx.AddCompensation("undo second", step("undo second", nil))
	tx.AddOperation("third", step("third", errors.New("boom")))

	err := tx.Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 'third' failed")
	assert.Equal(t, []string{"first", "second", "third", "undo second", "undo first"}, calls)
}

func TestTransaction_FailedFirstStepRunsNothing(t *testing.T) {
	compensated := false
	cause := errors.New("boom")

	tx := NewTransaction()
	tx.AddOperation("first", func(context.Context) error { return cause })
	tx.AddCompensation("undo first", func(context.Context) error {
		compensated = true
		return nil
	})

	err := tx.Execute(context.Background())

	assert.ErrorIs(t, err, cause)
	assert.False(t, compensated)
}

func TestTransaction_CompensationErrorDoesNotStopRollback(t *testing.T) {
	var undone []string

	tx := NewTransaction()
	tx.AddOperation("a", func(context.Context) error { return nil })
	tx.AddCompensation("undo a", func(context.Context) error {
		undone = append(undone, "a")
		return nil
	})
	tx.AddOperation("b", func(context.Context) error { return nil })
	tx.AddCompensation("undo b", func(context.Context) error {
		undone = append(undone, "b")
		return errors.New("cleanup failed")
	})
	tx.AddOperation("c", func(context.Context) error { return errors.New("boom") })

	require.Error(t, tx.Execute(context.Background()))
	assert.Equal(t, []string{"b", "a"}, undone)
}

func TestTransaction_Success(t *testing.T) {
	tx := NewTransaction()
	tx.AddOperation("only", func(context.Context) error { return nil })

	assert.NoError(t, tx.Execute(context.Background()))
}

package qdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteCommandsUndoOnSaverFailure(t *testing.T) {
	assert := assert.New(t)

	names := map[string]string{"a": "1", "b": "2"}
	logs := map[string][]int{"a": {1}}

	err := ExecuteCommands(func() error { return errors.New("disk full") },
		NewUpdateCommand(names, "a", "10"),
		NewDeleteCommand(names, "b"),
		NewUpdateCommand(names, "c", "3"),
		NewAppendCommand(logs, "a", 2),
		NewAppendCommand(logs, "z", 1),
	)
	assert.EqualError(err, "disk full")
	assert.Equal(map[string]string{"a": "1", "b": "2"}, names)
	assert.Equal(map[string][]int{"a": {1}}, logs)
}

func TestExecuteCommandsSuccess(t *testing.T) {
	assert := assert.New(t)

	names := map[string]string{"a": "1"}
	logs := map[string][]int{}
	saved := 0

	err := ExecuteCommands(func() error { saved++; return nil },
		NewUpdateCommand(names, "b", "2"),
		NewDeleteCommand(names, "a"),
		NewAppendCommand(logs, "b", 7),
	)
	assert.NoError(err)
	assert.Equal(1, saved)
	assert.Equal(map[string]string{"b": "2"}, names)
	assert.Equal(map[string][]int{"b": {7}}, logs)
}

func TestDeleteCommandUndoMissingKey(t *testing.T) {
	m := map[string]int{}
	c := NewDeleteCommand(m, "x")
	assert.NoError(t, c.Do())
	assert.NoError(t, c.Undo())
	assert.Empty(t, m)
}

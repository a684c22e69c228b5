package qdb

import (
	"fmt"

	"github.com/pg-sharding/walseq/pkg/seqlog"
)

// Command is a reversible memqdb mutation.
type Command interface {
	Do() error
	Undo() error
}

func NewDeleteCommand[T any](m map[string]T, key string) *DeleteCommand[T] {
	return &DeleteCommand[T]{m: m, key: key}
}

type DeleteCommand[T any] struct {
	m       map[string]T
	key     string
	value   T
	present bool
}

func (c *DeleteCommand[T]) Do() error {
	c.value, c.present = c.m[c.key]
	delete(c.m, c.key)
	return nil
}

func (c *DeleteCommand[T]) Undo() error {
	if c.present {
		c.m[c.key] = c.value
	}
	return nil
}

func NewUpdateCommand[T any](m map[string]T, key string, value T) *UpdateCommand[T] {
	return &UpdateCommand[T]{m: m, key: key, value: value}
}

type UpdateCommand[T any] struct {
	m         map[string]T
	key       string
	value     T
	prevValue T
	present   bool
}

func (c *UpdateCommand[T]) Do() error {
	c.prevValue, c.present = c.m[c.key]
	c.m[c.key] = c.value
	return nil
}

func (c *UpdateCommand[T]) Undo() error {
	if !c.present {
		delete(c.m, c.key)
	} else {
		c.m[c.key] = c.prevValue
	}
	return nil
}

// NewAppendCommand appends value to the slice stored under key.
func NewAppendCommand[T any](m map[string][]T, key string, value T) *AppendCommand[T] {
	return &AppendCommand[T]{m: m, key: key, value: value}
}

type AppendCommand[T any] struct {
	m       map[string][]T
	key     string
	value   T
	prevLen int
	present bool
}

func (c *AppendCommand[T]) Do() error {
	var prev []T
	prev, c.present = c.m[c.key]
	c.prevLen = len(prev)
	c.m[c.key] = append(prev, c.value)
	return nil
}

func (c *AppendCommand[T]) Undo() error {
	if !c.present {
		delete(c.m, c.key)
		return nil
	}
	c.m[c.key] = c.m[c.key][:c.prevLen]
	return nil
}

func doCommands(commands ...Command) (int, error) {
	for i, c := range commands {
		err := c.Do()
		if err != nil {
			return i, err
		}
	}
	return len(commands), nil
}

func undoCommands(commands ...Command) error {
	seqlog.Zero.Info().Int("commands", len(commands)).Msg("memqdb: undo commands")
	for i := len(commands) - 1; i >= 0; i-- {
		if err := commands[i].Undo(); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteCommands applies commands and persists them with saver.
// If anything fails the applied commands are undone in reverse order.
func ExecuteCommands(saver func() error, commands ...Command) error {
	completed, err := doCommands(commands...)
	if err == nil {
		err = saver()
	}
	if err != nil {
		undoErr := undoCommands(commands[:completed]...)
		if undoErr != nil {
			return fmt.Errorf("failed to undo command %s while: %s", undoErr.Error(), err.Error())
		}
		return err
	}
	return nil
}

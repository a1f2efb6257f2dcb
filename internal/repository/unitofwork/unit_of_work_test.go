package unitofwork

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingUow struct {
	UnitOfWork
	beginErr                   error
	begins, commits, rollbacks int
}

func (u *countingUow) Begin(context.Context) error { u.begins++; return u.beginErr }
func (u *countingUow) Commit() error               { u.commits++; return nil }
func (u *countingUow) Rollback() error             { u.rollbacks++; return nil }

func TestTransactCommitsOnSuccess(t *testing.T) {
	uow := &countingUow{}
	err := Transact(context.Background(), uow, func(UnitOfWork) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, uow.commits)
	assert.Zero(t, uow.rollbacks)
}

func TestTransactRollsBackOnError(t *testing.T) {
	uow := &countingUow{}
	boom := errors.New("boom")
	err := Transact(context.Background(), uow, func(UnitOfWork) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, uow.commits)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestTransactRollsBackOnPanic(t *testing.T) {
	uow := &countingUow{}
	assert.PanicsWithValue(t, "kaboom", func() {
		_ = Transact(context.Background(), uow, func(UnitOfWork) error { panic("kaboom") })
	})
	assert.Equal(t, 1, uow.rollbacks)
}

func TestTransactSkipsFnWhenBeginFails(t *testing.T) {
	uow := &countingUow{beginErr: ErrTxActive}
	called := false
	err := Transact(context.Background(), uow, func(UnitOfWork) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrTxActive)
	assert.False(t, called)
	assert.Zero(t, uow.rollbacks)
}

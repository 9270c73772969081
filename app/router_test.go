package app

import (
	"context"
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/weavetest"
	"github.com/iov-one/tranche/weavetest/assert"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()

	var (
		msg     = &weavetest.Msg{RoutePath: "test/1"}
		handler = &weavetest.Handler{}
	)
	r.Handle(msg, handler)

	_, err := r.Check(context.Background(), nil, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)
	_, err = r.Deliver(context.Background(), nil, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, 2, handler.CallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/1"}}

	_, err := r.Check(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterMissingMessage(t *testing.T) {
	r := NewRouter()

	_, err := r.Check(context.Background(), nil, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrMsg, err)
	_, err = r.Deliver(context.Background(), nil, &weavetest.Tx{Err: errors.ErrType})
	assert.IsErr(t, errors.ErrType, err)
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	h := &weavetest.Handler{}
	r.Handle(&weavetest.Msg{RoutePath: "tranche/create"}, h)

	assert.Panics(t, func() {
		r.Handle(&weavetest.Msg{RoutePath: "tranche/create"}, h)
	})
	assert.Panics(t, func() {
		r.Handle(&weavetest.Msg{RoutePath: "with:colon"}, h)
	})
}

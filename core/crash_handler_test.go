package core

import (
	"errors"
	"strings"
	"testing"
)

func TestRecoverConvertsPanic(t *testing.T) {
	err := Recover(func() error {
		panic("rpc exploded")
	})
	if err == nil || !strings.Contains(err.Error(), "rpc exploded") {
		t.Fatalf("expected panic converted to error, got %v", err)
	}
}

func TestRecoverPassesThroughError(t *testing.T) {
	sentinel := errors.New("rejected")
	if err := Recover(func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel, got %v", err)
	}
	if err := Recover(func() error { return nil }); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGoRunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })
	<-done
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	SetCrashHook(func() { t.Error("hook must not run for nil panic") })
	defer SetCrashHook(nil)
	HandleCrash(nil)
}

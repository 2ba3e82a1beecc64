package service

import (
	"errors"
	"strings"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	log     *[]string
	args    []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}
func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return nil
}
func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func TestHubDependencyOrder(t *testing.T) {
	var log []string
	hub := NewHub()
	hub.Register(&fakeService{name: "telemetry", log: &log})
	hub.Register(&fakeService{name: "network", deps: []string{"journal"}, log: &log})
	hub.Register(&fakeService{name: "journal", log: &log})

	if err := hub.InitAll(true); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := hub.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := hub.StopAll(); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := "init:journal init:telemetry init:network start:journal start:telemetry start:network stop:network stop:telemetry stop:journal"
	if got := strings.Join(log, " "); got != want {
		t.Errorf("lifecycle order:\n got  %s\n want %s", got, want)
	}

	svc := MustGet[*fakeService](hub, "journal")
	if len(svc.args) != 1 || svc.args[0] != true {
		t.Errorf("Init args not forwarded: %v", svc.args)
	}
}

func TestHubInitRollback(t *testing.T) {
	var log []string
	hub := NewHub()
	hub.Register(&fakeService{name: "a", log: &log})
	hub.Register(&fakeService{name: "b", deps: []string{"a"}, initErr: errors.New("boom"), log: &log})

	err := hub.InitAll()
	if err == nil || !strings.Contains(err.Error(), "service b init failed") {
		t.Fatalf("expected init failure, got %v", err)
	}
	if got := strings.Join(log, " "); got != "init:a init:b stop:a" {
		t.Errorf("rollback order: %s", got)
	}
}

func TestHubRejectsCyclesAndUnknownDeps(t *testing.T) {
	var log []string

	hub := NewHub()
	hub.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	hub.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	if err := hub.InitAll(); err == nil {
		t.Error("expected circular dependency error")
	}

	hub = NewHub()
	hub.Register(&fakeService{name: "a", deps: []string{"ghost"}, log: &log})
	if err := hub.InitAll(); err == nil {
		t.Error("expected unregistered dependency error")
	}

	if err := hub.Register(&fakeService{name: "a", log: &log}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestMustGetPanicsOnMismatch(t *testing.T) {
	var log []string
	hub := NewHub()
	hub.Register(&fakeService{name: "a", log: &log})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on type mismatch")
		}
	}()
	_ = MustGet[*Hub](hub, "a")
}

package service

import (
	"testing"
)

func TestNewProgressManagerDisabled(t *testing.T) {
	pm := NewProgressManager(false)
	if pm.IsInteractive() {
		t.Error("disabled progress manager should be non-interactive")
	}

	task := pm.StartTask("working", 10)
	task.Increment(5)
	task.Complete()
	pm.Close()
}

func TestNoOpProgressManagerSafety(t *testing.T) {
	pm := &NoOpProgressManager{}
	task := pm.StartTask("anything", 0)
	task.Increment(100)
	task.Complete()
	task.Complete()
	pm.Close()
	pm.Close()
}

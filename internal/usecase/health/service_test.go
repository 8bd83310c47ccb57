package health

import (
	"context"
	"errors"
	"testing"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockChecker{})

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if report.Checks["llm"] != CheckOK {
		t.Errorf("llm check = %q, want %q", report.Checks["llm"], CheckOK)
	}
}

func TestCheck_LLMDown(t *testing.T) {
	svc := New(&mockChecker{err: errors.New("connection refused")})

	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
	if report.Checks["llm"] != CheckError {
		t.Errorf("llm check = %q, want %q", report.Checks["llm"], CheckError)
	}
}

func TestCheck_NilChecker(t *testing.T) {
	svc := New(nil)

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q, want %q with no checkers", report.Status, Healthy)
	}
	if len(report.Checks) != 0 {
		t.Errorf("checks = %v, want empty", report.Checks)
	}
}

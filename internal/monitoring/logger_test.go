package monitoring

import "testing"

func TestSetLoggerRedirects(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) { got = format })
	Logf("training progress %d", 1)
	if got != "training progress %d" {
		t.Errorf("custom logger not invoked, got %q", got)
	}
}

func TestSetLoggerNilInstallsNoOp(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	SetLogger(nil)
	// Must not panic.
	Logf("dropped %v", 42)
}

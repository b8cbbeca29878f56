package cli

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestStepsInteractive(t *testing.T) {
	var out bytes.Buffer
	s := newSteps(&out, hclog.NewNullLogger(), true, "Loading palette", "Saving image")

	if !s.Next() {
		t.Fatal("Next() = false on first step")
	}
	if !s.Next() {
		t.Fatal("Next() = false on second step")
	}
	if s.Next() {
		t.Fatal("Next() = true after the last step")
	}
	s.Done()

	want := regexp.MustCompile(`^\(1/2\) Loading palette: \d+\.\d\ds .*\(Finished\).*\n` +
		`\(2/2\) Saving image: \d+\.\d\ds .*\(Finished\).*\n$`)
	if !want.MatchString(out.String()) {
		t.Errorf("output = %q", out.String())
	}
}

func TestStepsNonInteractive(t *testing.T) {
	var out, logs bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Debug, Color: hclog.ColorOff})

	s := newSteps(&out, logger, false, "Converting image")
	for s.Next() {
	}
	s.Done()

	if out.Len() != 0 {
		t.Errorf("non-interactive steps wrote %q", out.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte("step=\"Converting image\"")) {
		t.Errorf("debug log missing step timing: %q", logs.String())
	}
}

func TestStepsFail(t *testing.T) {
	var out bytes.Buffer
	s := newSteps(&out, hclog.NewNullLogger(), true, "Loading palette", "Loading image", "Saving image")

	s.Next()
	s.Next()
	s.Fail()
	s.Fail()
	s.Done()

	want := regexp.MustCompile(`^\(1/3\) Loading palette: \d+\.\d\ds .*\(Finished\).*\n` +
		`\(2/3\) Loading image: \d+\.\d\ds .*\(Failed\).*\n$`)
	if !want.MatchString(out.String()) {
		t.Errorf("output = %q", out.String())
	}
}

func TestStepsFailBeforeStart(t *testing.T) {
	var out bytes.Buffer
	s := newSteps(&out, hclog.NewNullLogger(), true, "Loading palette")
	s.Fail()

	if out.Len() != 0 {
		t.Errorf("Fail() before any step wrote %q", out.String())
	}
}

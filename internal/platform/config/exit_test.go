package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesMessageAndExitsWithCode1(t *testing.T) {
	var code int
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = defaultExit })

	var buf bytes.Buffer
	exitf(&buf, "fatal: %s", "something broke")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if got := buf.String(); got != "fatal: something broke\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

package hei

import (
	"bytes"
	"context"
	"flag"
	"testing"

	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
)

func TestParseConfigFallsBackToProcessLang(t *testing.T) {
	t.Setenv("LANG", "nb_NO.UTF-8")
	fs := flag.NewFlagSet("hei", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Lang != "nb_NO.UTF-8" {
		t.Fatalf("lang = %q", cfg.Lang)
	}
	if cfg.Module != "pycpp_build" || cfg.Hello {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestParseConfigPrefersPrefixedLang(t *testing.T) {
	t.Setenv("LANG", "nb_NO.UTF-8")
	t.Setenv("ARITHBIND_LANG", "de-DE")
	fs := flag.NewFlagSet("hei", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-hello", "-module", "python_cpp_example"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Lang != "de-DE" || !cfg.Hello || cfg.Module != "python_cpp_example" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestRun(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{Module: "pycpp_build", Lang: "en-US"}, "Hei hei! add(1, 2) = 3\n"},
		{Config{Module: "python_cpp_example", Lang: "en-US", Hello: true}, "Hello world!\n"},
		{Config{Module: "pycpp_build", Lang: "nb-NO", Hello: true}, "Hallo verden!\n"},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		if err := Run(context.Background(), tc.cfg, &out); err != nil {
			t.Fatalf("run %+v: %v", tc.cfg, err)
		}
		if out.String() != tc.want {
			t.Fatalf("run %+v = %q, want %q", tc.cfg, out.String(), tc.want)
		}
	}
}

func TestRunUnknownModule(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), Config{Module: "numpy"}, &out)
	if apperrors.CodeOf(err) != apperrors.CodeModuleNotFound {
		t.Fatalf("expected module not found, got %v", err)
	}
}

package main

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	t.Run("Now returns real time", func(t *testing.T) {
		before := time.Now()
		got := env.Now()
		after := time.Now()

		if got.Before(before) || got.After(after) {
			t.Errorf("Now() = %v, should be between %v and %v", got, before, after)
		}
	})

	t.Run("writers are the process streams", func(t *testing.T) {
		if env.Stdout != os.Stdout {
			t.Error("Stdout should be os.Stdout")
		}
		if env.Stderr != os.Stderr {
			t.Error("Stderr should be os.Stderr")
		}
	})

	t.Run("environment access is wired", func(t *testing.T) {
		if env.Getenv == nil || env.Environ == nil {
			t.Fatal("Getenv and Environ should be set")
		}
	})
}

func TestEnvironment_NilFuncs(t *testing.T) {
	t.Parallel()

	env := &Environment{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	if got := env.getenv("HOME"); got != "" {
		t.Errorf("getenv() = %q, want empty with nil Getenv", got)
	}
	if got := env.environ(); got != nil {
		t.Errorf("environ() = %v, want nil with nil Environ", got)
	}
	if env.now().IsZero() {
		t.Error("now() should fall back to the real clock")
	}
}

func TestEnvironment_Injection(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	vars := map[string]string{"TYPESET_FORMAT": "xhtml"}
	env := &Environment{
		Now:     func() time.Time { return fixed },
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return []string{"TYPESET_FORMAT=xhtml"} },
	}

	if !env.now().Equal(fixed) {
		t.Errorf("now() = %v, want %v", env.now(), fixed)
	}
	if got := env.getenv("TYPESET_FORMAT"); got != "xhtml" {
		t.Errorf("getenv() = %q, want %q", got, "xhtml")
	}
	if got := env.environ(); len(got) != 1 {
		t.Errorf("environ() = %v, want one entry", got)
	}
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestNewLogger(t *testing.T) {

	var buf bytes.Buffer
	cfg := &Config{MaxLength: 240}

	lgr := cfg.newLogger(&buf)
	ctx := lgr.WithFields(context.Background(), "app", "shopkeep")

	lgr.Info(ctx, "starting", "store", "memory")
	lgr.Error(ctx, "failed to open store", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"starting", "shopkeep", "memory", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestSeedEmptyPath(t *testing.T) {

	err := seed(context.Background(), nil, "")
	if err != nil {
		t.Errorf("empty seed path should be a no-op: %v", err)
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"photo-catalog/internal/pipeline"
)

func indexingProgress(phase string, current, total uint64) *pipeline.Progress {
	return &pipeline.Progress{Phase: phase, Current: current, Total: &total}
}

func TestProgressRendererPerPhaseTotals(t *testing.T) {
	var out bytes.Buffer
	r := newProgressRenderer(&out)

	r.observe(&pipeline.Progress{Phase: "scanning-pictures"})
	if out.Len() != 0 {
		t.Errorf("counting phase rendered output: %q", out.String())
	}

	// Two folders with different totals must each get their own bar.
	r.observe(indexingProgress("indexing-pictures", 0, 3))
	r.observe(indexingProgress("indexing-pictures", 3, 3))
	r.observe(indexingProgress("indexing-downloads", 0, 5))
	r.observe(indexingProgress("indexing-downloads", 5, 5))
	r.observe(indexingProgress(pipeline.PhaseDone, 8, 8))
	r.finish()

	got := out.String()
	if !strings.Contains(got, "indexing-pictures") {
		t.Errorf("output missing first phase description: %q", got)
	}
	if !strings.Contains(got, "indexing-downloads") {
		t.Errorf("output missing second phase description: %q", got)
	}
	if !strings.Contains(got, "3/3") {
		t.Errorf("first folder rendered without its own total: %q", got)
	}
	if !strings.Contains(got, "5/5") {
		t.Errorf("second folder rendered without its own total: %q", got)
	}
	if strings.Contains(got, pipeline.PhaseDone) {
		t.Errorf("done phase got a bar of its own: %q", got)
	}
}

func TestProgressRendererFinishIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	r := newProgressRenderer(&out)

	r.observe(indexingProgress("indexing", 2, 2))
	r.finish()
	len1 := out.Len()
	r.finish()
	if out.Len() != len1 {
		t.Errorf("second finish produced more output: %q", out.String())
	}
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_String(t *testing.T) {
	var names []string
	for _, s := range Stages {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"grid-snap", "expand", "label-layout", "domain-classify", "validate"}, names)
	assert.Equal(t, "unknown", Stage(42).String())
}

func TestProgressReporter_EmitAndSubscribe(t *testing.T) {
	pr := NewProgressReporter()
	pr.Emit(ProgressEvent{Stage: StageSnap, Status: ProgressWorking})
	pr.Emit(ProgressEvent{Stage: StageSnap, Status: ProgressComplete})
	pr.Close()

	var got []ProgressStatus
	for e := range pr.Subscribe() {
		got = append(got, e.Status)
	}
	assert.Equal(t, []ProgressStatus{ProgressWorking, ProgressComplete}, got)
}

func TestProgressReporter_DropsWhenFull(t *testing.T) {
	pr := NewProgressReporter()
	for range 100 {
		pr.Emit(ProgressEvent{Stage: StageValidate, Status: ProgressWorking})
	}
	pr.Close()

	n := 0
	for range pr.Subscribe() {
		n++
	}
	assert.Equal(t, 64, n)
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name  string
		event ProgressEvent
		want  string
	}{
		{"working", ProgressEvent{Stage: StageSnap, Status: ProgressWorking}, "  ● grid-snap..."},
		{"complete", ProgressEvent{Stage: StageLayout, Status: ProgressComplete}, "  ✓ label-layout complete"},
		{"complete with message", ProgressEvent{Job: "a", Stage: StageExpand, Status: ProgressComplete, Message: "3 -> 9 operations"}, "  [a] ✓ expand complete: 3 -> 9 operations"},
		{"skipped", ProgressEvent{Stage: StageExpand, Status: ProgressSkipped}, "  ○ expand skipped"},
		{"unknown", ProgressEvent{Stage: StageValidate, Status: "odd"}, "  ? validate (unknown status)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatProgress(tt.event))
		})
	}
}

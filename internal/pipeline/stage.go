package pipeline

// Stage identifies a composition stage, in execution order.
type Stage int

const (
	StageSnap Stage = iota
	StageExpand
	StageLayout
	StageClassify
	StageValidate
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageSnap, StageExpand, StageLayout, StageClassify, StageValidate}

func (s Stage) String() string {
	names := [...]string{
		"grid-snap",
		"expand",
		"label-layout",
		"domain-classify",
		"validate",
	}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

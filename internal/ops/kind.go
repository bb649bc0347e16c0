package ops

import "strings"

// Kind is the operation discriminator carried in the "op" field.
type Kind string

// Generic drawing primitives.
const (
	KindCircle Kind = "drawCircle"
	KindRect   Kind = "drawRect"
	KindLine   Kind = "drawLine"
	KindVector Kind = "drawVector"
	KindLabel  Kind = "drawLabel"
	KindTitle  Kind = "drawTitle"
	KindDelay  Kind = "delay"
)

// Domain-specific kinds produced by the classifier or emitted directly by
// the generator.
const (
	KindCircuitElement Kind = "drawCircuitElement"
	KindCircuitWire    Kind = "drawCircuitWire"
	KindForceVector    Kind = "drawForceVector"
	KindVelocityVector Kind = "drawVelocityVector"
	KindPhysicsObject  Kind = "drawPhysicsObject"
	KindCellStructure  Kind = "drawCellStructure"
	KindNeuron         Kind = "drawNeuron"
	KindSynapse        Kind = "drawSynapse"
	KindMolecule       Kind = "drawMolecule"
	KindAtomModel      Kind = "drawAtomModel"
	KindChemicalBond   Kind = "drawChemicalBond"
	KindReactionArrow  Kind = "drawReactionArrow"
	KindCoordinateAxes Kind = "drawCoordinateAxes"
	KindFunctionPlot   Kind = "drawFunctionPlot"
	KindGeometricPoint Kind = "drawGeometricPoint"
	KindMathVector     Kind = "drawMathVector"
	KindDataStructure  Kind = "drawDataStructure"
	KindGraphNode      Kind = "drawGraphNode"
	KindConnection     Kind = "drawConnection"
)

var genericKinds = map[Kind]bool{
	KindCircle: true,
	KindRect:   true,
	KindVector: true,
	KindLine:   true,
	KindLabel:  true,
	KindTitle:  true,
	KindDelay:  true,
}

// IsGeneric reports whether k belongs to the fixed generic set. Everything
// else counts as domain-specific for quality metrics.
func (k Kind) IsGeneric() bool {
	return genericKinds[k]
}

// IsLabel reports whether k carries explanatory text.
func (k Kind) IsLabel() bool {
	return k == KindLabel || k == KindTitle
}

// IsDelay reports whether k is a timing beat with no visual content.
func (k Kind) IsDelay() bool {
	return k == KindDelay
}

// IsShape reports whether k is one of the generic shapes the classifier may
// upgrade.
func (k Kind) IsShape() bool {
	switch k {
	case KindCircle, KindRect, KindLine, KindVector:
		return true
	}
	return false
}

// IsSpecialized is the name-length heuristic used to recognise kinds that
// are already domain-specific: "draw" prefix and longer than 10 characters.
func (k Kind) IsSpecialized() bool {
	s := string(k)
	return strings.HasPrefix(s, "draw") && len(s) > 10
}

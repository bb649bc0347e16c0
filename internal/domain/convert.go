package domain

import (
	"math"
	"strings"

	"github.com/dusk-indust/compose/internal/ops"
)

// converter rewrites a clone of a generic operation in place. It may set the
// kind and add fields, but never touches position or size fields.
type converter func(op *ops.Operation, role Role)

type convKey struct {
	kind   ops.Kind
	role   Role
	domain Domain
}

// forceScale turns a normalised vector length into a displayed magnitude.
const forceScale = 50

// defaultActivation is assigned to artificial neurons without one.
const defaultActivation = 0.5

var conversions = buildConversions()

func buildConversions() map[convKey]converter {
	t := make(map[convKey]converter)
	add := func(d Domain, role Role, c converter, kinds ...ops.Kind) {
		for _, k := range kinds {
			t[convKey{k, role, d}] = c
		}
	}

	shapes := []ops.Kind{ops.KindRect, ops.KindCircle}
	links := []ops.Kind{ops.KindLine, ops.KindVector}

	for _, r := range []Role{RoleResistor, RoleCapacitor, RoleBattery, RoleInductor, RoleSwitch, RoleBulb} {
		add(Electrical, r, circuitElement, ops.KindRect)
	}
	for _, r := range []Role{RoleBulb, RoleAmmeter, RoleVoltmeter, RoleJunction} {
		add(Electrical, r, circuitElement, ops.KindCircle)
	}
	add(Electrical, RoleWire, circuitWire, links...)

	add(Physics, RoleForce, forceVector, links...)
	add(Physics, RoleVelocity, motionVector, links...)
	add(Physics, RoleAcceleration, motionVector, links...)
	add(Physics, RoleBody, physicsObject, shapes...)

	for _, r := range []Role{RoleNucleus, RoleMitochondria, RoleRibosome, RoleChloroplast, RoleVacuole, RoleCell} {
		add(Biology, r, cellStructure, ops.KindCircle)
	}
	for _, r := range []Role{RoleMembrane, RoleChloroplast, RoleCell} {
		add(Biology, r, cellStructure, ops.KindRect)
	}
	add(Biology, RoleNeuron, biologicalNeuron, ops.KindCircle)
	add(Biology, RoleSynapse, synapse, links...)

	add(Chemistry, RoleAtom, atomModel, ops.KindCircle)
	add(Chemistry, RoleMolecule, molecule, shapes...)
	add(Chemistry, RoleBond, chemicalBond, links...)
	add(Chemistry, RoleReaction, reactionArrow, ops.KindVector)

	add(Math, RolePoint, geometricPoint, ops.KindCircle)
	add(Math, RoleAxes, coordinateAxes, ops.KindRect, ops.KindLine, ops.KindVector)
	add(Math, RoleFunction, functionPlot, links...)
	add(Math, RoleVector, mathVector, links...)

	add(CS, RoleNeuron, neuron, ops.KindCircle)
	add(CS, RoleNode, graphNode, ops.KindCircle)
	for _, r := range []Role{RoleArray, RoleStack, RoleQueue, RoleLinkedList, RoleHashTable, RoleHeap} {
		add(CS, r, dataStructure, ops.KindRect)
	}
	add(CS, RoleConnection, connection, links...)

	return t
}

// Match describes how a generic operation was resolved.
type Match struct {
	Domain Domain   `json:"domain"`
	Role   Role     `json:"role"`
	Kind   ops.Kind `json:"kind"`
}

// Resolve finds the conversion for op given its context text. Domains are
// consulted in the order given, roles in rule order; the first pair with a
// conversion entry wins.
func Resolve(op ops.Operation, context string, domains []Domain) (Match, bool) {
	if !op.Op.IsShape() || op.Op.IsSpecialized() || context == "" {
		return Match{}, false
	}
	for _, d := range domains {
		for _, role := range matchingRoles(d, op.Op, context) {
			c, ok := conversions[convKey{op.Op, role, d}]
			if !ok {
				continue
			}
			trial := op.Clone()
			c(&trial, role)
			return Match{Domain: d, Role: role, Kind: trial.Op}, true
		}
	}
	return Match{}, false
}

// Convert replaces generic shapes with domain-specific operations inferred
// from topic and nearby labels. The result has the same length and order as
// list; operations without an applicable mapping are passed through as-is.
func Convert(list []ops.Operation, topic string) []ops.Operation {
	out := make([]ops.Operation, len(list))
	copy(out, list)

	domains := Detect(topic)
	if len(domains) == 1 && domains[0] == General {
		return out
	}

	for i := range list {
		if converted, ok := convertAt(list, i, domains); ok {
			out[i] = converted
		}
	}
	return out
}

func convertAt(list []ops.Operation, i int, domains []Domain) (ops.Operation, bool) {
	op := list[i]
	context := ContextAround(list, i)
	m, ok := Resolve(op, context, domains)
	if !ok {
		return op, false
	}
	converted := op.Clone()
	conversions[convKey{op.Op, m.Role, m.Domain}](&converted, m.Role)
	converted.SetDefault("convertedFrom", string(op.Op))
	return converted, true
}

// V2Percentage is the share (0-100) of operations whose kind lies outside
// the generic set. An empty list scores 0.
func V2Percentage(list []ops.Operation) float64 {
	if len(list) == 0 {
		return 0
	}
	specific := 0
	for _, op := range list {
		if !op.Op.IsGeneric() {
			specific++
		}
	}
	return float64(specific) / float64(len(list)) * 100
}

func setCenter(op ops.Operation) {
	if op.Op != ops.KindRect {
		return
	}
	x, y, ok := op.Position()
	if !ok {
		return
	}
	w, _ := op.Float(ops.FieldWidth)
	h, _ := op.Float(ops.FieldHeight)
	op.SetDefault("centerX", x+w/2)
	op.SetDefault("centerY", y+h/2)
}

// vectorComponents reads dx/dy, falling back to the from/to endpoints.
func vectorComponents(op ops.Operation) (dx, dy float64, ok bool) {
	dx, okX := op.Float(ops.FieldDX)
	dy, okY := op.Float(ops.FieldDY)
	if okX && okY {
		return dx, dy, true
	}
	fx, fy, okFrom := op.Point(ops.FieldFrom)
	tx, ty, okTo := op.Point(ops.FieldTo)
	if okFrom && okTo {
		return tx - fx, ty - fy, true
	}
	return 0, 0, false
}

func setVectorMetrics(op ops.Operation) {
	dx, dy, ok := vectorComponents(op)
	if !ok {
		return
	}
	op.SetDefault("magnitude", math.Sqrt(dx*dx+dy*dy)*forceScale)
	op.SetDefault("angle", math.Atan2(dy, dx)*180/math.Pi)
}

// setRole writes role under key. A different value already stored there is
// kept under "original" + key so renderer hints are not lost.
func setRole(op ops.Operation, key string, role Role) {
	if prev, ok := op.Fields[key]; ok && prev != string(role) {
		op.SetDefault("original"+strings.ToUpper(key[:1])+key[1:], prev)
	}
	op.Fields[key] = string(role)
}

func circuitElement(op *ops.Operation, role Role) {
	setCenter(*op)
	op.Op = ops.KindCircuitElement
	setRole(*op, "type", role)
}

func circuitWire(op *ops.Operation, _ Role) {
	op.Op = ops.KindCircuitWire
	op.SetDefault("showCurrent", true)
}

func forceVector(op *ops.Operation, _ Role) {
	op.Op = ops.KindForceVector
	setVectorMetrics(*op)
}

func motionVector(op *ops.Operation, role Role) {
	op.Op = ops.KindVelocityVector
	setRole(*op, "quantity", role)
	setVectorMetrics(*op)
}

func physicsObject(op *ops.Operation, _ Role) {
	shape := "sphere"
	if op.Op == ops.KindRect {
		shape = "block"
		setCenter(*op)
	}
	op.Op = ops.KindPhysicsObject
	op.SetDefault("shape", shape)
}

func cellStructure(op *ops.Operation, role Role) {
	setCenter(*op)
	op.Op = ops.KindCellStructure
	setRole(*op, "structure", role)
}

func neuron(op *ops.Operation, _ Role) {
	copyRadius(*op)
	op.Op = ops.KindNeuron
	op.SetDefault("activation", defaultActivation)
}

func biologicalNeuron(op *ops.Operation, _ Role) {
	copyRadius(*op)
	op.Op = ops.KindNeuron
	op.SetDefault("variant", "biological")
}

func copyRadius(op ops.Operation) {
	if r, ok := op.Float("r"); ok {
		op.SetDefault("radius", r)
	}
}

func synapse(op *ops.Operation, _ Role) {
	op.Op = ops.KindSynapse
	op.SetDefault("direction", "forward")
}

func atomModel(op *ops.Operation, _ Role) {
	op.Op = ops.KindAtomModel
	op.SetDefault("showElectrons", true)
}

func molecule(op *ops.Operation, _ Role) {
	setCenter(*op)
	op.Op = ops.KindMolecule
	op.SetDefault("style", "ball-and-stick")
}

func chemicalBond(op *ops.Operation, _ Role) {
	op.Op = ops.KindChemicalBond
	op.SetDefault("order", 1)
}

func reactionArrow(op *ops.Operation, _ Role) {
	op.Op = ops.KindReactionArrow
	op.SetDefault("reversible", false)
}

func geometricPoint(op *ops.Operation, _ Role) {
	op.Op = ops.KindGeometricPoint
	op.SetDefault("showCoordinates", false)
}

func coordinateAxes(op *ops.Operation, _ Role) {
	setCenter(*op)
	op.Op = ops.KindCoordinateAxes
	op.SetDefault("showGrid", true)
}

func functionPlot(op *ops.Operation, _ Role) {
	op.Op = ops.KindFunctionPlot
	op.SetDefault("smooth", true)
}

func mathVector(op *ops.Operation, _ Role) {
	op.Op = ops.KindMathVector
	setVectorMetrics(*op)
}

func graphNode(op *ops.Operation, _ Role) {
	op.Op = ops.KindGraphNode
	op.SetDefault("highlight", false)
}

func dataStructure(op *ops.Operation, role Role) {
	setCenter(*op)
	op.Op = ops.KindDataStructure
	setRole(*op, "type", role)
}

func connection(op *ops.Operation, _ Role) {
	op.Op = ops.KindConnection
	op.SetDefault("directed", true)
}

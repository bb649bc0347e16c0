package domain

import (
	"regexp"

	"github.com/dusk-indust/compose/internal/ops"
)

// Role is the locally inferred meaning of a generic shape.
type Role string

// Generic is the role of a shape whose context matched no rule.
const Generic Role = "generic"

const (
	RoleResistor     Role = "resistor"
	RoleCapacitor    Role = "capacitor"
	RoleBattery      Role = "battery"
	RoleInductor     Role = "inductor"
	RoleSwitch       Role = "switch"
	RoleBulb         Role = "bulb"
	RoleAmmeter      Role = "ammeter"
	RoleVoltmeter    Role = "voltmeter"
	RoleJunction     Role = "junction"
	RoleWire         Role = "wire"
	RoleForce        Role = "force"
	RoleVelocity     Role = "velocity"
	RoleAcceleration Role = "acceleration"
	RoleBody         Role = "body"
	RoleNucleus      Role = "nucleus"
	RoleMitochondria Role = "mitochondrion"
	RoleRibosome     Role = "ribosome"
	RoleChloroplast  Role = "chloroplast"
	RoleVacuole      Role = "vacuole"
	RoleMembrane     Role = "membrane"
	RoleCell         Role = "cell"
	RoleNeuron       Role = "neuron"
	RoleSynapse      Role = "synapse"
	RoleAtom         Role = "atom"
	RoleMolecule     Role = "molecule"
	RoleBond         Role = "bond"
	RoleReaction     Role = "reaction"
	RolePoint        Role = "point"
	RoleAxes         Role = "axes"
	RoleFunction     Role = "function"
	RoleVector       Role = "vector"
	RoleNode         Role = "node"
	RoleConnection   Role = "connection"
	RoleArray        Role = "array"
	RoleStack        Role = "stack"
	RoleQueue        Role = "queue"
	RoleLinkedList   Role = "linked-list"
	RoleHashTable    Role = "hash-table"
	RoleHeap         Role = "heap"
)

type roleRule struct {
	pattern *regexp.Regexp
	role    Role
}

func rule(expr string, role Role) roleRule {
	return roleRule{pattern: regexp.MustCompile(expr), role: role}
}

type ruleKey struct {
	domain Domain
	kind   ops.Kind
}

var (
	electricalLinkRules = []roleRule{
		rule(`wire|current|conductor|connect|lead`, RoleWire),
	}
	physicsVectorRules = []roleRule{
		rule(`force|gravity|weight|tension|friction|normal|push|pull|thrust|drag`, RoleForce),
		rule(`velocity|speed`, RoleVelocity),
		rule(`accelerat`, RoleAcceleration),
	}
	biologyLinkRules = []roleRule{
		rule(`synap|signal|impulse|axon|neurotransmitter`, RoleSynapse),
	}
	mathLineRules = []roleRule{
		rule(`\baxis\b|\baxes\b|x-axis|y-axis|coordinate`, RoleAxes),
		rule(`curve|function|f\(x\)|graph|plot|slope|parabola|sine`, RoleFunction),
		rule(`vector`, RoleVector),
	}
	csLinkRules = []roleRule{
		rule(`edge|pointer|link|next|connect|points to|weight|child|parent`, RoleConnection),
	}
)

// roleRules is consulted in declaration order; the first rule whose pattern
// matches the context and has a conversion entry wins.
var roleRules = map[ruleKey][]roleRule{
	{Electrical, ops.KindRect}: {
		rule(`resist|ohm`, RoleResistor),
		rule(`capacit`, RoleCapacitor),
		rule(`battery|emf|power supply|voltage source|\bcell\b`, RoleBattery),
		rule(`inductor|coil`, RoleInductor),
		rule(`switch`, RoleSwitch),
		rule(`bulb|lamp|\bload\b`, RoleBulb),
	},
	{Electrical, ops.KindCircle}: {
		rule(`bulb|lamp`, RoleBulb),
		rule(`ammeter`, RoleAmmeter),
		rule(`voltmeter`, RoleVoltmeter),
		rule(`junction|\bnode\b`, RoleJunction),
	},
	{Electrical, ops.KindLine}:   electricalLinkRules,
	{Electrical, ops.KindVector}: electricalLinkRules,

	{Physics, ops.KindVector}: physicsVectorRules,
	{Physics, ops.KindLine}:   physicsVectorRules,
	{Physics, ops.KindCircle}: {
		rule(`ball|mass|particle|planet|sphere|projectile|\bbob\b|object|moon|satellite`, RoleBody),
	},
	{Physics, ops.KindRect}: {
		rule(`block|box|cart|crate|mass|object|car\b`, RoleBody),
	},

	{Biology, ops.KindCircle}: {
		rule(`nucleus`, RoleNucleus),
		rule(`mitochondri`, RoleMitochondria),
		rule(`ribosome`, RoleRibosome),
		rule(`chloroplast`, RoleChloroplast),
		rule(`vacuole`, RoleVacuole),
		rule(`neuron|nerve cell`, RoleNeuron),
		rule(`\bcells?\b`, RoleCell),
	},
	{Biology, ops.KindRect}: {
		rule(`membrane|cell wall`, RoleMembrane),
		rule(`chloroplast`, RoleChloroplast),
		rule(`\bcells?\b`, RoleCell),
	},
	{Biology, ops.KindLine}:   biologyLinkRules,
	{Biology, ops.KindVector}: biologyLinkRules,

	{Chemistry, ops.KindCircle}: {
		rule(`molecule|compound|h2o|water|co2|glucose|methane`, RoleMolecule),
		rule(`atom|electron|proton|neutron|\bions?\b|nucleus`, RoleAtom),
	},
	{Chemistry, ops.KindRect}: {
		rule(`molecule|compound`, RoleMolecule),
	},
	{Chemistry, ops.KindLine}: {
		rule(`bond|covalent|ionic|shared`, RoleBond),
	},
	{Chemistry, ops.KindVector}: {
		rule(`reaction|yields|produces|forms|→|->`, RoleReaction),
		rule(`bond|covalent|ionic|shared`, RoleBond),
	},

	{Math, ops.KindCircle}: {
		rule(`point|vertex|origin|intersection|centre|center`, RolePoint),
	},
	{Math, ops.KindRect}: {
		rule(`\baxis\b|\baxes\b|coordinate|plane`, RoleAxes),
	},
	{Math, ops.KindLine}:   mathLineRules,
	{Math, ops.KindVector}: mathLineRules,

	{CS, ops.KindCircle}: {
		rule(`neuron|activation|perceptron|hidden layer|input layer|output layer`, RoleNeuron),
		rule(`\bnode|vertex|vertices|root|leaf|tree`, RoleNode),
	},
	{CS, ops.KindRect}: {
		rule(`\barray|index`, RoleArray),
		rule(`stack|push|pop`, RoleStack),
		rule(`queue|enqueue|dequeue|fifo`, RoleQueue),
		rule(`linked list|\blist\b`, RoleLinkedList),
		rule(`hash|bucket|\btable\b`, RoleHashTable),
		rule(`\bheap\b|priority`, RoleHeap),
	},
	{CS, ops.KindLine}:   csLinkRules,
	{CS, ops.KindVector}: csLinkRules,
}

// InferRole returns the first role whose pattern matches context for the
// given domain and kind, or Generic.
func InferRole(d Domain, kind ops.Kind, context string) Role {
	if roles := matchingRoles(d, kind, context); len(roles) > 0 {
		return roles[0]
	}
	return Generic
}

// matchingRoles lists every role whose pattern matches, in rule order.
func matchingRoles(d Domain, kind ops.Kind, context string) []Role {
	var roles []Role
	for _, r := range roleRules[ruleKey{d, kind}] {
		if r.pattern.MatchString(context) {
			roles = append(roles, r.role)
		}
	}
	return roles
}

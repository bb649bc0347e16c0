// Package domain upgrades generic shape operations into domain-specific
// diagram elements, using the topic to pick subject domains and nearby label
// text to infer what each shape stands for.
package domain

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/compose/internal/ops"
)

// Domain is a subject-matter category.
type Domain string

const (
	Electrical Domain = "electrical"
	Physics    Domain = "physics"
	Biology    Domain = "biology"
	Chemistry  Domain = "chemistry"
	Math       Domain = "math"
	CS         Domain = "cs"
	General    Domain = "general"
)

// Precedence is the fixed order in which detected domains are consulted.
// When a topic matches several domains, earlier entries win role and
// conversion lookups.
var Precedence = []Domain{Electrical, Physics, Biology, Chemistry, Math, CS}

// vocabularies maps each domain to its topic keyword pattern.
var vocabularies = map[Domain]*regexp.Regexp{
	Electrical: regexp.MustCompile(`(?i)circuit|voltage|resistor|resistance|current|capacitor|inductor|ohm|battery|electric|transistor|diode|kirchhoff`),
	Physics:    regexp.MustCompile(`(?i)force|velocity|acceleration|momentum|gravity|newton|motion|projectile|friction|energy|pendulum|kinematic|torque|inertia|wave`),
	Biology:    regexp.MustCompile(`(?i)\bcells?\b|cellular|biology|\bdna\b|\brna\b|protein|mitochondri|photosynthesis|organism|enzyme|membrane|nucleus|neuron|synapse|\bgenes?\b|genetic`),
	Chemistry:  regexp.MustCompile(`(?i)chemi|molecule|atom|bond|reaction|element|compound|electron|\bions?\b|\bacids?\b|\bbases?\b|periodic|valence|oxid`),
	Math:       regexp.MustCompile(`(?i)math|equation|function|graph of|calculus|derivative|integral|geometry|triangle|vector space|matrix|algebra|theorem|plot`),
	CS:         regexp.MustCompile(`(?i)algorithm|data structure|binary|\btrees?\b|linked list|\barrays?\b|\bstacks?\b|\bqueues?\b|hash|neural network|machine learning|graph traversal|sorting|recursion|computer|programming`),
}

// Detect returns every domain whose vocabulary matches topic, in
// Precedence order. A topic matching nothing yields [General].
func Detect(topic string) []Domain {
	var found []Domain
	for _, d := range Precedence {
		if vocabularies[d].MatchString(topic) {
			found = append(found, d)
		}
	}
	if len(found) == 0 {
		return []Domain{General}
	}
	return found
}

// contextRadius is how many neighbours on each side feed role inference.
const contextRadius = 3

// ContextAround returns the lower-cased text of every label among the
// contextRadius operations on each side of index i, joined by spaces.
// Operations inserted by the pipeline neither count towards the window nor
// contribute text, so expansion does not change what a shape resolves to.
func ContextAround(list []ops.Operation, i int) string {
	var before []string
	for j, seen := i-1, 0; j >= 0 && seen < contextRadius; j-- {
		if list[j].Generated() {
			continue
		}
		seen++
		if text := labelText(list[j]); text != "" {
			before = append(before, text)
		}
	}

	parts := make([]string, 0, len(before))
	for k := len(before) - 1; k >= 0; k-- {
		parts = append(parts, before[k])
	}
	for j, seen := i+1, 0; j < len(list) && seen < contextRadius; j++ {
		if list[j].Generated() {
			continue
		}
		seen++
		if text := labelText(list[j]); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func labelText(op ops.Operation) string {
	if !op.Op.IsLabel() {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(op.Text()))
}

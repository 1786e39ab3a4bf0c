// Package scenario derives scenario variants from a base configuration and
// runs them through the engine for side-by-side comparison and single-lever
// sensitivity sweeps.
package scenario

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/domain"
)

// Template describes one named posture applied on top of a base scenario.
// Multipliers scale conversion and retention; SpendScale scales every
// channel's monthly budget.
type Template struct {
	Name        string
	Description string
	Multipliers domain.ScenarioMultipliers
	SpendScale  decimal.Decimal
}

// Apply clones the base scenario and overlays the template. The base is never
// mutated.
func (t Template) Apply(base domain.ScenarioConfig) domain.ScenarioConfig {
	out := base.Clone()
	out.Name = t.Name
	out.Multipliers = t.Multipliers
	for channel, spend := range out.ChannelSpend {
		out.ChannelSpend[channel] = spend.Mul(t.SpendScale)
	}
	return out
}

// TemplateRegistry holds the known scenario templates by name.
type TemplateRegistry struct {
	templates map[string]Template
}

// NewTemplateRegistry returns a registry preloaded with the three standard
// postures.
func NewTemplateRegistry() *TemplateRegistry {
	r := &TemplateRegistry{templates: make(map[string]Template)}
	r.Register(Template{
		Name:        "conservative",
		Description: "Reduced spend, soft market assumptions: conversion and retention both run below plan.",
		Multipliers: domain.ScenarioMultipliers{
			Conversion: decimal.NewFromFloat(0.80),
			Retention:  decimal.NewFromFloat(0.97),
		},
		SpendScale: decimal.NewFromFloat(0.75),
	})
	r.Register(Template{
		Name:        "moderate",
		Description: "The base plan as written, with neutral multipliers.",
		Multipliers: domain.NeutralMultipliers(),
		SpendScale:  decimal.NewFromInt(1),
	})
	r.Register(Template{
		Name:        "aggressive",
		Description: "Expanded spend with above-plan conversion and retention execution.",
		Multipliers: domain.ScenarioMultipliers{
			Conversion: decimal.NewFromFloat(1.25),
			Retention:  decimal.NewFromFloat(1.02),
		},
		SpendScale: decimal.NewFromFloat(1.40),
	})
	return r
}

// Register adds or replaces a template.
func (r *TemplateRegistry) Register(t Template) {
	r.templates[t.Name] = t
}

// Get returns a template by name.
func (r *TemplateRegistry) Get(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown scenario template %q (have: %v)", name, r.Names())
	}
	return t, nil
}

// Names returns the registered template names, sorted.
func (r *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package templates holds the parametric project templates that map a
// project type to material quantity formulas.
package templates

import (
	"errors"
	"fmt"
)

// ErrUnknownProjectType is returned by Resolve for a tag that has no
// registered template. Fatal for the whole estimate.
var ErrUnknownProjectType = errors.New("unknown project type")

// QuantityFunc converts a project size into a material quantity. All
// registered functions are linear in size and return non-negative quantities
// for non-negative sizes.
type QuantityFunc func(size float64) float64

// Line is one template entry: the material mapping key and its quantity
// formula. Template order is significant; it fixes BoQ output order and
// cost-driver tie-breaking.
type Line struct {
	MappingKey string
	Quantity   QuantityFunc
}

// Registry is the immutable set of built-in project templates. Safe for
// concurrent use.
type Registry struct {
	templates map[string][]Line
	order     []string
}

func perUnit(coefficient float64) QuantityFunc {
	return func(size float64) float64 {
		return size * coefficient
	}
}

// NewRegistry builds the registry with the three built-in templates:
// bridge (sized in lane-km), hotel (rooms) and business_park (m²).
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string][]Line)}

	r.register("bridge", []Line{
		{"concrete_c30", perUnit(0.8)},      // m³ per lane-km
		{"rebar_b500c", perUnit(120)},       // kg per lane-km
		{"steel_s355", perUnit(80)},         // kg per lane-km
		{"formwork_plywood", perUnit(15)},   // m² per lane-km
		{"labor_skilled", perUnit(200)},     // hours per lane-km
		{"labor_general", perUnit(300)},     // hours per lane-km
		{"excavator_20t", perUnit(10)},      // days per lane-km
	})

	r.register("hotel", []Line{
		{"concrete_c30", perUnit(0.3)},      // m³ per room
		{"rebar_b500c", perUnit(45)},        // kg per room
		{"steel_s355", perUnit(25)},         // kg per room
		{"formwork_plywood", perUnit(8)},    // m² per room
		{"labor_skilled", perUnit(80)},      // hours per room
		{"labor_general", perUnit(120)},     // hours per room
		{"cement_42_5", perUnit(0.15)},      // t per room
	})

	r.register("business_park", []Line{
		{"concrete_c30", perUnit(0.15)},     // m³ per m²
		{"rebar_b500c", perUnit(20)},        // kg per m²
		{"steel_s355", perUnit(35)},         // kg per m²
		{"formwork_plywood", perUnit(0.8)},  // m² per m²
		{"labor_skilled", perUnit(3)},       // hours per m²
		{"labor_general", perUnit(5)},       // hours per m²
		{"aggregate_mixed", perUnit(0.1)},   // t per m²
	})

	return r
}

func (r *Registry) register(projectType string, lines []Line) {
	r.templates[projectType] = lines
	r.order = append(r.order, projectType)
}

// Resolve returns the ordered template lines for a project type.
func (r *Registry) Resolve(projectType string) ([]Line, error) {
	lines, ok := r.templates[projectType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjectType, projectType)
	}
	return lines, nil
}

// Types returns the registered project type tags in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

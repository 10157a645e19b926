package materials

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mms-suite/mms/internal/platform/httpx"
)

// fieldRule is one row of the declarative validation table. Exactly one of the
// str/intVal/floatVal accessors is set; label names the field in messages.
type fieldRule struct {
	field      string
	label      string
	required   bool // enforced on create payloads only
	allowEmpty bool
	maxLen     int
	enum       []string
	decimals   int

	str      func(*MaterialForm) *string
	intVal   func(*MaterialForm) *int
	floatVal func(*MaterialForm) *float64
}

// materialRules lists the constraints in entity field order; violation lists
// preserve this order on the wire.
var materialRules = []fieldRule{
	{field: "code", label: "material code", required: true, maxLen: 50,
		str: func(f *MaterialForm) *string { return f.Code }},
	{field: "name", label: "material name", required: true, maxLen: 100,
		str: func(f *MaterialForm) *string { return f.Name }},
	{field: "category", label: "material category", required: true, maxLen: 50,
		str: func(f *MaterialForm) *string { return f.Category }},
	{field: "specification", label: "specification", allowEmpty: true, maxLen: 200,
		str: func(f *MaterialForm) *string { return f.Specification }},
	{field: "unit", label: "unit", required: true, maxLen: 20,
		str: func(f *MaterialForm) *string { return f.Unit }},
	{field: "price", label: "price", decimals: 2,
		floatVal: func(f *MaterialForm) *float64 { return f.Price }},
	{field: "stock", label: "stock",
		intVal: func(f *MaterialForm) *int { return f.Stock }},
	{field: "minStock", label: "minimum stock",
		intVal: func(f *MaterialForm) *int { return f.MinStock }},
	{field: "maxStock", label: "maximum stock",
		intVal: func(f *MaterialForm) *int { return f.MaxStock }},
	{field: "supplier", label: "supplier", allowEmpty: true, maxLen: 100,
		str: func(f *MaterialForm) *string { return f.Supplier }},
	{field: "location", label: "location", allowEmpty: true, maxLen: 100,
		str: func(f *MaterialForm) *string { return f.Location }},
	{field: "status", label: "status", enum: []string{StatusActive, StatusInactive},
		str: func(f *MaterialForm) *string { return f.Status }},
}

// validateForm evaluates the rule table against a payload. Update payloads
// (partial=true) treat every field as optional but apply the same per-field
// rules when a field is present. The result is nil or a *httpx.ValidationError
// whose violations follow table order, one per failing field.
func validateForm(f *MaterialForm, partial bool) error {
	var violations []httpx.FieldError
	for _, r := range materialRules {
		if v := r.check(f, partial); v != nil {
			violations = append(violations, *v)
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &httpx.ValidationError{Violations: violations}
}

func (r fieldRule) check(f *MaterialForm, partial bool) *httpx.FieldError {
	switch {
	case r.str != nil:
		val := r.str(f)
		if val == nil {
			if r.required && !partial {
				return violation(r.field, r.label+" is required")
			}
			return nil
		}
		if *val == "" && !r.allowEmpty {
			return violation(r.field, r.label+" must not be empty")
		}
		if r.maxLen > 0 && len([]rune(*val)) > r.maxLen {
			return violation(r.field, fmt.Sprintf("%s must not exceed %d characters", r.label, r.maxLen))
		}
		if len(r.enum) > 0 && !slices.Contains(r.enum, *val) {
			return violation(r.field, fmt.Sprintf("%s must be one of: %s", r.label, strings.Join(r.enum, ", ")))
		}
	case r.intVal != nil:
		val := r.intVal(f)
		if val != nil && *val < 0 {
			return violation(r.field, r.label+" must not be negative")
		}
	case r.floatVal != nil:
		val := r.floatVal(f)
		if val == nil {
			return nil
		}
		if *val < 0 {
			return violation(r.field, r.label+" must not be negative")
		}
		if r.decimals > 0 && exceedsPrecision(*val, r.decimals) {
			return violation(r.field, fmt.Sprintf("%s must have at most %d decimal places", r.label, r.decimals))
		}
	}
	return nil
}

func violation(field, message string) *httpx.FieldError {
	return &httpx.FieldError{Field: field, Message: message}
}

// exceedsPrecision reports whether v carries more than the allowed number of
// fractional digits. The shortest round-trip representation recovers the
// decimal the client sent, so the check stays exact across the full
// decimal(10,2) range where scaled-epsilon comparisons drift.
func exceedsPrecision(v float64, decimals int) bool {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return false
	}
	return len(s)-dot-1 > decimals
}

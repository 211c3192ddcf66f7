// Package coerce turns raw property-form input into the typed values a
// component's props hold, and decides whether an update changes anything.
package coerce

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"pageforge/internal/domain"
)

var (
	ErrUnknownProperty      = errors.New("unknown property")
	ErrInvalidPropertyValue = errors.New("invalid property value")
)

// IsEmpty reports whether v is the empty sentinel: nil or "".
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Equal is the change-detection rule: two empty sentinels are equal,
// numbers compare by value (NaN equals NaN), anything else strictly.
func Equal(a, b any) bool {
	if IsEmpty(a) && IsEmpty(b) {
		return true
	}
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	if aNum != bNum {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Changed reports whether merging update onto current alters any value.
// Keys absent from update are untouched by a merge and are not compared.
func Changed(current, update domain.Props) bool {
	for k, v := range update {
		if !Equal(current[k], v) {
			return true
		}
	}
	return false
}

// Merge returns current with update applied on top. Neither input is modified.
func Merge(current, update domain.Props) domain.Props {
	out := current.Clone()
	for k, v := range update {
		out[k] = v
	}
	return out
}

// Value coerces one raw form value according to its property definition.
func Value(p domain.PropertyDefinition, raw any) any {
	switch p.Type {
	case domain.PropertyTypeNumber:
		return toNumber(raw, numericDefault(p.DefaultValue))

	case domain.PropertyTypeSelect:
		return selectValue(p, raw)

	case domain.PropertyTypeText, domain.PropertyTypeTextarea,
		domain.PropertyTypeURL, domain.PropertyTypeColor, domain.PropertyTypeFile:
		if raw == nil {
			return ""
		}
		return cast.ToString(raw)
	}
	return raw
}

// Form converts a submitted property form into a props update.
// Transient and action properties are dropped, an empty file field keeps the
// stored value, and an image-style definition (file field plus transient URL
// helper) resolves its source through ResolveImageSource.
func Form(def domain.ComponentDefinition, values map[string]any, current domain.Props) domain.Props {
	out := domain.Props{}
	for _, p := range def.Properties {
		if !p.Stored() {
			continue
		}
		raw, present := values[p.Name]
		if !present {
			continue
		}
		if p.Type == domain.PropertyTypeFile {
			s := cast.ToString(raw)
			if s == "" {
				continue
			}
			out[p.Name] = s
			continue
		}
		out[p.Name] = Value(p, raw)
	}

	file, helper, ok := imageFields(def)
	if !ok {
		return out
	}
	_, hasUpload := values[file.Name]
	_, hasURL := values[helper.Name]
	if !hasUpload && !hasURL {
		return out
	}
	upload := cast.ToString(values[file.Name])
	entered := cast.ToString(values[helper.Name])
	src := ResolveImageSource(upload, entered, current[file.Name], cast.ToString(file.DefaultValue))
	if Equal(src, current[file.Name]) {
		delete(out, file.Name)
	} else {
		out[file.Name] = src
	}
	return out
}

// Validate checks an update against the schema and returns a normalized
// copy: integers widened to float64, nil strings turned into "".
// Either the whole update is valid or nothing is returned.
func Validate(def domain.ComponentDefinition, update domain.Props) (domain.Props, error) {
	out := make(domain.Props, len(update))
	for k, v := range update {
		p, ok := def.Property(k)
		if !ok || !p.Stored() {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, def.Type, k)
		}
		nv, err := validateValue(p, v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Type, k, err)
		}
		out[k] = nv
	}
	return out, nil
}

func validateValue(p domain.PropertyDefinition, v any) (any, error) {
	switch {
	case p.Type == domain.PropertyTypeFile:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want string, got %T", ErrInvalidPropertyValue, v)
		}
		// Only ClearComponentProperty may empty a file property.
		if !IsImageDataURI(s) && !IsExternalURL(s) {
			return nil, fmt.Errorf("%w: want an image data-URI or http(s) URL", ErrInvalidPropertyValue)
		}
		return s, nil

	case p.Type.IsStringKind():
		if v == nil {
			return "", nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want string, got %T", ErrInvalidPropertyValue, v)
		}
		return s, nil

	case p.Type == domain.PropertyTypeNumber:
		f, ok := number(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: want finite number, got %v", ErrInvalidPropertyValue, v)
		}
		return f, nil

	case p.Type == domain.PropertyTypeSelect:
		nv := v
		if f, ok := number(v); ok {
			nv = f
		}
		for _, o := range p.Options {
			if Equal(o.Value, nv) && kindOf(o.Value) == kindOf(nv) {
				return nv, nil
			}
		}
		return nil, fmt.Errorf("%w: %v is not an option", ErrInvalidPropertyValue, v)
	}
	return nil, fmt.Errorf("%w: property type %s is not stored", ErrInvalidPropertyValue, p.Type)
}

func selectValue(p domain.PropertyDefinition, raw any) any {
	var v any
	switch def := p.DefaultValue.(type) {
	case bool:
		switch r := raw.(type) {
		case bool:
			v = r
		case string:
			v = r == "true"
		default:
			v = def
		}
	case float64, float32, int, int64, int32:
		v = toNumber(raw, numericDefault(def))
	default:
		if raw == nil {
			v = p.DefaultValue
		} else {
			v = cast.ToString(raw)
		}
	}
	if len(p.Options) == 0 {
		return v
	}
	for _, o := range p.Options {
		if Equal(o.Value, v) {
			return v
		}
	}
	return p.DefaultValue
}

func toNumber(raw any, fallback float64) float64 {
	switch r := raw.(type) {
	case string:
		s := strings.TrimSpace(r)
		if s == "" {
			return fallback
		}
		f, err := cast.ToFloat64E(s)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fallback
		}
		return f
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, err := cast.ToFloat64E(r)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fallback
		}
		return f
	}
	return fallback
}

func numericDefault(v any) float64 {
	if f, ok := number(v); ok && !math.IsNaN(f) {
		return f
	}
	return 0
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(n), true
	}
	return 0, false
}

func kindOf(v any) string {
	switch v.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	}
	if _, ok := number(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

func imageFields(def domain.ComponentDefinition) (file, helper domain.PropertyDefinition, ok bool) {
	var haveFile, haveHelper bool
	for _, p := range def.Properties {
		switch {
		case p.Type == domain.PropertyTypeFile && !haveFile:
			file, haveFile = p, true
		case p.Type == domain.PropertyTypeURL && p.Transient && !haveHelper:
			helper, haveHelper = p, true
		}
	}
	return file, helper, haveFile && haveHelper
}

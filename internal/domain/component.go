package domain

// PropertyType is the editor widget kind of a component property.
type PropertyType string

const (
	PropertyTypeText     PropertyType = "text"
	PropertyTypeTextarea PropertyType = "textarea"
	PropertyTypeURL      PropertyType = "url"
	PropertyTypeNumber   PropertyType = "number"
	PropertyTypeSelect   PropertyType = "select"
	PropertyTypeColor    PropertyType = "color"
	PropertyTypeFile     PropertyType = "file"
	PropertyTypeAction   PropertyType = "ai_action_button"
)

// IsStringKind reports whether values of this type are stored as plain strings.
func (t PropertyType) IsStringKind() bool {
	switch t {
	case PropertyTypeText, PropertyTypeTextarea, PropertyTypeURL, PropertyTypeColor, PropertyTypeFile:
		return true
	}
	return false
}

// PropertyOption is one entry of a select property.
// Value is the typed value (string, float64 or bool); the form encodes it as a string.
type PropertyOption struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// PropertyDefinition describes one editable property of a component type.
type PropertyDefinition struct {
	Name         string           `json:"name"`
	Label        string           `json:"label"`
	Type         PropertyType     `json:"type"`
	DefaultValue any              `json:"defaultValue,omitempty"`
	Options      []PropertyOption `json:"options,omitempty"`
	Placeholder  string           `json:"placeholder,omitempty"`

	// Transient properties exist only in the form (e.g. the image URL helper)
	// and never persist into Component.Props.
	Transient bool `json:"transient,omitempty"`

	// Action-trigger properties only.
	PromptSourceField string `json:"promptSourceField,omitempty"`
	ActionTargetField string `json:"actionTargetField,omitempty"`
	ButtonText        string `json:"buttonText,omitempty"`
}

// Stored reports whether the property persists into a component's props.
func (p PropertyDefinition) Stored() bool {
	return !p.Transient && p.Type != PropertyTypeAction
}

// ComponentDefinition is a registry entry.
// Component names the frontend renderer; it is opaque to the Go side.
type ComponentDefinition struct {
	Type         string               `json:"type"`
	Name         string               `json:"name"`
	Icon         string               `json:"icon"`
	DefaultProps Props                `json:"defaultProps"`
	Properties   []PropertyDefinition `json:"properties"`
	Component    string               `json:"component"`
}

// Property returns the definition named name.
func (d *ComponentDefinition) Property(name string) (PropertyDefinition, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDefinition{}, false
}

// Props is the dynamic property bag of a component, validated against the
// owning ComponentDefinition on every write.
type Props map[string]any

// Clone returns a shallow copy. Prop values are scalars, so this is a full copy.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Component is one block instance on the canvas.
// ID and Type are immutable after creation.
type Component struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Props Props  `json:"props"`
}

// Clone returns a by-value copy safe to hand out of the state owner.
func (c Component) Clone() Component {
	return Component{ID: c.ID, Type: c.Type, Props: c.Props.Clone()}
}

// CloneComponents deep-copies an ordered component list.
func CloneComponents(in []Component) []Component {
	out := make([]Component, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

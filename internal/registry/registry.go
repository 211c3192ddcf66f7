package registry

import (
	"pageforge/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Component Registry: the fixed palette of block types
// ─────────────────────────────────────────────────────────────

// Block type keys.
const (
	TypeHeader            = "HeaderElement"
	TypeText              = "TextElement"
	TypeImage             = "ImageElement"
	TypeDescriptionBullet = "DescriptionBulletElement"
	TypeEmbedCode         = "EmbedCodeElement"
	TypeAiTextGenerator   = "AiTextGeneratorElement"
	TypeButton            = "ButtonElement"
)

// ImagePlaceholderSrc is the image block's default source.
const ImagePlaceholderSrc = "https://placehold.co/600x400.png"

// ImageURLField is the transient form field holding a pasted image URL.
const ImageURLField = "imageUrl"

// Registry is a read-only lookup table of component definitions.
type Registry struct {
	defs  []domain.ComponentDefinition
	index map[string]int
}

// New builds a registry from defs. Panics on a duplicate type key,
// since the table is static data compiled into the binary.
func New(defs []domain.ComponentDefinition) *Registry {
	r := &Registry{defs: defs, index: make(map[string]int, len(defs))}
	for i, d := range defs {
		if _, dup := r.index[d.Type]; dup {
			panic("registry: duplicate component type " + d.Type)
		}
		r.index[d.Type] = i
	}
	return r
}

// Default returns the built-in PageForge registry.
func Default() *Registry {
	return New(builtin())
}

// Lookup returns the definition for componentType.
func (r *Registry) Lookup(componentType string) (domain.ComponentDefinition, bool) {
	i, ok := r.index[componentType]
	if !ok {
		return domain.ComponentDefinition{}, false
	}
	return cloneDefinition(r.defs[i]), true
}

// List returns all definitions in palette order.
func (r *Registry) List() []domain.ComponentDefinition {
	out := make([]domain.ComponentDefinition, len(r.defs))
	for i, d := range r.defs {
		out[i] = cloneDefinition(d)
	}
	return out
}

// Types returns the type keys in palette order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Type
	}
	return out
}

func cloneDefinition(d domain.ComponentDefinition) domain.ComponentDefinition {
	d.DefaultProps = d.DefaultProps.Clone()
	props := make([]domain.PropertyDefinition, len(d.Properties))
	copy(props, d.Properties)
	d.Properties = props
	return d
}

func alignmentOptions(withJustify bool) []domain.PropertyOption {
	opts := []domain.PropertyOption{
		{Label: "Left", Value: "left"},
		{Label: "Center", Value: "center"},
		{Label: "Right", Value: "right"},
	}
	if withJustify {
		opts = append(opts, domain.PropertyOption{Label: "Justify", Value: "justify"})
	}
	return opts
}

const (
	defaultParagraph   = "This is a sample paragraph. Click to edit and add your own text. You can style it too!"
	defaultDescription = "This is a compelling brief description highlighting the main advantages of your product or service. You can edit this text to suit your needs."
	defaultBullets     = "Feature 1: Describe its benefit.\nFeature 2: Another key advantage.\nFeature 3: Important detail for users."
	defaultPrompt      = "e.g., Write a paragraph about the benefits of learning Next.js for web development."
)

func builtin() []domain.ComponentDefinition {
	return []domain.ComponentDefinition{
		{
			Type: TypeHeader,
			Name: "Header",
			Icon: "heading-1",
			DefaultProps: domain.Props{
				"title":     "Main Headline",
				"subtitle":  "A catchy subtitle goes here.",
				"level":     1.0,
				"alignment": "left",
			},
			Properties: []domain.PropertyDefinition{
				{Name: "title", Label: "Title", Type: domain.PropertyTypeText, DefaultValue: "Main Headline", Placeholder: "Enter title"},
				{Name: "subtitle", Label: "Subtitle", Type: domain.PropertyTypeText, DefaultValue: "A catchy subtitle.", Placeholder: "Enter subtitle (optional)"},
				{
					Name: "level", Label: "Heading Level", Type: domain.PropertyTypeSelect, DefaultValue: 1.0,
					Options: []domain.PropertyOption{
						{Label: "H1", Value: 1.0}, {Label: "H2", Value: 2.0}, {Label: "H3", Value: 3.0},
						{Label: "H4", Value: 4.0}, {Label: "H5", Value: 5.0}, {Label: "H6", Value: 6.0},
					},
				},
				{Name: "alignment", Label: "Alignment", Type: domain.PropertyTypeSelect, DefaultValue: "left", Options: alignmentOptions(false)},
			},
			Component: TypeHeader,
		},
		{
			Type: TypeText,
			Name: "Text Block",
			Icon: "type",
			DefaultProps: domain.Props{
				"content":   defaultParagraph,
				"fontSize":  "base",
				"alignment": "left",
			},
			Properties: []domain.PropertyDefinition{
				{Name: "content", Label: "Content", Type: domain.PropertyTypeTextarea, DefaultValue: "This is a sample paragraph.", Placeholder: "Enter text content"},
				{
					Name: "fontSize", Label: "Font Size", Type: domain.PropertyTypeSelect, DefaultValue: "base",
					Options: []domain.PropertyOption{
						{Label: "Small", Value: "sm"}, {Label: "Base", Value: "base"}, {Label: "Large", Value: "lg"},
						{Label: "Extra Large", Value: "xl"}, {Label: "2X Large", Value: "2xl"},
					},
				},
				{Name: "alignment", Label: "Alignment", Type: domain.PropertyTypeSelect, DefaultValue: "left", Options: alignmentOptions(true)},
			},
			Component: TypeText,
		},
		{
			Type: TypeImage,
			Name: "Image",
			Icon: "image",
			DefaultProps: domain.Props{
				"src":       ImagePlaceholderSrc,
				"alt":       "My Awesome Image",
				"width":     600.0,
				"height":    400.0,
				"objectFit": "cover",
				"alignment": "center",
			},
			Properties: []domain.PropertyDefinition{
				{Name: "src", Label: "Image File", Type: domain.PropertyTypeFile, DefaultValue: ImagePlaceholderSrc},
				{Name: ImageURLField, Label: "Image URL", Type: domain.PropertyTypeURL, Placeholder: "https://example.com/image.png", Transient: true},
				{Name: "alt", Label: "Alt Text", Type: domain.PropertyTypeText, DefaultValue: "My Awesome Image", Placeholder: "Image description"},
				{Name: "width", Label: "Width (px)", Type: domain.PropertyTypeNumber, DefaultValue: 600.0, Placeholder: "600"},
				{Name: "height", Label: "Height (px)", Type: domain.PropertyTypeNumber, DefaultValue: 400.0, Placeholder: "400"},
				{
					Name: "objectFit", Label: "Object Fit", Type: domain.PropertyTypeSelect, DefaultValue: "cover",
					Options: []domain.PropertyOption{
						{Label: "Cover", Value: "cover"}, {Label: "Contain", Value: "contain"}, {Label: "Fill", Value: "fill"},
						{Label: "None", Value: "none"}, {Label: "Scale Down", Value: "scale-down"},
					},
				},
				{Name: "alignment", Label: "Alignment", Type: domain.PropertyTypeSelect, DefaultValue: "center", Options: alignmentOptions(false)},
			},
			Component: TypeImage,
		},
		{
			Type: TypeDescriptionBullet,
			Name: "Description & Bullets",
			Icon: "list-checks",
			DefaultProps: domain.Props{
				"description":      defaultDescription,
				"bulletPointsText": defaultBullets,
				"alignment":        "left",
			},
			Properties: []domain.PropertyDefinition{
				{Name: "description", Label: "Brief Description", Type: domain.PropertyTypeTextarea, DefaultValue: defaultDescription, Placeholder: "Enter a brief description here."},
				{Name: "bulletPointsText", Label: "Bullet Points (one per line)", Type: domain.PropertyTypeTextarea, DefaultValue: defaultBullets, Placeholder: "Enter each bullet point on a new line."},
				{Name: "alignment", Label: "Alignment", Type: domain.PropertyTypeSelect, DefaultValue: "left", Options: alignmentOptions(false)},
			},
			Component: TypeDescriptionBullet,
		},
		{
			Type: TypeEmbedCode,
			Name: "Embed Code",
			Icon: "code",
			DefaultProps: domain.Props{
				"htmlCode": "",
			},
			Properties: []domain.PropertyDefinition{
				{Name: "htmlCode", Label: "HTML / CSS / JavaScript", Type: domain.PropertyTypeTextarea, DefaultValue: "", Placeholder: "<div>Your embed code</div>"},
			},
			Component: TypeEmbedCode,
		},
		{
			Type: TypeAiTextGenerator,
			Name: "AI Text Generator",
			Icon: "wand-2",
			DefaultProps: domain.Props{
				"userProvidedPrompt": defaultPrompt,
				"aiGeneratedText":    "",
			},
			Properties: []domain.PropertyDefinition{
				{Name: "userProvidedPrompt", Label: "Your Prompt for AI", Type: domain.PropertyTypeTextarea, DefaultValue: defaultPrompt, Placeholder: "Enter your prompt for the AI here..."},
				{
					Name: "aiActionButton", Label: "Generate Text with AI", Type: domain.PropertyTypeAction,
					PromptSourceField: "userProvidedPrompt",
					ActionTargetField: "aiGeneratedText",
					ButtonText:        "Generate Text with AI ✨",
				},
				{Name: "aiGeneratedText", Label: "AI Generated Text", Type: domain.PropertyTypeTextarea, DefaultValue: "", Placeholder: "AI generated text will appear here after generation."},
			},
			Component: TypeAiTextGenerator,
		},
		{
			Type: TypeButton,
			Name: "Button",
			Icon: "mouse-pointer-click",
			DefaultProps: domain.Props{
				"buttonText":       "Click Me",
				"variant":          "default",
				"size":             "default",
				"linkUrl":          "",
				"linkOpenInNewTab": true,
				"alignment":        "center",
			},
			Properties: []domain.PropertyDefinition{
				{Name: "buttonText", Label: "Button Text", Type: domain.PropertyTypeText, DefaultValue: "Click Me", Placeholder: "Enter button text"},
				{
					Name: "variant", Label: "Variant", Type: domain.PropertyTypeSelect, DefaultValue: "default",
					Options: []domain.PropertyOption{
						{Label: "Default", Value: "default"}, {Label: "Secondary", Value: "secondary"},
						{Label: "Outline", Value: "outline"}, {Label: "Ghost", Value: "ghost"},
						{Label: "Link", Value: "link"}, {Label: "Destructive", Value: "destructive"},
					},
				},
				{
					Name: "size", Label: "Size", Type: domain.PropertyTypeSelect, DefaultValue: "default",
					Options: []domain.PropertyOption{
						{Label: "Small", Value: "sm"}, {Label: "Default", Value: "default"}, {Label: "Large", Value: "lg"},
					},
				},
				{Name: "linkUrl", Label: "Link URL", Type: domain.PropertyTypeURL, DefaultValue: "", Placeholder: "https://example.com"},
				{
					Name: "linkOpenInNewTab", Label: "Open Link in New Tab", Type: domain.PropertyTypeSelect, DefaultValue: true,
					Options: []domain.PropertyOption{
						{Label: "Yes", Value: true}, {Label: "No", Value: false},
					},
				},
				{Name: "alignment", Label: "Alignment", Type: domain.PropertyTypeSelect, DefaultValue: "center", Options: alignmentOptions(false)},
			},
			Component: TypeButton,
		},
	}
}

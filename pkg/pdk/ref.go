package pdk

import "encoding/json"

const (
	RefTypePrompt   = "prompt"
	RefTypeResource = "resource"
)

// Reference identifies what a completion request's argument belongs to.
// It is a closed union over PromptReference and ResourceTemplateReference,
// discriminated by the "type" field of the raw payload.
type Reference interface {
	referenceType() string
}

// PromptReference points at a prompt by name.
type PromptReference struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

func (PromptReference) referenceType() string { return RefTypePrompt }

// ResourceTemplateReference points at a resource template by URI pattern.
type ResourceTemplateReference struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

func (ResourceTemplateReference) referenceType() string { return RefTypeResource }

// NewPromptReference builds a reference with the discriminant set.
func NewPromptReference(name string) PromptReference {
	return PromptReference{Type: RefTypePrompt, Name: name}
}

// NewResourceTemplateReference builds a reference with the discriminant set.
func NewResourceTemplateReference(uri string) ResourceTemplateReference {
	return ResourceTemplateReference{Type: RefTypeResource, URI: uri}
}

// ResolveReference determines which variant an untyped reference map carries
// and re-interprets the full map as that variant's shape. Adding a variant is
// a new case below, nothing more.
func ResolveReference(raw map[string]any) (Reference, error) {
	discriminant, ok := raw["type"].(string)
	if !ok {
		return nil, ErrMissingDiscriminant
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	switch discriminant {
	case RefTypePrompt:
		var ref PromptReference
		if err := json.Unmarshal(data, &ref); err != nil {
			return nil, err
		}
		return ref, nil
	case RefTypeResource:
		var ref ResourceTemplateReference
		if err := json.Unmarshal(data, &ref); err != nil {
			return nil, err
		}
		return ref, nil
	default:
		return nil, &UnknownVariantError{Value: discriminant}
	}
}

// EncodeReference turns a typed reference back into the untyped map shape
// used on the wire.
func EncodeReference(ref Reference) (map[string]any, error) {
	data, err := json.Marshal(ref)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

package agent

import (
	"github.com/etnz/folio/tools"
	"google.golang.org/genai"
)

var schemaTypes = map[tools.ParamType]genai.Type{
	tools.String:  genai.TypeString,
	tools.Integer: genai.TypeInteger,
	tools.Array:   genai.TypeArray,
}

// Declaration returns the function declaration of a tool.
func Declaration(s tools.Spec) *genai.FunctionDeclaration {
	params := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Params)),
	}
	for _, p := range s.Params {
		schema := &genai.Schema{
			Type:        schemaTypes[p.Type],
			Description: p.Description,
			Enum:        p.Enum,
		}
		if p.Type == tools.Array {
			schema.Items = &genai.Schema{Type: genai.TypeString}
		}
		params.Properties[p.Name] = schema
		if p.Required {
			params.Required = append(params.Required, p.Name)
		}
	}
	return &genai.FunctionDeclaration{
		Name:        string(s.Name),
		Description: s.Description,
		Parameters:  params,
	}
}

// NewDeclarations returns the function declarations of the catalog, in order.
func NewDeclarations(catalog []tools.Spec) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(catalog))
	for _, s := range catalog {
		result = append(result, Declaration(s))
	}
	return result
}

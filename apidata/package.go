// Package apidata is the serializable annotated-package description that
// adaptgen consumes: the public API of a Python distribution as extracted by
// a package parser, plus the annotations an editor attached to it.
package apidata

// Package is the root of an annotated API description.
type Package struct {
	Distribution string       `json:"distribution"`
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Modules      []Module     `json:"modules"`
	Annotations  []Annotation `json:"annotations,omitempty"`
}

type Module struct {
	Name        string       `json:"name"`
	Imports     []Import     `json:"imports,omitempty"`
	FromImports []FromImport `json:"fromImports,omitempty"`
	Classes     []Class      `json:"classes,omitempty"`
	Functions   []Function   `json:"functions,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Import struct {
	Module string `json:"module"`
	Alias  string `json:"alias,omitempty"`
}

type FromImport struct {
	Module      string `json:"module"`
	Declaration string `json:"declaration"`
	Alias       string `json:"alias,omitempty"`
}

type Class struct {
	Name          string       `json:"name"`
	QualifiedName string       `json:"qualifiedName"`
	Decorators    []string     `json:"decorators,omitempty"`
	Superclasses  []string     `json:"superclasses,omitempty"`
	Methods       []Function   `json:"methods,omitempty"`
	IsPublic      *bool        `json:"isPublic,omitempty"`
	Description   string       `json:"description,omitempty"`
	FullDocstring string       `json:"fullDocstring,omitempty"`
	Annotations   []Annotation `json:"annotations,omitempty"`
}

type Function struct {
	Name          string       `json:"name"`
	QualifiedName string       `json:"qualifiedName"`
	Decorators    []string     `json:"decorators,omitempty"`
	Parameters    []Parameter  `json:"parameters,omitempty"`
	Results       []Result     `json:"results,omitempty"`
	IsPublic      *bool        `json:"isPublic,omitempty"`
	Description   string       `json:"description,omitempty"`
	FullDocstring string       `json:"fullDocstring,omitempty"`
	Annotations   []Annotation `json:"annotations,omitempty"`
}

type Parameter struct {
	Name          string       `json:"name"`
	QualifiedName string       `json:"qualifiedName"`
	DefaultValue  *string      `json:"defaultValue,omitempty"`
	AssignedBy    string       `json:"assignedBy,omitempty"`
	IsPublic      *bool        `json:"isPublic,omitempty"`
	Type          string       `json:"type,omitempty"`
	TypeInDocs    string       `json:"typeInDocs,omitempty"`
	Description   string       `json:"description,omitempty"`
	Annotations   []Annotation `json:"annotations,omitempty"`
}

type Result struct {
	Name        string       `json:"name"`
	Type        string       `json:"type,omitempty"`
	TypeInDocs  string       `json:"typeInDocs,omitempty"`
	Description string       `json:"description,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

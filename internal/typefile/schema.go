// Package typefile loads YAML type-description files into the typemodel.
// It is the driver input format for the CLI and integration tests;
// production hosts construct typemodel values directly from their own
// front ends.
package typefile

// File is the top-level YAML document.
type File struct {
	// Generator is the id of the generator to run (e.g. "codec").
	Generator string `yaml:"generator"`
	// Capabilities lists optional capability names to activate.
	Capabilities []string `yaml:"capabilities"`
	// Types declares named types referencable from type expressions.
	Types []TypeDecl `yaml:"types"`
	// Targets lists type expressions to generate implementations for.
	Targets []string `yaml:"targets"`
	// Providers lists pre-existing implementations to reuse.
	Providers []ProviderDecl `yaml:"providers"`
}

// TypeDecl declares a named type: either an alias (type expression) or a
// custom type (list of constructors). Exactly one of Alias/Custom is set.
type TypeDecl struct {
	Module string `yaml:"module"`
	Name   string `yaml:"name"`
	// Alias is a type expression, e.g. "{ name : String.String }".
	Alias string `yaml:"alias,omitempty"`
	// Custom lists the constructors of a sum type.
	Custom []ConstructorDecl `yaml:"custom,omitempty"`
}

// ConstructorDecl is a single constructor of a custom type.
type ConstructorDecl struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

// ProviderDecl names a pre-existing implementation and its declared type.
type ProviderDecl struct {
	Generator string `yaml:"generator"`
	Module    string `yaml:"module"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
}

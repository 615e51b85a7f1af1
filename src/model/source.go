package model

// DeclKind is the kind of a parsed type declaration
type DeclKind string

const (
	KindClass     DeclKind = "class"
	KindInterface DeclKind = "interface"
	KindRecord    DeclKind = "record"
	KindEnum      DeclKind = "enum"
)

// MemberKind distinguishes methods from fields
type MemberKind string

const (
	MemberMethod MemberKind = "method"
	MemberField  MemberKind = "field"
)

// ConstructorName is the synthetic member name given to constructors.
// Constructors have no return type; their dependency contribution comes from
// parameter types alone.
const ConstructorName = "<init>"

// Modifiers holds the declaration modifiers relevant to the analysis
type Modifiers struct {
	Public    bool `json:"public"`
	Private   bool `json:"private"`
	Protected bool `json:"protected"`
	Static    bool `json:"static"`
	Abstract  bool `json:"abstract"`
	Final     bool `json:"final"`
}

// Parameter is a (name, type) pair in a method signature or record header
type Parameter struct {
	Name     string `json:"name"`
	TypeName string `json:"type_name"`
}

// Member is a single method or field owned by a TypeDeclaration.
// For methods TypeName is the raw return-type text and Parameters holds the
// signature in declaration order; for fields TypeName is the field type and
// Parameters is empty. Type texts are kept raw (generics included); they are
// normalized at resolution time, not here.
type Member struct {
	Kind       MemberKind  `json:"kind"`
	Name       string      `json:"name"`
	TypeName   string      `json:"type_name"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Modifiers  Modifiers   `json:"modifiers"`
}

// TypeDeclaration is the normalized record for the primary top-level type of
// one source file. Immutable after extraction.
type TypeDeclaration struct {
	QualifiedName string   `json:"qualified_name"`
	Package       string   `json:"package"` // empty string when the file has no package declaration
	Name          string   `json:"name"`
	Kind          DeclKind `json:"kind"`
	Abstract      bool     `json:"abstract"`
	Extends       string   `json:"extends,omitempty"`
	Implements    []string `json:"implements,omitempty"`

	// Annotations lists bare annotation names in source order; duplicates are
	// preserved. Both marker (@Foo) and parameterized (@Foo(...)) forms reduce
	// to "Foo".
	Annotations []string `json:"annotations,omitempty"`

	// RecordComponents is populated only for KindRecord.
	RecordComponents []Parameter `json:"record_components,omitempty"`

	Members []Member `json:"members,omitempty"`

	// Imports holds the file's import statements verbatim, in source order.
	Imports []string `json:"imports,omitempty"`

	FilePath string `json:"file_path"`

	// Concerns lists the structural-marker categories (e.g. "injection",
	// "persistence", "web") matched from the configured annotation markers.
	Concerns []string `json:"concerns,omitempty"`
}

// IsAbstractLike reports whether the type counts toward package abstractness
// (interfaces and abstract classes do).
func (t *TypeDeclaration) IsAbstractLike() bool {
	return t.Kind == KindInterface || t.Abstract
}

// MethodCount returns the number of method members
func (t *TypeDeclaration) MethodCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Kind == MemberMethod {
			n++
		}
	}
	return n
}

// FieldCount returns the number of field members
func (t *TypeDeclaration) FieldCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Kind == MemberField {
			n++
		}
	}
	return n
}

// FileError records a single file that failed to parse. Extraction never
// aborts on such files; they are collected and reported.
type FileError struct {
	FilePath string `json:"file_path"`
	Message  string `json:"message"`
}

// ExtractionResult is the complete output of the source model extractor
type ExtractionResult struct {
	// Types maps qualified type name to its declaration.
	Types map[string]*TypeDeclaration `json:"types"`

	// Errors lists files that could not be parsed.
	Errors []FileError `json:"errors,omitempty"`

	// FilesScanned counts source files considered; FilesSkipped counts files
	// with no recognizable top-level declaration.
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
}

// PackageNames returns the distinct package names across all extracted types
func (r *ExtractionResult) PackageNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range r.Types {
		if !seen[t.Package] {
			seen[t.Package] = true
			names = append(names, t.Package)
		}
	}
	return names
}

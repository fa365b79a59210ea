// symbols.go — symbol table shared by the analyzer, optimizer and evaluator.
//
// PL/0 has three symbol namespaces: parameters, variables and constants.
// Each declared name receives a (kind, id) pair where the id is the zero-based
// position within its namespace. Names are globally unique across all three
// namespaces, so a plain name lookup is unambiguous.
package pljit

// SymbolKind is the namespace a symbol was declared in.
type SymbolKind int

const (
	SymbolParameter SymbolKind = iota
	SymbolVariable
	SymbolConstant
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolParameter:
		return "parameter"
	case SymbolVariable:
		return "variable"
	case SymbolConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// SymbolEntry describes one declared symbol.
type SymbolEntry struct {
	Kind SymbolKind

	// ID is the zero-based index within the symbol's namespace. Parameter
	// IDs double as argument positions, variable IDs as storage slots and
	// constant IDs as indices into the constant value list.
	ID int

	// DeclarationRef is the source range of the declaring identifier; it
	// anchors the "already declared here" notes.
	DeclarationRef SourceRange
}

// SymbolTable maps names to symbols and keeps the reverse mapping from
// (kind, id) back to the declared name for diagnostics and DOT output.
type SymbolTable struct {
	entries        map[string]SymbolEntry
	names          [3][]string
	constantValues []int64
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]SymbolEntry)}
}

// Register adds a symbol under the given name. If the name is free, the new
// entry and true are returned; constantValue is recorded only for constants.
// If the name is already taken, the existing entry and false are returned and
// the table is left unchanged.
func (s *SymbolTable) Register(kind SymbolKind, name string, ref SourceRange, constantValue int64) (SymbolEntry, bool) {
	if existing, ok := s.entries[name]; ok {
		return existing, false
	}

	entry := SymbolEntry{
		Kind:           kind,
		ID:             len(s.names[kind]),
		DeclarationRef: ref,
	}
	s.entries[name] = entry
	s.names[kind] = append(s.names[kind], name)

	if kind == SymbolConstant {
		s.constantValues = append(s.constantValues, constantValue)
	}

	return entry, true
}

// Lookup resolves a name to its symbol.
func (s *SymbolTable) Lookup(name string) (SymbolEntry, bool) {
	entry, ok := s.entries[name]
	return entry, ok
}

// LookupName returns the declared name of the symbol (kind, id).
func (s *SymbolTable) LookupName(kind SymbolKind, id int) string {
	return s.names[kind][id]
}

// ConstantValue returns the value bound to the constant with the given id.
func (s *SymbolTable) ConstantValue(id int) int64 {
	return s.constantValues[id]
}

// ParameterCount returns the number of declared parameters.
func (s *SymbolTable) ParameterCount() int {
	return len(s.names[SymbolParameter])
}

// VariableCount returns the number of declared variables.
func (s *SymbolTable) VariableCount() int {
	return len(s.names[SymbolVariable])
}

// ConstantCount returns the number of declared constants.
func (s *SymbolTable) ConstantCount() int {
	return len(s.names[SymbolConstant])
}

package resolve

import "fmt"

// ErrorKind tags the variant of a resolution Error (spec §4.4's error
// taxonomy).
type ErrorKind int

// Resolution error kinds.
const (
	TypeMismatch ErrorKind = iota
	MissingField
	FieldMismatch
	MissingUnionBranch
	MissingSymbol
	FixedSizeMismatch
	NamedTypeUnresolved
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case MissingField:
		return "MissingField"
	case FieldMismatch:
		return "FieldMismatch"
	case MissingUnionBranch:
		return "MissingUnionBranch"
	case MissingSymbol:
		return "MissingSymbol"
	case FixedSizeMismatch:
		return "FixedSizeMismatch"
	case NamedTypeUnresolved:
		return "NamedTypeUnresolved"
	default:
		return "Unknown"
	}
}

// Error is the single tagged variant surfaced by Resolve on failure.
type Error struct {
	Kind ErrorKind
	// Name identifies the record/enum/fixed/union involved, when relevant.
	Name string
	// Field identifies the field involved, for MissingField/FieldMismatch.
	Field string
	// Reader/Writer describe the mismatched schemas' string forms, for
	// TypeMismatch.
	Reader, Writer string
	// ReaderSize/WriterSize are populated for FixedSizeMismatch.
	ReaderSize, WriterSize int
}

func (e *Error) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("resolve: type mismatch: reader %s cannot read writer %s", e.Reader, e.Writer)
	case MissingField:
		return fmt.Sprintf("resolve: record %q: reader field %q has no writer counterpart and no default", e.Name, e.Field)
	case FieldMismatch:
		return fmt.Sprintf("resolve: record %q: field %q: %s", e.Name, e.Field, e.Reader)
	case MissingUnionBranch:
		return fmt.Sprintf("resolve: union: no reader branch resolves writer branch %s", e.Name)
	case MissingSymbol:
		return fmt.Sprintf("resolve: enum %q: writer symbol %q has no reader counterpart and no default symbol", e.Name, e.Field)
	case FixedSizeMismatch:
		return fmt.Sprintf("resolve: fixed %q: reader size %d != writer size %d", e.Name, e.ReaderSize, e.WriterSize)
	case NamedTypeUnresolved:
		return fmt.Sprintf("resolve: named type %q could not be resolved", e.Name)
	default:
		return "resolve: unknown error"
	}
}

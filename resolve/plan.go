// Package resolve implements Avro schema resolution ("deconflict"): fusing a
// reader schema and a writer schema into a Plan that package generic walks
// alongside a wire.Source to decode writer-encoded bytes into reader-shaped
// value.Values.
package resolve

import avro "github.com/colvinstream/avrocombinator"

// Kind tags the shape of a resolved Plan node.
type Kind int

// Plan kinds.
const (
	KNull Kind = iota
	KBool
	KInt
	KLong
	KFloat
	KDouble
	KBytes
	KString
	KArray
	KMap
	KRecord
	KEnum
	KFixed

	// KUnion: both writer and reader are unions. WriterBranches is indexed
	// by the writer's branch index, as read off the wire.
	KUnion
	// KUnionUnwrap: the writer is a union, the reader is not. WriterBranches
	// is indexed by the writer's branch index; the decoded value is used
	// directly, with no union wrapper.
	KUnionUnwrap
	// KWrapUnion: the writer is not a union, the reader is. Plan resolves
	// the writer schema against the one matching reader branch; the decoded
	// value is wrapped as a union at ReaderBranch.
	KWrapUnion
)

// RecordStepKind tags one step of a KRecord plan's writer-order walk.
type RecordStepKind int

// Record step kinds.
const (
	// StepMatch decodes a writer field into the reader field at ReaderIndex.
	StepMatch RecordStepKind = iota
	// StepSkip decodes and discards a writer field with no reader counterpart.
	StepSkip
)

// RecordStep is one step of a KRecord plan's writer-order walk.
type RecordStep struct {
	Kind        RecordStepKind
	ReaderIndex int
	Plan        *Plan
}

// DefaultField is a reader field with no writer counterpart, filled from its
// declared default after the writer-order walk completes.
type DefaultField struct {
	ReaderIndex int
	Default     *avro.Default
}

// UnionBranchPlan is one entry of a KUnion/KUnionUnwrap plan's
// writer-branch-indexed table.
type UnionBranchPlan struct {
	// ReaderBranch is the matching reader branch index. Unused (-1) for
	// KUnionUnwrap, since the reader has no branches to index.
	ReaderBranch int
	Plan         *Plan
}

// Plan is one resolved node: the reader and writer schema it was built from,
// plus whatever substructure its Kind requires to decode the writer's wire
// encoding into a reader-shaped value.
type Plan struct {
	Kind   Kind
	Reader avro.Schema
	Writer avro.Schema

	// KArray, KMap, KWrapUnion (the single resolved writer-to-reader-branch
	// sub-plan)
	Elem *Plan

	// KRecord
	ReaderFieldNames []string
	Steps            []RecordStep
	Defaults         []DefaultField

	// KEnum: SymbolMap[writerIndex] is the reader index that writer symbol
	// resolves to, or -1 if the writer symbol has no reader counterpart and
	// no reader default symbol exists (a build-time error in that case, so
	// -1 never actually survives into a built Plan).
	SymbolMap     []int
	ReaderSymbols []string

	// KFixed
	Size int

	// KUnion, KUnionUnwrap
	WriterBranches []UnionBranchPlan

	// KWrapUnion
	ReaderBranch int
}

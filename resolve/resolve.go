package resolve

import avro "github.com/colvinstream/avrocombinator"

type cacheKey struct {
	reader avro.Schema
	writer avro.Schema
}

// environment memoizes Plans by (reader, writer) schema pointer identity,
// which both short-circuits repeated named-type resolution and breaks the
// infinite recursion a self-referential record (built with codec.Recursive)
// would otherwise cause: every occurrence of a recursive schema within its
// own tree shares one NamedPlaceholder pointer, so the cache key recurs and
// the second visit returns the in-progress Plan instead of descending again.
type environment struct {
	cache map[cacheKey]*Plan
}

// Resolve fuses reader and writer into a Plan describing how to decode bytes
// written with writer into a value shaped by reader.
func Resolve(reader, writer avro.Schema) (*Plan, error) {
	env := &environment{cache: make(map[cacheKey]*Plan)}
	return resolve(reader, writer, env)
}

// selfPlan resolves a schema against itself. Its only use is building the
// decode-and-skip sub-plan of a StepSkip, for writer fields the reader
// doesn't mention.
func selfPlan(writer avro.Schema, env *environment) (*Plan, error) {
	return resolve(writer, writer, env)
}

func underlying(s avro.Schema) avro.Schema {
	switch t := s.(type) {
	case *avro.NamedPlaceholder:
		if a := t.Actual(); a != nil {
			return underlying(a)
		}
		return s
	case *avro.RefSchema:
		return underlying(t.Schema())
	default:
		return s
	}
}

func nameCompatible(reader, writer avro.NamedSchema) bool {
	if reader.FullName() == writer.FullName() {
		return true
	}
	for _, alias := range reader.Aliases() {
		if alias == writer.FullName() {
			return true
		}
	}
	return false
}

func resolve(readerIn, writerIn avro.Schema, env *environment) (*Plan, error) {
	reader := underlying(readerIn)
	writer := underlying(writerIn)

	if writerUnion, ok := writer.(*avro.UnionSchema); ok {
		if readerUnion, ok := reader.(*avro.UnionSchema); ok {
			return resolveUnionUnion(readerUnion, writerUnion, env)
		}
		return resolveUnionUnwrap(reader, writerUnion, env)
	}
	if readerUnion, ok := reader.(*avro.UnionSchema); ok {
		return resolveWrapUnion(readerUnion, writer, env)
	}

	if rn, rok := reader.(avro.NamedSchema); rok {
		if wn, wok := writer.(avro.NamedSchema); wok {
			key := cacheKey{reader: reader, writer: writer}
			if p, hit := env.cache[key]; hit {
				return p, nil
			}
			return resolveNamed(rn, wn, env, key)
		}
	}

	switch w := writer.(type) {
	case *avro.ArraySchema:
		ra, ok := reader.(*avro.ArraySchema)
		if !ok {
			return nil, typeMismatch(reader, writer)
		}
		elem, err := resolve(ra.Items(), w.Items(), env)
		if err != nil {
			return nil, err
		}
		return &Plan{Kind: KArray, Reader: reader, Writer: writer, Elem: elem}, nil

	case *avro.MapSchema:
		rm, ok := reader.(*avro.MapSchema)
		if !ok {
			return nil, typeMismatch(reader, writer)
		}
		elem, err := resolve(rm.Values(), w.Values(), env)
		if err != nil {
			return nil, err
		}
		return &Plan{Kind: KMap, Reader: reader, Writer: writer, Elem: elem}, nil
	}

	return resolvePrimitive(reader, writer)
}

func typeMismatch(reader, writer avro.Schema) error {
	return &Error{Kind: TypeMismatch, Reader: reader.String(), Writer: writer.String()}
}

// resolvePrimitive implements the leaf promotion matrix: null/boolean must
// match exactly; int may widen to long/float/double; long to float/double;
// float to double; bytes and string are wire-interchangeable in both
// directions.
func resolvePrimitive(reader, writer avro.Schema) (*Plan, error) {
	rt, wt := reader.Type(), writer.Type()

	mismatch := func() (*Plan, error) { return nil, typeMismatch(reader, writer) }

	switch wt {
	case avro.Null:
		if rt != avro.Null {
			return mismatch()
		}
		return &Plan{Kind: KNull, Reader: reader, Writer: writer}, nil
	case avro.Boolean:
		if rt != avro.Boolean {
			return mismatch()
		}
		return &Plan{Kind: KBool, Reader: reader, Writer: writer}, nil
	case avro.Int:
		switch rt {
		case avro.Int:
			return &Plan{Kind: KInt, Reader: reader, Writer: writer}, nil
		case avro.Long:
			return &Plan{Kind: KLong, Reader: reader, Writer: writer}, nil
		case avro.Float:
			return &Plan{Kind: KFloat, Reader: reader, Writer: writer}, nil
		case avro.Double:
			return &Plan{Kind: KDouble, Reader: reader, Writer: writer}, nil
		default:
			return mismatch()
		}
	case avro.Long:
		switch rt {
		case avro.Long:
			return &Plan{Kind: KLong, Reader: reader, Writer: writer}, nil
		case avro.Float:
			return &Plan{Kind: KFloat, Reader: reader, Writer: writer}, nil
		case avro.Double:
			return &Plan{Kind: KDouble, Reader: reader, Writer: writer}, nil
		default:
			return mismatch()
		}
	case avro.Float:
		switch rt {
		case avro.Float:
			return &Plan{Kind: KFloat, Reader: reader, Writer: writer}, nil
		case avro.Double:
			return &Plan{Kind: KDouble, Reader: reader, Writer: writer}, nil
		default:
			return mismatch()
		}
	case avro.Double:
		if rt != avro.Double {
			return mismatch()
		}
		return &Plan{Kind: KDouble, Reader: reader, Writer: writer}, nil
	case avro.Bytes:
		switch rt {
		case avro.Bytes:
			return &Plan{Kind: KBytes, Reader: reader, Writer: writer}, nil
		case avro.String:
			return &Plan{Kind: KString, Reader: reader, Writer: writer}, nil
		default:
			return mismatch()
		}
	case avro.String:
		switch rt {
		case avro.String:
			return &Plan{Kind: KString, Reader: reader, Writer: writer}, nil
		case avro.Bytes:
			return &Plan{Kind: KBytes, Reader: reader, Writer: writer}, nil
		default:
			return mismatch()
		}
	default:
		return mismatch()
	}
}

func resolveNamed(reader, writer avro.NamedSchema, env *environment, key cacheKey) (*Plan, error) {
	if !nameCompatible(reader, writer) {
		return nil, typeMismatch(reader, writer)
	}

	switch w := writer.(type) {
	case *avro.RecordSchema:
		r, ok := reader.(*avro.RecordSchema)
		if !ok {
			return nil, typeMismatch(reader, writer)
		}
		return resolveRecord(r, w, env, key)
	case *avro.EnumSchema:
		r, ok := reader.(*avro.EnumSchema)
		if !ok {
			return nil, typeMismatch(reader, writer)
		}
		return resolveEnum(r, w)
	case *avro.FixedSchema:
		r, ok := reader.(*avro.FixedSchema)
		if !ok {
			return nil, typeMismatch(reader, writer)
		}
		if r.Size() != w.Size() {
			return nil, &Error{Kind: FixedSizeMismatch, Name: w.FullName(), ReaderSize: r.Size(), WriterSize: w.Size()}
		}
		return &Plan{Kind: KFixed, Reader: reader, Writer: writer, Size: w.Size()}, nil
	default:
		return nil, typeMismatch(reader, writer)
	}
}

func fieldMatches(f *avro.Field, name string) bool {
	if f.Name() == name {
		return true
	}
	for _, a := range f.Aliases() {
		if a == name {
			return true
		}
	}
	return false
}

func resolveRecord(reader, writer *avro.RecordSchema, env *environment, key cacheKey) (*Plan, error) {
	plan := &Plan{Kind: KRecord, Reader: reader, Writer: writer}
	env.cache[key] = plan

	readerFields := reader.Fields()
	matched := make([]bool, len(readerFields))
	names := make([]string, len(readerFields))
	for i, f := range readerFields {
		names[i] = f.Name()
	}

	steps := make([]RecordStep, 0, len(writer.Fields()))
	for _, wf := range writer.Fields() {
		readerIdx := -1
		for i, rf := range readerFields {
			if matched[i] {
				continue
			}
			if fieldMatches(rf, wf.Name()) {
				readerIdx = i
				break
			}
		}
		if readerIdx == -1 {
			sub, err := selfPlan(wf.Type(), env)
			if err != nil {
				return nil, err
			}
			steps = append(steps, RecordStep{Kind: StepSkip, Plan: sub})
			continue
		}
		matched[readerIdx] = true
		sub, err := resolve(readerFields[readerIdx].Type(), wf.Type(), env)
		if err != nil {
			return nil, &Error{Kind: FieldMismatch, Name: reader.FullName(), Field: wf.Name(), Reader: err.Error()}
		}
		steps = append(steps, RecordStep{Kind: StepMatch, ReaderIndex: readerIdx, Plan: sub})
	}

	defaults := make([]DefaultField, 0)
	for i, rf := range readerFields {
		if matched[i] {
			continue
		}
		if !rf.HasDefault() {
			return nil, &Error{Kind: MissingField, Name: reader.FullName(), Field: rf.Name()}
		}
		defaults = append(defaults, DefaultField{ReaderIndex: i, Default: rf.Default()})
	}

	plan.ReaderFieldNames = names
	plan.Steps = steps
	plan.Defaults = defaults
	return plan, nil
}

func resolveEnum(reader, writer *avro.EnumSchema) (*Plan, error) {
	readerDefault, hasDefault := reader.DefaultSymbol()
	readerDefaultIdx := -1
	if hasDefault {
		readerDefaultIdx = reader.IndexOf(readerDefault)
	}

	symbolMap := make([]int, len(writer.Symbols()))
	for i, sym := range writer.Symbols() {
		idx := reader.IndexOf(sym)
		if idx == -1 {
			if !hasDefault {
				return nil, &Error{Kind: MissingSymbol, Name: reader.FullName(), Field: sym}
			}
			idx = readerDefaultIdx
		}
		symbolMap[i] = idx
	}

	return &Plan{
		Kind:          KEnum,
		Reader:        reader,
		Writer:        writer,
		SymbolMap:     symbolMap,
		ReaderSymbols: reader.Symbols(),
	}, nil
}

func resolveUnionUnion(reader, writer *avro.UnionSchema, env *environment) (*Plan, error) {
	branches := make([]UnionBranchPlan, len(writer.Types()))
	for wi, wt := range writer.Types() {
		found := false
		for ri, rt := range reader.Types() {
			sub, err := resolve(rt, wt, env)
			if err != nil {
				continue
			}
			branches[wi] = UnionBranchPlan{ReaderBranch: ri, Plan: sub}
			found = true
			break
		}
		if !found {
			return nil, &Error{Kind: MissingUnionBranch, Name: wt.String()}
		}
	}
	return &Plan{Kind: KUnion, Reader: reader, Writer: writer, WriterBranches: branches}, nil
}

func resolveUnionUnwrap(reader avro.Schema, writer *avro.UnionSchema, env *environment) (*Plan, error) {
	branches := make([]UnionBranchPlan, len(writer.Types()))
	for wi, wt := range writer.Types() {
		sub, err := resolve(reader, wt, env)
		if err != nil {
			return nil, err
		}
		branches[wi] = UnionBranchPlan{ReaderBranch: -1, Plan: sub}
	}
	return &Plan{Kind: KUnionUnwrap, Reader: reader, Writer: writer, WriterBranches: branches}, nil
}

func resolveWrapUnion(reader *avro.UnionSchema, writer avro.Schema, env *environment) (*Plan, error) {
	for ri, rt := range reader.Types() {
		sub, err := resolve(rt, writer, env)
		if err != nil {
			continue
		}
		return &Plan{Kind: KWrapUnion, Reader: reader, Writer: writer, ReaderBranch: ri, Elem: sub}, nil
	}
	return nil, &Error{Kind: MissingUnionBranch, Name: writer.String()}
}

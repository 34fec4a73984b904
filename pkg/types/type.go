// Package types implements the C type system collaborator spec.md §6 calls
// "Type system": basic integer types in signed/unsigned flavours, pointer,
// array, function and struct/union composition, qualifiers, and the
// predicates (IsPointer, IsInteger, ...) the expression parser needs.
//
// The Type interface follows the teacher's accessor-per-kind shape (read
// from pkg/schema/type.go before it was deleted — see DESIGN.md): a type
// exposes one `AsX() *XType` method per concrete kind, returning nil unless
// it actually is that kind, instead of a type-switch at every call site.
package types

import "fmt"

// Qualifier is a bitset of C type qualifiers plus the two calling-convention
// markers spec.md §3.1 folds into the type (fastcall/cdecl are, in cc65,
// attributes of function types).
type Qualifier uint8

// Qualifier bits.
const (
	QualNone     Qualifier = 0
	QualConst    Qualifier = 1 << iota
	QualVolatile Qualifier = 1 << iota
	QualRestrict Qualifier = 1 << iota
	QualFastcall Qualifier = 1 << iota
	QualCDecl    Qualifier = 1 << iota
)

// Has reports whether q contains all the bits of other.
func (q Qualifier) Has(other Qualifier) bool { return q&other == other }

// BasicKind enumerates the scalar base types of this target (spec.md §1:
// widths {8,16,32}, no floating point in code generation).
type BasicKind uint8

// Basic kinds. Bool is a synonym for an 8-bit unsigned width (spec.md §4.8).
const (
	Void BasicKind = iota
	Bool
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
)

var basicWidths = map[BasicKind]uint{
	Void: 0, Bool: 1, SChar: 1, UChar: 1,
	Short: 2, UShort: 2, Int: 2, UInt: 2,
	Long: 4, ULong: 4,
}

var basicNames = map[BasicKind]string{
	Void: "void", Bool: "_Bool", SChar: "signed char", UChar: "unsigned char",
	Short: "short", UShort: "unsigned short", Int: "int", UInt: "unsigned int",
	Long: "long", ULong: "unsigned long",
}

// IsUnsigned reports whether k is one of this target's unsigned kinds.
func (k BasicKind) IsUnsigned() bool {
	switch k {
	case Bool, UChar, UShort, UInt, ULong:
		return true
	default:
		return false
	}
}

// Width returns the byte width of k.
func (k BasicKind) Width() uint { return basicWidths[k] }

// Type is a node in the type graph. Every concrete kind implements all five
// accessors; exactly one returns non-nil.
type Type interface {
	fmt.Stringer
	// AsBasic returns this type as a basic scalar, or nil.
	AsBasic() *BasicType
	// AsPointer returns this type as a pointer, or nil.
	AsPointer() *PointerType
	// AsArray returns this type as an array, or nil.
	AsArray() *ArrayType
	// AsFunc returns this type as a function, or nil.
	AsFunc() *FuncType
	// AsRecord returns this type as a struct/union, or nil.
	AsRecord() *RecordType
	// Qualifiers returns the qualifier bits attached to this type.
	Qualifiers() Qualifier
	// Unqualified returns a copy of this type with all qualifiers cleared.
	Unqualified() Type
	// Qualify returns a copy of this type with q bits added.
	Qualify(q Qualifier) Type
	// Size returns the number of bytes an object of this type occupies.
	// Incomplete types (void, unfinished arrays/records) return 0.
	Size() uint
}

// BasicType is a scalar integer or void type.
type BasicType struct {
	Kind BasicKind
	Qual Qualifier
}

// NewBasic constructs an unqualified basic type of the given kind.
func NewBasic(k BasicKind) *BasicType { return &BasicType{Kind: k} }

// AsBasic implements Type.
func (t *BasicType) AsBasic() *BasicType { return t }

// AsPointer implements Type.
func (t *BasicType) AsPointer() *PointerType { return nil }

// AsArray implements Type.
func (t *BasicType) AsArray() *ArrayType { return nil }

// AsFunc implements Type.
func (t *BasicType) AsFunc() *FuncType { return nil }

// AsRecord implements Type.
func (t *BasicType) AsRecord() *RecordType { return nil }

// Qualifiers implements Type.
func (t *BasicType) Qualifiers() Qualifier { return t.Qual }

// Unqualified implements Type.
func (t *BasicType) Unqualified() Type { c := *t; c.Qual = QualNone; return &c }

// Qualify implements Type.
func (t *BasicType) Qualify(q Qualifier) Type { c := *t; c.Qual |= q; return &c }

// Size implements Type.
func (t *BasicType) Size() uint { return t.Kind.Width() }

// String implements fmt.Stringer.
func (t *BasicType) String() string { return basicNames[t.Kind] }

// PointerType is a pointer to another type.
type PointerType struct {
	Elem Type
	Qual Qualifier
}

// NewPointer constructs an unqualified pointer to elem.
func NewPointer(elem Type) *PointerType { return &PointerType{Elem: elem} }

// AsBasic implements Type.
func (t *PointerType) AsBasic() *BasicType { return nil }

// AsPointer implements Type.
func (t *PointerType) AsPointer() *PointerType { return t }

// AsArray implements Type.
func (t *PointerType) AsArray() *ArrayType { return nil }

// AsFunc implements Type.
func (t *PointerType) AsFunc() *FuncType { return nil }

// AsRecord implements Type.
func (t *PointerType) AsRecord() *RecordType { return nil }

// Qualifiers implements Type.
func (t *PointerType) Qualifiers() Qualifier { return t.Qual }

// Unqualified implements Type.
func (t *PointerType) Unqualified() Type { c := *t; c.Qual = QualNone; return &c }

// Qualify implements Type.
func (t *PointerType) Qualify(q Qualifier) Type { c := *t; c.Qual |= q; return &c }

// Size implements Type.  Pointers are 16-bit on this target (zero page and
// absolute addresses both fit in a word).
func (t *PointerType) Size() uint { return 2 }

// String implements fmt.Stringer.
func (t *PointerType) String() string { return t.Elem.String() + " *" }

// ArrayType is an array of Len elements of type Elem. Len < 0 means the
// bound is not yet known (an incomplete array, e.g. `extern int a[];`).
type ArrayType struct {
	Elem Type
	Len  int
	Qual Qualifier
}

// NewArray constructs an unqualified array type.
func NewArray(elem Type, length int) *ArrayType {
	return &ArrayType{Elem: elem, Len: length}
}

// AsBasic implements Type.
func (t *ArrayType) AsBasic() *BasicType { return nil }

// AsPointer implements Type.
func (t *ArrayType) AsPointer() *PointerType { return nil }

// AsArray implements Type.
func (t *ArrayType) AsArray() *ArrayType { return t }

// AsFunc implements Type.
func (t *ArrayType) AsFunc() *FuncType { return nil }

// AsRecord implements Type.
func (t *ArrayType) AsRecord() *RecordType { return nil }

// Qualifiers implements Type.
func (t *ArrayType) Qualifiers() Qualifier { return t.Qual }

// Unqualified implements Type.
func (t *ArrayType) Unqualified() Type { c := *t; c.Qual = QualNone; return &c }

// Qualify implements Type.
func (t *ArrayType) Qualify(q Qualifier) Type { c := *t; c.Qual |= q; return &c }

// Size implements Type. An incomplete array has size 0.
func (t *ArrayType) Size() uint {
	if t.Len < 0 {
		return 0
	}

	return uint(t.Len) * t.Elem.Size()
}

// String implements fmt.Stringer.
func (t *ArrayType) String() string {
	if t.Len < 0 {
		return t.Elem.String() + " []"
	}

	return fmt.Sprintf("%s [%d]", t.Elem.String(), t.Len)
}

// FuncType is a function signature: parameter types, return type,
// variadic-ness and the fastcall/cdecl qualifier spec.md §4.6 dispatches on.
type FuncType struct {
	Ret      Type
	Params   []Type
	Variadic bool
	Qual     Qualifier
}

// NewFunc constructs a function type.
func NewFunc(ret Type, params []Type, variadic bool) *FuncType {
	return &FuncType{Ret: ret, Params: params, Variadic: variadic}
}

// AsBasic implements Type.
func (t *FuncType) AsBasic() *BasicType { return nil }

// AsPointer implements Type.
func (t *FuncType) AsPointer() *PointerType { return nil }

// AsArray implements Type.
func (t *FuncType) AsArray() *ArrayType { return nil }

// AsFunc implements Type.
func (t *FuncType) AsFunc() *FuncType { return t }

// AsRecord implements Type.
func (t *FuncType) AsRecord() *RecordType { return nil }

// Qualifiers implements Type.
func (t *FuncType) Qualifiers() Qualifier { return t.Qual }

// Unqualified implements Type.
func (t *FuncType) Unqualified() Type { c := *t; c.Qual = QualNone; return &c }

// Qualify implements Type.
func (t *FuncType) Qualify(q Qualifier) Type { c := *t; c.Qual |= q; return &c }

// Size implements Type. Functions have no object representation; their
// address (a pointer) is what flows through expressions (spec.md §4.3).
func (t *FuncType) Size() uint { return 0 }

// IsFastcall reports whether the last parameter is passed in the primary
// register (spec.md §4.6). Variadic functions are never fastcall.
func (t *FuncType) IsFastcall(autoCDecl bool) bool {
	if t.Variadic {
		return false
	}

	if t.Qual.Has(QualFastcall) {
		return true
	}

	if t.Qual.Has(QualCDecl) {
		return false
	}

	return !autoCDecl
}

// String implements fmt.Stringer.
func (t *FuncType) String() string {
	s := t.Ret.String() + " ("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}

		s += p.String()
	}

	if t.Variadic {
		if len(t.Params) > 0 {
			s += ", "
		}

		s += "..."
	}

	return s + ")"
}

// Field is one member of a struct/union.
type Field struct {
	Name string
	Type Type
	// ByteOffset is this field's offset from the start of the record.
	ByteOffset uint
	// BitWidth is non-zero for a bit-field member; BitOffset is then its
	// offset within the storage unit at ByteOffset (spec.md §4.4).
	BitWidth  uint
	BitOffset uint
}

// IsBitField reports whether f is a bit-field member.
func (f *Field) IsBitField() bool { return f.BitWidth != 0 }

// RecordType is a struct or union.
type RecordType struct {
	Tag      string
	Union    bool
	Fields   []Field
	ByteSize uint
	Qual     Qualifier
}

// Lookup finds a named field, or nil.
func (t *RecordType) Lookup(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// AsBasic implements Type.
func (t *RecordType) AsBasic() *BasicType { return nil }

// AsPointer implements Type.
func (t *RecordType) AsPointer() *PointerType { return nil }

// AsArray implements Type.
func (t *RecordType) AsArray() *ArrayType { return nil }

// AsFunc implements Type.
func (t *RecordType) AsFunc() *FuncType { return nil }

// AsRecord implements Type.
func (t *RecordType) AsRecord() *RecordType { return t }

// Qualifiers implements Type.
func (t *RecordType) Qualifiers() Qualifier { return t.Qual }

// Unqualified implements Type.
func (t *RecordType) Unqualified() Type { c := *t; c.Qual = QualNone; return &c }

// Qualify implements Type.
func (t *RecordType) Qualify(q Qualifier) Type { c := *t; c.Qual |= q; return &c }

// Size implements Type.
func (t *RecordType) Size() uint { return t.ByteSize }

// String implements fmt.Stringer.
func (t *RecordType) String() string {
	kw := "struct"
	if t.Union {
		kw = "union"
	}

	return kw + " " + t.Tag
}

// Predicates used throughout pkg/parser.

// IsInteger reports whether t is one of the basic integer kinds (not void,
// not Bool-as-distinct -- Bool counts as integer here).
func IsInteger(t Type) bool {
	b := t.AsBasic()
	return b != nil && b.Kind != Void
}

// IsPointer reports whether t is a pointer.
func IsPointer(t Type) bool { return t.AsPointer() != nil }

// IsArray reports whether t is an array.
func IsArray(t Type) bool { return t.AsArray() != nil }

// IsFunc reports whether t is a function.
func IsFunc(t Type) bool { return t.AsFunc() != nil }

// IsFuncPointer reports whether t is a pointer to a function.
func IsFuncPointer(t Type) bool {
	p := t.AsPointer()
	return p != nil && IsFunc(p.Elem)
}

// IsRecord reports whether t is a struct or union.
func IsRecord(t Type) bool { return t.AsRecord() != nil }

// IsScalar reports whether t is an integer or pointer (arithmetic- or
// comparison-eligible, spec.md §4.8/§4.5's `!`).
func IsScalar(t Type) bool { return IsInteger(t) || IsPointer(t) }

// IsVoid reports whether t is void.
func IsVoid(t Type) bool {
	b := t.AsBasic()
	return b != nil && b.Kind == Void
}

// Singletons for the basic kinds, used pervasively by pkg/parser and
// pkg/types's own conversion logic.
var (
	VoidType   = NewBasic(Void)
	BoolType   = NewBasic(Bool)
	SCharType  = NewBasic(SChar)
	UCharType  = NewBasic(UChar)
	ShortType  = NewBasic(Short)
	UShortType = NewBasic(UShort)
	IntType    = NewBasic(Int)
	UIntType   = NewBasic(UInt)
	LongType   = NewBasic(Long)
	ULongType  = NewBasic(ULong)
)

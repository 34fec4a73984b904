package types

// IntPromotion implements C89's integer promotions (spec.md §4.2 rule 1):
// any integer type narrower than int promotes to int, unless int cannot
// represent all its values, in which case it promotes to unsigned int.
// Types already at or above int's rank pass through unchanged.
func IntPromotion(t Type) Type {
	b := t.AsBasic()
	if b == nil {
		return t
	}

	switch b.Kind {
	case Bool, SChar, UChar:
		// Every value of an 8-bit type (signed or unsigned) fits in a
		// 16-bit signed int.
		return IntType
	case Short:
		return IntType
	case UShort:
		// unsigned short is as wide as int, so int cannot represent all
		// of its values.
		return UIntType
	default:
		return t
	}
}

// ArithmeticConvert implements the "usual arithmetic conversions" (spec.md
// §4.2) between two already integer-promoted operand types, returning the
// common type both operands convert to.  The cascade is, in order:
//
//  1. either operand is unsigned long -> unsigned long
//  2. either operand is long, and the other is unsigned int -> long
//     (long can represent every unsigned int value on this target)
//  3. either operand is long -> long
//  4. either operand is unsigned int -> unsigned int
//  5. otherwise -> int
func ArithmeticConvert(a, b Type) Type {
	a = IntPromotion(a)
	b = IntPromotion(b)

	ak, bk := basicKindOf(a), basicKindOf(b)

	if ak == ULong || bk == ULong {
		return ULongType
	}

	if ak == Long || bk == Long {
		return LongType
	}

	if ak == UInt || bk == UInt {
		return UIntType
	}

	return IntType
}

func basicKindOf(t Type) BasicKind {
	if b := t.AsBasic(); b != nil {
		return b.Kind
	}

	return Void
}

// Compat is the result of TypeCmp, ordered from worst to best so callers can
// compare with >= against the minimum acceptable level.
type Compat int

// Compat levels, spec.md §4.2's assignment/comparison compatibility lattice.
const (
	Incompatible Compat = iota
	PtrIncompatible
	QualDiff
	Equal
)

// TypeCmp compares two types for assignment/comparison compatibility,
// decaying arrays and ignoring top-level qualifiers on the comparison
// itself (they are reported via the QualDiff level instead of folded in).
func TypeCmp(a, b Type) Compat {
	a, b = PtrConversion(a), PtrConversion(b)

	switch at := a.(type) {
	case *BasicType:
		bt := b.AsBasic()
		if bt == nil {
			return Incompatible
		}

		if at.Kind == bt.Kind {
			return qualCompat(a, b)
		}
		// Distinct basic kinds of the same signed-ness family are still
		// usable together after promotion; expr.c treats any two
		// arithmetic types as mutually convertible.
		if IsInteger(a) && IsInteger(b) {
			return qualCompat(a, b)
		}

		return Incompatible

	case *PointerType:
		bt := b.AsPointer()
		if bt == nil {
			return Incompatible
		}

		if IsVoid(at.Elem) || IsVoid(bt.Elem) {
			return qualCompat(a, b)
		}

		// Pointees of distinct integer kinds are not interchangeable, even
		// though values of those kinds convert freely.
		if ae, be := at.Elem.AsBasic(), bt.Elem.AsBasic(); ae != nil && be != nil && ae.Kind != be.Kind {
			return PtrIncompatible
		}

		if TypeCmp(at.Elem, bt.Elem) == Incompatible {
			return PtrIncompatible
		}

		return qualCompat(a, b)

	case *FuncType:
		bt := b.AsFunc()
		if bt == nil || len(at.Params) != len(bt.Params) || at.Variadic != bt.Variadic {
			return Incompatible
		}

		if TypeCmp(at.Ret, bt.Ret) == Incompatible {
			return Incompatible
		}

		for i := range at.Params {
			if TypeCmp(at.Params[i], bt.Params[i]) == Incompatible {
				return Incompatible
			}
		}

		return Equal

	case *RecordType:
		bt := b.AsRecord()
		if bt == nil || at.Tag != bt.Tag || at.Union != bt.Union {
			return Incompatible
		}

		return qualCompat(a, b)

	default:
		return Incompatible
	}
}

func qualCompat(a, b Type) Compat {
	if a.Qualifiers() != b.Qualifiers() {
		return QualDiff
	}

	return Equal
}

// PtrConversion applies array-to-pointer and function-to-pointer decay
// (spec.md §4.3's lvalue-to-rvalue step for postfix `[]`/call targets).
// Every other type passes through unchanged.
func PtrConversion(t Type) Type {
	if at := t.AsArray(); at != nil {
		return NewPointer(at.Elem)
	}

	if t.AsFunc() != nil {
		return NewPointer(t)
	}

	return t
}

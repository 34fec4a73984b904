// Package symtab implements the symbol table collaborator spec.md §6
// requires: a scoped store of identifier bindings (locals, globals, and
// enum constants) the parser consults to resolve names into typed,
// located objects. It does not store labels; compiler-generated labels
// come from pkg/label.
//
// The scope-chain shape follows the teacher's symbol handling in
// pkg/schema (read, then deleted, before the zk-constraint packages were
// trimmed — see DESIGN.md): an ordered slice of scopes, innermost last,
// searched back-to-front.
package symtab

import "github.com/gocc65/exprc/pkg/types"

// StorageClass records where a symbol's value lives, mirroring the
// Location values pkg/exprdesc attaches to an expression once it names
// this symbol.
type StorageClass uint8

// Storage classes.
const (
	Auto StorageClass = iota
	Static
	Extern
	Register
	// EnumConst is a named enumerator: it has no storage at all, only a
	// known constant value (spec.md §4.3's identifier lookup folds these
	// straight into a constant ExprDesc).
	EnumConst
)

// Symbol is one entry in the table: a name bound to a type, a storage
// class, and (for locals) a stack frame offset or (for enum constants) a
// value.
type Symbol struct {
	Name    string
	Type    types.Type
	Class   StorageClass
	Offset  int   // stack-frame offset, meaningful when Class == Auto/Register
	Value   int64 // enumerator value, meaningful when Class == EnumConst
	AsmName string
}

// scope is one lexical block's bindings.
type scope struct {
	symbols map[string]*Symbol
}

func newScope() *scope { return &scope{symbols: make(map[string]*Symbol)} }

// Table is the scope chain: index 0 is file scope, the last entry is the
// innermost currently-open block.
type Table struct {
	scopes  []*scope
	globals map[string]*Symbol
	nextOff int
}

// New returns a table with just file scope open.
func New() *Table {
	return &Table{
		scopes:  []*scope{newScope()},
		globals: make(map[string]*Symbol),
	}
}

// OpenScope pushes a new, empty block scope (entering a `{ ... }`).
func (t *Table) OpenScope() {
	t.scopes = append(t.scopes, newScope())
}

// CloseScope pops the innermost block scope (leaving a `{ ... }`). It is a
// programming error to call this with only file scope open.
func (t *Table) CloseScope() {
	if len(t.scopes) == 1 {
		panic("symtab: cannot close file scope")
	}

	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Find searches the scope chain innermost-first, then file-scope globals,
// returning nil if name is unbound.
func (t *Table) Find(name string) *Symbol {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if s, ok := t.scopes[i].symbols[name]; ok {
			return s
		}
	}

	if s, ok := t.globals[name]; ok {
		return s
	}

	return nil
}

// AddLocal binds name in the innermost open scope, assigning it the next
// stack-frame offset. It does not check for shadowing; that policy belongs
// to the declaration parser, out of this module's scope (spec.md §1).
func (t *Table) AddLocal(name string, typ types.Type, class StorageClass) *Symbol {
	sym := &Symbol{Name: name, Type: typ, Class: class, Offset: t.nextOff}
	t.nextOff += int(typ.Size())
	t.scopes[len(t.scopes)-1].symbols[name] = sym

	return sym
}

// AddGlobal binds name at file scope with external or static storage.
func (t *Table) AddGlobal(name string, typ types.Type, class StorageClass) *Symbol {
	sym := &Symbol{Name: name, Type: typ, Class: class, AsmName: "_" + name}
	t.globals[name] = sym

	return sym
}

// AddEnumConst binds name to a fixed integer value, with no storage.
func (t *Table) AddEnumConst(name string, value int64) *Symbol {
	sym := &Symbol{Name: name, Type: types.IntType, Class: EnumConst, Value: value}
	t.scopes[len(t.scopes)-1].symbols[name] = sym

	return sym
}

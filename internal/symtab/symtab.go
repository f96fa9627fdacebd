// Package symtab implements the assembler's three label tables: symbols
// defined in the current file, symbols declared external, and symbols
// exported as entry points.
package symtab

// Symbol is a single label entry. Address is not used for External or
// Exported entries: an external reference site is reported with the address
// of the referencing code slot, and an Exported label's address is read
// from the matching Internal entry.
type Symbol struct {
	Name    string
	Address int
	IsData  bool // true for labels defined on a .data/.string line
}

// Table is a single named-label table with duplicate-name rejection.
// A growable map replaces the reference implementation's singly-linked
// list; iteration order is never observed by the contract (see §9 of the
// original design notes): .ext emission order is driven by code-image
// traversal, and .ent lines are sorted by name.
type Table struct {
	entries map[string]*Symbol
}

func newTable() *Table {
	return &Table{entries: make(map[string]*Symbol)}
}

// Add inserts name into the table. It fails if name is already present.
func (t *Table) Add(name string, address int, isData bool) (*Symbol, bool) {
	if _, exists := t.entries[name]; exists {
		return nil, false
	}
	sym := &Symbol{Name: name, Address: address, IsData: isData}
	t.entries[name] = sym
	return sym, true
}

// Find returns the entry for name, or nil if not present.
func (t *Table) Find(name string) *Symbol {
	return t.entries[name]
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Each calls fn for every entry in the table, in unspecified order.
func (t *Table) Each(fn func(*Symbol)) {
	for _, sym := range t.entries {
		fn(sym)
	}
}

// Tables bundles the three label tables used during a single assembly.
type Tables struct {
	Internal *Table // labels defined in this file
	External *Table // labels declared via .extern
	Exported *Table // labels declared via .entry
}

// New creates a fresh, empty set of tables. Tables are scoped to a single
// file's assembly and must not be reused across files.
func New() *Tables {
	return &Tables{Internal: newTable(), External: newTable(), Exported: newTable()}
}

// CrossValidationError describes a single cross-table invariant violation,
// found during Verify.
type CrossValidationError struct {
	Name string
	Msg  string
}

func (e *CrossValidationError) Error() string {
	return e.Msg
}

// Verify checks the cross-table invariants of §4.6, after pass 1 has
// completed:
//   - a name in External must not also be Internal
//   - a name in External must not also be Exported
//   - a name in Exported must also be Internal
//
// It returns every violation found; the assembler reports each one as an
// error, so any result fails the file.
func (tb *Tables) Verify() []*CrossValidationError {
	var errs []*CrossValidationError

	tb.External.Each(func(ext *Symbol) {
		if tb.Internal.Find(ext.Name) != nil {
			errs = append(errs, &CrossValidationError{
				Name: ext.Name,
				Msg:  "label '" + ext.Name + "' is declared both external and internal",
			})
		}
		if tb.Exported.Find(ext.Name) != nil {
			errs = append(errs, &CrossValidationError{
				Name: ext.Name,
				Msg:  "label '" + ext.Name + "' cannot be both '.entry' and '.extern'",
			})
		}
	})

	tb.Exported.Each(func(exp *Symbol) {
		if tb.Internal.Find(exp.Name) == nil {
			errs = append(errs, &CrossValidationError{
				Name: exp.Name,
				Msg:  "label '" + exp.Name + "' marked as '.entry' but not defined in file",
			})
		}
	})

	return errs
}

// Relocate adds base to the address of every Internal entry. Called once,
// after pass 1 completes and cross-table validation succeeds.
func (tb *Tables) Relocate(base int) {
	tb.Internal.Each(func(sym *Symbol) {
		sym.Address += base
	})
}

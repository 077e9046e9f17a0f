// Package form holds the editable state of one create-or-edit screen:
// current field values, per-field validation errors and a dirty flag.
package form

import (
	"sort"
	"sync"

	"github.com/nberthel/formadmin/internal/client/api"
)

// Form is the state of one resource form. Values are kept as strings the
// way they travel on the wire; typed conversion happens at submit time.
type Form struct {
	mu     sync.Mutex
	values map[string]string
	errs   map[string]string
	dirty  bool
}

// New creates a form pre-filled with the given initial values. Editing an
// existing record starts from its current representation; creation starts
// from nil.
func New(initial map[string]string) *Form {
	values := make(map[string]string, len(initial))
	for key, val := range initial {
		values[key] = val
	}
	return &Form{
		values: values,
		errs:   map[string]string{},
	}
}

// Set updates one field and clears any validation error attached to it,
// so a user correcting a field sees its message disappear immediately.
func (f *Form) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	delete(f.errs, field)
	f.dirty = true
}

// SetAll replaces every given field at once, clearing their errors.
func (f *Form) SetAll(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for field, value := range values {
		f.values[field] = value
		delete(f.errs, field)
	}
	f.dirty = true
}

// Get returns the current value of a field.
func (f *Form) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values returns a copy of all current field values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := make(map[string]string, len(f.values))
	for key, val := range f.values {
		values[key] = val
	}
	return values
}

// Dirty reports whether any field changed since creation or the last Reset.
func (f *Form) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// Error returns the validation message attached to a field, if any.
func (f *Form) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[field]
}

// Errors returns a copy of all current field errors.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string, len(f.errs))
	for key, val := range f.errs {
		errs[key] = val
	}
	return errs
}

// SetErrors replaces the whole error map.
func (f *Form) SetErrors(errs map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errs = make(map[string]string, len(errs))
	for key, val := range errs {
		f.errs[key] = val
	}
}

// ApplyError maps a failed submit onto the form. A validation error from
// the server distributes its messages onto the matching fields and reports
// true; any other error leaves the form untouched and reports false so the
// caller can surface it globally.
func (f *Form) ApplyError(err error) bool {
	if !api.IsKind(err, api.KindValidation) {
		return false
	}

	fields := api.FieldErrors(err)
	if len(fields) == 0 {
		return false
	}
	f.SetErrors(fields)
	return true
}

// Valid reports whether the form currently carries no field errors.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errs) == 0
}

// Reset drops all edits and errors and restores the given values.
func (f *Form) Reset(initial map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = make(map[string]string, len(initial))
	for key, val := range initial {
		f.values[key] = val
	}
	f.errs = map[string]string{}
	f.dirty = false
}

// Fields returns the field names in sorted order, for stable rendering.
func (f *Form) Fields() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := make([]string, 0, len(f.values))
	for key := range f.values {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}

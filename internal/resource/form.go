package resource

import (
	"context"

	"github.com/google/uuid"
)

// FormHooks supplies the per-entity pieces of the form state machine: how to
// build an empty draft, how to seed one from an existing record, and what a
// submission calls in each mode.
type FormHooks[E, D any] struct {
	Defaults func() D
	Seed     func(E) D
	Create   func(context.Context, D) error
	Update   func(context.Context, uuid.UUID, D) error
}

// Form is the two-state create/edit machine behind an entity dialog. In
// create mode the draft starts from defaults; in edit mode it is seeded from
// the selected record with absent optionals collapsed to empty strings. A
// failed submission leaves both mode and draft untouched so the user can
// retry without re-entering data.
type Form[E, D any] struct {
	hooks   FormHooks[E, D]
	draft   D
	editing *uuid.UUID
}

// NewForm builds a form in create mode with a default draft.
func NewForm[E, D any](hooks FormHooks[E, D]) *Form[E, D] {
	return &Form[E, D]{hooks: hooks, draft: hooks.Defaults()}
}

// OpenCreate resets every field to its default and enters create mode.
func (f *Form[E, D]) OpenCreate() {
	f.draft = f.hooks.Defaults()
	f.editing = nil
}

// OpenEdit seeds the draft from record and enters edit mode targeting id.
func (f *Form[E, D]) OpenEdit(id uuid.UUID, record E) {
	f.draft = f.hooks.Seed(record)
	target := id
	f.editing = &target
}

// Draft returns the current field values.
func (f *Form[E, D]) Draft() D {
	return f.draft
}

// SetDraft replaces the field values, as typing into the dialog does.
func (f *Form[E, D]) SetDraft(draft D) {
	f.draft = draft
}

// Editing reports the edit target when the form is in edit mode.
func (f *Form[E, D]) Editing() (uuid.UUID, bool) {
	if f.editing == nil {
		return uuid.Nil, false
	}
	return *f.editing, true
}

// Submit runs the mutation for the current mode. Success resets the form to
// create mode with defaults; failure preserves the draft.
func (f *Form[E, D]) Submit(ctx context.Context) error {
	var err error
	if f.editing != nil {
		err = f.hooks.Update(ctx, *f.editing, f.draft)
	} else {
		err = f.hooks.Create(ctx, f.draft)
	}
	if err != nil {
		return err
	}
	f.OpenCreate()
	return nil
}

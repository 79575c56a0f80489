package resources

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/five82/ledgerdeck/internal/accounting"
	"github.com/five82/ledgerdeck/internal/ledger"
	"github.com/five82/ledgerdeck/internal/source"
	"github.com/five82/ledgerdeck/internal/tablestate"
)

var (
	// ErrUnknownResource is returned by Lookup for names no binding exists for.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrNoStatus is returned by CycleStatus for resources without a status
	// workflow.
	ErrNoStatus = errors.New("no status workflow")
	// ErrNotCopyable is returned by Duplicate for resources whose ids are not
	// assigned by the server.
	ErrNotCopyable = errors.New("records cannot be duplicated")
)

// StatusField is the record field CycleStatus edits.
const StatusField = "status"

// Validator rejects a record before it is sent to the API.
type Validator func(tablestate.Map) error

// Resource binds one REST collection to its table columns.
type Resource struct {
	// Name is the path segment under /api/.
	Name  string
	Title string
	// Group is the sidebar section the resource is listed under.
	Group    string
	Mode     source.Mode
	Schema   tablestate.Schema[tablestate.Map]
	Validate Validator
	// Statuses is the order CycleStatus walks StatusField through.
	Statuses []string
	// Copyable resources get server-assigned ids and support Duplicate.
	Copyable bool
}

type col = tablestate.Column[tablestate.Map]

func field(name, label string, kind tablestate.Kind) col {
	return col{Name: name, Label: label, Kind: kind}
}

var registry = []Resource{
	{
		Name:  "customers",
		Title: "Customers",
		Group: "Parties",
		Mode:  source.ModeServer,
		Schema: tablestate.MapSchema("id",
			field("name", "Name", tablestate.KindText).Searched(),
			field("email", "Email", tablestate.KindText).Searched(),
			field("gstin", "GSTIN", tablestate.KindText).Searched(),
			field("city", "City", tablestate.KindText).Filtered(),
			field("status", "Status", tablestate.KindText).Filtered(),
			field("balance", "Balance", tablestate.KindCurrency),
			field("createdAt", "Since", tablestate.KindDate),
		),
		Validate: validateTaxIDs,
		Statuses: []string{"active", "overdue", "inactive"},
	},
	{
		Name:  "vendors",
		Title: "Vendors",
		Group: "Parties",
		Mode:  source.ModeServer,
		Schema: tablestate.MapSchema("id",
			field("name", "Name", tablestate.KindText).Searched(),
			field("gstin", "GSTIN", tablestate.KindText).Searched(),
			field("pan", "PAN", tablestate.KindText).Searched(),
			field("category", "Category", tablestate.KindText).Filtered(),
			field("status", "Status", tablestate.KindText).Filtered(),
			field("payable", "Payable", tablestate.KindCurrency),
		),
		Validate: validateTaxIDs,
		Statuses: []string{"active", "on-hold", "inactive"},
	},
	{
		Name:  "staff",
		Title: "Staff",
		Group: "People",
		Mode:  source.ModeLocal,
		Schema: tablestate.MapSchema("id",
			field("name", "Name", tablestate.KindText).Searched(),
			field("email", "Email", tablestate.KindText).Searched(),
			field("role", "Role", tablestate.KindText).Filtered(),
			field("department", "Department", tablestate.KindText).Filtered(),
			field("joinedOn", "Joined", tablestate.KindDate),
			field("salary", "Salary", tablestate.KindCurrency),
		),
	},
	{
		Name:  "chart-of-accounts",
		Title: "Chart of Accounts",
		Group: "Books",
		Mode:  source.ModeLocal,
		Schema: tablestate.MapSchema("code",
			field("code", "Code", tablestate.KindText).Searched(),
			field("name", "Account", tablestate.KindText).Searched(),
			field("type", "Type", tablestate.KindText).Filtered(),
			field("parent", "Parent", tablestate.KindText).Filtered(),
			field("balance", "Balance", tablestate.KindCurrency),
		),
	},
	{
		Name:  "expenses",
		Title: "Expenses",
		Group: "Books",
		Mode:  source.ModeServer,
		Schema: tablestate.MapSchema("id",
			field("date", "Date", tablestate.KindDate),
			field("vendor", "Vendor", tablestate.KindText).Searched().Filtered(),
			field("category", "Category", tablestate.KindText).Filtered(),
			field("description", "Description", tablestate.KindText).Searched(),
			field("total", "Total", tablestate.KindCurrency),
			field("status", "Status", tablestate.KindText).Filtered(),
		),
		Validate: accounting.ValidateExpense,
		Statuses: []string{"draft", "submitted", "approved", "paid"},
		Copyable: true,
	},
}

// All returns every resource in sidebar order.
func All() []Resource {
	out := make([]Resource, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a resource by name, ignoring case.
func Lookup(name string) (Resource, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range registry {
		if r.Name == name {
			return r, nil
		}
	}
	return Resource{}, fmt.Errorf("%w: %q", ErrUnknownResource, name)
}

// NewSource builds the Source matching the resource's mode.
func (r Resource) NewSource(store ledger.RecordStore, cacheSize int) (source.Source, error) {
	if r.Mode == source.ModeLocal {
		return source.NewLocal(store, r.Name, r.Schema), nil
	}
	return source.NewRemote(store, r.Name, cacheSize)
}

// Filterable returns the names of the columns offered in the filter picker.
func (r Resource) Filterable() []string {
	var out []string
	for _, c := range r.Schema.Columns {
		if c.Filterable {
			out = append(out, c.Name)
		}
	}
	return out
}

// Save validates rec and creates it when id is empty, otherwise updates it.
func (r Resource) Save(ctx context.Context, store ledger.RecordStore, id string, rec tablestate.Map) (tablestate.Map, error) {
	if r.Validate != nil {
		if err := r.Validate(rec); err != nil {
			return nil, fmt.Errorf("validate %s: %w", r.Name, err)
		}
	}
	if strings.TrimSpace(id) == "" {
		return store.Create(ctx, r.Name, rec)
	}
	return store.Update(ctx, r.Name, id, rec)
}

// NextStatus returns the status after current, wrapping at the end. An
// unknown current status moves to the first one. ok is false when the
// resource has no status workflow.
func (r Resource) NextStatus(current string) (next string, ok bool) {
	if len(r.Statuses) == 0 {
		return "", false
	}
	current = strings.ToLower(strings.TrimSpace(current))
	i := slices.Index(r.Statuses, current)
	return r.Statuses[(i+1)%len(r.Statuses)], true
}

// CycleStatus loads record id, advances its status and saves it through Save,
// so the record is validated before the update is sent.
func (r Resource) CycleStatus(ctx context.Context, store ledger.RecordStore, id string) (tablestate.Map, error) {
	if len(r.Statuses) == 0 {
		return nil, fmt.Errorf("%s: %w", r.Name, ErrNoStatus)
	}
	rec, err := store.Get(ctx, r.Name, id)
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", r.Name, id, err)
	}
	next, _ := r.NextStatus(tablestate.Stringify(rec[StatusField]))
	updated := maps.Clone(rec)
	if updated == nil {
		updated = tablestate.Map{}
	}
	updated[StatusField] = next
	return r.Save(ctx, store, id, updated)
}

// Duplicate loads record id and creates a copy of it without its id. A copy
// starts in the first status of the workflow.
func (r Resource) Duplicate(ctx context.Context, store ledger.RecordStore, id string) (tablestate.Map, error) {
	if !r.Copyable {
		return nil, fmt.Errorf("%s: %w", r.Name, ErrNotCopyable)
	}
	rec, err := store.Get(ctx, r.Name, id)
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", r.Name, id, err)
	}
	copied := maps.Clone(rec)
	if copied == nil {
		copied = tablestate.Map{}
	}
	delete(copied, "id")
	if len(r.Statuses) > 0 {
		copied[StatusField] = r.Statuses[0]
	}
	return r.Save(ctx, store, "", copied)
}

// DeleteAll deletes every id, carrying on past failures. deleted lists the ids
// that no longer exist, including ones the server had already removed.
func (r Resource) DeleteAll(ctx context.Context, store ledger.RecordStore, ids []string) (deleted []string, err error) {
	var errs []error
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		err := store.Delete(ctx, r.Name, id)
		if err == nil || errors.Is(err, ledger.ErrNotFound) {
			deleted = append(deleted, id)
			continue
		}
		errs = append(errs, fmt.Errorf("delete %s %s: %w", r.Name, id, err))
	}
	return deleted, errors.Join(errs...)
}

func validateTaxIDs(rec tablestate.Map) error {
	return accounting.CheckTaxIDs(tablestate.Stringify(rec["pan"]), tablestate.Stringify(rec["gstin"]))
}

package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/ledgerdeck/internal/accounting"
	"github.com/five82/ledgerdeck/internal/ledger"
	"github.com/five82/ledgerdeck/internal/source"
	"github.com/five82/ledgerdeck/internal/tablestate"
)

type recordingStore struct {
	records          map[string]tablestate.Map
	created, updated []tablestate.Map
	deleted          []string
	deleteErr        map[string]error
}

func (s *recordingStore) List(context.Context, string, tablestate.ListQuery) (ledger.ListResponse, error) {
	return ledger.ListResponse{}, nil
}

func (s *recordingStore) Get(_ context.Context, _ string, id string) (tablestate.Map, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return rec, nil
}

func (s *recordingStore) Create(_ context.Context, _ string, rec tablestate.Map) (tablestate.Map, error) {
	s.created = append(s.created, rec)
	return rec, nil
}

func (s *recordingStore) Update(_ context.Context, _ string, _ string, rec tablestate.Map) (tablestate.Map, error) {
	s.updated = append(s.updated, rec)
	return rec, nil
}

func (s *recordingStore) Delete(_ context.Context, _ string, id string) error {
	if err := s.deleteErr[id]; err != nil {
		return err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestLookup(t *testing.T) {
	r, err := Lookup(" Customers ")
	require.NoError(t, err)
	require.Equal(t, "customers", r.Name)
	require.Equal(t, source.ModeServer, r.Mode)

	_, err = Lookup("invoices")
	require.ErrorIs(t, err, ErrUnknownResource)
}

func TestAllIsACopy(t *testing.T) {
	all := All()
	require.Len(t, all, 5)
	all[0].Name = "mutated"
	require.Equal(t, "customers", All()[0].Name)
}

func TestEveryResourceHasColumns(t *testing.T) {
	for _, r := range All() {
		t.Run(r.Name, func(t *testing.T) {
			require.NotEmpty(t, r.Title)
			require.NotEmpty(t, r.Schema.Columns)
			require.NotEmpty(t, r.Filterable())
			for _, c := range r.Schema.Columns {
				require.NotNil(t, c.Get, c.Name)
			}
		})
	}
}

func TestNewSourceFollowsMode(t *testing.T) {
	store := &recordingStore{}
	for _, r := range All() {
		src, err := r.NewSource(store, 8)
		require.NoError(t, err)
		require.Equal(t, r.Mode, src.Mode(), r.Name)
	}
}

func TestChartOfAccountsSortsByBalance(t *testing.T) {
	r, err := Lookup("chart-of-accounts")
	require.NoError(t, err)

	records := []tablestate.Map{
		{"code": "1000", "name": "Cash", "balance": "₹1,20,000.00"},
		{"code": "2000", "name": "Payables", "balance": "(₹4,500.00)"},
		{"code": "3000", "name": "Capital", "balance": "₹95,000"},
	}
	ts := tablestate.New(r.Schema, 10)
	ts.RequestSort("balance")
	require.Equal(t, []string{"2000", "3000", "1000"}, ts.VisibleRows(records).IDs)
}

func TestSaveValidatesTaxIDs(t *testing.T) {
	store := &recordingStore{}
	r, err := Lookup("vendors")
	require.NoError(t, err)

	_, err = r.Save(context.Background(), store, "", tablestate.Map{"name": "Bad", "pan": "XX"})
	require.ErrorIs(t, err, accounting.ErrInvalidPAN)
	require.Empty(t, store.created)

	_, err = r.Save(context.Background(), store, "", tablestate.Map{"name": "Good", "gstin": "27ABCDE1234F1Z5"})
	require.NoError(t, err)
	require.Len(t, store.created, 1)

	_, err = r.Save(context.Background(), store, "v-9", tablestate.Map{"name": "Good", "pan": "ABCDE1234F"})
	require.NoError(t, err)
	require.Len(t, store.updated, 1)
}

func TestSaveValidatesExpenseTotals(t *testing.T) {
	store := &recordingStore{}
	r, err := Lookup("expenses")
	require.NoError(t, err)

	rec := tablestate.Map{
		"total":     "200",
		"lineItems": []any{map[string]any{"quantity": 2, "unitPrice": 50}},
	}
	_, err = r.Save(context.Background(), store, "", rec)
	require.ErrorIs(t, err, accounting.ErrInvalidLineItem)
	require.Empty(t, store.created)

	rec["total"] = "100"
	_, err = r.Save(context.Background(), store, "", rec)
	require.NoError(t, err)
}

func TestStaffHasNoValidator(t *testing.T) {
	store := &recordingStore{}
	r, err := Lookup("staff")
	require.NoError(t, err)
	_, err = r.Save(context.Background(), store, "", tablestate.Map{"pan": "nonsense"})
	require.NoError(t, err)
}

func TestNextStatus(t *testing.T) {
	r, err := Lookup("expenses")
	require.NoError(t, err)

	next, ok := r.NextStatus("draft")
	require.True(t, ok)
	require.Equal(t, "submitted", next)

	next, _ = r.NextStatus(" PAID ")
	require.Equal(t, "draft", next)

	next, _ = r.NextStatus("archived")
	require.Equal(t, "draft", next)

	staff, err := Lookup("staff")
	require.NoError(t, err)
	_, ok = staff.NextStatus("active")
	require.False(t, ok)
}

func TestCycleStatusUpdatesLoadedRecord(t *testing.T) {
	loaded := tablestate.Map{"id": "c-1", "name": "Acme", "status": "active", "notes": "kept"}
	store := &recordingStore{records: map[string]tablestate.Map{"c-1": loaded}}
	r, err := Lookup("customers")
	require.NoError(t, err)

	saved, err := r.CycleStatus(context.Background(), store, "c-1")
	require.NoError(t, err)
	require.Equal(t, "overdue", saved["status"])
	require.Len(t, store.updated, 1)
	require.Equal(t, "kept", store.updated[0]["notes"])
	require.Equal(t, "active", loaded["status"], "loaded record must not be mutated")
}

func TestCycleStatusValidatesBeforeUpdate(t *testing.T) {
	store := &recordingStore{records: map[string]tablestate.Map{
		"v-1": {"id": "v-1", "status": "active", "pan": "BAD"},
	}}
	r, err := Lookup("vendors")
	require.NoError(t, err)

	_, err = r.CycleStatus(context.Background(), store, "v-1")
	require.ErrorIs(t, err, accounting.ErrInvalidPAN)
	require.Empty(t, store.updated)
}

func TestCycleStatusErrors(t *testing.T) {
	store := &recordingStore{}
	customers, err := Lookup("customers")
	require.NoError(t, err)
	_, err = customers.CycleStatus(context.Background(), store, "missing")
	require.ErrorIs(t, err, ledger.ErrNotFound)

	staff, err := Lookup("staff")
	require.NoError(t, err)
	_, err = staff.CycleStatus(context.Background(), store, "s-1")
	require.ErrorIs(t, err, ErrNoStatus)
}

func TestDeleteAllContinuesPastFailures(t *testing.T) {
	boom := errors.New("locked")
	store := &recordingStore{deleteErr: map[string]error{
		"2": boom,
		"3": &ledger.APIError{Path: "/api/customers/3", Status: 404},
	}}
	r, err := Lookup("customers")
	require.NoError(t, err)

	deleted, err := r.DeleteAll(context.Background(), store, []string{"1", "2", "3", "4"})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"1", "3", "4"}, deleted)
	require.Equal(t, []string{"1", "4"}, store.deleted)
}

func TestDuplicateCreatesDraftCopy(t *testing.T) {
	store := &recordingStore{records: map[string]tablestate.Map{
		"e-1": {
			"id":        "e-1",
			"status":    "paid",
			"total":     "₹1,180.00",
			"lineItems": []any{map[string]any{"unitPrice": "1000", "taxRate": 18}},
		},
	}}
	r, err := Lookup("expenses")
	require.NoError(t, err)

	_, err = r.Duplicate(context.Background(), store, "e-1")
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	require.NotContains(t, store.created[0], "id")
	require.Equal(t, "draft", store.created[0]["status"])
	require.Equal(t, "paid", store.records["e-1"]["status"])
}

func TestDuplicateValidatesAndRequiresCopyable(t *testing.T) {
	store := &recordingStore{records: map[string]tablestate.Map{
		"e-2": {"id": "e-2", "total": "10", "lineItems": []any{map[string]any{"unitPrice": "50"}}},
	}}
	r, err := Lookup("expenses")
	require.NoError(t, err)
	_, err = r.Duplicate(context.Background(), store, "e-2")
	require.ErrorIs(t, err, accounting.ErrInvalidLineItem)
	require.Empty(t, store.created)

	coa, err := Lookup("chart-of-accounts")
	require.NoError(t, err)
	_, err = coa.Duplicate(context.Background(), store, "1000")
	require.ErrorIs(t, err, ErrNotCopyable)
}

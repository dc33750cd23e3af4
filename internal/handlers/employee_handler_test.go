package handlers

import (
	"errors"
	"reflect"
	"testing"

	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// countIn counts the ids that belong to the business catalog.
func countIn(catalog ...string) func([]string) (int64, error) {
	owned := map[string]bool{}
	for _, id := range catalog {
		owned[id] = true
	}
	return func(ids []string) (int64, error) {
		var n int64
		for _, id := range ids {
			if owned[id] {
				n++
			}
		}
		return n, nil
	}
}

func TestResolveServiceIDs(t *testing.T) {
	catalog := countIn("svc-1", "svc-2", "svc-3")

	cases := []struct {
		name string
		in   []string
		want []string
		code string
	}{
		{name: "all owned", in: []string{"svc-1", "svc-3"}, want: []string{"svc-1", "svc-3"}},
		{name: "duplicates", in: []string{"svc-2", "svc-1", "svc-2"}, want: []string{"svc-2", "svc-1"}},
		{name: "blanks", in: []string{" svc-1 ", ""}, want: []string{"svc-1"}},
		{name: "empty clears", in: []string{}, want: []string{}},
		{name: "other business", in: []string{"svc-1", "svc-9"}, code: "service_not_found"},
		{name: "duplicate of foreign id", in: []string{"svc-9", "svc-9"}, code: "service_not_found"},
	}

	for _, tc := range cases {
		got, err := resolveServiceIDs(tc.in, catalog)
		if tc.code != "" {
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestResolveServiceIDsSkipsStoreForEmptyList(t *testing.T) {
	called := false
	_, err := resolveServiceIDs([]string{"", " "}, func([]string) (int64, error) {
		called = true
		return 0, nil
	})
	if err != nil || called {
		t.Fatalf("expected no lookup, got called=%v err=%v", called, err)
	}
}

func TestResolveServiceIDsStoreFailure(t *testing.T) {
	_, err := resolveServiceIDs([]string{"svc-1"}, func([]string) (int64, error) {
		return 0, errors.New("connection reset")
	})
	if !httperr.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPerformers(t *testing.T) {
	employees := []models.Employee{
		{ID: "emp-a", ServiceIDs: []string{"svc-1"}},
		{ID: "emp-b"},
		{ID: "emp-c", ServiceIDs: []string{"svc-2", "svc-3"}},
		{ID: "emp-d", ServiceIDs: []string{"svc-1", "svc-2"}},
	}

	cases := []struct {
		serviceID string
		want      []string
	}{
		{"", []string{"emp-a", "emp-b", "emp-c", "emp-d"}},
		{"svc-1", []string{"emp-a", "emp-b", "emp-d"}},
		{"svc-3", []string{"emp-b", "emp-c"}},
		{"svc-9", []string{"emp-b"}},
	}

	for _, tc := range cases {
		got := performers(employees, tc.serviceID)
		ids := make([]string, 0, len(got))
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		if !reflect.DeepEqual(ids, tc.want) {
			t.Fatalf("service %q: expected %v, got %v", tc.serviceID, tc.want, ids)
		}
	}
}

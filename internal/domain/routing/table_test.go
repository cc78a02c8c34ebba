package routing

import "testing"

func TestTable_ProcessOwners(t *testing.T) {
	table := Default()

	owners := table.ProcessOwners(RequestITEquipment)
	if len(owners) != 1 || owners[0] != "IT" {
		t.Errorf("ProcessOwners(IT_EQUIPMENT) = %v, want [IT]", owners)
	}
}

func TestTable_CanProcess(t *testing.T) {
	table := Default()

	tests := []struct {
		name     string
		rt       RequestType
		dept     string
		expected bool
	}{
		{"designated owner", RequestITEquipment, "IT", true},
		{"non-owner rejected", RequestITEquipment, "HR", false},
		{"one of several owners", RequestOfficeSupplies, "PROC", true},
		{"open routing admits anyone", RequestOthers, "MKT", true},
		{"open routing admits anyone else", RequestOthers, "IT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.CanProcess(tt.rt, tt.dept); got != tt.expected {
				t.Errorf("CanProcess(%s, %s) = %v, want %v", tt.rt, tt.dept, got, tt.expected)
			}
		})
	}
}

func TestTable_EmptyOwnersMeansOpenRouting(t *testing.T) {
	table := New(map[RequestType][]string{
		RequestOthers: {},
	})

	if owners := table.ProcessOwners(RequestOthers); len(owners) != 0 {
		t.Errorf("ProcessOwners(OTHERS) = %v, want empty", owners)
	}
	if !table.CanProcess(RequestOthers, "ANY") {
		t.Error("empty owner set must admit any department")
	}
}

func TestTable_Known(t *testing.T) {
	table := Default()

	if !table.Known(RequestTravel) {
		t.Error("TRAVEL should be a known request type")
	}
	if table.Known(RequestType("PETTY_CASH")) {
		t.Error("unlisted request types are unknown")
	}
}

func TestTable_IsImmutable(t *testing.T) {
	source := map[RequestType][]string{
		RequestITEquipment: {"IT"},
	}
	table := New(source)

	source[RequestITEquipment][0] = "HR"
	if !table.CanProcess(RequestITEquipment, "IT") {
		t.Error("mutating the source map must not affect the table")
	}

	owners := table.ProcessOwners(RequestITEquipment)
	owners[0] = "HR"
	if !table.CanProcess(RequestITEquipment, "IT") {
		t.Error("mutating a returned slice must not affect the table")
	}
}

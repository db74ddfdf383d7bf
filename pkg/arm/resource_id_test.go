package arm

import (
	"reflect"
	"testing"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		rid  string
		want map[string]string
	}{
		{
			name: "empty input",
			rid:  "",
			want: map[string]string{},
		},
		{
			name: "free-form name falls back to opaque",
			rid:  "not-an-id",
			want: map[string]string{"name": "not-an-id"},
		},
		{
			name: "subscription only",
			rid:  "/subscriptions/mySub",
			want: map[string]string{"subscription": "mySub"},
		},
		{
			name: "subscription and resource group",
			rid:  "/subscriptions/mySub/resourceGroups/myRg",
			want: map[string]string{
				"subscription":   "mySub",
				"resource_group": "myRg",
			},
		},
		{
			name: "root resource",
			rid:  "/subscriptions/mySub/resourceGroups/myRg/providers/Microsoft.Compute/virtualMachines/myVm",
			want: map[string]string{
				"subscription":       "mySub",
				"resource_group":     "myRg",
				"namespace":          "Microsoft.Compute",
				"type":               "virtualMachines",
				"name":               "myVm",
				"resource_namespace": "Microsoft.Compute",
				"resource_type":      "virtualMachines",
				"resource_name":      "myVm",
				"resource_parent":    "virtualMachines/myVm/",
			},
		},
		{
			name: "single child with its own provider namespace",
			rid:  "/subscriptions/S/resourceGroups/G/providers/NS/T/N/providers/CNS/CT/CN",
			want: map[string]string{
				"subscription":       "S",
				"resource_group":     "G",
				"namespace":          "NS",
				"type":               "T",
				"name":               "N",
				"child_namespace_1":  "CNS",
				"child_type_1":       "CT",
				"child_name_1":       "CN",
				"last_child_num":     "1",
				"child_parent_1":     "T/N/providers/CNS/",
				"resource_namespace": "NS",
				"resource_type":      "CT",
				"resource_name":      "CN",
				"resource_parent":    "T/N/providers/CNS/",
			},
		},
		{
			name: "two levels of nesting without child namespaces",
			rid:  "/subscriptions/S/providers/NS/T/N/C1T/C1N/C2T/C2N",
			want: map[string]string{
				"subscription":       "S",
				"namespace":          "NS",
				"type":               "T",
				"name":               "N",
				"child_type_1":       "C1T",
				"child_name_1":       "C1N",
				"child_type_2":       "C2T",
				"child_name_2":       "C2N",
				"last_child_num":     "2",
				"child_parent_1":     "T/N/",
				"child_parent_2":     "T/N/C1T/C1N/",
				"resource_namespace": "NS",
				"resource_type":      "C2T",
				"resource_name":      "C2N",
				"resource_parent":    "T/N/C1T/C1N/",
			},
		},
		{
			name: "empty root type is retained",
			rid:  "/subscriptions/S/providers/NS//N",
			want: map[string]string{
				"subscription":       "S",
				"namespace":          "NS",
				"type":               "",
				"name":               "N",
				"resource_namespace": "NS",
				"resource_type":      "",
				"resource_name":      "N",
				"resource_parent":    "/N/",
			},
		},
		{
			name: "case-insensitive segment keywords",
			rid:  "/SUBSCRIPTIONS/S/RESOURCEGROUPS/G/PROVIDERS/NS/T/N",
			want: map[string]string{
				"subscription":       "S",
				"resource_group":     "G",
				"namespace":          "NS",
				"type":               "T",
				"name":               "N",
				"resource_namespace": "NS",
				"resource_type":      "T",
				"resource_name":      "N",
				"resource_parent":    "T/N/",
			},
		},
		{
			name: "trailing garbage after subscription is ignored",
			rid:  "/subscriptions/S/unexpected",
			want: map[string]string{"subscription": "S"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFields(tt.rid)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFields(%q) = %v, want %v", tt.rid, got, tt.want)
			}
		})
	}
}

func TestParseStructured(t *testing.T) {
	rid := "/subscriptions/S/resourceGroups/G/providers/NS/T/N/providers/CNS/CT/CN/C2T/C2N"
	id := Parse(rid)

	want := &ResourceID{
		Subscription:  "S",
		ResourceGroup: "G",
		Namespace:     "NS",
		Type:          "T",
		Name:          "N",
		Children: []ChildSegment{
			{Namespace: "CNS", Type: "CT", Name: "CN"},
			{Type: "C2T", Name: "C2N"},
		},
	}
	if !reflect.DeepEqual(id, want) {
		t.Fatalf("Parse(%q) = %+v, want %+v", rid, id, want)
	}

	if id.Opaque() {
		t.Error("Opaque() = true for a well-formed identifier")
	}
	if got := id.LastChildNum(); got != 2 {
		t.Errorf("LastChildNum() = %d, want 2", got)
	}
	if got := id.ResourceNamespace(); got != "NS" {
		t.Errorf("ResourceNamespace() = %q, want %q (root namespace, not the child's)", got, "NS")
	}
	if got := id.ResourceType(); got != "C2T" {
		t.Errorf("ResourceType() = %q, want %q", got, "C2T")
	}
	if got := id.ResourceName(); got != "C2N" {
		t.Errorf("ResourceName() = %q, want %q", got, "C2N")
	}

	parent, ok := id.Parent()
	if !ok || parent != "T/N/providers/CNS/CT/CN/" {
		t.Errorf("Parent() = %q, %v, want %q, true", parent, ok, "T/N/providers/CNS/CT/CN/")
	}
	if p, ok := id.ChildParent(1); !ok || p != "T/N/providers/CNS/" {
		t.Errorf("ChildParent(1) = %q, %v, want %q, true", p, ok, "T/N/providers/CNS/")
	}
	if p, ok := id.ChildParent(2); !ok || p != "T/N/providers/CNS/CT/CN/" {
		t.Errorf("ChildParent(2) = %q, %v, want %q, true", p, ok, "T/N/providers/CNS/CT/CN/")
	}
	if _, ok := id.ChildParent(0); ok {
		t.Error("ChildParent(0) succeeded, want out-of-range failure")
	}
	if _, ok := id.ChildParent(3); ok {
		t.Error("ChildParent(3) succeeded, want out-of-range failure")
	}
}

func TestParseOpaque(t *testing.T) {
	id := Parse("my-storage-account")
	if !id.Opaque() {
		t.Fatal("Opaque() = false for free-form input")
	}
	if id.Name != "my-storage-account" {
		t.Errorf("Name = %q, want the original input", id.Name)
	}
	if _, ok := id.Parent(); ok {
		t.Error("Parent() succeeded for an opaque identifier")
	}
	if got := id.String(); got != "my-storage-account" {
		t.Errorf("String() = %q, want original input", got)
	}
}

func TestParseZeroValue(t *testing.T) {
	id := Parse("")
	if id.Opaque() {
		t.Error("Opaque() = true for empty input")
	}
	if got := id.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
	if n := id.LastChildNum(); n != 0 {
		t.Errorf("LastChildNum() = %d, want 0", n)
	}
}

func TestRoundTrip(t *testing.T) {
	rids := []string{
		"/subscriptions/00000000-0000-0000-0000-000000000000",
		"/subscriptions/S/resourceGroups/G",
		"/subscriptions/S/resourceGroups/G/providers/Microsoft.Compute/virtualMachines/vm1",
		"/subscriptions/S/providers/Microsoft.Storage/storageAccounts/sa1",
		"/subscriptions/S/resourceGroups/G/providers/Microsoft.Sql/servers/srv/databases/db",
		"/subscriptions/S/resourceGroups/G/providers/NS/T/N/providers/CNS/CT/CN",
		"/subscriptions/S/providers/NS/T/N/C1T/C1N/C2T/C2N",
		"/subscriptions/S/providers/NS/T/N/providers/CNS/CT/CN/providers/C2NS/C2T/C2N",
		"/subscriptions/S/providers/NS//N",
	}

	for _, rid := range rids {
		t.Run(rid, func(t *testing.T) {
			built, err := Build(ParseFields(rid))
			if err != nil {
				t.Fatalf("Build(ParseFields(%q)) failed: %v", rid, err)
			}
			if built != rid {
				t.Errorf("round trip changed %q into %q", rid, built)
			}

			// Parsing the rebuilt identifier must be a fixed point.
			again := ParseFields(built)
			if !reflect.DeepEqual(again, ParseFields(rid)) {
				t.Errorf("ParseFields not idempotent for %q", rid)
			}
		})
	}
}

func TestRoundTripCaseInsensitive(t *testing.T) {
	rid := "/Subscriptions/S/ResourceGroups/G/Providers/NS/T/N"
	built, err := Build(ParseFields(rid))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if built == rid {
		t.Fatalf("expected canonical casing to differ from %q", rid)
	}
	if !IsValidResourceID(rid) {
		t.Errorf("IsValidResourceID(%q) = false, want true under case folding", rid)
	}
}

package arm_test

import (
	"fmt"

	"github.com/piwi3910/azrid/pkg/arm"
)

// ExampleParse demonstrates decomposing a nested resource identifier.
func ExampleParse() {
	id := arm.Parse("/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Sql/servers/srv1/databases/db1")

	fmt.Println(id.Subscription)
	fmt.Println(id.ResourceGroup)
	fmt.Println(id.ResourceType())
	fmt.Println(id.ResourceName())
	parent, _ := id.Parent()
	fmt.Println(parent)
	// Output:
	// sub1
	// rg1
	// databases
	// db1
	// servers/srv1/
}

// ExampleBuild demonstrates composing an identifier from a field mapping.
func ExampleBuild() {
	rid, err := arm.Build(map[string]string{
		"subscription":   "sub1",
		"resource_group": "rg1",
		"namespace":      "Microsoft.Storage",
		"type":           "storageAccounts",
		"name":           "mystorageaccount",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(rid)
	// Output: /subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Storage/storageAccounts/mystorageaccount
}

// ExampleIsValidResourceID demonstrates round-trip validation.
func ExampleIsValidResourceID() {
	fmt.Println(arm.IsValidResourceID("/subscriptions/sub1/resourceGroups/rg1"))
	fmt.Println(arm.IsValidResourceID("just-a-name"))
	// Output:
	// true
	// false
}

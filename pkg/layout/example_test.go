package layout_test

import (
	"fmt"

	"github.com/spanview/spanview/pkg/hypergraph"
	"github.com/spanview/spanview/pkg/layout"
)

func ExampleBuild() {
	snapshot := hypergraph.Snapshot{
		{Index: 0, Label: "a", Width: 1, Parents: []int{2}},
		{Index: 1, Label: "b", Width: 1, Parents: []int{2}},
		{Index: 2, Label: "ab", Width: 2, Children: []int{0, 1}},
	}

	l, err := layout.Build(snapshot)
	if err != nil {
		fmt.Println("rejected:", err)
		return
	}

	for _, index := range l.Indices() {
		n, _ := l.Node(index)
		fmt.Printf("%s: width %d, tier %s\n", n.DisplayLabel(), n.Width, l.Tier(index))
	}
	// Output:
	// a: width 1, tier info
	// b: width 1, tier info
	// ab: width 2, tier error
}

func ExampleSeverity() {
	fmt.Println(layout.Severity(1, 9))
	fmt.Println(layout.Severity(3, 9))
	fmt.Println(layout.Severity(6, 9))
	fmt.Println(layout.Severity(9, 9))
	// Output:
	// info
	// debug
	// warn
	// error
}

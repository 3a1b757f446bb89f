package form

import (
	"reflect"
	"testing"
)

func newTopicTree(nodes ...Node[string, string]) *Tree[string, string] {
	return NewTree(TreeConfig[string, string]{
		Min:        1,
		Blank:      blankString,
		ChildMin:   1,
		BlankChild: blankString,
	}, nodes...)
}

func TestNewTree_BlankStart(t *testing.T) {
	tree := newTopicTree()

	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
	if tree.ChildLen(0) != 1 {
		t.Errorf("ChildLen(0) = %d, want 1", tree.ChildLen(0))
	}
}

func TestTree_RemoveOnlyChildIsNoOp(t *testing.T) {
	tree := newTopicTree(Node[string, string]{Value: "M1", Children: []string{"T1"}})

	if tree.RemoveChild(0, 0) {
		t.Error("RemoveChild() should refuse to empty the topics")
	}
	if tree.ChildLen(0) != 1 {
		t.Errorf("ChildLen(0) = %d, want 1", tree.ChildLen(0))
	}
}

func TestTree_ChildEditsKeepSiblingGroups(t *testing.T) {
	tree := newTopicTree(
		Node[string, string]{Value: "M1", Children: []string{"T1"}},
		Node[string, string]{Value: "M2", Children: []string{"U1"}},
	)
	before := tree.Nodes()
	id1, _ := tree.ID(1)

	tree.AddChild(0)
	tree.SetChild(0, 1, "T2")

	want := []Node[string, string]{
		{Value: "M1", Children: []string{"T1", "T2"}},
		{Value: "M2", Children: []string{"U1"}},
	}
	if got := tree.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Nodes() = %+v, want %+v", got, want)
	}
	if len(before[0].Children) != 1 {
		t.Errorf("earlier snapshot changed: %+v", before[0])
	}
	if id, _ := tree.ID(1); id != id1 {
		t.Error("sibling group id changed")
	}
}

func TestTree_UpdateAndMove(t *testing.T) {
	tree := newTopicTree(
		Node[string, string]{Value: "M1", Children: []string{"T1"}},
		Node[string, string]{Value: "M2", Children: []string{"U1", "U2"}},
	)

	tree.Update(0, func(string) string { return "Intro" })
	if !tree.Move(1, Up) {
		t.Fatal("Move(1, Up) = false")
	}

	want := []Node[string, string]{
		{Value: "M2", Children: []string{"U1", "U2"}},
		{Value: "Intro", Children: []string{"T1"}},
	}
	if got := tree.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Nodes() = %+v, want %+v", got, want)
	}
}

func TestTree_OutOfRange(t *testing.T) {
	tree := newTopicTree()

	if tree.AddChild(5) {
		t.Error("AddChild(5) should fail")
	}
	if tree.ChildLen(5) != -1 {
		t.Errorf("ChildLen(5) = %d, want -1", tree.ChildLen(5))
	}
	if _, ok := tree.Child(0, 9); ok {
		t.Error("Child(0, 9) should fail")
	}
}

package domain

import "testing"

func TestTreeItem_Identifiers(t *testing.T) {
	t.Parallel()

	file := NewTreeItem(KindFile, "src/cookies.spec.ts", "src/cookies.spec.ts")
	group := file.AddChild(KindGroup, "CookieSerializer")
	test := group.AddChild(KindTest, "finds all matching cookies")

	if file.ID != "file:src/cookies.spec.ts" {
		t.Errorf("file ID = %q", file.ID)
	}
	if group.ID != "group:src/cookies.spec.ts::CookieSerializer" {
		t.Errorf("group ID = %q", group.ID)
	}
	if test.ID != "test:src/cookies.spec.ts::CookieSerializer::finds all matching cookies" {
		t.Errorf("test ID = %q", test.ID)
	}
	if got := group.Path(); got != "src/cookies.spec.ts::CookieSerializer" {
		t.Errorf("Path() = %q", got)
	}
}

func TestTreeItem_TreeNode(t *testing.T) {
	t.Parallel()

	item := NewTreeItem(KindGroup, "root", "")
	child := item.AddChild(KindTest, "works")

	nodes := item.Children()
	if len(nodes) != 1 || nodes[0].Label() != "works" {
		t.Fatalf("Children() = %v", nodes)
	}

	nodes[0].SetOutcome(Outcome{State: TestStateFailed, Message: "boom"})
	if child.Result == nil || child.Result.State != TestStateFailed || child.Result.Message != "boom" {
		t.Errorf("outcome not recorded: %+v", child.Result)
	}
}

func TestTreeItem_CountItems(t *testing.T) {
	t.Parallel()

	root := NewTreeItem(KindGroup, "root", "")
	a := root.AddChild(KindGroup, "a")
	a.AddChild(KindTest, "t1")
	a.AddChild(KindTest, "t2")

	if got := root.CountItems(); got != 4 {
		t.Errorf("CountItems() = %d, want 4", got)
	}
}

package discovery

import "github.com/testlens/core/pkg/domain"

// BuildTree assembles a correlation-target tree from parsed files. The root
// carries no label; each file becomes a "file:" node labeled with its
// relative path, suites become "group:" nodes, and tests become "test:"
// nodes with compound "::"-joined identifiers. Identical source always
// yields identical identifiers.
func BuildTree(files []*File) *domain.TreeItem {
	root := domain.NewTreeItem(domain.KindGroup, "root", "")

	for _, file := range files {
		item := domain.NewTreeItem(domain.KindFile, file.Path, file.Path)
		root.Items = append(root.Items, item)

		for _, spec := range file.Specs {
			item.AddChild(domain.KindTest, spec.Title)
		}
		for _, group := range file.Groups {
			addGroup(item, group)
		}
	}

	return root
}

func addGroup(parent *domain.TreeItem, group *Group) {
	item := parent.AddChild(domain.KindGroup, group.Title)
	for _, spec := range group.Specs {
		item.AddChild(domain.KindTest, spec.Title)
	}
	for _, sub := range group.Groups {
		addGroup(item, sub)
	}
}

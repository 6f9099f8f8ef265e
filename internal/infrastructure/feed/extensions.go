package feed

import (
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

func extensionValue(item *gofeed.Item, prefix, name string) string {
	if v, ok := first(item.Extensions[prefix], name); ok {
		return v.Value
	}
	return ""
}

// media finds a media:<name> element either directly on the entry or
// inside its media:group, which is where YouTube puts them.
func media(item *gofeed.Item, name string) (ext.Extension, bool) {
	byName := item.Extensions["media"]
	if v, ok := first(byName, name); ok {
		return v, true
	}
	for _, group := range byName["group"] {
		if v, ok := first(group.Children, name); ok {
			return v, true
		}
	}
	return ext.Extension{}, false
}

func first(byName map[string][]ext.Extension, name string) (ext.Extension, bool) {
	if len(byName[name]) == 0 {
		return ext.Extension{}, false
	}
	return byName[name][0], true
}

package browser

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Paintersrp/kf/internal/rank"
)

type ListItem struct {
	result rank.Result
}

func (i ListItem) Title() string {
	if i.result.IsDir {
		return i.result.Path + "/"
	}
	return i.result.Path
}

func (i ListItem) Description() string {
	return fmt.Sprintf("%s · score %d", i.result.Kind, i.result.Score)
}

func (i ListItem) FilterValue() string {
	return i.result.Path
}

func (i ListItem) Path() string {
	return i.result.Path
}

func toListItems(results []rank.Result) []list.Item {
	items := make([]list.Item, len(results))
	for idx, r := range results {
		items[idx] = ListItem{result: r}
	}
	return items
}

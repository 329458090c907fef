package component

import (
	"fyne.io/fyne/v2/widget"
)

// SearchBar is the live search entry above the history list.
type SearchBar struct {
	*widget.Entry
	onSearch func(string)
}

// NewSearchBar creates the entry; onSearch fires on every keystroke.
func NewSearchBar(onSearch func(string)) *SearchBar {
	s := &SearchBar{
		Entry:    widget.NewEntry(),
		onSearch: onSearch,
	}
	s.SetPlaceHolder("Search clipboard history...")
	s.OnChanged = func(text string) {
		if s.onSearch != nil {
			s.onSearch(text)
		}
	}
	return s
}

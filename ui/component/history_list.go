package component

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"clipnest/model"
)

const previewLimit = 100

// HistoryList renders clipboard items with per-row favorite and delete
// actions. Selecting a row fires onSelect (copy back to clipboard).
type HistoryList struct {
	*widget.List
	items      []*model.ClipboardItem
	onSelect   func(*model.ClipboardItem)
	onFavorite func(id uint)
	onDelete   func(id uint)
	onOpen     func(*model.ClipboardItem)
}

// NewHistoryList creates the list widget. onOpen is invoked for image rows
// only (preview in the system viewer).
func NewHistoryList(
	items []*model.ClipboardItem,
	onSelect func(*model.ClipboardItem),
	onFavorite func(id uint),
	onDelete func(id uint),
	onOpen func(*model.ClipboardItem),
) *HistoryList {
	l := &HistoryList{
		items:      items,
		onSelect:   onSelect,
		onFavorite: onFavorite,
		onDelete:   onDelete,
		onOpen:     onOpen,
	}

	l.List = widget.NewList(
		func() int { return len(l.items) },
		func() fyne.CanvasObject { return l.newRow() },
		func(i widget.ListItemID, o fyne.CanvasObject) { l.updateRow(i, o) },
	)

	l.OnSelected = func(i widget.ListItemID) {
		if i >= 0 && i < len(l.items) && l.onSelect != nil {
			l.onSelect(l.items[i])
		}
		l.Unselect(i)
	}

	return l
}

// SetItems replaces the backing data and refreshes the widget. Must be
// called on the UI thread (callers wrap with fyne.Do when needed).
func (l *HistoryList) SetItems(items []*model.ClipboardItem) {
	l.items = items
	l.Refresh()
	l.UnselectAll()
}

func (l *HistoryList) newRow() fyne.CanvasObject {
	content := widget.NewLabel("")
	content.Truncation = fyne.TextTruncateEllipsis

	meta := widget.NewLabel("")
	meta.TextStyle = fyne.TextStyle{Italic: true}

	openBtn := widget.NewButtonWithIcon("", theme.VisibilityIcon(), nil)
	openBtn.Importance = widget.LowImportance
	favoriteBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), nil)
	favoriteBtn.Importance = widget.LowImportance
	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	deleteBtn.Importance = widget.LowImportance

	return container.NewBorder(
		nil, nil, nil,
		container.NewHBox(openBtn, favoriteBtn, deleteBtn),
		container.NewVBox(content, meta),
	)
}

func (l *HistoryList) updateRow(i int, o fyne.CanvasObject) {
	if i < 0 || i >= len(l.items) {
		return
	}
	item := l.items[i]

	row := o.(*fyne.Container)
	main := row.Objects[0].(*fyne.Container)
	buttons := row.Objects[1].(*fyne.Container)

	content := main.Objects[0].(*widget.Label)
	meta := main.Objects[1].(*widget.Label)
	openBtn := buttons.Objects[0].(*widget.Button)
	favoriteBtn := buttons.Objects[1].(*widget.Button)
	deleteBtn := buttons.Objects[2].(*widget.Button)

	content.SetText(previewText(item))
	meta.SetText(metaText(item))

	if item.IsFavorite {
		favoriteBtn.SetIcon(theme.ConfirmIcon())
	} else {
		favoriteBtn.SetIcon(theme.ContentAddIcon())
	}

	if item.IsImage() {
		openBtn.Show()
	} else {
		openBtn.Hide()
	}

	id := item.ID
	openBtn.OnTapped = func() {
		if l.onOpen != nil {
			l.onOpen(item)
		}
	}
	favoriteBtn.OnTapped = func() {
		if l.onFavorite != nil {
			l.onFavorite(id)
		}
	}
	deleteBtn.OnTapped = func() {
		if l.onDelete != nil {
			l.onDelete(id)
		}
	}
}

func previewText(item *model.ClipboardItem) string {
	if item.IsImage() {
		return "[image] " + item.Content
	}
	if len(item.Content) > previewLimit {
		return item.Content[:previewLimit] + "..."
	}
	return item.Content
}

func metaText(item *model.ClipboardItem) string {
	text := formatTime(item.Timestamp) + " • " + string(item.ContentType)
	if item.IsFavorite {
		text += " • favorite"
	}
	return text
}

// formatTime renders a compact relative age, falling back to a date for
// anything older than a week.
func formatTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02 15:04")
}

package storage

import "clipnest/model"

// Storage is the persistence contract for clipboard history.
//
// Operations are best-effort: internal failures are logged and reported as a
// false/empty return instead of an error, so a broken disk or database never
// takes the application down. Only Close propagates an error.
type Storage interface {
	// Add inserts a new item. It reports false for empty content, for an
	// exact-content duplicate inside the dedup window, or on a database
	// failure. After a successful insert the history cap is enforced by
	// evicting the oldest non-favorite rows.
	Add(item *model.ClipboardItem) bool

	// History returns items ordered favorites-first, then newest-first.
	// A limit <= 0 means the configured cap.
	History(limit int) []*model.ClipboardItem

	// Search returns items whose content contains keyword, same ordering
	// and bound as History. An empty keyword behaves like History.
	Search(keyword string, limit int) []*model.ClipboardItem

	// ToggleFavorite flips the favorite flag of the given item.
	ToggleFavorite(id uint) bool

	// Delete removes one item and, for images, its saved file.
	Delete(id uint) bool

	// Clear removes history in bulk, optionally preserving favorites.
	Clear(keepFavorites bool) bool

	// Stats returns aggregate counts for the status line.
	Stats() model.Stats

	// ImageDir is the directory captured images are written under.
	ImageDir() string

	// Close releases the underlying connection.
	Close() error
}

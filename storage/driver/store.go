// Package driver implements the GORM-backed history store. SQLite and MySQL
// share one implementation; only the dialector differs.
package driver

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clipnest/model"
)

// dedupWindow is how long an exact content match counts as a duplicate.
const dedupWindow = time.Minute

// Store is the shared GORM implementation of storage.Storage.
type Store struct {
	db       *gorm.DB
	maxItems int
	imageDir string
}

func newStore(dialector gorm.Dialector, maxItems int, imageDir string) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.ClipboardItem{}); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, err
	}

	return &Store{
		db:       db,
		maxItems: maxItems,
		imageDir: imageDir,
	}, nil
}

// Add inserts an item unless its content is blank or an exact duplicate was
// stored inside the dedup window. The history cap is enforced after insert.
func (s *Store) Add(item *model.ClipboardItem) bool {
	if item == nil || strings.TrimSpace(item.Content) == "" {
		return false
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}

	var dupes int64
	cutoff := item.Timestamp.Add(-dedupWindow)
	err := s.db.Model(&model.ClipboardItem{}).
		Where("content = ? AND timestamp > ?", item.Content, cutoff).
		Count(&dupes).Error
	if err != nil {
		slog.Error("storage: duplicate check failed", "err", err)
		return false
	}
	if dupes > 0 {
		return false
	}

	if err := s.db.Create(item).Error; err != nil {
		slog.Error("storage: insert failed", "err", err)
		return false
	}

	s.enforceLimit()
	return true
}

// enforceLimit deletes the oldest non-favorite rows beyond the cap.
// Favorites never count against the cap and are never evicted.
func (s *Store) enforceLimit() {
	var total int64
	err := s.db.Model(&model.ClipboardItem{}).
		Where("is_favorite = ?", false).
		Count(&total).Error
	if err != nil {
		slog.Error("storage: cap count failed", "err", err)
		return
	}
	if total <= int64(s.maxItems) {
		return
	}

	var victims []model.ClipboardItem
	err = s.db.Where("is_favorite = ?", false).
		Order("timestamp ASC").
		Limit(int(total) - s.maxItems).
		Find(&victims).Error
	if err != nil {
		slog.Error("storage: cap lookup failed", "err", err)
		return
	}

	ids := make([]uint, 0, len(victims))
	for _, v := range victims {
		if v.IsImage() {
			removeImageFile(v.Content)
		}
		ids = append(ids, v.ID)
	}

	if err := s.db.Delete(&model.ClipboardItem{}, ids).Error; err != nil {
		slog.Error("storage: eviction failed", "err", err)
		return
	}
	slog.Debug("storage: evicted old items", "count", len(ids))
}

// History returns items ordered favorites-first, then newest-first.
func (s *Store) History(limit int) []*model.ClipboardItem {
	if limit <= 0 {
		limit = s.maxItems
	}

	var items []*model.ClipboardItem
	err := s.db.Order("is_favorite DESC, timestamp DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		slog.Error("storage: history query failed", "err", err)
		return nil
	}
	return items
}

// Search returns items whose content contains keyword, History ordering.
func (s *Store) Search(keyword string, limit int) []*model.ClipboardItem {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.History(limit)
	}
	if limit <= 0 {
		limit = s.maxItems
	}

	var items []*model.ClipboardItem
	err := s.db.Where("content LIKE ?", "%"+keyword+"%").
		Order("is_favorite DESC, timestamp DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		slog.Error("storage: search failed", "keyword", keyword, "err", err)
		return nil
	}
	return items
}

// ToggleFavorite flips the favorite flag of one item.
func (s *Store) ToggleFavorite(id uint) bool {
	result := s.db.Model(&model.ClipboardItem{}).
		Where("id = ?", id).
		Update("is_favorite", gorm.Expr("NOT is_favorite"))
	if result.Error != nil {
		slog.Error("storage: toggle favorite failed", "id", id, "err", result.Error)
		return false
	}
	return result.RowsAffected > 0
}

// Delete removes one item and, for images, its saved file.
func (s *Store) Delete(id uint) bool {
	var item model.ClipboardItem
	if err := s.db.First(&item, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			slog.Error("storage: delete lookup failed", "id", id, "err", err)
		}
		return false
	}

	if item.IsImage() {
		removeImageFile(item.Content)
	}

	if err := s.db.Delete(&model.ClipboardItem{}, id).Error; err != nil {
		slog.Error("storage: delete failed", "id", id, "err", err)
		return false
	}
	return true
}

// Clear removes history in bulk, optionally preserving favorites.
func (s *Store) Clear(keepFavorites bool) bool {
	// Image files of the doomed rows go first.
	imgQuery := s.db.Where("content_type = ?", model.ContentTypeImage)
	if keepFavorites {
		imgQuery = imgQuery.Where("is_favorite = ?", false)
	}
	var images []model.ClipboardItem
	if err := imgQuery.Find(&images).Error; err == nil {
		for _, img := range images {
			removeImageFile(img.Content)
		}
	}

	del := s.db.Where("1 = 1")
	if keepFavorites {
		del = s.db.Where("is_favorite = ?", false)
	}
	result := del.Delete(&model.ClipboardItem{})
	if result.Error != nil {
		slog.Error("storage: clear failed", "err", result.Error)
		return false
	}
	slog.Info("storage: history cleared", "removed", result.RowsAffected, "kept_favorites", keepFavorites)
	return true
}

// Stats returns aggregate counts.
func (s *Store) Stats() model.Stats {
	stats := model.Stats{HistoryLimit: s.maxItems}
	if err := s.db.Model(&model.ClipboardItem{}).Count(&stats.TotalItems).Error; err != nil {
		slog.Error("storage: stats failed", "err", err)
		return stats
	}
	if err := s.db.Model(&model.ClipboardItem{}).
		Where("is_favorite = ?", true).
		Count(&stats.FavoriteItems).Error; err != nil {
		slog.Error("storage: stats failed", "err", err)
	}
	return stats
}

// ImageDir is where captured images are written.
func (s *Store) ImageDir() string { return s.imageDir }

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func removeImageFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("storage: could not remove image file", "path", path, "err", err)
	}
}

package storage

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"dataset-cutter/internal/types"
)

// UndoCap bounds the undo stack to the most recent entries. Pushing past the
// cap silently forgets the oldest entry without touching its file on disk.
const UndoCap = 10

// undoMu makes the read-modify-write around push/pop a critical section so
// concurrent requests cannot lose an entry.
var undoMu sync.Mutex

// PushUndo appends a produced clip path and trims the stack to UndoCap.
func PushUndo(path string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	undoMu.Lock()
	defer undoMu.Unlock()

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&types.UndoEntry{Path: path}).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&types.UndoEntry{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= UndoCap {
			return nil
		}

		// Drop the oldest rows beyond the cap; the files stay on disk.
		var cutoff types.UndoEntry
		if err := tx.Order("id desc").Offset(UndoCap - 1).First(&cutoff).Error; err != nil {
			return err
		}
		return tx.Where("id < ?", cutoff.Id).Delete(&types.UndoEntry{}).Error
	})
}

// PopUndo removes and returns the most recently pushed path. It does not
// delete the referenced file; that is the caller's job. Returns ("", nil)
// when the stack is empty.
func PopUndo() (string, error) {
	if DB == nil {
		return "", errors.New("database not initialized")
	}
	undoMu.Lock()
	defer undoMu.Unlock()

	var entry types.UndoEntry
	err := DB.Order("id desc").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err = DB.Delete(&types.UndoEntry{}, entry.Id).Error; err != nil {
		return "", err
	}
	return entry.Path, nil
}

// UndoDepth returns how many entries are currently retrievable.
func UndoDepth() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	var count int64
	err := DB.Model(&types.UndoEntry{}).Count(&count).Error
	return count, err
}

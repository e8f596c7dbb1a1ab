package types

import "time"

// UndoEntry is one produced clip remembered by the bounded undo stack.
// Rows are ordered by Id; only the newest undoCap rows are retained.
type UndoEntry struct {
	Id         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Path       string    `gorm:"type:text;not null" json:"path"`
	CreateTime time.Time `gorm:"autoCreateTime" json:"create_time"`
}

func (UndoEntry) TableName() string {
	return "undo_entries"
}

// ExportRecord is the durable history row written after a successful export.
type ExportRecord struct {
	Id         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SourceFile string    `gorm:"type:text" json:"source_file"`
	Label      string    `gorm:"index" json:"label"`
	Mode       string    `json:"mode"`
	StartMs    int64     `json:"start_ms"`
	EndMs      int64     `json:"end_ms"`
	OutputPath string    `gorm:"type:text" json:"output_path"`
	CreateTime time.Time `gorm:"autoCreateTime;index" json:"create_time"`
}

func (ExportRecord) TableName() string {
	return "export_records"
}

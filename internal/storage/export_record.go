package storage

import (
	"errors"

	"dataset-cutter/internal/types"
)

func SaveExportRecord(record *types.ExportRecord) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Create(record).Error
}

func GetExportHistory(limit int) ([]types.ExportRecord, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var records []types.ExportRecord
	if err := DB.Order("create_time desc, id desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

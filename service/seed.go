package service

import (
	"context"
	"time"

	"genset/models"
)

// SeedResult 示例数据写入结果
type SeedResult struct {
	Gensets   int `json:"gensets"`
	Histories int `json:"histories"`
}

var seedGensets = []string{
	"Genset A - 100 KVA",
	"Genset B - 150 KVA",
	"Genset C - 200 KVA",
}

var seedHistories = []struct {
	date        string
	description string
	notes       string
	genset      int
}{
	{"2024-01-15", "Perawatan rutin bulanan", "Penggantian oli filter, pemeriksaan sistem pendingin", 0},
	{"2024-01-20", "Pemeliharaan sistem bahan bakar", "Pembersihan tangki dan filter bahan bakar", 1},
	{"2024-02-01", "Test load bank", "Testing kapasitas maksimal genset", 2},
	{"2024-02-10", "Perbaikan sistem starter", "Penggantian aki dan perbaikan relay starter", 0},
	{"2024-02-15", "Inspeksi tahunan", "Pemeriksaan lengkap semua komponen genset", 1},
}

// Seed 写入示例机组与维护记录；机组按名称去重，记录仅在表为空时写入
func Seed(ctx context.Context, s Store) (SeedResult, error) {
	var result SeedResult

	gensets := make([]models.Genset, 0, len(seedGensets))
	for _, name := range seedGensets {
		g, created, err := s.FindOrCreateGenset(ctx, name)
		if err != nil {
			return result, err
		}
		if created {
			result.Gensets++
		}
		gensets = append(gensets, g)
	}

	count, err := s.CountHistories(ctx)
	if err != nil {
		return result, err
	}
	if count > 0 {
		return result, nil
	}

	list := make([]models.History, 0, len(seedHistories))
	for _, item := range seedHistories {
		date, err := time.Parse(models.DateLayout, item.date)
		if err != nil {
			return result, err
		}
		list = append(list, models.History{
			Date:        models.NewDate(date),
			Description: item.description,
			Notes:       models.NotesPtr(item.notes),
			GensetID:    gensets[item.genset].ID,
		})
	}
	if err := s.CreateHistories(ctx, list); err != nil {
		return result, err
	}
	result.Histories = len(list)
	return result, nil
}

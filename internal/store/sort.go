package store

import (
	"sort"
	"time"

	"github.com/genaimarketing/api/internal/model"
)

// SortCampaigns orders campaigns in place
func SortCampaigns(list []*model.Campaign, s Sort) {
	sort.SliceStable(list, func(i, j int) bool {
		if s.Field == model.FieldName && list[i].Name != list[j].Name {
			return less(list[i].Name < list[j].Name, s.Desc)
		}
		return lessTime(list[i].CreatedAt, list[j].CreatedAt, list[i].ID, list[j].ID, s.Desc)
	})
}

// SortAssets orders asset sets in place. Asset sets have no name, so they always order by creation time.
func SortAssets(list []*model.AssetSet, s Sort) {
	sort.SliceStable(list, func(i, j int) bool {
		return lessTime(list[i].CreatedAt, list[j].CreatedAt, list[i].ID, list[j].ID, s.Desc)
	})
}

func lessTime(a, b time.Time, idA, idB string, desc bool) bool {
	if a.Equal(b) {
		return less(idA < idB, desc)
	}
	return less(a.Before(b), desc)
}

func less(asc, desc bool) bool {
	if desc {
		return !asc
	}
	return asc
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"sort"
	"strconv"

	"gabysite/internal/model"
)

// Timeline item types
const (
	TimelineTypePhoto = "photo"
	TimelineTypeVideo = "video"
)

// DefaultMonth places items without month granularity in the middle of their
// year so they group correctly without floating to year extremes.
const DefaultMonth = 6

// TimelineItem is a type-erased projection of a photo or video for unified
// chronological display. Key combines the type tag with the source id, so
// photo and video id spaces never collide in a merged list.
type TimelineItem struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	CategoryKey string `json:"categoryKey"`
	Category    string `json:"category"`
}

// TimelineKey builds the composite item key, e.g. "photo-5" or "video-5".
func TimelineKey(itemType string, id int64) string {
	return itemType + "-" + strconv.FormatInt(id, 10)
}

// YearGroup is one year of the timeline, items ordered for display.
type YearGroup struct {
	Year  int            `json:"year"`
	Items []TimelineItem `json:"items"`
}

func monthOrDefault(month int) int {
	if month == 0 {
		return DefaultMonth
	}
	return month
}

// PhotoTimelineItem projects a localized photo into the common shape.
func PhotoTimelineItem(p model.LocalizedPhoto) TimelineItem {
	return TimelineItem{
		Key:         TimelineKey(TimelineTypePhoto, p.ID),
		Type:        TimelineTypePhoto,
		ID:          p.ID,
		Title:       p.Title,
		Date:        p.Date,
		Year:        p.Year,
		Month:       monthOrDefault(p.Month),
		Description: p.Alt,
		Thumbnail:   p.Src,
		CategoryKey: p.CategoryKey,
		Category:    p.Category,
	}
}

// VideoTimelineItem projects a localized video into the common shape.
func VideoTimelineItem(v model.LocalizedVideo) TimelineItem {
	return TimelineItem{
		Key:         TimelineKey(TimelineTypeVideo, v.ID),
		Type:        TimelineTypeVideo,
		ID:          v.ID,
		Title:       v.Title,
		Date:        v.Date,
		Year:        v.Year,
		Month:       monthOrDefault(v.Month),
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		CategoryKey: v.CategoryKey,
		Category:    v.Category,
	}
}

// Aggregate merges localized photos and videos into year groups for the
// timeline. Photos precede videos in merge order; the combined sequence is
// filtered by the search+category predicate, then presented with years
// descending and items within a year descending by month. Sorting is stable,
// so month ties keep merge order. Empty inputs yield an empty grouping.
func Aggregate(photos []model.LocalizedPhoto, videos []model.LocalizedVideo, query, categoryKey string) []YearGroup {
	items := make([]TimelineItem, 0, len(photos)+len(videos))
	for _, p := range photos {
		items = append(items, PhotoTimelineItem(p))
	}
	for _, v := range videos {
		items = append(items, VideoTimelineItem(v))
	}

	items = FilterTimeline(items, query, categoryKey)

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Year != items[j].Year {
			return items[i].Year > items[j].Year
		}
		return items[i].Month > items[j].Month
	})

	var groups []YearGroup
	for _, it := range items {
		if n := len(groups); n > 0 && groups[n-1].Year == it.Year {
			groups[n-1].Items = append(groups[n-1].Items, it)
			continue
		}
		groups = append(groups, YearGroup{Year: it.Year, Items: []TimelineItem{it}})
	}
	return groups
}

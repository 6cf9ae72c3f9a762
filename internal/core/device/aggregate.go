// Package device contains the pure aggregation logic for inspected
// devices: grouping by type and status, numeric-range compaction, and
// percentage derivation. No side effects, no persistence.
package device

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/safeprag/internal/models"
)

// Group folds a flat device list into per-type groups, sub-grouped by
// status. Group order follows first occurrence of each type; a device
// with no recorded status groups under the "N/A" sentinel.
func Group(devices []models.Device) []models.DeviceGroup {
	var groups []models.DeviceGroup
	index := make(map[string]int)

	for _, d := range devices {
		i, ok := index[d.Type]
		if !ok {
			i = len(groups)
			index[d.Type] = i
			groups = append(groups, models.DeviceGroup{Type: d.Type})
		}

		g := &groups[i]
		g.Quantity++
		g.List = append(g.List, strconv.Itoa(d.Number))

		status := d.Status
		if status == "" {
			status = models.DeviceStatusNA
		}

		found := false
		for j := range g.Status {
			if g.Status[j].Name == status {
				g.Status[j].Count++
				g.Status[j].Devices = append(g.Status[j].Devices, d.Number)
				found = true
				break
			}
		}
		if !found {
			g.Status = append(g.Status, models.DeviceStatusCount{
				Name:    status,
				Count:   1,
				Devices: []int{d.Number},
			})
		}
	}

	return groups
}

// FormatRanges renders a set of device numbers as comma-separated
// maximal consecutive runs: {1,2,3,5,7,8} -> "1-3, 5, 7-8". A gap of
// any size starts a new run; singletons render bare.
func FormatRanges(numbers []int) string {
	if len(numbers) == 0 {
		return ""
	}

	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)

	var runs []string
	start := sorted[0]
	prev := start

	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i] != prev+1 {
			if start == prev {
				runs = append(runs, strconv.Itoa(start))
			} else {
				runs = append(runs, fmt.Sprintf("%d-%d", start, prev))
			}
			if i < len(sorted) {
				start = sorted[i]
				prev = start
			}
		} else {
			prev = sorted[i]
		}
	}

	return strings.Join(runs, ", ")
}

// Percentage renders a status count as a share of the group quantity,
// to one decimal place.
func Percentage(count, quantity int) string {
	if quantity == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(count)/float64(quantity)*100)
}

// SortedStatus returns the group's status entries sorted by name, the
// ordering used on rendered reports.
func SortedStatus(g models.DeviceGroup) []models.DeviceStatusCount {
	out := make([]models.DeviceStatusCount, len(g.Status))
	copy(out, g.Status)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

package state

import (
	"sort"

	"github.com/kk-code-lab/raider/internal/fs"
)

// Order selects how a listing is sorted. Lower case is ascending, upper
// case descending.
type Order byte

const (
	OrderNameAsc   Order = 'n'
	OrderNameDesc  Order = 'N'
	OrderSizeAsc   Order = 'z'
	OrderSizeDesc  Order = 'Z'
	OrderCtimeAsc  Order = 't'
	OrderCtimeDesc Order = 'T'

	DefaultOrder = OrderNameAsc
)

func (o Order) String() string {
	return string(rune(o))
}

// Valid reports whether o is one of the known orders.
func (o Order) Valid() bool {
	_, ok := comparators[o]
	return ok
}

type lessFunc func(a, b *fs.Entry) bool

var comparators = map[Order]lessFunc{
	OrderNameAsc:  func(a, b *fs.Entry) bool { return a.Name < b.Name },
	OrderNameDesc: func(a, b *fs.Entry) bool { return a.Name > b.Name },
	OrderSizeAsc: func(a, b *fs.Entry) bool {
		if a.Size != b.Size {
			return a.Size < b.Size
		}
		return a.Name < b.Name
	},
	OrderSizeDesc: func(a, b *fs.Entry) bool {
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		return a.Name < b.Name
	},
	OrderCtimeAsc: func(a, b *fs.Entry) bool {
		if !a.Stat.Ctime.Equal(b.Stat.Ctime) {
			return a.Stat.Ctime.Before(b.Stat.Ctime)
		}
		return a.Name < b.Name
	},
	OrderCtimeDesc: func(a, b *fs.Entry) bool {
		if !a.Stat.Ctime.Equal(b.Stat.Ctime) {
			return a.Stat.Ctime.After(b.Stat.Ctime)
		}
		return a.Name < b.Name
	},
}

// SortEntries sorts entries in place. Unknown orders fall back to name.
func SortEntries(entries []fs.Entry, order Order) {
	less, ok := comparators[order]
	if !ok {
		less = comparators[DefaultOrder]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return less(&entries[i], &entries[j])
	})
}

// Package partition splits a scan.SearchBox into contiguous X-axis stripes
// for the worker pool: X-only striping keeps each worker's inner Z/X loop
// cache-local and makes progress accounting additive.
package partition

import "github.com/harlowdev/siftstone/scan"

// Split divides box's X extent into n contiguous, non-overlapping stripes
// covering [XLo, XHi] exactly once. If the span has W columns, the first
// W mod n workers receive ⌈W/n⌉ columns and the rest receive ⌊W/n⌋. n is
// clamped to at least 1 and to at most the column count, since a stripe
// narrower than one column cannot exist.
func Split(box scan.SearchBox, n int) []scan.Stripe {
	w := int64(box.XHi) - int64(box.XLo) + 1
	if n < 1 {
		n = 1
	}
	if int64(n) > w {
		n = int(w)
	}

	base := w / int64(n)
	remainder := int(w % int64(n))

	stripes := make([]scan.Stripe, 0, n)
	x := box.XLo
	for i := 0; i < n; i++ {
		cols := base
		if i < remainder {
			cols++
		}
		if cols == 0 {
			continue
		}
		stripes = append(stripes, scan.Stripe{
			XLo:     x,
			XHi:     x + int32(cols) - 1,
			ZLo:     box.ZLo,
			ZHi:     box.ZHi,
			YLo:     box.YLo,
			YHi:     box.YHi,
			Version: box.Version,
		})
		x += int32(cols)
	}
	return stripes
}

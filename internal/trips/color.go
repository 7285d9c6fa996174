package trips

import (
	"fmt"
	"math"
	"sort"

	"wayfinder/internal/models"
)

// AssignColors colors each inter-visit trip for client rendering. With k
// visits there are k+1 trips, each given an evenly spaced hue: the run
// before the first midtime gets hue 0, the next run the following hue,
// and so on. Samples keep the first color they receive; samples outside
// every partition keep an empty color and fall back to the renderer
// default. The partition matches Segment exactly.
func AssignColors(samples []models.LocationSample, visits []models.Visit) {
	if len(samples) == 0 {
		return
	}

	midtimes := SortedMidtimes(visits)
	n := len(midtimes) + 1
	colors := make([]string, n)
	for i := range colors {
		colors[i] = hsvToRGBString(float64(i)/float64(n), 0.8, 0.8)
	}

	rest := samples
	for i := 0; i <= len(midtimes); i++ {
		var run []models.LocationSample
		if i < len(midtimes) {
			cut := sort.Search(len(rest), func(j int) bool {
				return !rest[j].Time.Before(midtimes[i])
			})
			run = rest[:cut]
			rest = rest[cut:]
		} else {
			run = rest
		}
		for j := range run {
			if run[j].Color == "" {
				run[j].Color = colors[i]
			}
		}
	}
}

// hsvToRGBString converts HSV (all components in [0,1]) to a CSS
// "rgb(r,g,b)" string.
func hsvToRGBString(h, s, v float64) string {
	h = math.Mod(h, 1) * 6
	i := math.Floor(h)
	f := h - i

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}

	return fmt.Sprintf("rgb(%d,%d,%d)",
		int(math.Round(r*255)), int(math.Round(g*255)), int(math.Round(b*255)))
}

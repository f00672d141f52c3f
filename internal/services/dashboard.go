package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"sync"
	"time"
	"water-quality-dashboard/internal/domain"
	"water-quality-dashboard/internal/platform/obs"
	"water-quality-dashboard/internal/ports"

	"golang.org/x/sync/singleflight"
)

var (
	ErrUnknownSheet   = errors.New("unknown sheet")
	ErrDateOutOfRange = errors.New("date index out of range")
)

// Fixed presentation settings for the scatter map.
const (
	MapStyle            = "open-street-map"
	TemperatureColorMin = 15.0
	TemperatureColorMax = 25.0
	FigureTransitionMs  = 500
	NoDateDataMessage   = "No data available for the selected date."
	noDepthDataFormat   = "No data available for depth %s on the selected date."
)

type SheetOption struct {
	Label string
	Value string
}

type SliderMark struct {
	Value int
	Label string
}

type DateSlider struct {
	Min   int
	Max   int
	Marks []SliderMark
}

type DepthSlider struct {
	Min   int
	Max   int
	Value int
	Marks []SliderMark
}

// Figure describes what the map panel should draw.
// When Message is set there is nothing to plot and Points is empty.
type Figure struct {
	Message      string
	Points       []domain.Reading
	Viewport     domain.Viewport
	ColorRange   [2]float64
	MapStyle     string
	TransitionMs int
}

// Dashboard serves the filtered views of the survey workbook.
//
// Workbook contents are loaded from a WorkbookSource, parsed, and stored in a
// ReadingRepository; all queries read from the repository. Concurrent calls of
// the same kind share a single fetch, and a Load never overlaps a Refresh.
type Dashboard struct {
	source ports.WorkbookSource
	decode ports.WorkbookDecoder
	repo   ports.ReadingRepository

	group singleflight.Group
	// Serializes fetch-and-replace so an older snapshot never lands after a newer one.
	loadMu sync.Mutex

	mu         sync.RWMutex
	lastLoaded time.Time
}

func NewDashboard(source ports.WorkbookSource, decode ports.WorkbookDecoder, repo ports.ReadingRepository) *Dashboard {
	return &Dashboard{source: source, decode: decode, repo: repo}
}

// Load fetches the workbook, accepting a cached export, and stores it.
func (d *Dashboard) Load(ctx context.Context) ([]string, error) {
	return d.load(ctx, "load", false)
}

// Refresh re-exports the workbook from its origin, bypassing any export cache.
func (d *Dashboard) Refresh(ctx context.Context) ([]string, error) {
	return d.load(ctx, "refresh", true)
}

// LastLoaded reports when the repository was last replaced; zero if never.
func (d *Dashboard) LastLoaded() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastLoaded
}

// load runs under a context detached from the caller's cancellation: the
// result is shared with every waiter, so one disconnecting client must not
// abort it.
func (d *Dashboard) load(ctx context.Context, key string, fresh bool) ([]string, error) {
	ctx = context.WithoutCancel(ctx)

	v, err, _ := d.group.Do(key, func() (any, error) {
		d.loadMu.Lock()
		defer d.loadMu.Unlock()

		var err error
		defer obs.Time(ctx, "dashboard."+key)(&err)

		var data []byte
		if fs, ok := d.source.(ports.FreshWorkbookSource); ok && fresh {
			data, err = fs.FetchFresh(ctx)
		} else {
			data, err = d.source.Fetch(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("%s workbook: fetch: %w", key, err)
		}

		wb, err := d.decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s workbook: %w", key, err)
		}

		if err = d.repo.ReplaceAll(ctx, wb); err != nil {
			return nil, fmt.Errorf("%s workbook: store: %w", key, err)
		}

		d.mu.Lock()
		d.lastLoaded = time.Now()
		d.mu.Unlock()

		return slices.Clone(wb.Sheets), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]string)), nil
}

// SheetOptions lists one dropdown option per sheet in workbook order.
func (d *Dashboard) SheetOptions(ctx context.Context) ([]SheetOption, error) {
	names, err := d.repo.ListSheets(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheet options: %w", err)
	}

	out := make([]SheetOption, 0, len(names))
	for _, n := range names {
		out = append(out, SheetOption{Label: n, Value: n})
	}
	return out, nil
}

// DateSlider indexes the sheet's distinct dates 0..n-1 with dd/mm labels.
func (d *Dashboard) DateSlider(ctx context.Context, sheet string) (DateSlider, error) {
	readings, err := d.sheetReadings(ctx, sheet)
	if err != nil {
		return DateSlider{}, fmt.Errorf("date slider: %w", err)
	}

	dates := UniqueDates(readings)
	s := DateSlider{Marks: make([]SliderMark, 0, len(dates))}
	if len(dates) > 0 {
		s.Max = len(dates) - 1
	}
	for i, day := range dates {
		s.Marks = append(s.Marks, SliderMark{Value: i, Label: day.Format("02/01")})
	}
	return s, nil
}

// DepthSlider bounds the depth control to the readings taken on the selected date.
// Min and Max are the floor and ceiling of the observed depths; marks are the
// distinct whole-metre depths.
func (d *Dashboard) DepthSlider(ctx context.Context, sheet string, dateIndex int) (DepthSlider, error) {
	readings, err := d.sheetReadings(ctx, sheet)
	if err != nil {
		return DepthSlider{}, fmt.Errorf("depth slider: %w", err)
	}

	day, err := dateAt(readings, dateIndex)
	if err != nil {
		return DepthSlider{}, fmt.Errorf("depth slider: %w", err)
	}

	onDay := ReadingsOn(readings, day)
	s := DepthSlider{Marks: []SliderMark{}}
	if len(onDay) == 0 {
		return s, nil
	}

	lo, hi := onDay[0].DepthM, onDay[0].DepthM
	seen := make(map[int]struct{})
	for _, r := range onDay {
		lo = math.Min(lo, r.DepthM)
		hi = math.Max(hi, r.DepthM)

		mark := int(r.DepthM)
		if _, ok := seen[mark]; ok {
			continue
		}
		seen[mark] = struct{}{}
		s.Marks = append(s.Marks, SliderMark{Value: mark, Label: strconv.Itoa(mark)})
	}
	slices.SortFunc(s.Marks, func(a, b SliderMark) int { return a.Value - b.Value })

	s.Min = int(math.Floor(lo))
	s.Max = int(math.Ceil(hi))
	s.Value = s.Min
	return s, nil
}

// Figure selects the readings to plot for a sheet, date index and depth.
//
// The viewport always frames the whole sheet so the map does not jump while
// the sliders move. Readings are narrowed to the selected date, then to
// within one metre of depth; an empty selection yields a message instead.
func (d *Dashboard) Figure(ctx context.Context, sheet string, dateIndex int, depth float64) (Figure, error) {
	readings, err := d.sheetReadings(ctx, sheet)
	if err != nil {
		return Figure{}, fmt.Errorf("figure: %w", err)
	}

	lats := make([]float64, len(readings))
	lons := make([]float64, len(readings))
	for i, r := range readings {
		lats[i] = r.Position.Lat
		lons[i] = r.Position.Lon
	}
	viewport := EstimateViewport(lats, lons)

	day, err := dateAt(readings, dateIndex)
	if err != nil {
		return Figure{}, fmt.Errorf("figure: %w", err)
	}

	fig := Figure{
		Points:       []domain.Reading{},
		Viewport:     viewport,
		ColorRange:   [2]float64{TemperatureColorMin, TemperatureColorMax},
		MapStyle:     MapStyle,
		TransitionMs: FigureTransitionMs,
	}

	onDay := ReadingsOn(readings, day)
	if len(onDay) == 0 {
		fig.Message = NoDateDataMessage
		return fig, nil
	}

	near := ReadingsNearDepth(onDay, depth)
	if len(near) == 0 {
		fig.Message = fmt.Sprintf(noDepthDataFormat, strconv.FormatFloat(depth, 'f', -1, 64))
		return fig, nil
	}

	fig.Points = near
	return fig, nil
}

func (d *Dashboard) sheetReadings(ctx context.Context, sheet string) ([]domain.Reading, error) {
	names, err := d.repo.ListSheets(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheet)
	}

	return d.repo.ListReadings(ctx, sheet)
}

func dateAt(readings []domain.Reading, index int) (time.Time, error) {
	dates := UniqueDates(readings)
	if index < 0 || index >= len(dates) {
		return time.Time{}, fmt.Errorf("%w: %d of %d", ErrDateOutOfRange, index, len(dates))
	}
	return dates[index], nil
}

// Package region содержит статический справочник регионов северной Индии
// и проверку попадания точки в ограничивающий прямоугольник.
package region

import (
	"fmt"
	"math"
	"strings"

	"github.com/shenikar/fire_monitoring_system/internal/models"
)

// DefaultID - агрегированный регион, используемый по умолчанию
const DefaultID = "all-northern-india"

type Kind string

const (
	KindState     Kind = "state"
	KindCity      Kind = "city"
	KindAggregate Kind = "aggregate"
)

// BoundingBox - прямоугольная область в градусах
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains - включительная проверка границ
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// envelopeBounds совпадает с областью, которую принимает загрузка
var envelopeBounds = BoundingBox{
	MinLat: models.EnvelopeMinLat, MaxLat: models.EnvelopeMaxLat,
	MinLon: models.EnvelopeMinLon, MaxLon: models.EnvelopeMaxLon,
}

type Region struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Bounds BoundingBox `json:"bounds"`
	Kind   Kind        `json:"kind"`
}

func (r Region) IsAggregate() bool {
	return r.Kind == KindAggregate
}

// QueryBounds - прямоугольник для выборки из хранилища. Bounds агрегированного
// региона справочный, выборка по нему идёт по всей поддерживаемой области.
func (r Region) QueryBounds() BoundingBox {
	if r.IsAggregate() {
		return envelopeBounds
	}
	return r.Bounds
}

// Порядок важен: StateFor возвращает первый подходящий штат
var defaultTable = []Region{
	{ID: "punjab", Label: "Punjab", Kind: KindState, Bounds: BoundingBox{MinLat: 29.5, MaxLat: 32.5, MinLon: 73.5, MaxLon: 76.5}},
	{ID: "haryana", Label: "Haryana", Kind: KindState, Bounds: BoundingBox{MinLat: 27.5, MaxLat: 30.9, MinLon: 74.0, MaxLon: 77.5}},
	{ID: "uttar-pradesh", Label: "Uttar Pradesh", Kind: KindState, Bounds: BoundingBox{MinLat: 23.8, MaxLat: 30.4, MinLon: 77.0, MaxLon: 84.6}},
	{ID: "delhi", Label: "Delhi NCR", Kind: KindState, Bounds: BoundingBox{MinLat: 28.4, MaxLat: 28.9, MinLon: 76.8, MaxLon: 77.3}},
	{ID: "rajasthan", Label: "Rajasthan", Kind: KindState, Bounds: BoundingBox{MinLat: 23.0, MaxLat: 30.2, MinLon: 69.5, MaxLon: 78.3}},
	{ID: "himachal-pradesh", Label: "Himachal Pradesh", Kind: KindState, Bounds: BoundingBox{MinLat: 30.2, MaxLat: 33.2, MinLon: 75.5, MaxLon: 79.0}},
	{ID: "uttarakhand", Label: "Uttarakhand", Kind: KindState, Bounds: BoundingBox{MinLat: 28.4, MaxLat: 31.5, MinLon: 77.5, MaxLon: 81.1}},
	{ID: "chandigarh", Label: "Chandigarh Area", Kind: KindCity, Bounds: BoundingBox{MinLat: 30.6, MaxLat: 30.8, MinLon: 76.6, MaxLon: 76.9}},
	{ID: "amritsar", Label: "Amritsar Area", Kind: KindCity, Bounds: BoundingBox{MinLat: 31.5, MaxLat: 31.8, MinLon: 74.7, MaxLon: 75.0}},
	{ID: "ludhiana", Label: "Ludhiana Area", Kind: KindCity, Bounds: BoundingBox{MinLat: 30.8, MaxLat: 31.0, MinLon: 75.7, MaxLon: 76.0}},
	{ID: "gurgaon", Label: "Gurgaon Area", Kind: KindCity, Bounds: BoundingBox{MinLat: 28.3, MaxLat: 28.6, MinLon: 76.8, MaxLon: 77.2}},
}

// Resolver - неизменяемый справочник регионов. Безопасен для конкурентного чтения.
type Resolver struct {
	byID    map[string]Region
	ordered []Region
}

// NewResolver создаёт справочник со встроенной таблицей
func NewResolver() *Resolver {
	return NewResolverFromTable(defaultTable)
}

// NewResolverFromTable строит справочник из таблицы и добавляет агрегированный
// регион как объединение всех прямоугольников
func NewResolverFromTable(table []Region) *Resolver {
	aggregate := Region{
		ID:    DefaultID,
		Label: "All of Northern India",
		Kind:  KindAggregate,
		Bounds: BoundingBox{
			MinLat: math.Inf(1), MaxLat: math.Inf(-1),
			MinLon: math.Inf(1), MaxLon: math.Inf(-1),
		},
	}
	r := &Resolver{byID: make(map[string]Region, len(table)+1)}
	for _, reg := range table {
		aggregate.Bounds.MinLat = math.Min(aggregate.Bounds.MinLat, reg.Bounds.MinLat)
		aggregate.Bounds.MaxLat = math.Max(aggregate.Bounds.MaxLat, reg.Bounds.MaxLat)
		aggregate.Bounds.MinLon = math.Min(aggregate.Bounds.MinLon, reg.Bounds.MinLon)
		aggregate.Bounds.MaxLon = math.Max(aggregate.Bounds.MaxLon, reg.Bounds.MaxLon)
	}
	r.byID[aggregate.ID] = aggregate
	r.ordered = append(r.ordered, aggregate)
	for _, reg := range table {
		r.byID[reg.ID] = reg
		r.ordered = append(r.ordered, reg)
	}
	return r
}

// Resolve возвращает регион по идентификатору. Пустой идентификатор означает регион по умолчанию.
func (r *Resolver) Resolve(id string) (Region, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		id = DefaultID
	}
	reg, ok := r.byID[id]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", models.ErrUnknownRegion, id)
	}
	return reg, nil
}

// Contains проверяет попадание точки в регион. Агрегированный регион содержит всё.
func (r *Resolver) Contains(reg Region, lat, lon float64) bool {
	if reg.IsAggregate() {
		return true
	}
	return reg.Bounds.Contains(lat, lon)
}

func (r *Resolver) Default() Region {
	return r.byID[DefaultID]
}

// List возвращает регионы в порядке таблицы, агрегированный первым
func (r *Resolver) List() []Region {
	out := make([]Region, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// StateFor возвращает первый штат, содержащий точку, или пустую строку
func (r *Resolver) StateFor(lat, lon float64) string {
	for _, reg := range r.ordered {
		if reg.Kind == KindState && reg.Bounds.Contains(lat, lon) {
			return reg.ID
		}
	}
	return ""
}

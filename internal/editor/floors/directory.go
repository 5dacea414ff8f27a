package floors

import (
	"sort"

	"map-editor/internal/editor/models"
)

// ============================================================
// Floor Directory
// ============================================================

// Directory хранит этажи по номеру. Номера произвольные вещественные
// (1, 1.5, -1); порядок обхода всегда по возрастанию номера.
type Directory map[float64]*models.Floor

func New() Directory {
	return make(Directory)
}

// Get возвращает этаж или nil, если его нет.
func (d Directory) Get(n float64) *models.Floor {
	return d[n]
}

// Ensure возвращает этаж, создавая пустой при отсутствии.
func (d Directory) Ensure(n float64) *models.Floor {
	f, ok := d[n]
	if !ok || f == nil {
		f = &models.Floor{}
		d[n] = f
	}
	return f
}

// DeleteIfEmpty удаляет этаж, в котором не осталось объектов.
func (d Directory) DeleteIfEmpty(n float64) bool {
	f, ok := d[n]
	if !ok {
		return false
	}
	if !f.IsEmpty() {
		return false
	}
	delete(d, n)
	return true
}

// Numbers возвращает номера существующих этажей по возрастанию.
func (d Directory) Numbers() []float64 {
	numbers := make([]float64, 0, len(d))
	for n := range d {
		numbers = append(numbers, n)
	}
	sort.Float64s(numbers)
	return numbers
}

// Resolve находит этаж, отстоящий от n на steps позиций в отсортированном
// множестве {существующие этажи} ∪ {n}. Смещение считается по рангу, а не
// арифметически: этажи 1 и 1.5 соседние.
func (d Directory) Resolve(n float64, steps int) (float64, bool) {
	numbers := d.Numbers()
	rank := sort.SearchFloat64s(numbers, n)
	if rank == len(numbers) || numbers[rank] != n {
		numbers = append(numbers, 0)
		copy(numbers[rank+1:], numbers[rank:])
		numbers[rank] = n
	}

	target := rank + steps
	if target < 0 || target >= len(numbers) {
		return 0, false
	}
	return numbers[target], true
}

// Clone делает глубокую копию каталога.
func (d Directory) Clone() Directory {
	out := make(Directory, len(d))
	for n, f := range d {
		out[n] = f.Clone()
	}
	return out
}

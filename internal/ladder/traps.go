package ladder

import (
	crand "crypto/rand"
	"encoding/binary"
	"sort"
	"time"
)

const (
	lcgMul     = 1103515245
	lcgInc     = 12345
	lcgMod     = 0x7fffffff
	rowMixMul  = 2654435761
	maxLCGIter = 1024
)

// Traps - отсортированный набор колонок-ловушек одного ряда
type Traps []int

// Has сообщает, является ли колонка ловушкой
func (t Traps) Has(col int) bool {
	for _, c := range t {
		if c == col {
			return true
		}
	}
	return false
}

// TrapColumns детерминированно выбирает want различных колонок из pads
// по ЛКГ, засеянному seed XOR hash(row). Одинаковые (seed, row) всегда дают
// один и тот же набор. Шаг ЛКГ считается точно в uint64 (lcgMul*x < 2^63),
// поэтому раскладки не совпадают с float-вариантом, теряющим биты после 2^53.
func TrapColumns(seed uint32, row, pads, want int) Traps {
	if want > pads-1 {
		want = pads - 1
	}
	if want <= 0 || pads <= 0 {
		return Traps{}
	}

	x := uint64(seed ^ uint32(uint64(row+1)*rowMixMul))
	picked := make(map[int]struct{}, want)
	for i := 0; len(picked) < want && i < maxLCGIter; i++ {
		x = (lcgMul*x + lcgInc) % lcgMod
		picked[int(x%uint64(pads))] = struct{}{}
	}
	// Генератор может зациклиться на малом числе остатков -
	// добираем свободные колонки слева направо
	for col := 0; len(picked) < want && col < pads; col++ {
		picked[col] = struct{}{}
	}

	out := make(Traps, 0, len(picked))
	for col := range picked {
		out = append(out, col)
	}
	sort.Ints(out)
	return out
}

// SeedSource выдаёт новый сид раунда
type SeedSource func() uint32

// NewRunSeed смешивает текущее время и криптослучайное число
func NewRunSeed() uint32 {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint32(time.Now().UnixNano())
	}
	return uint32(time.Now().UnixMilli()) ^ binary.LittleEndian.Uint32(b[:])
}

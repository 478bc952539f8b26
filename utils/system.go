package utils

import (
	"fmt"
	"math"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// FirstNonFinite returns the flat index of the first NaN or Inf, or -1
func FirstNonFinite(A any) int {
	var data []float64
	switch v := A.(type) {
	case float64:
		data = []float64{v}
	case []float64:
		data = v
	case Matrix:
		data = v.Data()
	case Vector:
		data = v.Data()
	default:
		panic(fmt.Errorf("unsupported type %T", A))
	}
	for i, f := range data {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i
		}
	}
	return -1
}

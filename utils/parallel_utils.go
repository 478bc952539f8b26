package utils

import (
	"runtime"
	"sync"
)

// PartitionMap splits MaxIndex cells into ParallelDegree contiguous buckets
type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// ParallelDegree picks the number of go routines for Kmax cells. A ProcLimit of zero
// means one per CPU, and a degree larger than the cell count falls back to serial.
func ParallelDegree(ProcLimit, Kmax int) (NP int) {
	if ProcLimit > 0 {
		NP = ProcLimit
	} else {
		NP = runtime.NumCPU()
	}
	if NP > Kmax {
		NP = 1
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// Splits one dimension into ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// Each runs f over every bucket range [kMin, kMax). Buckets run concurrently when there
// is more than one, the caller must keep writes inside its own range.
func (pm *PartitionMap) Each(f func(bn, kMin, kMax int)) {
	if pm.ParallelDegree == 1 {
		f(0, pm.Partitions[0][0], pm.Partitions[0][1])
		return
	}
	var wg sync.WaitGroup
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			f(np, kMin, kMax)
		}(np)
	}
	wg.Wait()
}

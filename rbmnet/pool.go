package rbm

import (
	"sync"
)

var (
	scratchLock sync.Mutex
	scratchPool = make(map[int]*sync.Pool)
)

// borrowScratch returns a zeroed []float32 of length n.
func borrowScratch(n int) []float32 {
	scratchLock.Lock()
	p, ok := scratchPool[n]
	scratchLock.Unlock()
	if ok {
		retVal := p.Get().([]float32)
		for i := range retVal {
			retVal[i] = 0
		}
		return retVal
	}
	return make([]float32, n)
}

// returnScratch gives a slice obtained from borrowScratch back to the pool.
func returnScratch(s []float32) {
	n := len(s)
	scratchLock.Lock()
	p, ok := scratchPool[n]
	if !ok {
		p = &sync.Pool{
			New: func() interface{} {
				return make([]float32, n)
			},
		}
		scratchPool[n] = p
	}
	scratchLock.Unlock()
	p.Put(s)
}

package mining

import (
	"container/list"
	"sync"
	"time"
)

// SolveClock keeps the last Size block times.
type SolveClock struct {
	*list.List
	sync.Mutex
	Size int
}

func NewSolveClock(size int) *SolveClock {
	if size < 1 {
		size = 1
	}
	return &SolveClock{
		List: list.New(),
		Size: size,
	}
}

// Push records d and drops the oldest entries beyond Size.
func (sc *SolveClock) Push(d time.Duration) {
	sc.Lock()
	defer sc.Unlock()
	sc.PushBack(d)
	for sc.List.Len() > sc.Size {
		sc.Remove(sc.Front())
	}
}

func (sc *SolveClock) Len() int {
	sc.Lock()
	defer sc.Unlock()
	return sc.List.Len()
}

// Average returns the mean of the recorded durations, 0 if there are none.
func (sc *SolveClock) Average() time.Duration {
	sc.Lock()
	defer sc.Unlock()
	if sc.List.Len() == 0 {
		return 0
	}
	var total time.Duration
	for e := sc.Front(); e != nil; e = e.Next() {
		total += e.Value.(time.Duration)
	}
	return total / time.Duration(sc.List.Len())
}

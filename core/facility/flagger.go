package facility

import (
	"math/rand"
	"sync"

	"github.com/trezcool/edudash/core/school"
)

// Flagger decides which facilities a school is shown with.
type Flagger interface {
	Flags(s school.School) Flags
}

// RandomFlagger draws every flag independently; a school has water 85% of the time,
// power 90%, internet 75%, a library 80% and a sick bay 65%.
// A school keeps its first draw for the lifetime of the flagger.
type RandomFlagger struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	drawn map[string]Flags // by school ID
}

func NewRandomFlagger(seed int64) *RandomFlagger {
	return &RandomFlagger{
		rnd:   rand.New(rand.NewSource(seed)),
		drawn: make(map[string]Flags),
	}
}

func (rf *RandomFlagger) Flags(s school.School) Flags {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if flags, ok := rf.drawn[s.ID]; ok {
		return flags
	}
	flags := Flags{
		Water:    rf.rnd.Float64() > .15,
		Power:    rf.rnd.Float64() > .10,
		Internet: rf.rnd.Float64() > .25,
		Library:  rf.rnd.Float64() > .20,
		SickBay:  rf.rnd.Float64() > .35,
	}
	rf.drawn[s.ID] = flags
	return flags
}

// RecordedFlagger uses the flags stored on the school.
type RecordedFlagger struct{}

func (RecordedFlagger) Flags(s school.School) Flags {
	return Flags{
		Water:    s.HasWater,
		Power:    s.HasPower,
		Internet: s.HasInternet,
		Library:  s.HasLibrary,
		SickBay:  s.HasSickBay,
	}
}

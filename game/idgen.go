package game

import (
	"math/rand"
	"strings"
	"sync"
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const roomCodeLength = 6

// Idgen hands out room codes that are unique among the rooms currently
// alive. Dispose returns a code to the pool once its room is gone.
type Idgen struct {
	ids    map[string]struct{}
	locker sync.Mutex
}

func NewIdgen() *Idgen {
	return &Idgen{ids: make(map[string]struct{})}
}

func (idgen *Idgen) Generate() string {
	idgen.locker.Lock()
	defer idgen.locker.Unlock()

	for {
		var sb strings.Builder
		sb.Grow(roomCodeLength)
		for i := 0; i < roomCodeLength; i++ {
			sb.WriteByte(roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))])
		}
		id := sb.String()

		if _, taken := idgen.ids[id]; !taken {
			idgen.ids[id] = struct{}{}
			return id
		}
	}
}

func (idgen *Idgen) Dispose(id string) {
	idgen.locker.Lock()
	defer idgen.locker.Unlock()
	delete(idgen.ids, id)
}

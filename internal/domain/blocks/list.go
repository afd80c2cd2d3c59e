package blocks

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// List is the ordered block array of one page. Position is authoritative:
// every mutation rewrites Order as index+1.
type List struct {
	blocks []Block
	now    func() time.Time
}

// NewList copies bs, stable-sorts it by stored order and renumbers. Blocks
// without an id get "<type>-<position>", so the same stored array always
// yields the same ids.
func NewList(bs []Block) *List {
	cp := make([]Block, len(bs))
	copy(cp, bs)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Order < cp[j].Order })
	l := &List{blocks: cp, now: time.Now}
	l.renumber()
	for i := range l.blocks {
		if l.blocks[i].ID == "" {
			l.blocks[i].ID = l.positionID(i)
		}
	}
	return l
}

// Blocks returns a copy of the blocks in order.
func (l *List) Blocks() []Block {
	out := make([]Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}

func (l *List) Len() int { return len(l.blocks) }

func (l *List) IndexOf(id string) int {
	for i := range l.blocks {
		if l.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *List) Get(id string) (Block, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return l.blocks[i], true
}

// Add appends a block of type t with default data.
func (l *List) Add(t Type) (Block, error) {
	if !t.Known() {
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	data, err := DefaultData(t)
	if err != nil {
		return Block{}, err
	}
	b := Block{ID: l.newID(t), Type: t, Data: data}
	l.blocks = append(l.blocks, b)
	l.renumber()
	return l.blocks[len(l.blocks)-1], nil
}

// Update replaces the data of block id. The data must match the block's type.
func (l *List) Update(id string, data Data) error {
	i := l.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	if data == nil || data.BlockType() != l.blocks[i].Type {
		return ErrTypeMismatch
	}
	l.blocks[i].Data = data
	l.renumber()
	return nil
}

func (l *List) SetPersonalization(id string, p *Personalization) error {
	i := l.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	l.blocks[i].Personalization = p
	return nil
}

func (l *List) Delete(id string) error {
	i := l.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	l.blocks = append(l.blocks[:i], l.blocks[i+1:]...)
	l.renumber()
	return nil
}

// MoveUp swaps the block at index i with its predecessor. Moving the first
// block up is a no-op.
func (l *List) MoveUp(i int) error {
	if i < 0 || i >= len(l.blocks) {
		return ErrOutOfRange
	}
	if i > 0 {
		l.blocks[i-1], l.blocks[i] = l.blocks[i], l.blocks[i-1]
		l.renumber()
	}
	return nil
}

// MoveDown swaps the block at index i with its successor. Moving the last
// block down is a no-op.
func (l *List) MoveDown(i int) error {
	if i < 0 || i >= len(l.blocks) {
		return ErrOutOfRange
	}
	if i < len(l.blocks)-1 {
		l.blocks[i], l.blocks[i+1] = l.blocks[i+1], l.blocks[i]
		l.renumber()
	}
	return nil
}

func (l *List) renumber() {
	for i := range l.blocks {
		l.blocks[i].Order = i + 1
	}
}

func (l *List) positionID(i int) string {
	base := string(l.blocks[i].Type) + "-" + strconv.Itoa(i+1)
	id := base
	for n := 2; l.IndexOf(id) >= 0; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func (l *List) newID(t Type) string {
	base := string(t) + "-" + strconv.FormatInt(l.now().UnixMilli(), 10)
	id := base
	for n := 2; l.IndexOf(id) >= 0; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

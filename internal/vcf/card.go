package vcf

import (
	"github.com/emersion/go-vcard"
)

// Card is an owned handle to a parsed or constructed vCard.
type Card struct {
	id       uint64
	data     vcard.Card
	owner    *Adapter
	released bool
}

// Release returns the handle to its adapter. Calling it again is a no-op.
func (c *Card) Release() {
	if c == nil || c.released {
		return
	}
	c.released = true
	c.data = nil
	if c.owner != nil {
		c.owner.forget(c.id)
	}
}

// Released reports whether Release has been called.
func (c *Card) Released() bool {
	return c == nil || c.released
}

// Adapter issues Card handles and forwards operations to a Codec.
type Adapter struct {
	codec  Codec
	live   map[uint64]struct{}
	nextID uint64
}

// New returns an adapter over codec. A nil codec selects the go-vcard codec.
func New(codec Codec) *Adapter {
	if codec == nil {
		codec = NewCodec()
	}
	return &Adapter{codec: codec, live: make(map[uint64]struct{})}
}

// Live returns the number of handles issued and not yet released.
func (a *Adapter) Live() int {
	return len(a.live)
}

func (a *Adapter) issue(data vcard.Card) *Card {
	a.nextID++
	a.live[a.nextID] = struct{}{}
	return &Card{id: a.nextID, data: data, owner: a}
}

func (a *Adapter) forget(id uint64) {
	delete(a.live, id)
}

// Release releases c. It is equivalent to c.Release().
func (a *Adapter) Release(c *Card) {
	c.Release()
}

// Use obtains a handle with open, runs fn with it and releases the handle on
// every exit path, panics included. When open fails fn is not called.
func (a *Adapter) Use(open func() (*Card, error), fn func(*Card) error) error {
	c, err := open()
	if err != nil {
		return err
	}
	defer c.Release()

	return fn(c)
}

package view

import "github.com/vk/tomeview/internal/schema"

// typeCache remembers, per key, the type of the value last written through
// one view. It dies with the view.
type typeCache map[string]*schema.Type

func (c *typeCache) record(key string, t *schema.Type) {
	if *c == nil {
		*c = make(typeCache)
	}
	(*c)[key] = t
}

func (c typeCache) lookup(key string) (*schema.Type, bool) {
	t, ok := c[key]
	return t, ok
}

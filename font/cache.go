package font

// CacheStats reports outline cache activity for one handle.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Purges  uint64
	Entries int
}

// outlineCache memoizes resolved drawings for exactly one variation
// location. Partition 0 holds flat outlines, partition 1 color layer lists;
// a glyph may live in both with different shapes.
//
// Entries are never mutated once stored. A location change replaces both
// partitions wholesale.
type outlineCache struct {
	loc   Location
	parts [2]map[GlyphID]*Drawing
	stats CacheStats
}

func newOutlineCache() outlineCache {
	return outlineCache{parts: [2]map[GlyphID]*Drawing{{}, {}}}
}

func partition(colorLayers bool) int {
	if colorLayers {
		return 1
	}
	return 0
}

// sync makes loc the current location, purging both partitions if it
// differs by value from the recorded one. It reports whether a purge
// happened.
func (c *outlineCache) sync(loc Location) bool {
	if c.loc.Equal(loc) {
		return false
	}
	c.loc = loc.Clone()
	c.parts = [2]map[GlyphID]*Drawing{{}, {}}
	c.stats.Purges++
	return true
}

func (c *outlineCache) get(gid GlyphID, colorLayers bool) (*Drawing, bool) {
	d, ok := c.parts[partition(colorLayers)][gid]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return d, ok
}

func (c *outlineCache) put(gid GlyphID, colorLayers bool, d *Drawing) {
	c.parts[partition(colorLayers)][gid] = d
}

func (c *outlineCache) snapshot() CacheStats {
	s := c.stats
	s.Entries = len(c.parts[0]) + len(c.parts[1])
	return s
}

func (c *outlineCache) clear() {
	c.loc = nil
	c.parts = [2]map[GlyphID]*Drawing{}
}

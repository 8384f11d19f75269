package worldmap

// Tile is one cell of the world map.
type Tile struct {
	Type        TileType     // base terrain
	Rivers      DirectionSet // river directions
	Roads       DirectionSet // road directions
	Mountainous bool         // mountain flag (format 2)
	Fixtures    []Fixture    // stored fixtures in insertion order
}

// Map is the authoritative per-tile world representation.
type Map struct {
	rows      int
	cols      int
	version   int
	tiles     []Tile // row-major: index = row*cols + col
	bookmarks map[Point]bool
	players   []Player
	nextID    int
}

// New creates a map of the given size with every tile not visible.
func New(rows, cols, version int) *Map {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Map{
		rows:      rows,
		cols:      cols,
		version:   version,
		tiles:     make([]Tile, rows*cols),
		bookmarks: make(map[Point]bool),
		nextID:    1,
	}
}

// Rows returns the number of rows.
func (m *Map) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Map) Cols() int { return m.cols }

// Dimensions returns (rows, cols).
func (m *Map) Dimensions() (rows, cols int) { return m.rows, m.cols }

// Version returns the map format version.
func (m *Map) Version() int { return m.version }

// Contains returns true if p is within the map.
func (m *Map) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < m.rows && p.Col >= 0 && p.Col < m.cols
}

// At returns a pointer to the tile at p, or nil if out of bounds.
func (m *Map) At(p Point) *Tile {
	if !m.Contains(p) {
		return nil
	}
	return &m.tiles[p.Row*m.cols+p.Col]
}

// BaseTerrain returns the tile type at p.
func (m *Map) BaseTerrain(p Point) TileType {
	if !m.Contains(p) {
		return TileNotVisible
	}
	return m.tiles[p.Row*m.cols+p.Col].Type
}

// SetBaseTerrain sets the tile type at p.
func (m *Map) SetBaseTerrain(p Point, t TileType) {
	if tile := m.At(p); tile != nil {
		tile.Type = t
	}
}

// Rivers returns the river directions at p.
func (m *Map) Rivers(p Point) DirectionSet {
	if !m.Contains(p) {
		return 0
	}
	return m.tiles[p.Row*m.cols+p.Col].Rivers
}

// AddRiver adds a river direction at p.
func (m *Map) AddRiver(p Point, d Direction) {
	if t := m.At(p); t != nil {
		t.Rivers = t.Rivers.With(d)
	}
}

// RemoveRiver removes a river direction at p.
func (m *Map) RemoveRiver(p Point, d Direction) {
	if t := m.At(p); t != nil {
		t.Rivers = t.Rivers.Without(d)
	}
}

// Roads returns the road directions at p.
func (m *Map) Roads(p Point) DirectionSet {
	if !m.Contains(p) {
		return 0
	}
	return m.tiles[p.Row*m.cols+p.Col].Roads
}

// AddRoad adds a road direction at p. Lake is not a road direction and is ignored.
func (m *Map) AddRoad(p Point, d Direction) {
	if d == Lake {
		return
	}
	if t := m.At(p); t != nil {
		t.Roads = t.Roads.With(d)
	}
}

// Mountainous returns the mountain flag at p. Format-1 mountain tiles count too.
func (m *Map) Mountainous(p Point) bool {
	if !m.Contains(p) {
		return false
	}
	t := &m.tiles[p.Row*m.cols+p.Col]
	return t.Mountainous || t.Type == TileMountain
}

// SetMountainous sets the mountain flag at p.
func (m *Map) SetMountainous(p Point, v bool) {
	if t := m.At(p); t != nil {
		t.Mountainous = v
	}
}

// Fixtures returns the fixtures at p in insertion order.
// The returned slice must not be modified.
func (m *Map) Fixtures(p Point) []Fixture {
	if !m.Contains(p) {
		return nil
	}
	return m.tiles[p.Row*m.cols+p.Col].Fixtures
}

// AddFixture appends f to the tile at p.
func (m *Map) AddFixture(p Point, f Fixture) {
	if t := m.At(p); t != nil {
		t.Fixtures = append(t.Fixtures, f)
	}
}

// RemoveFixture removes the fixture with the given ID from p.
// Returns true if one was removed.
func (m *Map) RemoveFixture(p Point, id int) bool {
	t := m.At(p)
	if t == nil {
		return false
	}
	for i, f := range t.Fixtures {
		if f.ID() == id {
			t.Fixtures = append(t.Fixtures[:i:i], t.Fixtures[i+1:]...)
			return true
		}
	}
	return false
}

// Bookmarked returns true if p is bookmarked.
func (m *Map) Bookmarked(p Point) bool {
	return m.bookmarks[p]
}

// SetBookmark adds or removes a bookmark at p.
func (m *Map) SetBookmark(p Point, on bool) {
	if !m.Contains(p) {
		return
	}
	if on {
		m.bookmarks[p] = true
	} else {
		delete(m.bookmarks, p)
	}
}

// BookmarkCount returns the number of bookmarked tiles.
func (m *Map) BookmarkCount() int {
	return len(m.bookmarks)
}

// AddPlayer registers a player. The first player added with Current set
// becomes the current player.
func (m *Map) AddPlayer(p Player) {
	m.players = append(m.players, p)
}

// Players returns all players.
func (m *Map) Players() []Player {
	return m.players
}

// CurrentPlayer returns the current player, or a zero Player if none.
func (m *Map) CurrentPlayer() Player {
	for _, p := range m.players {
		if p.Current {
			return p
		}
	}
	return Player{}
}

// NextID returns a fresh fixture ID.
func (m *Map) NextID() int {
	id := m.nextID
	m.nextID++
	return id
}

// FixtureCount returns the number of stored fixtures on the whole map.
func (m *Map) FixtureCount() int {
	n := 0
	for i := range m.tiles {
		n += len(m.tiles[i].Fixtures)
	}
	return n
}

package worldmap

import "fmt"

// RenderTag classifies a fixture for rendering decisions. The compositor
// dispatches on tags and kinds through lookup tables, never on concrete types.
type RenderTag uint8

const (
	TagOther       RenderTag = iota // animals, misc
	TagTerrainLike                  // forests, hills, ground: can tint the tile
	TagUnit                         // player units
	TagResource                     // mines, deposits, caches
	TagSettlement                   // towns, villages, fortresses
	TagSynthetic                    // manufactured for listings, never stored
)

func (t RenderTag) String() string {
	switch t {
	case TagTerrainLike:
		return "terrain"
	case TagUnit:
		return "unit"
	case TagResource:
		return "resource"
	case TagSettlement:
		return "settlement"
	case TagSynthetic:
		return "synthetic"
	default:
		return "other"
	}
}

// Fixture is anything placeable on a tile.
type Fixture interface {
	ID() int
	// Kind names the concrete fixture type ("forest", "unit", ...).
	Kind() string
	// Image is the icon filename.
	Image() string
	ShortDescription() string
	Tag() RenderTag
}

// Owned is implemented by fixtures that belong to a player.
type Owned interface {
	Owner() Player
}

// Player is a participant in the game.
type Player struct {
	ID      int
	Name    string
	Current bool
}

type fixtureID int

func (id fixtureID) ID() int { return int(id) }

// --- Terrain-like fixtures ---

// Forest is a stand of trees.
type Forest struct {
	fixtureID
	Species string
	Rows    bool // planted in rows
}

func NewForest(id int, species string, rows bool) *Forest {
	return &Forest{fixtureID: fixtureID(id), Species: species, Rows: rows}
}

func (f *Forest) Kind() string   { return "forest" }
func (f *Forest) Image() string  { return "trees.png" }
func (f *Forest) Tag() RenderTag { return TagTerrainLike }
func (f *Forest) ShortDescription() string {
	if f.Rows {
		return fmt.Sprintf("Rows of %s trees", f.Species)
	}
	return fmt.Sprintf("A %s forest", f.Species)
}

// Grove is an orchard or a natural grove.
type Grove struct {
	fixtureID
	Species    string
	Orchard    bool
	Cultivated bool
}

func NewGrove(id int, species string, orchard bool) *Grove {
	return &Grove{fixtureID: fixtureID(id), Species: species, Orchard: orchard, Cultivated: orchard}
}

func (g *Grove) Kind() string   { return "grove" }
func (g *Grove) Image() string  { return "grove.png" }
func (g *Grove) Tag() RenderTag { return TagTerrainLike }
func (g *Grove) ShortDescription() string {
	if g.Orchard {
		return fmt.Sprintf("%s orchard", g.Species)
	}
	return fmt.Sprintf("%s grove", g.Species)
}

// Meadow is a field or wild meadow.
type Meadow struct {
	fixtureID
	Crop  string
	Field bool
}

func NewMeadow(id int, crop string, field bool) *Meadow {
	return &Meadow{fixtureID: fixtureID(id), Crop: crop, Field: field}
}

func (m *Meadow) Kind() string   { return "meadow" }
func (m *Meadow) Image() string  { return "meadow.png" }
func (m *Meadow) Tag() RenderTag { return TagTerrainLike }
func (m *Meadow) ShortDescription() string {
	if m.Field {
		return fmt.Sprintf("%s field", m.Crop)
	}
	return fmt.Sprintf("%s meadow", m.Crop)
}

// Shrub is scattered brush.
type Shrub struct {
	fixtureID
	Species string
}

func NewShrub(id int, species string) *Shrub {
	return &Shrub{fixtureID: fixtureID(id), Species: species}
}

func (s *Shrub) Kind() string             { return "shrub" }
func (s *Shrub) Image() string            { return "shrub.png" }
func (s *Shrub) Tag() RenderTag           { return TagTerrainLike }
func (s *Shrub) ShortDescription() string { return s.Species }

// Hill marks hilly ground.
type Hill struct {
	fixtureID
}

func NewHill(id int) *Hill { return &Hill{fixtureID: fixtureID(id)} }

func (h *Hill) Kind() string             { return "hill" }
func (h *Hill) Image() string            { return "hill.png" }
func (h *Hill) Tag() RenderTag           { return TagTerrainLike }
func (h *Hill) ShortDescription() string { return "Hill" }

// Oasis is a desert water source.
type Oasis struct {
	fixtureID
}

func NewOasis(id int) *Oasis { return &Oasis{fixtureID: fixtureID(id)} }

func (o *Oasis) Kind() string             { return "oasis" }
func (o *Oasis) Image() string            { return "oasis.png" }
func (o *Oasis) Tag() RenderTag           { return TagTerrainLike }
func (o *Oasis) ShortDescription() string { return "Oasis" }

// Ground is the rock underneath a tile, possibly exposed.
type Ground struct {
	fixtureID
	Rock    string
	Exposed bool
}

func NewGround(id int, rock string, exposed bool) *Ground {
	return &Ground{fixtureID: fixtureID(id), Rock: rock, Exposed: exposed}
}

func (g *Ground) Kind() string   { return "ground" }
func (g *Ground) Image() string  { return "expground.png" }
func (g *Ground) Tag() RenderTag { return TagTerrainLike }
func (g *Ground) ShortDescription() string {
	if g.Exposed {
		return fmt.Sprintf("%s, exposed", g.Rock)
	}
	return g.Rock
}

// --- Units ---

// Unit is a player-owned unit.
type Unit struct {
	fixtureID
	owner    Player
	UnitKind string
	Name     string
}

func NewUnit(id int, owner Player, kind, name string) *Unit {
	return &Unit{fixtureID: fixtureID(id), owner: owner, UnitKind: kind, Name: name}
}

func (u *Unit) Kind() string   { return "unit" }
func (u *Unit) Image() string  { return "unit.png" }
func (u *Unit) Tag() RenderTag { return TagUnit }
func (u *Unit) Owner() Player  { return u.owner }
func (u *Unit) ShortDescription() string {
	if u.owner.Current {
		return fmt.Sprintf("%s (%s)", u.Name, u.UnitKind)
	}
	return fmt.Sprintf("%s (%s), owned by %s", u.Name, u.UnitKind, u.owner.Name)
}

// --- Resources ---

// Mine is a worked or abandoned mine.
type Mine struct {
	fixtureID
	Resource string
	Active   bool
}

func NewMine(id int, resource string, active bool) *Mine {
	return &Mine{fixtureID: fixtureID(id), Resource: resource, Active: active}
}

func (m *Mine) Kind() string   { return "mine" }
func (m *Mine) Image() string  { return "mine.png" }
func (m *Mine) Tag() RenderTag { return TagResource }
func (m *Mine) ShortDescription() string {
	if m.Active {
		return fmt.Sprintf("Active %s mine", m.Resource)
	}
	return fmt.Sprintf("Abandoned %s mine", m.Resource)
}

// MineralVein is a vein of ore.
type MineralVein struct {
	fixtureID
	Mineral string
	Exposed bool
}

func NewMineralVein(id int, mineral string, exposed bool) *MineralVein {
	return &MineralVein{fixtureID: fixtureID(id), Mineral: mineral, Exposed: exposed}
}

func (m *MineralVein) Kind() string   { return "mineral" }
func (m *MineralVein) Image() string  { return "mineral.png" }
func (m *MineralVein) Tag() RenderTag { return TagResource }
func (m *MineralVein) ShortDescription() string {
	if m.Exposed {
		return fmt.Sprintf("Exposed vein of %s", m.Mineral)
	}
	return fmt.Sprintf("Vein of %s", m.Mineral)
}

// StoneDeposit is quarryable stone.
type StoneDeposit struct {
	fixtureID
	Stone string
}

func NewStoneDeposit(id int, stone string) *StoneDeposit {
	return &StoneDeposit{fixtureID: fixtureID(id), Stone: stone}
}

func (s *StoneDeposit) Kind() string             { return "stone" }
func (s *StoneDeposit) Image() string            { return "stone.png" }
func (s *StoneDeposit) Tag() RenderTag           { return TagResource }
func (s *StoneDeposit) ShortDescription() string { return fmt.Sprintf("%s deposit", s.Stone) }

// Cache is a stash of goods.
type Cache struct {
	fixtureID
	Contents string
}

func NewCache(id int, contents string) *Cache {
	return &Cache{fixtureID: fixtureID(id), Contents: contents}
}

func (c *Cache) Kind() string             { return "cache" }
func (c *Cache) Image() string            { return "cache.png" }
func (c *Cache) Tag() RenderTag           { return TagResource }
func (c *Cache) ShortDescription() string { return fmt.Sprintf("A cache of %s", c.Contents) }

// --- Settlements ---

// Town is a town, city or fortress, depending on Size.
type Town struct {
	fixtureID
	Name  string
	Size  string // "small", "medium", "large"
	owner Player
	fort  bool
}

func NewTown(id int, name, size string, owner Player) *Town {
	return &Town{fixtureID: fixtureID(id), Name: name, Size: size, owner: owner}
}

func NewFortress(id int, name string, owner Player) *Town {
	return &Town{fixtureID: fixtureID(id), Name: name, Size: "large", owner: owner, fort: true}
}

func (t *Town) Kind() string {
	if t.fort {
		return "fortress"
	}
	return "town"
}

func (t *Town) Image() string {
	if t.fort {
		return "fortress.png"
	}
	return "town.png"
}

func (t *Town) Tag() RenderTag { return TagSettlement }
func (t *Town) Owner() Player  { return t.owner }
func (t *Town) ShortDescription() string {
	return fmt.Sprintf("%s %s %s", t.Size, t.Kind(), t.Name)
}

// Village is an independent settlement.
type Village struct {
	fixtureID
	Name  string
	Race  string
	owner Player
}

func NewVillage(id int, name, race string, owner Player) *Village {
	return &Village{fixtureID: fixtureID(id), Name: name, Race: race, owner: owner}
}

func (v *Village) Kind() string             { return "village" }
func (v *Village) Image() string            { return "village.png" }
func (v *Village) Tag() RenderTag           { return TagSettlement }
func (v *Village) Owner() Player            { return v.owner }
func (v *Village) ShortDescription() string { return fmt.Sprintf("%s village of %s", v.Race, v.Name) }

// --- Other ---

// Animal is a wild or domestic animal population.
type Animal struct {
	fixtureID
	Species  string
	Domestic bool
}

func NewAnimal(id int, species string, domestic bool) *Animal {
	return &Animal{fixtureID: fixtureID(id), Species: species, Domestic: domestic}
}

func (a *Animal) Kind() string   { return "animal" }
func (a *Animal) Image() string  { return "animal.png" }
func (a *Animal) Tag() RenderTag { return TagOther }
func (a *Animal) ShortDescription() string {
	if a.Domestic {
		return fmt.Sprintf("Domesticated %s", a.Species)
	}
	return fmt.Sprintf("Wild %s", a.Species)
}

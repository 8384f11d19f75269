package worldmap

import (
	"fmt"
	"math/rand"
)

// generatorConfig holds tuneable noise and placement parameters.
type generatorConfig struct {
	// Noise layer scales (smaller = broader features).
	ElevationScale  float64
	MoistureScale   float64
	VegetationScale float64

	OceanThreshold    float64 // elevation below this → ocean
	MountainThreshold float64 // elevation above this → mountainous
	HillThreshold     float64 // elevation above this → hill fixture

	ForestThreshold float64 // vegetation above this → forest
	MeadowThreshold float64 // vegetation above this → meadow or shrub

	GroundChance   float64 // chance of a ground fixture on land
	ResourceChance float64 // chance of a resource on land
	AnimalChance   float64

	MinStraightRun int // road tiles before a road may shift
}

var defaultGeneratorConfig = generatorConfig{
	ElevationScale:  0.06,
	MoistureScale:   0.04,
	VegetationScale: 0.09,

	OceanThreshold:    0.30,
	MountainThreshold: 0.74,
	HillThreshold:     0.64,

	ForestThreshold: 0.62,
	MeadowThreshold: 0.52,

	GroundChance:   0.25,
	ResourceChance: 0.03,
	AnimalChance:   0.04,

	MinStraightRun: 6,
}

var (
	forestSpecies = []string{"pine", "oak", "birch", "fir", "maple"}
	jungleSpecies = []string{"teak", "mahogany", "palm"}
	groveSpecies  = []string{"apple", "olive", "peach", "walnut"}
	crops         = []string{"wheat", "barley", "oats", "grass"}
	rocks         = []string{"granite", "limestone", "sandstone", "basalt", "shale"}
	minerals      = []string{"iron", "copper", "tin", "silver", "gold"}
	animals       = []string{"deer", "wolves", "boar", "goats", "horses"}
	townNames     = []string{"Ashford", "Bramble", "Cold Harbour", "Dunmore", "Eastwick", "Fallowmere", "Greyhill", "Hollin"}
	unitKinds     = []string{"explorer", "scouts", "caravan", "militia"}
)

// Generate builds a map from a recipe. The same recipe always yields the same map.
func Generate(r Recipe) (*Map, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(r.Seed)) // #nosec G404 -- deterministic map generation
	cfg := defaultGeneratorConfig

	m := New(r.Rows, r.Cols, r.Version)
	for i, name := range r.Players {
		m.AddPlayer(Player{ID: i + 1, Name: name, Current: i == 0})
	}

	elevation := generateTerrain(m, rng, cfg)
	for i := 0; i < r.Rivers; i++ {
		traceRiver(m, rng, elevation)
	}
	generateRoads(m, rng, r.Roads, cfg.MinStraightRun)
	generateFixtures(m, rng, cfg, elevation)
	generateSettlements(m, rng)
	return m, nil
}

// generateTerrain assigns tile types and mountain flags from elevation and
// moisture noise. Returns the elevation field for river tracing.
func generateTerrain(m *Map, rng *rand.Rand, cfg generatorConfig) []float64 {
	elevSeed := rng.Int63()
	moistSeed := rng.Int63()
	elevation := make([]float64, m.rows*m.cols)

	for row := 0; row < m.rows; row++ {
		// Latitude: 0 at the equator (middle row), 1 at the poles.
		lat := 0.0
		if m.rows > 1 {
			lat = float64(row)/float64(m.rows-1)*2 - 1
			if lat < 0 {
				lat = -lat
			}
		}
		for col := 0; col < m.cols; col++ {
			p := Pt(row, col)
			e := fractalNoise2D(float64(col)*cfg.ElevationScale, float64(row)*cfg.ElevationScale, elevSeed, 3)
			w := valueNoise2D(float64(col)*cfg.MoistureScale, float64(row)*cfg.MoistureScale, moistSeed)
			elevation[row*m.cols+col] = e

			switch {
			case e < cfg.OceanThreshold:
				m.SetBaseTerrain(p, TileOcean)
				continue
			case lat > 0.85:
				m.SetBaseTerrain(p, TileTundra)
			default:
				m.SetBaseTerrain(p, climateTile(m.version, lat, w))
			}

			if e > cfg.MountainThreshold {
				if m.version == 1 {
					m.SetBaseTerrain(p, TileMountain)
				} else {
					m.SetMountainous(p, true)
				}
			}
		}
	}
	return elevation
}

// climateTile picks a land tile type for a latitude/moisture pair.
func climateTile(version int, lat, moisture float64) TileType {
	switch {
	case moisture < 0.25 && lat < 0.5:
		return TileDesert
	case moisture < 0.40:
		if version == 2 {
			return TileSteppe
		}
		return TilePlains
	case moisture > 0.80 && version == 2:
		return TileSwamp
	case moisture > 0.65 && lat < 0.3:
		return TileJungle
	case moisture > 0.55 && version == 1:
		if lat > 0.6 {
			return TileBorealForest
		}
		return TileTemperateForest
	default:
		return TilePlains
	}
}

// traceRiver starts at a random high tile and walks downhill, linking each
// step with river directions, until it reaches the ocean, the map edge or a
// local minimum (which becomes a lake).
func traceRiver(m *Map, rng *rand.Rand, elevation []float64) {
	var start Point
	found := false
	for tries := 0; tries < 50; tries++ {
		p := Pt(rng.Intn(m.rows), rng.Intn(m.cols))
		if elevation[p.Row*m.cols+p.Col] > 0.6 && m.BaseTerrain(p) != TileOcean {
			start, found = p, true
			break
		}
	}
	if !found {
		return
	}

	visited := map[Point]bool{start: true}
	cur := start
	for steps := 0; steps < m.rows+m.cols; steps++ {
		next, ok := lowestNeighbour(m, elevation, cur, visited)
		if !ok {
			m.AddRiver(cur, Lake)
			return
		}
		d, _ := directionBetween(cur, next)
		m.AddRiver(cur, d)
		if m.BaseTerrain(next) == TileOcean {
			return
		}
		m.AddRiver(next, opposite(d))
		visited[next] = true
		cur = next
	}
}

// lowestNeighbour returns the unvisited orthogonal neighbour with the lowest
// elevation that is not higher than cur.
func lowestNeighbour(m *Map, elevation []float64, cur Point, visited map[Point]bool) (Point, bool) {
	best := cur
	bestE := elevation[cur.Row*m.cols+cur.Col] + 0.02 // allow gentle flats
	ok := false
	for _, n := range []Point{Pt(cur.Row-1, cur.Col), Pt(cur.Row, cur.Col+1), Pt(cur.Row+1, cur.Col), Pt(cur.Row, cur.Col-1)} {
		if !m.Contains(n) || visited[n] {
			continue
		}
		if e := elevation[n.Row*m.cols+n.Col]; e < bestE {
			best, bestE, ok = n, e, true
		}
	}
	return best, ok
}

// directionBetween returns the direction from a to an orthogonally adjacent b.
func directionBetween(a, b Point) (Direction, bool) {
	switch {
	case b.Row == a.Row-1 && b.Col == a.Col:
		return North, true
	case b.Row == a.Row+1 && b.Col == a.Col:
		return South, true
	case b.Row == a.Row && b.Col == a.Col+1:
		return East, true
	case b.Row == a.Row && b.Col == a.Col-1:
		return West, true
	default:
		return 0, false
	}
}

func opposite(d Direction) Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// generateRoads lays roughly half the roads east-west and the rest
// north-south, each meandering by a tile now and then.
func generateRoads(m *Map, rng *rand.Rand, count, minStraight int) {
	if count <= 0 || m.rows == 0 || m.cols == 0 {
		return
	}
	numH := (count + 1) / 2
	numV := count - numH
	for _, base := range spreadSlots(m.rows, numH, rng) {
		stampRoad(m, roadPath(m, rng, true, base, minStraight))
	}
	for _, base := range spreadSlots(m.cols, numV, rng) {
		stampRoad(m, roadPath(m, rng, false, base, minStraight))
	}
}

// spreadSlots picks n distinct road lines across span tiles: one per equal
// band, jittered inside its band. Small maps drop the edge margin.
func spreadSlots(span, n int, rng *rand.Rand) []int {
	if n <= 0 || span <= 0 {
		return nil
	}
	n = min(n, span)
	lo, hi := span/8, span-span/8
	if hi-lo < n*10 {
		lo, hi = 0, span
	}
	band := float64(hi-lo) / float64(n)
	slots := make([]int, 0, n)
	for i := 0; i < n; i++ {
		start := lo + int(float64(i)*band)
		end := max(lo+int(float64(i+1)*band), start+1)
		mid := (start + end) / 2
		reach := (end - start) / 4
		pos := mid
		if reach > 0 {
			pos += rng.Intn(2*reach+1) - reach
		}
		slots = append(slots, min(max(pos, start), end-1))
	}
	return slots
}

// roadPath creates a connected path of tiles across the map.
// If horizontal=true, it goes west→east; otherwise north→south.
func roadPath(m *Map, rng *rand.Rand, horizontal bool, basePos, minStraight int) []Point {
	maxLen, limit := m.cols, m.rows
	if !horizontal {
		maxLen, limit = m.rows, m.cols
	}
	at := func(along, cross int) Point {
		if horizontal {
			return Pt(cross, along)
		}
		return Pt(along, cross)
	}

	var path []Point
	pos := basePos
	straight := 0
	nextTurnAfter := minStraight + rng.Intn(max(1, minStraight))
	for along := 0; along < maxLen; along++ {
		path = append(path, at(along, pos))
		straight++
		if straight < nextTurnAfter || along >= maxLen-minStraight {
			continue
		}
		newPos := pos + rng.Intn(3) - 1
		if newPos < 0 || newPos >= limit || newPos == pos {
			continue
		}
		// Step sideways so consecutive path tiles stay adjacent.
		path = append(path, at(along, newPos))
		pos = newPos
		straight = 0
		nextTurnAfter = minStraight + rng.Intn(max(1, minStraight*2))
	}
	return path
}

// stampRoad links consecutive path tiles with road directions, skipping water.
func stampRoad(m *Map, path []Point) {
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if m.BaseTerrain(a) == TileOcean || m.BaseTerrain(b) == TileOcean {
			continue
		}
		d, ok := directionBetween(a, b)
		if !ok {
			continue
		}
		m.AddRoad(a, d)
		m.AddRoad(b, opposite(d))
	}
}

// generateFixtures scatters terrain-like fixtures, resources and animals over land.
func generateFixtures(m *Map, rng *rand.Rand, cfg generatorConfig, elevation []float64) {
	vegSeed := rng.Int63()
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			p := Pt(row, col)
			tt := m.BaseTerrain(p)
			if tt == TileOcean || tt == TileNotVisible {
				continue
			}
			e := elevation[row*m.cols+col]
			veg := valueNoise2D(float64(col)*cfg.VegetationScale, float64(row)*cfg.VegetationScale, vegSeed)
			detail := valueNoise2D(float64(col)*0.31, float64(row)*0.31, vegSeed+1)

			if rng.Float64() < cfg.GroundChance {
				m.AddFixture(p, NewGround(m.NextID(), pick(rng, rocks), rng.Intn(3) == 0))
			}
			if e > cfg.HillThreshold && !m.Mountainous(p) && detail > 0.5 {
				m.AddFixture(p, NewHill(m.NextID()))
			}

			switch {
			case tt == TileDesert:
				if detail > 0.93 {
					m.AddFixture(p, NewOasis(m.NextID()))
				}
			case veg > cfg.ForestThreshold && tt != TileTundra:
				species := forestSpecies
				if tt == TileJungle {
					species = jungleSpecies
				}
				m.AddFixture(p, NewForest(m.NextID(), pick(rng, species), detail > 0.85))
			case veg > cfg.MeadowThreshold:
				switch {
				case detail > 0.8:
					m.AddFixture(p, NewGrove(m.NextID(), pick(rng, groveSpecies), detail > 0.9))
				case detail > 0.45:
					m.AddFixture(p, NewMeadow(m.NextID(), pick(rng, crops), detail > 0.7))
				default:
					m.AddFixture(p, NewShrub(m.NextID(), "bramble"))
				}
			}

			if rng.Float64() < cfg.ResourceChance {
				m.AddFixture(p, randomResource(m, rng))
			}
			if rng.Float64() < cfg.AnimalChance {
				m.AddFixture(p, NewAnimal(m.NextID(), pick(rng, animals), rng.Intn(5) == 0))
			}
		}
	}
}

func randomResource(m *Map, rng *rand.Rand) Fixture {
	switch rng.Intn(4) {
	case 0:
		return NewMine(m.NextID(), pick(rng, minerals), rng.Intn(2) == 0)
	case 1:
		return NewMineralVein(m.NextID(), pick(rng, minerals), rng.Intn(2) == 0)
	case 2:
		return NewStoneDeposit(m.NextID(), pick(rng, rocks))
	default:
		return NewCache(m.NextID(), "provisions")
	}
}

// generateSettlements places towns and villages, preferring road tiles, and
// gives each player a fortress with a couple of units next to it.
func generateSettlements(m *Map, rng *rand.Rand) {
	var roadTiles, landTiles []Point
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			p := Pt(row, col)
			if m.BaseTerrain(p) == TileOcean || m.Mountainous(p) {
				continue
			}
			landTiles = append(landTiles, p)
			if !m.Roads(p).Empty() {
				roadTiles = append(roadTiles, p)
			}
		}
	}
	if len(landTiles) == 0 {
		return
	}
	candidates := roadTiles
	if len(candidates) == 0 {
		candidates = landTiles
	}

	independent := Player{ID: 0, Name: "independent"}
	towns := max(1, len(landTiles)/300)
	for i := 0; i < towns; i++ {
		p := candidates[rng.Intn(len(candidates))]
		name := townNames[i%len(townNames)]
		if i%3 == 2 {
			m.AddFixture(p, NewVillage(m.NextID(), name, "human", independent))
		} else {
			m.AddFixture(p, NewTown(m.NextID(), name, pick(rng, []string{"small", "medium", "large"}), independent))
		}
	}

	for _, pl := range m.Players() {
		p := landTiles[rng.Intn(len(landTiles))]
		m.AddFixture(p, NewFortress(m.NextID(), fmt.Sprintf("%s's keep", pl.Name), pl))
		for i := 0; i < 2; i++ {
			up := Pt(min(m.rows-1, p.Row+i), min(m.cols-1, p.Col+1))
			m.AddFixture(up, NewUnit(m.NextID(), pl, pick(rng, unitKinds), fmt.Sprintf("%s %d", pl.Name, i+1)))
		}
	}
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}

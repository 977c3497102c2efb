// Package board maps positions on the circular track to the locations that
// decide which cards can be drawn there.
package board

// Size is the number of tiles on the ring.
const Size = 24

// Position is a tile index in [0, Size).
type Position int

// Direction is the sign of a move along the ring.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) Valid() bool { return d == Forward || d == Backward }

// Location is the semantic region a position belongs to.
type Location string

// Spawn regions. Each pirate type owns one contiguous arc of the ring.
const (
	Rookie    Location = "rookie"
	Supernova Location = "supernova"
	Emperor   Location = "emperor"
	Warlord   Location = "warlord"
)

// Action locations sit on a single tile and carry non-depleting decks.
const (
	Egghead    Location = "egghead"
	Skypiea    Location = "skypiea"
	Onigashima Location = "onigashima"
)

// Fixed tile positions of the named islands.
const (
	AmazonLilyTile Position = 0
	EggheadTile    Position = 3
	WaterSevenTile Position = 6
	SkypieaTile    Position = 9
	WanoTile       Position = 12
	OnigashimaTile Position = 15
	WholeCakeTile  Position = 18
)

// JollyRogerStops are the tiles from which the final war can be started.
var JollyRogerStops = [...]Position{2, 16, 21}

func SpawnRegions() []Location {
	return []Location{Rookie, Supernova, Emperor, Warlord}
}

func ActionLocations() []Location {
	return []Location{Egghead, Skypiea, Onigashima}
}

// Locations returns all seven locations, spawn regions first.
func Locations() []Location {
	return append(SpawnRegions(), ActionLocations()...)
}

func IsActionLocation(l Location) bool {
	switch l {
	case Egghead, Skypiea, Onigashima:
		return true
	default:
		return false
	}
}

func IsSpawnRegion(l Location) bool {
	switch l {
	case Rookie, Supernova, Emperor, Warlord:
		return true
	default:
		return false
	}
}

// NextPosition moves distance tiles from current in direction dir on a ring of
// ringSize tiles. The result is always in [0, ringSize).
func NextPosition(current Position, dir Direction, distance, ringSize int) Position {
	if ringSize <= 0 {
		return 0
	}
	next := (int(current) + int(dir)*distance) % ringSize
	if next < 0 {
		next += ringSize
	}
	return Position(next)
}

// Normalize folds any integer position onto the standard ring.
func Normalize(p Position) Position {
	return NextPosition(p, Forward, 0, Size)
}

// LocationOf derives the location of p. Action tiles win over the region arc
// that contains them.
func LocationOf(p Position) Location {
	p = Normalize(p)
	switch {
	case p == EggheadTile:
		return Egghead
	case p == SkypieaTile:
		return Skypiea
	case p == OnigashimaTile:
		return Onigashima
	case p >= 3 && p <= 8:
		return Supernova
	case p >= 9 && p <= 14:
		return Emperor
	case p >= 15 && p <= 20:
		return Warlord
	default:
		// 21-23 and 0-2 wrap around the start tile.
		return Rookie
	}
}

// StartingPosition returns the home tile of a pirate type.
func StartingPosition(pirateType Location) Position {
	switch pirateType {
	case Supernova:
		return WaterSevenTile
	case Emperor:
		return WanoTile
	case Warlord:
		return WholeCakeTile
	default:
		return AmazonLilyTile
	}
}

func IsJollyRogerStop(p Position) bool {
	p = Normalize(p)
	for _, stop := range JollyRogerStops {
		if stop == p {
			return true
		}
	}
	return false
}

package board

// TileType names the island drawn on a tile, or regular for plain sea.
type TileType string

const (
	TileRegular    TileType = "regular"
	TileAmazonLily TileType = "amazonlily"
	TileEgghead    TileType = "egghead"
	TileWaterSeven TileType = "waterseven"
	TileSkypiea    TileType = "skypiea"
	TileWano       TileType = "wano"
	TileOnigashima TileType = "onigashima"
	TileWholeCake  TileType = "wholecake"
)

type TileSize string

const (
	TileSmall TileSize = "sm"
	TileLarge TileSize = "lg"
)

type Tile struct {
	Position   Position `json:"position"`
	Type       TileType `json:"type"`
	Size       TileSize `json:"size"`
	Location   Location `json:"location"`
	JollyRoger bool     `json:"jolly_roger,omitempty"`
}

var islandTiles = map[Position]TileType{
	AmazonLilyTile: TileAmazonLily,
	EggheadTile:    TileEgghead,
	WaterSevenTile: TileWaterSeven,
	SkypieaTile:    TileSkypiea,
	WanoTile:       TileWano,
	OnigashimaTile: TileOnigashima,
	WholeCakeTile:  TileWholeCake,
}

// Tiles lays out the full ring for renderers.
func Tiles() []Tile {
	tiles := make([]Tile, 0, Size)
	for i := 0; i < Size; i++ {
		p := Position(i)
		t := Tile{
			Position:   p,
			Type:       TileRegular,
			Size:       TileSmall,
			Location:   LocationOf(p),
			JollyRoger: IsJollyRogerStop(p),
		}
		if typ, ok := islandTiles[p]; ok {
			t.Type = typ
		}
		if i%6 == 0 {
			t.Size = TileLarge
		}
		tiles = append(tiles, t)
	}
	return tiles
}

// HomeIsland returns the island tile a pirate type spawns on.
func HomeIsland(pirateType Location) TileType {
	return islandTiles[StartingPosition(pirateType)]
}

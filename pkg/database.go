package decoder

import (
	"fmt"
	"math"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// PixelMap translates matrix coordinates into global pixel IDs.
type PixelMap struct {
	ToPixelID    map[Coordinate]uint32
	ToCoordinate map[uint32]Coordinate
}

type PixelMappingEntry struct {
	Col     int `db:"Col"`
	Row     int `db:"Row"`
	PixelID int `db:"PixelID"`
}

func NewPixelMap() PixelMap {
	return PixelMap{
		ToPixelID:    make(map[Coordinate]uint32),
		ToCoordinate: make(map[uint32]Coordinate),
	}
}

// Entries outside the matrix or with a pixel ID that does not fit in
// uint32 are skipped.
func (p PixelMap) Add(entry PixelMappingEntry) bool {
	if entry.Col < 0 || entry.Col >= GRID_WIDTH || entry.Row < 0 || entry.Row >= GRID_HEIGHT {
		return false
	}
	if entry.PixelID < 0 || uint64(entry.PixelID) > math.MaxUint32 {
		return false
	}
	c := Coordinate{X: uint8(entry.Col), Y: uint8(entry.Row)}
	p.ToPixelID[c] = uint32(entry.PixelID)
	p.ToCoordinate[uint32(entry.PixelID)] = c
	return true
}

// PixelID falls back to the local index x*GRID_HEIGHT + y for pixels
// without a mapping entry.
func (p PixelMap) PixelID(c Coordinate) uint32 {
	if id, ok := p.ToPixelID[c]; ok {
		return id
	}
	return LocalPixelID(c)
}

func LocalPixelID(c Coordinate) uint32 {
	return uint32(c.X)*GRID_HEIGHT + uint32(c.Y)
}

// LocalPixelMap is used when no database is available.
func LocalPixelMap() PixelMap {
	pixelMap := NewPixelMap()
	for x := 0; x < GRID_WIDTH; x++ {
		for y := 0; y < GRID_HEIGHT; y++ {
			c := Coordinate{X: uint8(x), Y: uint8(y)}
			pixelMap.Add(PixelMappingEntry{Col: x, Row: y, PixelID: int(LocalPixelID(c))})
		}
	}
	return pixelMap
}

func GetPixelMapFromDB(db *sqlx.DB, runNumber int) (PixelMap, error) {
	query := "SELECT Col, `Row`, PixelID FROM PixelMapping WHERE MinRun <= ? and MaxRun >= ? ORDER BY PixelID"

	if configuration.Verbosity > 0 {
		logger.Info("Pixel mapping read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s, run %d", query, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return PixelMap{}, errMessage
	}
	defer rows.Close()

	pixelMap := NewPixelMap()
	skipped := 0
	for rows.Next() {
		result := PixelMappingEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return PixelMap{}, errMessage
		}
		if !pixelMap.Add(result) {
			skipped++
		}
	}
	if err := rows.Err(); err != nil {
		return PixelMap{}, fmt.Errorf("error reading DB rows: %w", err)
	}

	if skipped > 0 {
		message := fmt.Sprintf("%d invalid pixel mapping entries skipped for run %d", skipped, runNumber)
		logger.Error(message)
	}
	return pixelMap, nil
}

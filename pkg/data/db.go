package data

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/spencer-p/sunphase/pkg/sunphase"
)

var ErrPlaceNotFound = errors.New("place not found")

// Place is a named set of coordinates.
type Place struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex"`
	Latitude  float64
	Longitude float64
	Height    float64
}

func (p Place) Coordinates() sunphase.Coordinates {
	return sunphase.Coordinates{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Height:    p.Height,
	}
}

// Config locates the postgres database.
type Config struct {
	Host     string
	Port     string `default:"5432"`
	User     string `default:"postgres"`
	Password string
	DBName   string `default:"sunphase"`
}

// Enabled reports whether a database host was configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

func (c Config) DSN() string {
	fields := []string{
		"host=" + c.Host,
		"user=" + c.User,
		"password=" + c.Password,
		"dbname=" + c.DBName,
		"port=" + c.Port,
		"sslmode=disable",
		"TimeZone=UTC",
	}
	return strings.Join(fields, " ")
}

// Store keeps places in postgres.
type Store struct {
	db *gorm.DB
}

// Open connects to the database described by cfg and migrates the schema.
func Open(cfg Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an open gorm connection and migrates the schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Place{}); err != nil {
		return nil, fmt.Errorf("failed to migrate places: %w", err)
	}
	return &Store{db: db}, nil
}

// PlaceByName looks up a place, returning ErrPlaceNotFound if there is none.
func (s *Store) PlaceByName(name string) (Place, error) {
	var place Place
	if r := s.db.Where("name = ?", name).First(&place); r.Error != nil {
		if errors.Is(r.Error, gorm.ErrRecordNotFound) {
			return Place{}, fmt.Errorf("%q: %w", name, ErrPlaceNotFound)
		}
		return Place{}, r.Error
	}
	return place, nil
}

// SavePlace creates or updates the place called name.
func (s *Store) SavePlace(name string, c sunphase.Coordinates) (Place, error) {
	place, err := s.PlaceByName(name)
	if err != nil && !errors.Is(err, ErrPlaceNotFound) {
		return Place{}, err
	}
	place.Name = name
	place.Latitude = c.Latitude
	place.Longitude = c.Longitude
	place.Height = c.Height
	if tx := s.db.Save(&place); tx.Error != nil {
		return Place{}, fmt.Errorf("failed to save place %q: %w", name, tx.Error)
	}
	return place, nil
}

// Package store keeps baked polygon text between runs, one item per level,
// in the per-user data directory managed by gdata.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"

	"github.com/automoto/tilemesh/codec"
	cfg "github.com/automoto/tilemesh/config"
	"github.com/automoto/tilemesh/shared/gamemath"
)

// ErrNotFound is returned by Load for levels that were never saved.
var ErrNotFound = errors.New("store: no baked data for level")

// Envelope represents one baked level as stored on disk
type Envelope struct {
	Level        string `json:"level"`
	Width        int    `json:"width"`  // Tiles
	Height       int    `json:"height"` // Tiles
	TileWidth    int    `json:"tileWidth"`
	TileHeight   int    `json:"tileHeight"`
	ColliderMode string `json:"colliderMode"`
	Data         string `json:"data"` // Polygon codec text
}

// Polygons decodes the stored navmesh and collider polygons.
func (e *Envelope) Polygons() (nav, col []gamemath.Polygon, err error) {
	nav, col, err = codec.Deserialize(e.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("level %s: %w", e.Level, err)
	}
	return nav, col, nil
}

// Encode serializes e after checking its polygon text.
func Encode(e *Envelope) ([]byte, error) {
	if e.Level == "" {
		return nil, errors.New("store: envelope has no level name")
	}
	if _, _, err := e.Polygons(); err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

// Decode parses data produced by Encode.
func Decode(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if _, _, err := e.Polygons(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Key returns the gdata item key for level.
func Key(level string) string {
	return cfg.Store.Prefix + level
}

// Store wraps the gdata manager
type Store struct {
	manager *gdata.Manager
}

// Open initializes the gdata manager for baked level storage
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Store.AppName,
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.Store.AppName, err)
	}
	return &Store{manager: m}, nil
}

// Save stores e under its level key
func (s *Store) Save(e *Envelope) error {
	data, err := Encode(e)
	if err != nil {
		return err
	}
	if err := s.manager.SaveItem(Key(e.Level), data); err != nil {
		return fmt.Errorf("save %s: %w", e.Level, err)
	}
	log.Printf("Saved baked level %s (%d bytes)", e.Level, len(data))
	return nil
}

// Load returns the stored envelope for level
func (s *Store) Load(level string) (*Envelope, error) {
	data, err := s.manager.LoadItem(Key(level))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", level, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, level)
	}
	return Decode(data)
}

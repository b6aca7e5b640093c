package db

import (
	"context"
	"fmt"
)

type SeedLocation struct {
	Name    string
	Barbers []string
}

var DirectorySeed = []SeedLocation{
	{Name: "Buiucani", Barbers: []string{"Mihai", "Sergiu"}},
	{Name: "Râșcani", Barbers: []string{"Andrei"}},
	{Name: "Centru", Barbers: []string{"Vlad", "Ion"}},
}

// DirectoryWriter é implementado pelo repositório gorm e pelo MemoryStore.
type DirectoryWriter interface {
	EnsureLocation(ctx context.Context, name string) (uint, error)
	EnsureBarber(ctx context.Context, name string, locationID uint) error
}

// Seed é idempotente: pode rodar a cada start.
func Seed(ctx context.Context, w DirectoryWriter, seed []SeedLocation) error {
	for _, loc := range seed {
		id, err := w.EnsureLocation(ctx, loc.Name)
		if err != nil {
			return fmt.Errorf("seed location %s: %w", loc.Name, err)
		}
		for _, name := range loc.Barbers {
			if err := w.EnsureBarber(ctx, name, id); err != nil {
				return fmt.Errorf("seed barber %s: %w", name, err)
			}
		}
	}
	return nil
}

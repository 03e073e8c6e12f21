package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
	"github.com/rs/zerolog"
)

// DefaultFaculties are the houses created on first start
var DefaultFaculties = []models.Faculty{
	{Name: "Gryffindor", Color: "red"},
	{Name: "Hufflepuff", Color: "yellow"},
	{Name: "Ravenclaw", Color: "blue"},
	{Name: "Slytherin", Color: "green"},
}

// CreateDefaultData inserts DefaultFaculties when the faculty table is empty.
// A failing house does not stop the others; all failures are returned joined.
func CreateDefaultData(ctx context.Context, faculties repositories.FacultyRepository, lgr zerolog.Logger) error {
	existing, err := faculties.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list faculties before seeding: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("faculties", len(existing)).Msg("Faculties already present, skipping default data")
		return nil
	}

	lgr.Info().Msg("Creating default faculties...")
	var finalErr error
	for _, house := range DefaultFaculties {
		house := house
		saved, err := faculties.Save(ctx, &house)
		if err != nil {
			lgr.Error().Err(err).Str("faculty", house.Name).Msg("Error creating default faculty")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Debug().Int64("id", saved.ID).Str("faculty", saved.Name).Msg("Default faculty created")
	}
	return finalErr
}

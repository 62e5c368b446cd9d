// Package facility reports the facilities (water, power, internet, library, sick bay)
// of schools and their infrastructure inspections.
package facility

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core/school"
)

type (
	// SchoolSource lists the schools facility stats are computed over.
	SchoolSource interface {
		QueryAllSchools(ctx context.Context) ([]school.School, error)
	}

	InfrastructureRepository interface {
		// FilterInfrastructure returns the rows of schoolID, or every row when schoolID is empty.
		FilterInfrastructure(ctx context.Context, schoolID string) ([]Infrastructure, error)
	}

	Service struct {
		schools SchoolSource
		infra   InfrastructureRepository
		flagger Flagger
	}
)

func NewService(schools SchoolSource, infra InfrastructureRepository, flagger Flagger) *Service {
	if flagger == nil {
		flagger = RecordedFlagger{}
	}
	return &Service{schools: schools, infra: infra, flagger: flagger}
}

func (svc *Service) Stats(ctx context.Context, filter Filter) (Stats, error) {
	all, err := svc.schools.QueryAllSchools(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying schools")
	}
	locations := make([]Location, 0, len(all))
	for _, s := range all {
		if filter.Match(s) {
			locations = append(locations, newLocation(s, svc.flagger.Flags(s)))
		}
	}
	return ComputeStats(locations), nil
}

// ComputeStats builds the facilities overview of the given locations. The water, power
// and internet breakdowns are fixed survey figures.
func ComputeStats(locations []Location) Stats {
	n := float64(len(locations))
	return Stats{
		TotalSchools: len(locations),
		WaterAvailability: WaterStats{
			Total:     85,
			BySource:  map[string]int{"municipal": 45, "borehole": 30, "well": 10},
			Treatment: 65,
		},
		PowerAvailability: PowerStats{
			Total:      90,
			BySource:   map[string]int{"grid": 70, "solar": 15, "generator": 5},
			WithBackup: 45,
		},
		InternetAvailability: InternetStats{
			Total:  75,
			ByType: map[string]int{"fiber": 40, "satellite": 20, "mobile": 15},
		},
		Facilities: Counts{
			Libraries: int(math.Floor(n * .80)),
			SickBays:  int(math.Floor(n * .65)),
		},
		FacilitiesLocation: locations,
	}
}

func (svc *Service) Infrastructure(ctx context.Context, schoolID string) ([]Infrastructure, error) {
	return svc.infra.FilterInfrastructure(ctx, schoolID)
}

package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/edudash/core/catalog"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/maintenance"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/region"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	"github.com/trezcool/edudash/core/user"
)

type (
	Options struct {
		// Latency is waited before every repository call.
		Latency time.Duration
		// Empty skips the seed fixtures.
		Empty bool
	}

	// DB holds every table in memory, for the lifetime of the process.
	DB struct {
		latency time.Duration

		user           *table[user.User]
		school         *table[school.School]
		staff          *table[staff.Staff]
		state          *table[region.State]
		lga            *table[region.LGA]
		district       *table[region.SenatorialDistrict]
		schoolType     *table[catalog.Entry]
		statusType     *table[catalog.Entry]
		boardExam      *table[catalog.BoardExam]
		enrollment     *table[enrollment.TermEnrollment]
		result         *table[exam.Result]
		subjectResult  *table[exam.SubjectResult]
		gradingScheme  *table[exam.GradingScheme]
		infrastructure *table[facility.Infrastructure]
		maintenance    *table[maintenance.Request]
		performance    *table[performance.Record]

		trends    []enrollment.Trend
		seasonal  []enrollment.SeasonalPattern
		forecasts []enrollment.Forecast
	}
)

func Open(opts Options) (*DB, error) {
	db := &DB{
		latency:        opts.Latency,
		user:           newTable[user.User](),
		school:         newTable[school.School](),
		staff:          newTable[staff.Staff](),
		state:          newTable[region.State](),
		lga:            newTable[region.LGA](),
		district:       newTable[region.SenatorialDistrict](),
		schoolType:     newTable[catalog.Entry](),
		statusType:     newTable[catalog.Entry](),
		boardExam:      newTable[catalog.BoardExam](),
		enrollment:     newTable[enrollment.TermEnrollment](),
		result:         newTable[exam.Result](),
		subjectResult:  newTable[exam.SubjectResult](),
		gradingScheme:  newTable[exam.GradingScheme](),
		infrastructure: newTable[facility.Infrastructure](),
		maintenance:    newTable[maintenance.Request](),
		performance:    newTable[performance.Record](),
	}
	if !opts.Empty {
		db.seed()
	}
	return db, nil
}

// wait simulates the latency of a remote store. It gives up as soon as ctx is done.
func (db *DB) wait(ctx context.Context) error {
	if db.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(db.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

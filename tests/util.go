package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/edudash/apps/api/echo"
	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/catalog"
	"github.com/trezcool/edudash/core/dashboard"
	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/maintenance"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/region"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	"github.com/trezcool/edudash/core/user"
	"github.com/trezcool/edudash/storage/database/inmem"
)

// NewConfig is the config of a test run: no latency, recorded facility flags, no request logs.
func NewConfig() *core.Config {
	conf := &core.Config{
		AppName:   "EduDash",
		Build:     "test",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "secret",
	}
	conf.Server.JWTExpirationDelta = time.Hour
	conf.Server.DisableReqLogs = true
	conf.Database.FacilityFlags = "recorded"
	conf.Store.FacilityDebounce = 10 * time.Millisecond
	return conf
}

// OpenDB opens a freshly seeded in-memory DB.
func OpenDB(t testing.TB) *inmemdb.DB {
	db, err := inmemdb.Open(inmemdb.Options{})
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate, translator
}

// NewServices wires every domain service over db. Facility flags are the recorded ones.
func NewServices(db *inmemdb.DB) echoapi.Services {
	schoolRepo := inmemdb.NewSchoolRepository(db)

	enrollmentSvc := enrollment.NewService(inmemdb.NewEnrollmentRepository(db))
	examSvc := exam.NewService(inmemdb.NewExamRepository(db))
	maintenanceSvc := maintenance.NewService(inmemdb.NewMaintenanceRepository(db))
	performanceSvc := performance.NewService(inmemdb.NewPerformanceRepository(db), schoolRepo, examSvc, enrollmentSvc)
	staffSvc := staff.NewService(inmemdb.NewStaffRepository(db), performanceSvc)
	schoolSvc := school.NewService(schoolRepo)

	return echoapi.Services{
		User:         user.NewService(inmemdb.NewUserRepository(db)),
		School:       schoolSvc,
		Staff:        staffSvc,
		Region:       region.NewService(inmemdb.NewRegionRepository(db)),
		Catalog:      catalog.NewService(inmemdb.NewCatalogRepository(db)),
		Enrollment:   enrollmentSvc,
		Exam:         examSvc,
		Grading:      exam.NewGradingService(inmemdb.NewGradingRepository(db)),
		Facility:     facility.NewService(schoolRepo, inmemdb.NewInfrastructureRepository(db), facility.RecordedFlagger{}),
		Maintenance:  maintenanceSvc,
		Performance:  performanceSvc,
		Demographics: demographics.NewService(schoolRepo, enrollmentSvc, staffSvc),
		Dashboard:    dashboard.NewService(schoolSvc, performanceSvc, maintenanceSvc, enrollmentSvc),
	}
}

// Logger records what is logged, for assertions.
type Logger struct {
	mu      sync.Mutex
	entries []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := level + ": " + msg
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			entry += fmt.Sprintf(" (%v)", err)
		}
	}
	l.entries = append(l.entries, entry)
}

func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

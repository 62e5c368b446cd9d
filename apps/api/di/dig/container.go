package dig_container

import (
	"log"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

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
	logsvc "github.com/trezcool/edudash/services/logger"
	"github.com/trezcool/edudash/storage/database/inmem"
)

type (
	// ServicesParam collects every domain service out of the container.
	ServicesParam struct {
		dig.In

		User         *user.Service
		School       *school.Service
		Staff        *staff.Service
		Region       *region.Service
		Catalog      *catalog.Service
		Enrollment   *enrollment.Service
		Exam         *exam.Service
		Grading      *exam.GradingService
		Facility     *facility.Service
		Maintenance  *maintenance.Service
		Performance  *performance.Service
		Demographics *demographics.Service
		Dashboard    *dashboard.Service
	}

	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}
)

func newLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger(conf), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	std := logsvc.NewStdLogger(conf)
	std.SetPrefix("DB : ")
	return logsvc.NewRollbarLogger(std, conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *inmemdb.DB {
	db, err := inmemdb.Open(inmemdb.Options{Latency: conf.Database.Latency})
	if err != nil {
		loggerParam.Logger.Fatal("opening database", err)
	}
	return db
}

func newFlagger(conf *core.Config) facility.Flagger {
	if conf.Database.FacilityFlags == "recorded" {
		return facility.RecordedFlagger{}
	}
	return facility.NewRandomFlagger(conf.Database.RandomSeed)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newPerformanceService(
	repo performance.Repository,
	schools school.Repository,
	exams *exam.Service,
	enrollments *enrollment.Service,
) *performance.Service {
	return performance.NewService(repo, schools, exams, enrollments)
}

func newStaffService(repo staff.Repository, perf *performance.Service) *staff.Service {
	return staff.NewService(repo, perf)
}

func newFacilityService(schools school.Repository, infra facility.InfrastructureRepository, flagger facility.Flagger) *facility.Service {
	return facility.NewService(schools, infra, flagger)
}

func newDemographicsService(schools school.Repository, enrollments *enrollment.Service, members *staff.Service) *demographics.Service {
	return demographics.NewService(schools, enrollments, members)
}

func newDashboardService(
	schools *school.Service,
	perf *performance.Service,
	maint *maintenance.Service,
	enrollments *enrollment.Service,
) *dashboard.Service {
	return dashboard.NewService(schools, perf, maint, enrollments)
}

func newServices(svc ServicesParam) echoapi.Services {
	return echoapi.Services{
		User:         svc.User,
		School:       svc.School,
		Staff:        svc.Staff,
		Region:       svc.Region,
		Catalog:      svc.Catalog,
		Enrollment:   svc.Enrollment,
		Exam:         svc.Exam,
		Grading:      svc.Grading,
		Facility:     svc.Facility,
		Maintenance:  svc.Maintenance,
		Performance:  svc.Performance,
		Demographics: svc.Demographics,
		Dashboard:    svc.Dashboard,
	}
}

func newServer(conf *core.Config, logger core.Logger, validate *validator.Validate, translator ut.Translator, svc echoapi.Services) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Services:   svc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newFlagger))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidator))

	// repositories
	must(c.Provide(inmemdb.NewUserRepository))
	must(c.Provide(inmemdb.NewSchoolRepository))
	must(c.Provide(inmemdb.NewStaffRepository))
	must(c.Provide(inmemdb.NewRegionRepository))
	must(c.Provide(inmemdb.NewCatalogRepository))
	must(c.Provide(inmemdb.NewEnrollmentRepository))
	must(c.Provide(inmemdb.NewExamRepository))
	must(c.Provide(inmemdb.NewGradingRepository))
	must(c.Provide(inmemdb.NewInfrastructureRepository))
	must(c.Provide(inmemdb.NewMaintenanceRepository))
	must(c.Provide(inmemdb.NewPerformanceRepository))

	// services
	must(c.Provide(user.NewService))
	must(c.Provide(school.NewService))
	must(c.Provide(region.NewService))
	must(c.Provide(catalog.NewService))
	must(c.Provide(enrollment.NewService))
	must(c.Provide(exam.NewService))
	must(c.Provide(exam.NewGradingService))
	must(c.Provide(maintenance.NewService))
	must(c.Provide(newPerformanceService))
	must(c.Provide(newStaffService))
	must(c.Provide(newFacilityService))
	must(c.Provide(newDemographicsService))
	must(c.Provide(newDashboardService))

	must(c.Provide(newServices))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}

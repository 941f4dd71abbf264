package validation

import (
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/job-portal/internal/domain"
)

func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("register validation rule %q: %v", tag, err)
		}
	}

	mustRegister("application_status", oneOfString(
		string(domain.ApplicationStatusPending),
		string(domain.ApplicationStatusReviewing),
		string(domain.ApplicationStatusShortlisted),
		string(domain.ApplicationStatusRejected),
		string(domain.ApplicationStatusAccepted),
	))
	mustRegister("job_status", oneOfString(
		string(domain.JobStatusActive),
		string(domain.JobStatusClosed),
		string(domain.JobStatusDraft),
	))
	mustRegister("job_type", oneOfString(
		string(domain.JobTypeFullTime),
		string(domain.JobTypePartTime),
		string(domain.JobTypeContract),
		string(domain.JobTypeInternship),
		string(domain.JobTypeTemporary),
	))
	mustRegister("salary_period", oneOfString(
		string(domain.SalaryPeriodHourly),
		string(domain.SalaryPeriodMonthly),
		string(domain.SalaryPeriodYearly),
	))
	mustRegister("experience_level", oneOfString(
		string(domain.ExperienceEntry),
		string(domain.ExperienceMid),
		string(domain.ExperienceSenior),
		string(domain.ExperienceExecutive),
	))
}

// oneOfString accepts empty values so that optional fields only need the rule.
// Pointers are dereferenced by the validator before the rule runs.
func oneOfString(allowed ...string) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, ok := set[value]
		return ok
	}
}

package domain

import "strings"

// ProfileUpdate is the validated payload for the profile-update
// operation. Every field is optional (partial update); nested
// collections are full-replacement when present and untouched when
// absent. Unknown top-level keys are rejected at decode time.
type ProfileUpdate struct {
	// users table bucket
	FirstName         *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName          *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Phone             *string `json:"phone" validate:"omitempty,e164_phone"`
	PreferredLanguage *string `json:"preferred_language" validate:"omitempty,max=10"`
	Timezone          *string `json:"timezone" validate:"omitempty,max=64"`

	// candidate_profiles table bucket
	Headline              *string            `json:"headline" validate:"omitempty,max=200"`
	Bio                   *string            `json:"bio" validate:"omitempty,max=2000"`
	DateOfBirth           *string            `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender                *string            `json:"gender" validate:"omitempty,max=20"`
	Country               *string            `json:"country" validate:"omitempty,max=100"`
	City                  *string            `json:"city" validate:"omitempty,max=100"`
	AvailabilityStatus    *string            `json:"availability_status" validate:"omitempty,oneof=available open_to_offers not_available"`
	ExpectedSalaryMin     *int64             `json:"expected_salary_min" validate:"omitempty,gte=0"`
	ExpectedSalaryMax     *int64             `json:"expected_salary_max" validate:"omitempty,gte=0"`
	SalaryCurrency        *string            `json:"salary_currency" validate:"omitempty,currency_code"`
	NoticePeriodDays      *int               `json:"notice_period_days" validate:"omitempty,gte=0"`
	WillingToRelocate     *bool              `json:"willing_to_relocate"`
	WorkPreference        *[]string          `json:"work_preference" validate:"omitempty,dive,oneof=remote onsite hybrid"`
	VideoIntroURL         *string            `json:"video_intro_url" validate:"omitempty,url,max=500"`
	ProfileVisibility     *string            `json:"profile_visibility" validate:"omitempty,oneof=public private recruiters_only"`
	PortfolioLinks        *map[string]string `json:"portfolio_links" validate:"omitempty,dive,url"`
	TotalExperienceMonths *int               `json:"total_experience_months" validate:"omitempty,gte=0"`

	// nested collections (whole-collection replace when present)
	Experience     *[]ExperienceInput    `json:"experience" validate:"omitempty,dive"`
	Education      *[]EducationInput     `json:"education" validate:"omitempty,dive"`
	Skills         *[]SkillInput         `json:"skills" validate:"omitempty,dive"`
	Languages      *[]LanguageInput      `json:"languages" validate:"omitempty,dive"`
	Certifications *[]CertificationInput `json:"certifications" validate:"omitempty,dive"`
}

// Nested collection inputs. The ID field is accepted on the wire but
// never written: replacement rows are always fresh inserts with
// server-assigned identifiers.

type ExperienceInput struct {
	ID             int64   `json:"id,omitempty"`
	CompanyName    string  `json:"company_name" validate:"required,max=200"`
	JobTitle       string  `json:"job_title" validate:"required,max=200"`
	EmploymentType string  `json:"employment_type" validate:"required,oneof=full_time part_time contract internship freelance"`
	Location       *string `json:"location" validate:"omitempty,max=200"`
	StartDate      string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent      bool    `json:"is_current"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	SortOrder      int     `json:"sort_order" validate:"gte=0"`
}

type EducationInput struct {
	ID              int64   `json:"id,omitempty"`
	InstitutionName string  `json:"institution_name" validate:"required,max=200"`
	Degree          *string `json:"degree" validate:"omitempty,max=100"`
	FieldOfStudy    *string `json:"field_of_study" validate:"omitempty,max=200"`
	StartYear       *int    `json:"start_year" validate:"omitempty,gte=1900"`
	EndYear         *int    `json:"end_year" validate:"omitempty,gte=1900"`
	Grade           *string `json:"grade" validate:"omitempty,max=50"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	SortOrder       int     `json:"sort_order" validate:"gte=0"`
}

type SkillInput struct {
	ID              int64 `json:"id,omitempty"`
	SkillID         int64 `json:"skill_id" validate:"required"`
	Proficiency     string `json:"proficiency" validate:"required,oneof=beginner intermediate advanced expert"`
	YearsExperience *int   `json:"years_experience" validate:"omitempty,gte=0"`
	IsHighlighted   bool   `json:"is_highlighted"`
}

type LanguageInput struct {
	ID           int64  `json:"id,omitempty"`
	LanguageCode string `json:"language_code" validate:"required,max=10"`
	LanguageName string `json:"language_name" validate:"required,max=100"`
	Proficiency  string `json:"proficiency" validate:"required,oneof=basic conversational professional native"`
}

type CertificationInput struct {
	ID            int64   `json:"id,omitempty"`
	Title         string  `json:"title" validate:"required,max=200"`
	IssuingOrg    string  `json:"issuing_org" validate:"required,max=200"`
	IssuedDate    *string `json:"issued_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate    *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	CredentialID  *string `json:"credential_id" validate:"omitempty,max=200"`
	CredentialURL *string `json:"credential_url" validate:"omitempty,url,max=500"`
}

// Normalize trims whitespace on every string field and uppercases the
// currency code. Runs before validation so bounds apply to the stored
// form; the bucket builders map trimmed-empty strings to SQL NULL.
func (p *ProfileUpdate) Normalize() {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}

	p.FirstName = trim(p.FirstName)
	p.LastName = trim(p.LastName)
	p.Phone = trim(p.Phone)
	p.PreferredLanguage = trim(p.PreferredLanguage)
	p.Timezone = trim(p.Timezone)

	p.Headline = trim(p.Headline)
	p.Bio = trim(p.Bio)
	p.DateOfBirth = trim(p.DateOfBirth)
	p.Gender = trim(p.Gender)
	p.Country = trim(p.Country)
	p.City = trim(p.City)
	p.VideoIntroURL = trim(p.VideoIntroURL)

	if p.SalaryCurrency != nil {
		v := strings.ToUpper(strings.TrimSpace(*p.SalaryCurrency))
		p.SalaryCurrency = &v
	}
}

// nullIfEmpty maps a normalized empty string to SQL NULL.
func nullIfEmpty(s *string) interface{} {
	if s == nil {
		return nil
	}
	if *s == "" {
		return nil
	}
	return *s
}

// UserFields returns the users-table bucket keyed by column name. Only
// allow-listed columns can ever appear here.
func (p *ProfileUpdate) UserFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.FirstName != nil {
		fields["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = *p.LastName
	}
	if p.Phone != nil {
		fields["phone"] = nullIfEmpty(p.Phone)
	}
	if p.PreferredLanguage != nil {
		fields["preferred_language"] = *p.PreferredLanguage
	}
	if p.Timezone != nil {
		fields["timezone"] = *p.Timezone
	}
	return fields
}

// ProfileFields returns the candidate_profiles-table bucket keyed by
// column name.
func (p *ProfileUpdate) ProfileFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Headline != nil {
		fields["headline"] = nullIfEmpty(p.Headline)
	}
	if p.Bio != nil {
		fields["bio"] = nullIfEmpty(p.Bio)
	}
	if p.DateOfBirth != nil {
		fields["date_of_birth"] = nullIfEmpty(p.DateOfBirth)
	}
	if p.Gender != nil {
		fields["gender"] = nullIfEmpty(p.Gender)
	}
	if p.Country != nil {
		fields["country"] = nullIfEmpty(p.Country)
	}
	if p.City != nil {
		fields["city"] = nullIfEmpty(p.City)
	}
	if p.AvailabilityStatus != nil {
		fields["availability_status"] = *p.AvailabilityStatus
	}
	if p.ExpectedSalaryMin != nil {
		fields["expected_salary_min"] = *p.ExpectedSalaryMin
	}
	if p.ExpectedSalaryMax != nil {
		fields["expected_salary_max"] = *p.ExpectedSalaryMax
	}
	if p.SalaryCurrency != nil {
		fields["salary_currency"] = nullIfEmpty(p.SalaryCurrency)
	}
	if p.NoticePeriodDays != nil {
		fields["notice_period_days"] = *p.NoticePeriodDays
	}
	if p.WillingToRelocate != nil {
		fields["willing_to_relocate"] = *p.WillingToRelocate
	}
	if p.WorkPreference != nil {
		fields["work_preference"] = *p.WorkPreference
	}
	if p.VideoIntroURL != nil {
		fields["video_intro_url"] = nullIfEmpty(p.VideoIntroURL)
	}
	if p.ProfileVisibility != nil {
		fields["profile_visibility"] = *p.ProfileVisibility
	}
	if p.PortfolioLinks != nil {
		fields["portfolio_links"] = *p.PortfolioLinks
	}
	if p.TotalExperienceMonths != nil {
		fields["total_experience_months"] = *p.TotalExperienceMonths
	}
	return fields
}

package domain

import (
	"context"
	"time"
)

type CandidateProfile struct {
	ID                    int64             `json:"id"`
	UserID                string            `json:"user_id"`
	Headline              *string           `json:"headline,omitempty"`
	Bio                   *string           `json:"bio,omitempty"`
	DateOfBirth           *string           `json:"date_of_birth,omitempty"`
	Gender                *string           `json:"gender,omitempty"`
	Country               *string           `json:"country,omitempty"`
	City                  *string           `json:"city,omitempty"`
	AvailabilityStatus    *string           `json:"availability_status,omitempty"`
	ExpectedSalaryMin     *int64            `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax     *int64            `json:"expected_salary_max,omitempty"`
	SalaryCurrency        *string           `json:"salary_currency,omitempty"`
	NoticePeriodDays      *int              `json:"notice_period_days,omitempty"`
	WillingToRelocate     *bool             `json:"willing_to_relocate,omitempty"`
	WorkPreference        []string          `json:"work_preference,omitempty"`
	ResumeURL             *string           `json:"resume_url,omitempty"`
	ResumeText            *string           `json:"resume_text,omitempty"`
	ResumeUploadedAt      *time.Time        `json:"resume_uploaded_at,omitempty"`
	VideoIntroURL         *string           `json:"video_intro_url,omitempty"`
	ProfileVisibility     *string           `json:"profile_visibility,omitempty"`
	PortfolioLinks        map[string]string `json:"portfolio_links,omitempty"`
	TotalExperienceMonths *int              `json:"total_experience_months,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

type Experience struct {
	ID             int64   `json:"id"`
	CompanyName    string  `json:"company_name"`
	JobTitle       string  `json:"job_title"`
	EmploymentType string  `json:"employment_type"`
	Location       *string `json:"location,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
	IsCurrent      bool    `json:"is_current"`
	Description    *string `json:"description,omitempty"`
	SortOrder      int     `json:"sort_order"`
}

type Education struct {
	ID              int64   `json:"id"`
	InstitutionName string  `json:"institution_name"`
	Degree          *string `json:"degree,omitempty"`
	FieldOfStudy    *string `json:"field_of_study,omitempty"`
	StartYear       *int    `json:"start_year,omitempty"`
	EndYear         *int    `json:"end_year,omitempty"`
	Grade           *string `json:"grade,omitempty"`
	Description     *string `json:"description,omitempty"`
	SortOrder       int     `json:"sort_order"`
}

type CandidateSkill struct {
	ID              int64  `json:"id"`
	SkillID         int64  `json:"skill_id"`
	SkillName       string `json:"skill_name,omitempty"`
	Proficiency     string `json:"proficiency"`
	YearsExperience *int   `json:"years_experience,omitempty"`
	IsHighlighted   bool   `json:"is_highlighted"`
}

type CandidateLanguage struct {
	ID           int64  `json:"id"`
	LanguageCode string `json:"language_code"`
	LanguageName string `json:"language_name"`
	Proficiency  string `json:"proficiency"`
}

type Certification struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	IssuingOrg    string  `json:"issuing_org"`
	IssuedDate    *string `json:"issued_date,omitempty"`
	ExpiryDate    *string `json:"expiry_date,omitempty"`
	CredentialID  *string `json:"credential_id,omitempty"`
	CredentialURL *string `json:"credential_url,omitempty"`
}

// FullProfile is the authoritative read model returned after every
// profile mutation: the user row plus the profile row plus all five
// child collections, exactly as storage holds them.
type FullProfile struct {
	User           *User              `json:"user"`
	Profile        *CandidateProfile  `json:"profile"`
	Experience     []Experience       `json:"experience"`
	Education      []Education        `json:"education"`
	Skills         []CandidateSkill   `json:"skills"`
	Languages      []CandidateLanguage `json:"languages"`
	Certifications []Certification    `json:"certifications"`
}

// ResumeInfo is the resume-related slice of the profile row.
type ResumeInfo struct {
	UserID           string     `json:"user_id"`
	ResumeURL        *string    `json:"resume_url,omitempty"`
	ResumeText       *string    `json:"resume_text,omitempty"`
	ResumeUploadedAt *time.Time `json:"resume_uploaded_at,omitempty"`
}

// ProfileWrite is the partitioned, allow-listed write set handed to the
// repository. UserFields and ProfileFields are keyed by column name and
// already filtered; a nil collection pointer means "leave untouched",
// a non-nil pointer means "replace the whole collection with this".
type ProfileWrite struct {
	UserFields     map[string]interface{}
	ProfileFields  map[string]interface{}
	Experience     *[]Experience
	Education      *[]Education
	Skills         *[]CandidateSkill
	Languages      *[]CandidateLanguage
	Certifications *[]Certification
}

type ProfileRepository interface {
	// ApplyUpdate runs the whole write set in a single transaction:
	// conditional user update, profile upsert keyed on user_id, then
	// delete-and-reinsert for every submitted collection.
	ApplyUpdate(ctx context.Context, userID string, write *ProfileWrite) error
	GetFullProfile(ctx context.Context, userID string) (*FullProfile, error)
	UpsertResume(ctx context.Context, userID, resumeURL, resumeText string, uploadedAt time.Time) error
	GetResume(ctx context.Context, userID string) (*ResumeInfo, error)
}

type ProfileUsecase interface {
	GetFullProfile(ctx context.Context, userID string) (*FullProfile, error)
	UpdateProfile(ctx context.Context, userID string, upd *ProfileUpdate) (*FullProfile, error)
	UploadAvatar(ctx context.Context, user *User, filename string, data []byte, declaredMIME string) (string, error)
	GetPublicProfile(ctx context.Context, userID string) (*PublicUser, error)
}

type ResumeUsecase interface {
	Upload(ctx context.Context, userID, filename string, data []byte, declaredMIME string) (*ResumeInfo, error)
	Get(ctx context.Context, userID string) (*ResumeInfo, error)
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Column allow-lists for dynamic SET clauses. The usecase already
// partitions input through typed DTOs; the repository re-filters here
// so a stray map key can never reach SQL text.
var userUpdateColumns = []string{
	"first_name", "last_name", "phone", "preferred_language", "timezone",
}

var profileUpdateColumns = []string{
	"headline", "bio", "date_of_birth", "gender", "country", "city",
	"availability_status", "expected_salary_min", "expected_salary_max",
	"salary_currency", "notice_period_days", "willing_to_relocate",
	"work_preference", "video_intro_url", "profile_visibility",
	"portfolio_links", "total_experience_months",
}

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

// buildSet walks the allow-list in order and emits "col = $n" fragments
// for the columns present in fields. Ordered iteration keeps placeholder
// numbering deterministic.
func buildSet(fields map[string]interface{}, allowed []string, startIdx int) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	idx := startIdx
	for _, col := range allowed {
		val, ok := fields[col]
		if !ok {
			continue
		}
		switch col {
		case "work_preference":
			val = pq.Array(val)
		case "portfolio_links":
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			val = string(b)
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}
	return strings.Join(clauses, ", "), args
}

func (r *profileRepo) ApplyUpdate(ctx context.Context, userID string, write *domain.ProfileWrite) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	if len(write.UserFields) > 0 {
		setClause, args := buildSet(write.UserFields, userUpdateColumns, 1)
		if setClause != "" {
			args = append(args, userID)
			query := fmt.Sprintf(
				`UPDATE users SET %s, updated_at = NOW() WHERE id = $%d AND deleted_at IS NULL`,
				setClause, len(args),
			)
			cmdTag, err := tx.Exec(ctx, query, args...)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
					return classifyUnique(pgErr)
				}
				return apperror.Internal(err)
			}
			if cmdTag.RowsAffected() == 0 {
				return domain.ErrNotFound
			}
		}
	}

	// The profile row always exists after this point, created lazily on
	// first write.
	var profileID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO candidate_profiles (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id`, userID).Scan(&profileID)
	if err != nil {
		return apperror.Internal(err)
	}

	if len(write.ProfileFields) > 0 {
		setClause, args := buildSet(write.ProfileFields, profileUpdateColumns, 1)
		if setClause != "" {
			args = append(args, profileID)
			query := fmt.Sprintf(
				`UPDATE candidate_profiles SET %s, updated_at = NOW() WHERE id = $%d`,
				setClause, len(args),
			)
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if write.Experience != nil {
		if err := replaceExperience(ctx, tx, profileID, *write.Experience); err != nil {
			return apperror.Internal(err)
		}
	}
	if write.Education != nil {
		if err := replaceEducation(ctx, tx, profileID, *write.Education); err != nil {
			return apperror.Internal(err)
		}
	}
	if write.Skills != nil {
		if err := replaceSkills(ctx, tx, profileID, *write.Skills); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return apperror.BadRequest("Unknown skill reference")
			}
			return apperror.Internal(err)
		}
	}
	if write.Languages != nil {
		if err := replaceLanguages(ctx, tx, profileID, *write.Languages); err != nil {
			return apperror.Internal(err)
		}
	}
	if write.Certifications != nil {
		if err := replaceCertifications(ctx, tx, profileID, *write.Certifications); err != nil {
			return apperror.Internal(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func replaceExperience(ctx context.Context, tx pgx.Tx, profileID int64, rows []domain.Experience) error {
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_experiences WHERE candidate_profile_id = $1`, profileID); err != nil {
		return err
	}
	for _, e := range rows {
		_, err := tx.Exec(ctx, `
			INSERT INTO candidate_experiences
				(candidate_profile_id, company_name, job_title, employment_type,
				 location, start_date, end_date, is_current, description, sort_order,
				 created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`,
			profileID, e.CompanyName, e.JobTitle, e.EmploymentType,
			e.Location, e.StartDate, e.EndDate, e.IsCurrent, e.Description, e.SortOrder,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func replaceEducation(ctx context.Context, tx pgx.Tx, profileID int64, rows []domain.Education) error {
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_educations WHERE candidate_profile_id = $1`, profileID); err != nil {
		return err
	}
	for _, e := range rows {
		_, err := tx.Exec(ctx, `
			INSERT INTO candidate_educations
				(candidate_profile_id, institution_name, degree, field_of_study,
				 start_year, end_year, grade, description, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`,
			profileID, e.InstitutionName, e.Degree, e.FieldOfStudy,
			e.StartYear, e.EndYear, e.Grade, e.Description, e.SortOrder,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func replaceSkills(ctx context.Context, tx pgx.Tx, profileID int64, rows []domain.CandidateSkill) error {
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_skills WHERE candidate_profile_id = $1`, profileID); err != nil {
		return err
	}
	for _, s := range rows {
		_, err := tx.Exec(ctx, `
			INSERT INTO candidate_skills
				(candidate_profile_id, skill_id, proficiency, years_experience,
				 is_highlighted, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
			profileID, s.SkillID, s.Proficiency, s.YearsExperience, s.IsHighlighted,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func replaceLanguages(ctx context.Context, tx pgx.Tx, profileID int64, rows []domain.CandidateLanguage) error {
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_languages WHERE candidate_profile_id = $1`, profileID); err != nil {
		return err
	}
	for _, l := range rows {
		_, err := tx.Exec(ctx, `
			INSERT INTO candidate_languages
				(candidate_profile_id, language_code, language_name, proficiency, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())`,
			profileID, l.LanguageCode, l.LanguageName, l.Proficiency,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func replaceCertifications(ctx context.Context, tx pgx.Tx, profileID int64, rows []domain.Certification) error {
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_certifications WHERE candidate_profile_id = $1`, profileID); err != nil {
		return err
	}
	for _, c := range rows {
		_, err := tx.Exec(ctx, `
			INSERT INTO candidate_certifications
				(candidate_profile_id, title, issuing_org, issued_date, expiry_date,
				 credential_id, credential_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`,
			profileID, c.Title, c.IssuingOrg, c.IssuedDate, c.ExpiryDate,
			c.CredentialID, c.CredentialURL,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *profileRepo) GetFullProfile(ctx context.Context, userID string) (*domain.FullProfile, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, userID))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	full := &domain.FullProfile{
		User:           user,
		Experience:     []domain.Experience{},
		Education:      []domain.Education{},
		Skills:         []domain.CandidateSkill{},
		Languages:      []domain.CandidateLanguage{},
		Certifications: []domain.Certification{},
	}

	profile, err := r.getProfileRow(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	full.Profile = profile
	if profile == nil {
		return full, nil
	}

	if full.Experience, err = r.listExperience(ctx, profile.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	if full.Education, err = r.listEducation(ctx, profile.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	if full.Skills, err = r.listSkills(ctx, profile.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	if full.Languages, err = r.listLanguages(ctx, profile.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	if full.Certifications, err = r.listCertifications(ctx, profile.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	return full, nil
}

func (r *profileRepo) getProfileRow(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	var portfolioRaw []byte
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, headline, bio, date_of_birth, gender, country, city,
			availability_status, expected_salary_min, expected_salary_max,
			salary_currency, notice_period_days, willing_to_relocate,
			work_preference, resume_url, resume_text, resume_uploaded_at,
			video_intro_url, profile_visibility, portfolio_links,
			total_experience_months, created_at, updated_at
		FROM candidate_profiles WHERE user_id = $1`, userID).Scan(
		&p.ID, &p.UserID, &p.Headline, &p.Bio, &p.DateOfBirth, &p.Gender, &p.Country, &p.City,
		&p.AvailabilityStatus, &p.ExpectedSalaryMin, &p.ExpectedSalaryMax,
		&p.SalaryCurrency, &p.NoticePeriodDays, &p.WillingToRelocate,
		pq.Array(&p.WorkPreference), &p.ResumeURL, &p.ResumeText, &p.ResumeUploadedAt,
		&p.VideoIntroURL, &p.ProfileVisibility, &portfolioRaw,
		&p.TotalExperienceMonths, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(portfolioRaw) > 0 {
		if err := json.Unmarshal(portfolioRaw, &p.PortfolioLinks); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *profileRepo) listExperience(ctx context.Context, profileID int64) ([]domain.Experience, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, company_name, job_title, employment_type, location,
			to_char(start_date, 'YYYY-MM-DD'),
			to_char(end_date, 'YYYY-MM-DD'),
			is_current, description, sort_order
		FROM candidate_experiences
		WHERE candidate_profile_id = $1
		ORDER BY sort_order ASC, start_date DESC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.CompanyName, &e.JobTitle, &e.EmploymentType, &e.Location,
			&e.StartDate, &e.EndDate, &e.IsCurrent, &e.Description, &e.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *profileRepo) listEducation(ctx context.Context, profileID int64) ([]domain.Education, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, institution_name, degree, field_of_study, start_year, end_year,
			grade, description, sort_order
		FROM candidate_educations
		WHERE candidate_profile_id = $1
		ORDER BY sort_order ASC, end_year DESC NULLS LAST`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.InstitutionName, &e.Degree, &e.FieldOfStudy,
			&e.StartYear, &e.EndYear, &e.Grade, &e.Description, &e.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *profileRepo) listSkills(ctx context.Context, profileID int64) ([]domain.CandidateSkill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cs.id, cs.skill_id, COALESCE(s.name, ''), cs.proficiency,
			cs.years_experience, cs.is_highlighted
		FROM candidate_skills cs
		LEFT JOIN skills s ON s.id = cs.skill_id
		WHERE cs.candidate_profile_id = $1
		ORDER BY cs.is_highlighted DESC, cs.id ASC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.CandidateSkill{}
	for rows.Next() {
		var s domain.CandidateSkill
		if err := rows.Scan(&s.ID, &s.SkillID, &s.SkillName, &s.Proficiency,
			&s.YearsExperience, &s.IsHighlighted); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *profileRepo) listLanguages(ctx context.Context, profileID int64) ([]domain.CandidateLanguage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, language_code, language_name, proficiency
		FROM candidate_languages
		WHERE candidate_profile_id = $1
		ORDER BY id ASC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.CandidateLanguage{}
	for rows.Next() {
		var l domain.CandidateLanguage
		if err := rows.Scan(&l.ID, &l.LanguageCode, &l.LanguageName, &l.Proficiency); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *profileRepo) listCertifications(ctx context.Context, profileID int64) ([]domain.Certification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, issuing_org,
			to_char(issued_date, 'YYYY-MM-DD'),
			to_char(expiry_date, 'YYYY-MM-DD'),
			credential_id, credential_url
		FROM candidate_certifications
		WHERE candidate_profile_id = $1
		ORDER BY issued_date DESC NULLS LAST, id ASC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Certification{}
	for rows.Next() {
		var c domain.Certification
		if err := rows.Scan(&c.ID, &c.Title, &c.IssuingOrg, &c.IssuedDate, &c.ExpiryDate,
			&c.CredentialID, &c.CredentialURL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *profileRepo) UpsertResume(ctx context.Context, userID, resumeURL, resumeText string, uploadedAt time.Time) error {
	var text interface{}
	if resumeText != "" {
		text = resumeText
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO candidate_profiles (user_id, resume_url, resume_text, resume_uploaded_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			resume_url = EXCLUDED.resume_url,
			resume_text = COALESCE(EXCLUDED.resume_text, candidate_profiles.resume_text),
			resume_uploaded_at = EXCLUDED.resume_uploaded_at,
			updated_at = NOW()`,
		userID, resumeURL, text, uploadedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *profileRepo) GetResume(ctx context.Context, userID string) (*domain.ResumeInfo, error) {
	var info domain.ResumeInfo
	err := r.db.QueryRow(ctx, `
		SELECT user_id, resume_url, resume_text, resume_uploaded_at
		FROM candidate_profiles WHERE user_id = $1`, userID).Scan(
		&info.UserID, &info.ResumeURL, &info.ResumeText, &info.ResumeUploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, apperror.Internal(err)
	}
	return &info, nil
}
